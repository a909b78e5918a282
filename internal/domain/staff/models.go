package staff

import "time"

type StaffAccount struct {
	ID              string           `json:"id"`
	Username        string           `json:"username"`
	PasswordHash    string           `json:"-"`
	Email           string           `json:"email"`
	MobileNumber    int64            `json:"mobilenumber"`
	Gender          string           `json:"gender"`
	EmployeeDetails *EmployeeProfile `json:"employeeDetails,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// EmployeeProfile is the 0-or-1 profile attached to a StaffAccount. It is
// replaced wholesale on every save, never merged field by field.
type EmployeeProfile struct {
	FullName           string           `json:"fullName"`
	DateOfBirth        time.Time        `json:"dateOfBirth"`
	Gender             string           `json:"gender"`
	Address            string           `json:"address"`
	Phone              string           `json:"phone"`
	Email              string           `json:"email"`
	EmergencyContact   EmergencyContact `json:"emergencyContact"`
	ProfilePhoto       string           `json:"profilePhoto"`
	IdentificationDocs []string         `json:"identificationDocs"`
	Status             string           `json:"status"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}
