package staff

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// FieldIssue names one violated constraint on an incoming record.
type FieldIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Registration is the account-creation input before hashing and persistence.
type Registration struct {
	Username     string
	Password     string
	Email        string
	MobileNumber int64
	Gender       string
}

// NormalizeEmail lowercases and trims an email the way it is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateRegistration(reg Registration) []FieldIssue {
	v := newIssueList()
	v.required("username", reg.Username)
	v.required("password", reg.Password)
	v.email("email", reg.Email)
	if reg.MobileNumber <= 0 {
		v.add("mobilenumber", "is required")
	}
	v.enum("gender", reg.Gender, Genders)
	return v.issues()
}

// ValidateProfile checks a candidate profile against every field rule. The
// record is accepted whole or rejected whole; callers must not persist a
// profile that returns issues.
func ValidateProfile(profile EmployeeProfile) []FieldIssue {
	v := newIssueList()
	v.required("fullName", profile.FullName)
	if profile.DateOfBirth.IsZero() {
		v.add("dateOfBirth", "is required")
	} else if profile.DateOfBirth.After(time.Now()) {
		v.add("dateOfBirth", "cannot be in the future")
	}
	v.enum("gender", profile.Gender, Genders)
	v.required("address", profile.Address)
	v.phone("phone", profile.Phone)
	v.email("email", profile.Email)
	v.required("emergencyContact.name", profile.EmergencyContact.Name)
	v.required("emergencyContact.relationship", profile.EmergencyContact.Relationship)
	v.phone("emergencyContact.phone", profile.EmergencyContact.Phone)
	v.required("profilePhoto", profile.ProfilePhoto)
	if len(profile.IdentificationDocs) == 0 {
		v.add("identificationDocs", "at least one document is required")
	}
	if profile.Status != "" {
		v.enum("status", profile.Status, ProfileStatuses)
	}
	return v.issues()
}

type issueList struct {
	items []FieldIssue
}

func newIssueList() *issueList {
	return &issueList{items: make([]FieldIssue, 0, 4)}
}

func (l *issueList) add(field, reason string) {
	l.items = append(l.items, FieldIssue{Field: field, Reason: reason})
}

func (l *issueList) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		l.add(field, "is required")
	}
}

func (l *issueList) enum(field, value string, allowed []string) {
	if strings.TrimSpace(value) == "" {
		l.add(field, "is required")
		return
	}
	for _, candidate := range allowed {
		if value == candidate {
			return
		}
	}
	l.add(field, "must be one of "+strings.Join(allowed, ", "))
}

func (l *issueList) phone(field, value string) {
	if strings.TrimSpace(value) == "" {
		l.add(field, "is required")
		return
	}
	if !phonePattern.MatchString(value) {
		l.add(field, "must be exactly 10 digits")
	}
}

func (l *issueList) email(field, value string) {
	normalized := NormalizeEmail(value)
	if normalized == "" {
		l.add(field, "is required")
		return
	}
	if !emailPattern.MatchString(normalized) {
		l.add(field, "must be a valid email address")
	}
}

func (l *issueList) issues() []FieldIssue {
	if len(l.items) == 0 {
		return nil
	}
	out := make([]FieldIssue, len(l.items))
	copy(out, l.items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field == out[j].Field {
			return out[i].Reason < out[j].Reason
		}
		return out[i].Field < out[j].Field
	})
	return out
}

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}
