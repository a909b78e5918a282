package staff

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"

	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusPending    = "pending"
	StatusTerminated = "terminated"
)

var (
	Genders         = []string{GenderMale, GenderFemale, GenderOther}
	ProfileStatuses = []string{StatusActive, StatusInactive, StatusPending, StatusTerminated}
)
