package client

// ProfileRecord is the reshaped person-profile response.
type ProfileRecord struct {
	Profile               PersonProfile          `json:"profile"`
	Emails                []Email                `json:"emails,omitempty"`
	OrganizationPositions []OrganizationPosition `json:"organizationPositions,omitempty"`
}

// PersonProfile carries the identity fields of a profile.
type PersonProfile struct {
	MemberID  int64  `json:"memberId,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	FullName  string `json:"fullName,omitempty"`
}

// Email is a single profile email entry.
type Email struct {
	Email string `json:"email,omitempty"`
}

// OrganizationPosition links a person to an organization with one or more
// positions held there.
type OrganizationPosition struct {
	OrganizationGUID string     `json:"organizationGuid"`
	OrganizationName string     `json:"organizationName,omitempty"`
	UnitType         string     `json:"unitType,omitempty"`
	UnitNumber       string     `json:"unitNumber,omitempty"`
	Positions        []Position `json:"positions,omitempty"`
}

// Position is a named role within an organization. Upstream uses either
// the name or the position field depending on the endpoint.
type Position struct {
	Name     string `json:"name,omitempty"`
	Position string `json:"position,omitempty"`
}

// Label returns the human-readable role string for the position.
func (p Position) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Position
}

// DependentRecord is one raw entry from the caller's dependent list. The
// upstream returns one record per (person, position) pair, so the same
// person can appear several times with different positions.
type DependentRecord struct {
	UserID           int64  `json:"userId,omitempty"`
	MemberID         int64  `json:"memberId,omitempty"`
	PersonGUID       string `json:"personGuid"`
	FirstName        string `json:"firstName,omitempty"`
	LastName         string `json:"lastName,omitempty"`
	Relationship     string `json:"relationship,omitempty"`
	OrgGUID          string `json:"orgGuid,omitempty"`
	UnitType         string `json:"unitType,omitempty"`
	UnitNumber       string `json:"unitNumber,omitempty"`
	Program          string `json:"program,omitempty"`
	OrganizationName string `json:"organizationName,omitempty"`
	Position         string `json:"position,omitempty"`
}

// RoleRecord is one entry from the caller's role/permission list.
type RoleRecord struct {
	OrganizationGUID   string     `json:"organizationGuid,omitempty"`
	OrganizationName   string     `json:"organizationName,omitempty"`
	OrganizationNumber string     `json:"organizationNumber,omitempty"`
	Role               string     `json:"role,omitempty"`
	ProgramType        string     `json:"programType,omitempty"`
	EffectiveDate      string     `json:"effectiveDate,omitempty"`
	ExpireDate         string     `json:"expireDate,omitempty"`
	Status             string     `json:"status,omitempty"`
	RoleTypes          []RoleType `json:"roleTypes,omitempty"`
}

// RoleType is one permission entry attached to a role.
type RoleType struct {
	RoleType string `json:"roleType,omitempty"`
}

// Label returns the role name. Parent-role entries come back with an
// empty role field, so the first permission entry stands in.
func (r RoleRecord) Label() string {
	if r.Role != "" {
		return r.Role
	}
	if len(r.RoleTypes) > 0 {
		return r.RoleTypes[0].RoleType
	}
	return ""
}

// Permissions returns the flattened permission strings of the role.
func (r RoleRecord) Permissions() []string {
	out := make([]string, 0, len(r.RoleTypes))
	for _, rt := range r.RoleTypes {
		out = append(out, rt.RoleType)
	}
	return out
}

// RosterRecord is the unit youth roster response.
type RosterRecord struct {
	OrganizationName string       `json:"organizationName,omitempty"`
	Users            []RosterUser `json:"users,omitempty"`
}

// RosterUser is one youth member on a unit roster.
type RosterUser struct {
	UserID         int64  `json:"userId,omitempty"`
	MemberID       int64  `json:"memberId,omitempty"`
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	PersonFullName string `json:"personFullName,omitempty"`
}

// TrainingRecord is the Youth Protection Training status response.
type TrainingRecord struct {
	PersonFullName    string `json:"personFullName,omitempty"`
	YPTStatus         string `json:"yptStatus,omitempty"`
	YPTCompletionDate string `json:"yptCompletionDate,omitempty"`
	YPTExpireDate     string `json:"yptExpireDate,omitempty"`
}

// OrgProfileRecord is the organization profile response.
type OrgProfileRecord struct {
	Name     string `json:"name,omitempty"`
	Number   string `json:"number,omitempty"`
	Type     string `json:"type,omitempty"`
	Program  string `json:"program,omitempty"`
	District string `json:"district,omitempty"`
	Council  string `json:"council,omitempty"`
}
