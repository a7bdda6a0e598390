package cache

import "time"

// SnapshotVersion is the schema version stamped into persisted snapshots.
// A snapshot with a different version is treated as not populated.
const SnapshotVersion = 1

// GuardianRole is the role recorded for the user in organizations known
// only through a dependent record.
const GuardianRole = "Parent/Guardian"

// User is the identity section of the snapshot.
type User struct {
	UserID     int64  `json:"userId,omitempty"`
	PersonGUID string `json:"personGuid,omitempty"`
	MemberID   int64  `json:"memberId,omitempty"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	FullName   string `json:"fullName,omitempty"`
	Email      string `json:"email,omitempty"`
}

// ScoutRef is the short scout summary embedded in an organization.
type ScoutRef struct {
	Name     string `json:"name"`
	UserID   int64  `json:"userId,omitempty"`
	MemberID int64  `json:"memberId,omitempty"`
}

// Organization is one organization the user has a relationship with.
// OrgGUID values are unique within a snapshot; Roles never contains
// duplicate entries.
type Organization struct {
	OrgGUID    string     `json:"orgGuid"`
	Name       string     `json:"name,omitempty"`
	UnitType   string     `json:"unitType,omitempty"`
	UnitNumber string     `json:"unitNumber,omitempty"`
	Program    string     `json:"program,omitempty"`
	Roles      []string   `json:"roles"`
	Scouts     []ScoutRef `json:"scouts"`
}

// Scout is one de-duplicated dependent. PersonGUID is the dedup key;
// Positions accumulates the distinct position strings seen across the raw
// records for the same person.
type Scout struct {
	FirstName    string   `json:"firstName,omitempty"`
	LastName     string   `json:"lastName,omitempty"`
	FullName     string   `json:"fullName,omitempty"`
	UserID       int64    `json:"userId,omitempty"`
	MemberID     int64    `json:"memberId,omitempty"`
	PersonGUID   string   `json:"personGuid"`
	OrgGUID      string   `json:"orgGuid,omitempty"`
	UnitType     string   `json:"unitType,omitempty"`
	UnitNumber   string   `json:"unitNumber,omitempty"`
	Program      string   `json:"program,omitempty"`
	Organization string   `json:"organization,omitempty"`
	Positions    []string `json:"positions"`
}

// Snapshot is the persisted context file.
type Snapshot struct {
	Version       int            `json:"version"`
	LastRefreshed time.Time      `json:"lastRefreshed"`
	User          User           `json:"user"`
	Organizations []Organization `json:"organizations"`
	Scouts        []Scout        `json:"scouts"`
}

// StepResult records the outcome of one refresh step.
type StepResult struct {
	Step   string `json:"step"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// RefreshReport makes the best-effort merge policy explicit: every step
// either contributed or was skipped with a reason. A refresh with skipped
// steps still produces a snapshot.
type RefreshReport struct {
	Steps []StepResult `json:"steps"`
}

func (r *RefreshReport) ok(step string) {
	r.Steps = append(r.Steps, StepResult{Step: step, OK: true})
}

func (r *RefreshReport) skip(step string, reason error) {
	r.Steps = append(r.Steps, StepResult{Step: step, Reason: reason.Error()})
}

// Skipped returns the steps that made no contribution.
func (r *RefreshReport) Skipped() []StepResult {
	var out []StepResult
	for _, s := range r.Steps {
		if !s.OK {
			out = append(out, s)
		}
	}
	return out
}
