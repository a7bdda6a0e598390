package cache

import (
	"context"
	"errors"
	"strings"

	"scouts/internal/auth"
	"scouts/internal/client"
	"scouts/pkg/logging"
)

// Fetcher gathers the raw upstream records a refresh merges. Implemented
// by client.Client and by fakes in tests.
type Fetcher interface {
	FetchProfile(ctx context.Context, userID int64) (*client.ProfileRecord, error)
	FetchDependents(ctx context.Context, userID int64) ([]client.DependentRecord, error)
	FetchRoles(ctx context.Context, personGUID string) ([]client.RoleRecord, error)
}

// Refresh rebuilds the snapshot from live upstream calls and persists it.
// The caller's identifiers come from the current credential's claims. Each
// fetch step is independently fault-tolerant: a failure degrades that step
// to "no contribution", recorded in the report, and the snapshot is built
// from whatever succeeded. Only a persistence failure returns an error.
func (c *Cache) Refresh(ctx context.Context, fetcher Fetcher, creds *auth.TokenInfo) (*Snapshot, *RefreshReport, error) {
	report := &RefreshReport{}

	var userID int64
	var personGUID string
	if creds != nil {
		userID = creds.UID
		personGUID = creds.PGU
	}

	snap := &Snapshot{
		User:          User{UserID: userID, PersonGUID: personGUID},
		Organizations: []Organization{},
		Scouts:        []Scout{},
	}

	// Organizations keyed by GUID, with insertion order preserved so the
	// persisted snapshot is deterministic.
	orgs := make(map[string]*Organization)
	var orgOrder []string
	ensureOrg := func(guid string) *Organization {
		if org, ok := orgs[guid]; ok {
			return org
		}
		org := &Organization{OrgGUID: guid, Roles: []string{}, Scouts: []ScoutRef{}}
		orgs[guid] = org
		orgOrder = append(orgOrder, guid)
		return org
	}

	c.mergeProfile(ctx, fetcher, userID, snap, ensureOrg, report)
	scouts := c.mergeDependents(ctx, fetcher, userID, orgs, ensureOrg, report)
	snap.Scouts = scouts
	c.mergeRoles(ctx, fetcher, personGUID, orgs, report)

	for _, guid := range orgOrder {
		snap.Organizations = append(snap.Organizations, *orgs[guid])
	}

	if err := c.save(snap); err != nil {
		return nil, report, err
	}

	for _, skipped := range report.Skipped() {
		logging.Warn("ContextCache", "Refresh step %q contributed nothing: %s", skipped.Step, skipped.Reason)
	}
	return snap, report, nil
}

// mergeProfile fills the user section and seeds organizations from the
// profile's position list.
func (c *Cache) mergeProfile(ctx context.Context, fetcher Fetcher, userID int64, snap *Snapshot, ensureOrg func(string) *Organization, report *RefreshReport) {
	if userID == 0 {
		report.skip("profile", errors.New("no user identifier in credential claims"))
		return
	}

	profile, err := fetcher.FetchProfile(ctx, userID)
	if err != nil {
		report.skip("profile", err)
		return
	}

	snap.User.MemberID = profile.Profile.MemberID
	snap.User.FirstName = profile.Profile.FirstName
	snap.User.LastName = profile.Profile.LastName
	snap.User.FullName = profile.Profile.FullName
	if len(profile.Emails) > 0 {
		snap.User.Email = profile.Emails[0].Email
	}

	for _, op := range profile.OrganizationPositions {
		if op.OrganizationGUID == "" {
			continue
		}
		org := ensureOrg(op.OrganizationGUID)
		if org.Name == "" {
			org.Name = op.OrganizationName
			org.UnitType = op.UnitType
			org.UnitNumber = op.UnitNumber
		}
		for _, pos := range op.Positions {
			appendUnique(&org.Roles, pos.Label())
		}
	}

	report.ok("profile")
}

// ScoutsFromDependents de-duplicates raw dependent records by person
// GUID, accumulating the distinct positions seen for each person, in
// first-seen order. Used by the refresh merge and by the name-resolve
// fallback when no snapshot exists yet.
func ScoutsFromDependents(raw []client.DependentRecord) []Scout {
	seen := make(map[string]*Scout)
	var order []string
	for _, dep := range raw {
		scout, ok := seen[dep.PersonGUID]
		if !ok {
			scout = &Scout{
				FirstName:    dep.FirstName,
				LastName:     dep.LastName,
				FullName:     strings.TrimSpace(dep.FirstName + " " + dep.LastName),
				UserID:       dep.UserID,
				MemberID:     dep.MemberID,
				PersonGUID:   dep.PersonGUID,
				OrgGUID:      dep.OrgGUID,
				UnitType:     dep.UnitType,
				UnitNumber:   dep.UnitNumber,
				Program:      dep.Program,
				Organization: dep.OrganizationName,
				Positions:    []string{},
			}
			seen[dep.PersonGUID] = scout
			order = append(order, dep.PersonGUID)
		}
		appendUnique(&scout.Positions, dep.Position)
	}

	scouts := make([]Scout, 0, len(order))
	for _, pg := range order {
		scouts = append(scouts, *seen[pg])
	}
	return scouts
}

// mergeDependents de-duplicates the raw dependent records by person GUID,
// accumulating distinct positions, and enriches the organization set: an
// organization known only through a dependent is materialized as a stub
// named from its unit type and number, with the guardian role attached.
func (c *Cache) mergeDependents(ctx context.Context, fetcher Fetcher, userID int64, orgs map[string]*Organization, ensureOrg func(string) *Organization, report *RefreshReport) []Scout {
	if userID == 0 {
		report.skip("dependents", errors.New("no user identifier in credential claims"))
		return []Scout{}
	}

	raw, err := fetcher.FetchDependents(ctx, userID)
	if err != nil {
		report.skip("dependents", err)
		return []Scout{}
	}

	scouts := ScoutsFromDependents(raw)

	for _, dep := range raw {
		if dep.OrgGUID == "" {
			continue
		}
		if _, known := orgs[dep.OrgGUID]; !known {
			stub := ensureOrg(dep.OrgGUID)
			stub.Name = strings.TrimSpace(dep.UnitType + " " + dep.UnitNumber)
			if stub.Name == "" {
				stub.Name = dep.OrganizationName
			}
			stub.UnitType = dep.UnitType
			stub.UnitNumber = dep.UnitNumber
			stub.Program = dep.Program
		}
		appendUnique(&orgs[dep.OrgGUID].Roles, GuardianRole)
	}

	for _, scout := range scouts {
		// Back-fill the organization's scout summary, avoiding duplicate
		// entries by dependent identifier.
		org, known := orgs[scout.OrgGUID]
		if !known {
			continue
		}
		duplicate := false
		for _, ref := range org.Scouts {
			if ref.UserID == scout.UserID {
				duplicate = true
				break
			}
		}
		if !duplicate {
			org.Scouts = append(org.Scouts, ScoutRef{
				Name:     scout.FullName,
				UserID:   scout.UserID,
				MemberID: scout.MemberID,
			})
		}
	}

	report.ok("dependents")
	return scouts
}

// mergeRoles back-fills a missing program field from the role list. It
// never overwrites an already-known value and never adds organizations.
func (c *Cache) mergeRoles(ctx context.Context, fetcher Fetcher, personGUID string, orgs map[string]*Organization, report *RefreshReport) {
	if personGUID == "" {
		report.skip("roles", errors.New("no person identifier in credential claims"))
		return
	}

	roles, err := fetcher.FetchRoles(ctx, personGUID)
	if err != nil {
		report.skip("roles", err)
		return
	}

	for _, role := range roles {
		org, known := orgs[role.OrganizationGUID]
		if !known {
			continue
		}
		if org.Program == "" && role.ProgramType != "" {
			org.Program = role.ProgramType
		}
	}

	report.ok("roles")
}

// appendUnique appends value to list unless it is empty or already
// present.
func appendUnique(list *[]string, value string) {
	if value == "" {
		return
	}
	for _, existing := range *list {
		if existing == value {
			return
		}
	}
	*list = append(*list, value)
}
