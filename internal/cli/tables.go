package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"scouts/internal/auth"
	"scouts/internal/cache"
	"scouts/internal/client"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	return t
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printTokenInfo(info *auth.TokenInfo) {
	status := "valid"
	if info.IsExpired {
		status = "expired"
	}
	fmt.Printf("Status:     %s\n", status)
	fmt.Printf("User:       %s\n", dash(info.User))
	fmt.Printf("Obtained:   %s\n", info.ObtainedAt.Format(time.RFC3339))
	fmt.Printf("Expires:    %s\n", info.ExpiresAt.Format(time.RFC3339))
	if len(info.Scope) > 0 {
		fmt.Printf("Scope:      %s\n", strings.Join(info.Scope, ", "))
	}
}

func printContextSummary(summary *cache.Summary) {
	if summary.Status == "not_populated" {
		fmt.Println(summary.Message)
		return
	}

	fmt.Printf("Context:    %s (refreshed %s)\n", summary.Status, summary.LastRefreshed.Format(time.RFC3339))
	fmt.Printf("User:       %s\n", dash(summary.User.FullName))
	fmt.Printf("File:       %s\n", summary.Path)
	fmt.Println()
	printOrganizations(summary.Organizations)
	fmt.Println()
	printScouts(summary.Scouts)
}

func printOrganizations(orgs []cache.Organization) {
	t := newTable()
	t.AppendHeader(table.Row{"NAME", "TYPE", "NUMBER", "PROGRAM", "ROLES", "SCOUTS"})
	for _, org := range orgs {
		t.AppendRow(table.Row{
			dash(org.Name),
			dash(org.UnitType),
			dash(org.UnitNumber),
			dash(org.Program),
			dash(strings.Join(org.Roles, ", ")),
			len(org.Scouts),
		})
	}
	t.Render()
}

func printScouts(scouts []cache.Scout) {
	t := newTable()
	t.AppendHeader(table.Row{"NAME", "USER ID", "MEMBER ID", "UNIT", "POSITIONS"})
	for _, scout := range scouts {
		unit := strings.TrimSpace(scout.UnitType + " " + scout.UnitNumber)
		t.AppendRow(table.Row{
			dash(scout.FullName),
			scout.UserID,
			scout.MemberID,
			dash(unit),
			dash(strings.Join(scout.Positions, ", ")),
		})
	}
	t.Render()
}

func printRoster(roster *client.RosterRecord) {
	if roster.OrganizationName != "" {
		fmt.Println(roster.OrganizationName)
	}
	t := newTable()
	t.AppendHeader(table.Row{"NAME", "USER ID", "MEMBER ID"})
	for _, user := range roster.Users {
		name := user.PersonFullName
		if name == "" {
			name = strings.TrimSpace(user.FirstName + " " + user.LastName)
		}
		t.AppendRow(table.Row{dash(name), user.UserID, user.MemberID})
	}
	t.Render()
}
