// Package roles derives role rosters and personas from free-text goals.
// Everything here is a pure function of fixed tables and keyword regexes, so
// identical input always yields identical output.
package roles

import (
	"regexp"
	"strings"

	"github.com/specdev/orchestrator/internal/domain"
)

// baseRoster is the default execution sequence (Research-first convention).
var baseRoster = []domain.Role{
	domain.RoleResearch, domain.RolePM, domain.RoleTechLead,
	domain.RoleDev, domain.RoleQA, domain.RoleDocs,
}

// extraRosterRules are checked in this fixed order. Each match splices its
// role into the roster at extraInsertPos, so the last matching rule ends up
// closest to QA.
var extraRosterRules = []struct {
	role    domain.Role
	pattern *regexp.Regexp
}{
	{domain.RoleDevOps, regexp.MustCompile(`deploy|infrastructure|kubernetes|docker|ci/?cd|pipeline|terraform`)},
	{domain.RoleSecurity, regexp.MustCompile(`security|auth|owasp|encryption|jwt|oauth`)},
	{domain.RolePerformance, regexp.MustCompile(`performance|latency|throughput|optimi[sz]e|profil(e|ing)`)},
	{domain.RoleUX, regexp.MustCompile(`ux|ui|design|accessibility|a11y|usability`)},
	{domain.RoleData, regexp.MustCompile(`data|analytics|etl|warehouse|ml|ai|model`)},
}

const extraInsertPos = 5

// ComputeDefaultRoles infers the role roster for a goal.
//
// With overrides, the result is the override order deduplicated, with
// Research appended when absent. Otherwise the base roster is extended by
// keyword-matched extra roles.
func ComputeDefaultRoles(goal string, overrides []domain.Role) []domain.Role {
	if len(overrides) > 0 {
		seen := make(map[domain.Role]bool, len(overrides)+1)
		out := make([]domain.Role, 0, len(overrides)+1)
		for _, r := range overrides {
			if !seen[r] {
				seen[r] = true
				out = append(out, r)
			}
		}
		if !seen[domain.RoleResearch] {
			out = append(out, domain.RoleResearch)
		}
		return out
	}

	t := strings.ToLower(goal)
	roster := make([]domain.Role, len(baseRoster))
	copy(roster, baseRoster)
	for _, rule := range extraRosterRules {
		if rule.pattern.MatchString(t) {
			roster = append(roster[:extraInsertPos], append([]domain.Role{rule.role}, roster[extraInsertPos:]...)...)
		}
	}
	return roster
}
