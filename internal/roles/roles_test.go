package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/specdev/orchestrator/internal/domain"
)

func TestComputeDefaultRolesBase(t *testing.T) {
	got := ComputeDefaultRoles("refactor parser internals", nil)
	want := []domain.Role{
		domain.RoleResearch, domain.RolePM, domain.RoleTechLead,
		domain.RoleDev, domain.RoleQA, domain.RoleDocs,
	}
	assert.Equal(t, want, got)
}

func TestComputeDefaultRolesSecurityKeywords(t *testing.T) {
	got := ComputeDefaultRoles("implement OAuth login with JWT", nil)
	want := []domain.Role{
		domain.RoleResearch, domain.RolePM, domain.RoleTechLead,
		domain.RoleDev, domain.RoleQA, domain.RoleSecurity, domain.RoleDocs,
	}
	assert.Equal(t, want, got)
}

func TestComputeDefaultRolesMultipleMatchesOrdering(t *testing.T) {
	// DevOps matches first and Security second; each splices in at the same
	// position, so Security lands before DevOps.
	got := ComputeDefaultRoles("deploy secure auth pipeline with jwt", nil)
	want := []domain.Role{
		domain.RoleResearch, domain.RolePM, domain.RoleTechLead,
		domain.RoleDev, domain.RoleQA, domain.RoleSecurity, domain.RoleDevOps,
		domain.RoleDocs,
	}
	assert.Equal(t, want, got)
}

func TestComputeDefaultRolesOverrides(t *testing.T) {
	t.Run("research appended when absent", func(t *testing.T) {
		got := ComputeDefaultRoles("anything", []domain.Role{domain.RoleDev, domain.RoleQA})
		assert.Equal(t, []domain.Role{domain.RoleDev, domain.RoleQA, domain.RoleResearch}, got)
	})

	t.Run("duplicates collapsed, order preserved", func(t *testing.T) {
		got := ComputeDefaultRoles("anything", []domain.Role{domain.RoleDev, domain.RoleDev, domain.RoleResearch})
		assert.Equal(t, []domain.Role{domain.RoleDev, domain.RoleResearch}, got)
	})

	t.Run("research kept in override position", func(t *testing.T) {
		got := ComputeDefaultRoles("anything", []domain.Role{domain.RoleResearch, domain.RolePM})
		assert.Equal(t, []domain.Role{domain.RoleResearch, domain.RolePM}, got)
	})
}

func TestComputeDefaultRolesAlwaysIncludesResearch(t *testing.T) {
	goals := []string{"", "deploy docker auth data ui latency", "write docs"}
	for _, goal := range goals {
		assert.Contains(t, ComputeDefaultRoles(goal, nil), domain.RoleResearch, "goal %q", goal)
	}
}

func TestRoleTablesCoverAllRoles(t *testing.T) {
	for _, r := range domain.AllRoles {
		assert.NotEmpty(t, Summary(r), "summary for %s", r)
		assert.NotEmpty(t, Title(r), "title for %s", r)
		assert.NotEmpty(t, CommunicationStyle(r), "communication style for %s", r)
		assert.NotEmpty(t, Responsibilities(r), "responsibilities for %s", r)
	}
}
