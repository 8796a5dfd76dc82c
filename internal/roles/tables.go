package roles

import "github.com/specdev/orchestrator/internal/domain"

// Static per-role text tables. Keyed by the closed domain.Role set; coverage
// of every role is asserted in tests.

var summaries = map[domain.Role]string{
	domain.RoleResearch:    "Research internal knowledge first, then external; compile best practices and references",
	domain.RolePM:          "Validate requirements and success criteria",
	domain.RoleTechLead:    "Confirm architecture and plan",
	domain.RoleDev:         "Implement tasks with tests",
	domain.RoleQA:          "Run tests and validate quality gates",
	domain.RoleDocs:        "Prepare release notes and docs; integrate research",
	domain.RoleDevOps:      "Prepare CI/CD, ops, and deployment strategy",
	domain.RoleSecurity:    "Perform security review and guidance",
	domain.RolePerformance: "Profile and provide performance plan",
	domain.RoleUX:          "Provide UX guidelines and acceptance checks",
	domain.RoleData:        "Define data models, flows, and checks",
}

var titles = map[domain.Role]string{
	domain.RolePM:          "Product Manager",
	domain.RoleTechLead:    "Technical Lead",
	domain.RoleDev:         "Software Engineer",
	domain.RoleQA:          "QA Engineer",
	domain.RoleDocs:        "Technical Writer",
	domain.RoleResearch:    "Research Engineer",
	domain.RoleDevOps:      "DevOps Engineer",
	domain.RoleSecurity:    "Security Engineer",
	domain.RolePerformance: "Performance Engineer",
	domain.RoleUX:          "UX Designer",
	domain.RoleData:        "Data Engineer",
}

var communicationStyles = map[domain.Role]string{
	domain.RolePM:          "Communicate clearly, define scope, success metrics, and constraints.",
	domain.RoleTechLead:    "Explain reasoning, architecture trade-offs, and risk mitigation.",
	domain.RoleDev:         "Provide implementation details, tests-first mindset, and commit-level clarity.",
	domain.RoleQA:          "Focus on test plans, coverage, negative cases, and clear pass/fail criteria.",
	domain.RoleDocs:        "Write concise, user-focused documentation with examples and release notes.",
	domain.RoleResearch:    "Start from prior internal knowledge, verify against trusted sources, and cite. Provide precise, terse findings and best practices.",
	domain.RoleDevOps:      "Automate safely, prefer IaC, ensure CI/CD reliability and observability.",
	domain.RoleSecurity:    "Apply secure-by-default patterns, threat-model briefly, and reference standards (OWASP/CIS).",
	domain.RolePerformance: "Use metrics-driven approach, profile, identify hotspots, and propose concrete optimizations.",
	domain.RoleUX:          "Ensure accessibility, usability, and clarity with concrete UI/UX recommendations.",
	domain.RoleData:        "Define schemas, data flows, and validation with privacy/compliance considerations.",
}

var responsibilities = map[domain.Role]string{
	domain.RolePM:          "clarify requirements, validate user stories, acceptance criteria, and success metrics",
	domain.RoleTechLead:    "design architecture, choose tools, outline tasks and sequencing, enforce best practices",
	domain.RoleDev:         "implement features, write unit/integration tests, ensure maintainability and performance",
	domain.RoleQA:          "create and run test plans, track defects, validate quality gates and performance",
	domain.RoleDocs:        "produce technical docs, changelogs, onboarding guides, and usage examples",
	domain.RoleResearch:    "gather best practices, solutions for errors, compare alternatives, and summarize with citations",
	domain.RoleDevOps:      "set up CI/CD, monitoring, infrastructure as code, and deployment strategies",
	domain.RoleSecurity:    "enforce secure coding, dependency auditing, secrets handling, and threat mitigations",
	domain.RolePerformance: "measure performance, set budgets, optimize critical paths, and validate improvements",
	domain.RoleUX:          "define user journeys, wireframes, accessibility checks, and UX acceptance criteria",
	domain.RoleData:        "design schemas, migrations, data quality checks, and retention policies",
}

// Summary returns the static step summary for a role.
func Summary(r domain.Role) string { return summaries[r] }

// Title returns the human job title for a role.
func Title(r domain.Role) string { return titles[r] }

// CommunicationStyle returns the fixed communication sentence for a role.
func CommunicationStyle(r domain.Role) string { return communicationStyles[r] }

// Responsibilities returns the fixed responsibilities sentence for a role.
func Responsibilities(r domain.Role) string { return responsibilities[r] }
