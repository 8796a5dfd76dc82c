package roles

import (
	"regexp"
	"strings"

	"github.com/specdev/orchestrator/internal/domain"
)

// Stack is the language/platform/framework context detected in a goal.
type Stack struct {
	Language   string
	Platform   string
	Frameworks []string
}

// Language and platform tables are first-match-wins in declaration order;
// frameworks are detected additively.
var languageRules = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"Python", regexp.MustCompile(`python|pyqt|pyside|fastapi|django|flask`)},
	{"TypeScript", regexp.MustCompile(`typescript|ts\b`)},
	{"JavaScript", regexp.MustCompile(`javascript|node\b|express\b|next\.js|react\b`)},
	{"Go", regexp.MustCompile(`\bgo\b|golang`)},
	{"Java", regexp.MustCompile(`\bjava\b|spring\b|spring-boot`)},
	{"C#", regexp.MustCompile(`c#|\.net|dotnet|asp\.net|wpf|winforms`)},
	{"C++", regexp.MustCompile(`c\+\+|qt\b`)},
	{"Rust", regexp.MustCompile(`rust`)},
	{"Ruby", regexp.MustCompile(`ruby|rails`)},
	{"PHP", regexp.MustCompile(`php|laravel|symfony`)},
	{"Kotlin", regexp.MustCompile(`kotlin`)},
	{"Swift", regexp.MustCompile(`swift|ios`)},
	{"Dart", regexp.MustCompile(`dart|flutter`)},
}

var platformRules = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"Windows", regexp.MustCompile(`windows|win32|win64|wpf|winforms|uwp|msix`)},
	{"macOS", regexp.MustCompile(`macos|darwin`)},
	{"Linux", regexp.MustCompile(`linux`)},
	{"Android", regexp.MustCompile(`android`)},
	{"iOS", regexp.MustCompile(`ios`)},
	{"Web", regexp.MustCompile(`web|browser|frontend|react|next\.js|vite`)},
	{"Backend", regexp.MustCompile(`backend|api|microservice|server`)},
	{"Desktop", regexp.MustCompile(`desktop|electron|wpf|winforms|qt`)},
	{"CLI", regexp.MustCompile(`cli|command-line`)},
	{"Cloud", regexp.MustCompile(`aws|azure|gcp`)},
}

var frameworkRules = []struct {
	name      string
	substring []string
}{
	{"Electron", []string{"electron"}},
	{"React", []string{"react"}},
	{"Next.js", []string{"next.js", "nextjs"}},
	{"FastAPI", []string{"fastapi"}},
	{"Django", []string{"django"}},
	{"Flask", []string{"flask"}},
	{"Spring", []string{"spring"}},
	{"WPF", []string{"wpf"}},
	{"Qt", []string{"qt", "pyqt", "pyside"}},
	{"Playwright", []string{"playwright"}},
}

// DetectStack infers the primary language, target platform, and frameworks
// mentioned in text.
func DetectStack(text string) Stack {
	t := strings.ToLower(text)
	var st Stack
	for _, rule := range languageRules {
		if rule.pattern.MatchString(t) {
			st.Language = rule.name
			break
		}
	}
	for _, rule := range platformRules {
		if rule.pattern.MatchString(t) {
			st.Platform = rule.name
			break
		}
	}
	for _, rule := range frameworkRules {
		for _, sub := range rule.substring {
			if strings.Contains(t, sub) {
				st.Frameworks = append(st.Frameworks, rule.name)
				break
			}
		}
	}
	return st
}

func domainSummary(st Stack) string {
	var parts []string
	if st.Language != "" {
		parts = append(parts, st.Language)
	}
	if st.Platform != "" {
		parts = append(parts, st.Platform+" development")
	}
	if len(st.Frameworks) > 0 {
		parts = append(parts, strings.Join(st.Frameworks, "/"))
	}
	return strings.Join(parts, " · ")
}

// DerivePersona synthesizes the descriptive persona text for a role against
// a goal. Byte-identical output for identical input.
func DerivePersona(role domain.Role, goal string) string {
	st := DetectStack(goal)
	dom := domainSummary(st)

	var b strings.Builder
	b.WriteString("You are a senior " + Title(role))
	if dom != "" {
		b.WriteString(" specializing in " + dom)
	}
	b.WriteString(".")
	b.WriteString("\n- Always act with real-world, production-grade judgment. Avoid hallucinations; verify assumptions.")
	b.WriteString("\n- " + CommunicationStyle(role))
	b.WriteString("\n- Responsibilities: " + Responsibilities(role))
	if st.Language != "" {
		b.WriteString("\n- Primary Language: " + st.Language)
	}
	if st.Platform != "" {
		b.WriteString("\n- Target Platform: " + st.Platform)
	}
	if len(st.Frameworks) > 0 {
		b.WriteString("\n- Frameworks/Tools: " + strings.Join(st.Frameworks, ", "))
	}
	return b.String()
}
