// Package skills tags free text against a controlled vocabulary of technical
// terms.
package skills

import (
	"regexp"
	"sort"
	"strings"
)

// vocabulary is the controlled term list. Matching is case-insensitive and
// whole-word; entries with regex metacharacters (C++, Node.js, CI/CD) are
// escaped when the patterns are built.
var vocabulary = []string{
	// Languages
	"JavaScript", "TypeScript", "Python", "Java", "C++", "C#", "Ruby", "PHP",
	"Go", "Rust", "Swift", "Kotlin",
	// Frameworks
	"React", "Angular", "Vue", "Node.js", "Express", "Django", "Flask",
	"Spring", "Laravel", ".NET", "FastAPI", "Spring Boot", "Springboot",
	// Databases
	"MySQL", "PostgreSQL", "MongoDB", "Redis", "Oracle", "SQL Server",
	"DynamoDB", "Cassandra",
	// Cloud / devops
	"AWS", "Azure", "GCP", "Google Cloud", "Docker", "Kubernetes", "Jenkins",
	"Terraform", "Ansible",
	// Tools
	"Git", "GitHub", "GitLab", "Bitbucket", "JIRA", "Yocto", "GCC", "GDB",
	"Grafana",
	// Web
	"HTML", "CSS", "GraphQL", "REST", "API", "OAuth",
	// Methodologies
	"Agile", "Scrum", "Kanban", "DevOps", "CI/CD", "Microservices",
	// Data / AI
	"Machine Learning", "ML", "AI", "Deep Learning", "TensorFlow", "PyTorch",
	// OS
	"Linux", "Unix", "Windows", "macOS", "Android", "iOS",
}

type pattern struct {
	term string // lowercase form emitted on match
	re   *regexp.Regexp
}

var patterns = buildPatterns()

func buildPatterns() []pattern {
	out := make([]pattern, 0, len(vocabulary))
	for _, term := range vocabulary {
		// \b fails after +, # and similar, so the boundary is any
		// non-alphanumeric rune (or start/end of input).
		expr := `(?i)(?:^|[^a-zA-Z0-9])` + regexp.QuoteMeta(term) + `(?:$|[^a-zA-Z0-9])`
		out = append(out, pattern{
			term: strings.ToLower(term),
			re:   regexp.MustCompile(expr),
		})
	}
	return out
}

// Extract returns every vocabulary term present in text, lowercased,
// deduplicated and sorted lexicographically. The result is never nil.
func Extract(text string) []string {
	found := make(map[string]struct{})
	for _, p := range patterns {
		if p.re.MatchString(text) {
			found[p.term] = struct{}{}
		}
	}

	out := make([]string, 0, len(found))
	for term := range found {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}
