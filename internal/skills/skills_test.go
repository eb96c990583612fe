package skills

import (
	"reflect"
	"sort"
	"testing"
)

func TestExtract_CaseInsensitiveLowercaseOutput(t *testing.T) {
	got := Extract("We need Python and someone who knows python well, plus React.")
	want := []string{"python", "react"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	text := "Docker, Kubernetes, AWS, docker again, C++ and CI/CD experience."
	first := Extract(text)
	second := Extract(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated extraction differs: %v vs %v", first, second)
	}
	if !sort.StringsAreSorted(first) {
		t.Errorf("output not sorted: %v", first)
	}
}

func TestExtract_SpecialCharacterTerms(t *testing.T) {
	got := Extract("Strong C++ and Node.js skills, CI/CD pipelines, .NET optional")
	for _, want := range []string{"c++", "node.js", "ci/cd", ".net"} {
		if !contains(got, want) {
			t.Errorf("Extract() = %v, missing %q", got, want)
		}
	}
}

func TestExtract_WholeWordOnly(t *testing.T) {
	got := Extract("We use Javascripting and Reactive frameworks")
	if contains(got, "react") {
		t.Errorf("matched %q inside a larger word: %v", "react", got)
	}
}

func TestExtract_NoMatches(t *testing.T) {
	got := Extract("We sell artisanal cheese.")
	if got == nil {
		t.Fatal("Extract() returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("Extract() = %v, want empty", got)
	}
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
