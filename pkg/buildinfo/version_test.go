package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	s := String()
	for _, want := range []string{"version: " + Version, "commit: " + Commit, runtime.Version()} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestTemplateShortensCommit(t *testing.T) {
	old := Commit
	defer func() { Commit = old }()

	Commit = "0123456789abcdef0123"
	if got := Template(); !strings.Contains(got, "(0123456789ab)") {
		t.Errorf("Template() = %q, want a 12 character commit", got)
	}
	Commit = "none"
	if got := Template(); !strings.Contains(got, "(none)") {
		t.Errorf("Template() = %q", got)
	}
}
