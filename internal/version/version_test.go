package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	// GitCommit and BuildDate can be empty (optional)
	_ = GitCommit
	_ = BuildDate
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	defer func() { Version, GitCommit = origVersion, origCommit }()

	Version = "1.2.3"
	GitCommit = "abc123def456"
	if Version != "1.2.3" || GitCommit != "abc123def456" {
		t.Fatalf("override failed: %q %q", Version, GitCommit)
	}
}

func TestColoredPlain(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = orig }()

	for _, v := range []string{"0.3.0-dev", "1.2.3", "1.2.3-rc.1+build.5", "dev", "1.2"} {
		if got := Colored(v); got != v {
			t.Errorf("Colored(%q) = %q with color disabled", v, got)
		}
	}
}

func TestColoredKeepsSuffix(t *testing.T) {
	orig := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = orig }()

	got := Colored("1.2.3-dev")
	if got == "1.2.3-dev" || got[len(got)-4:] != "-dev" {
		t.Fatalf("expected colored version ending in -dev, got %q", got)
	}
}

func TestCurrentPrefersLinkedValues(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	defer func() { Version, GitCommit = origVersion, origCommit }()

	Version = " 2.0.0 "
	GitCommit = "0123456789abcdef"
	info := Current()
	if info.Version != "2.0.0" || info.GitCommit != "0123456789abcdef" {
		t.Fatalf("unexpected info %+v", info)
	}
	if info.ShortCommit() != "0123456789ab" {
		t.Fatalf("ShortCommit = %q", info.ShortCommit())
	}

	Version = ""
	if Current().Version != "dev" {
		t.Fatalf("empty version must read as dev")
	}
}
