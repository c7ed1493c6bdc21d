package version

import (
	"regexp"
	"runtime"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersion_Semver(t *testing.T) {
	if !semverRegex.MatchString(Version) {
		t.Errorf("Version %q does not match semver format (x.y.z)", Version)
	}
}

func TestGet(t *testing.T) {
	info := Get()

	if info.Version != Version {
		t.Errorf("Get().Version = %q, want %q", info.Version, Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("Get().GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Get().Platform = %q", info.Platform)
	}

	out := info.String()
	for _, want := range []string{"throwables v" + Version, "Git Commit: " + GitCommit, "OS/Arch:"} {
		if !strings.Contains(out, want) {
			t.Errorf("String() = %q, missing %q", out, want)
		}
	}
}

func TestSupportsSchema(t *testing.T) {
	tests := []struct {
		name     string
		schema   int
		expected bool
	}{
		{"current", DeclarationSchema, true},
		{"first", 1, true},
		{"zero", 0, false},
		{"negative", -1, false},
		{"future", DeclarationSchema + 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SupportsSchema(tt.schema); got != tt.expected {
				t.Errorf("SupportsSchema(%d) = %v, want %v", tt.schema, got, tt.expected)
			}
		})
	}
}
