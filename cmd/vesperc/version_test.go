package main

import (
	"strings"
	"testing"
)

func TestVersionString(t *testing.T) {
	got := versionString()

	for _, want := range []string{"vesperc", Version, GitCommit} {
		if !strings.Contains(got, want) {
			t.Errorf("versionString() = %q, missing %q", got, want)
		}
	}
	if strings.Contains(got, "unknown)") && GoVersion == "unknown" {
		t.Errorf("versionString() = %q, should fall back to the runtime Go version", got)
	}
}
