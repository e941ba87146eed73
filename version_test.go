package mewtext

import (
	"regexp"
	"testing"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

func TestVersion_IsSemver(t *testing.T) {
	v := Version()
	if v == "" {
		t.Fatal("embedded version is empty")
	}
	if !semverRE.MatchString(v) {
		t.Fatalf("embedded version must be semver: got %q", v)
	}
}
