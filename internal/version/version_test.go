package version

import (
	"strings"
	"testing"
)

func TestFullContainsAllParts(t *testing.T) {
	full := Full()
	for _, part := range []string{Version, Commit, Date} {
		if !strings.Contains(full, part) {
			t.Errorf("Full() = %q, missing %q", full, part)
		}
	}
}
