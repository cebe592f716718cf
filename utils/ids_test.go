package utils

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestGenerateUniqueID_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^CL\d{13}$`)
	id := GenerateUniqueID("CL")
	if !pattern.MatchString(id) {
		t.Fatalf("expected prefix plus 13 digits, got %q", id)
	}
}

func TestGenerateUniqueID_PrefixPreserved(t *testing.T) {
	for _, prefix := range []string{"CL", "SS", "PY", "EM"} {
		id := GenerateUniqueID(prefix)
		if !strings.HasPrefix(id, prefix) {
			t.Fatalf("expected prefix %q, got %q", prefix, id)
		}
	}
}

func TestGenerateUniqueID_UniqueUnderRapidCalls(t *testing.T) {
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		id := GenerateUniqueID("CL")
		if seen[id] {
			t.Fatalf("duplicate id %q at call %d", id, i)
		}
		seen[id] = true
	}
}

func TestGenerateUniqueID_TimestampAdvances(t *testing.T) {
	a := GenerateUniqueID("SS")
	time.Sleep(2 * time.Millisecond)
	b := GenerateUniqueID("SS")
	// The millisecond part alone must differ across calls in different ms.
	if a[2:11] == b[2:11] {
		t.Fatalf("timestamp fragment did not advance: %q vs %q", a, b)
	}
}
