package models

import (
	"encoding/json"
	"testing"

	"coachdesk-backend/apperr"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want Amount
	}{
		{"6000", 6000},
		{"¥6,000", 6000},
		{"214,000円", 214000},
		{" 1 000 ", 1000},
	}
	for _, c := range cases {
		got, err := ParseAmount(c.in)
		if err != nil {
			t.Fatalf("ParseAmount(%q): unexpected error %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseAmount(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseAmount_NoDigits(t *testing.T) {
	_, err := ParseAmount("free")
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var a Amount
	if err := json.Unmarshal([]byte(`6000`), &a); err != nil {
		t.Fatalf("number: %v", err)
	}
	if a != 6000 {
		t.Fatalf("number: got %d", a)
	}

	if err := json.Unmarshal([]byte(`"¥214,000"`), &a); err != nil {
		t.Fatalf("string: %v", err)
	}
	if a != 214000 {
		t.Fatalf("string: got %d", a)
	}

	if err := json.Unmarshal([]byte(`-5`), &a); err == nil {
		t.Fatal("expected error for negative amount")
	}
}

func TestAmount_Formatted(t *testing.T) {
	cases := map[Amount]string{
		0:       "0",
		999:     "999",
		6000:    "6,000",
		214000:  "214,000",
		1234567: "1,234,567",
	}
	for in, want := range cases {
		if got := in.Formatted(); got != want {
			t.Fatalf("Formatted(%d) = %q, want %q", in, got, want)
		}
	}
}
