package tenant

import (
	"strings"
	"testing"
)

func TestIdentifier_NormalizesNames(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Acme Corp", "org_acme_corp"},
		{"trims whitespace", "  Acme Corp  ", "org_acme_corp"},
		{"collapses symbol runs", "Acme -- Corp!!", "org_acme_corp"},
		{"strips edge separators", "***Acme***", "org_acme"},
		{"digits kept", "Acme 2 Go", "org_acme_2_go"},
		{"symbols only", "###", "org_default"},
		{"empty after trim", "   ", "org_default"},
		{"unicode only", "日本語", "org_default"},
		{"already prefixed slug", "org_acme_corp", "org_acme_corp"},
	}

	for _, tc := range cases {
		got := Identifier(tc.in)
		if got != tc.want {
			t.Fatalf("%s: Identifier(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestIdentifier_Idempotent(t *testing.T) {
	inputs := []string{
		"Acme Corp",
		"  weird -- Name  42 ",
		"###",
		"",
		"ALL CAPS INC.",
		"org chart makers",
		strings.Repeat("very long organization name ", 5),
	}

	for _, in := range inputs {
		once := Identifier(in)
		twice := Identifier(once)
		if once != twice {
			t.Fatalf("Identifier not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestIdentifier_AlwaysValid(t *testing.T) {
	inputs := []string{
		"Acme Corp",
		"",
		"!!!",
		"ümläüts önly",
		strings.Repeat("x", 200),
		strings.Repeat("a b ", 40),
	}

	for _, in := range inputs {
		id := Identifier(in)
		if !ValidIdentifier(id) {
			t.Fatalf("Identifier(%q) = %q is not a valid identifier", in, id)
		}
		if !strings.HasPrefix(id, "org_") {
			t.Fatalf("Identifier(%q) = %q missing namespace prefix", in, id)
		}
	}
}

func TestValidIdentifier_RejectsUnsafeInput(t *testing.T) {
	bad := []string{
		"",
		"acme",                  // missing prefix
		"org_Acme",              // uppercase
		"org_acme corp",         // space
		"org_acme;drop table x", // injection attempt
		"org_" + strings.Repeat("a", 80), // too long
	}

	for _, s := range bad {
		if ValidIdentifier(s) {
			t.Fatalf("ValidIdentifier(%q) = true, want false", s)
		}
	}
}
