package semver

import "testing"

func TestSatisfies(t *testing.T) {
	c := MustParseConstraint("^1.2.0")

	if !Satisfies(MustParseVersion("1.2.0"), c) {
		t.Fatalf("expected 1.2.0 to satisfy ^1.2.0")
	}
	if !Satisfies(MustParseVersion("1.9.9"), c) {
		t.Fatalf("expected 1.9.9 to satisfy ^1.2.0")
	}
	if Satisfies(MustParseVersion("2.0.0"), c) {
		t.Fatalf("expected 2.0.0 to NOT satisfy ^1.2.0")
	}
}

func TestSatisfiesRangeGrammar(t *testing.T) {
	installed := MustParseVersion("1.2.3")

	cases := []struct {
		constraint string
		want       bool
	}{
		{"1.2.3", true},
		{"0.1.1", false},
		{">1.0.0", true},
		{">1.3.2 <=2.3.4", false},
		{">=1.2.0, <1.3.0", true},
		{"~1.2.0", true},
		{"~1.3.0", false},
		{"0.2.x", false},
		{"1.x", true},
		{"1.0.0 - 1.2.3", true},
		{"<1.0.0 || >=1.2.0", true},
	}

	for _, tc := range cases {
		got := Satisfies(installed, MustParseConstraint(tc.constraint))
		if got != tc.want {
			t.Errorf("Satisfies(1.2.3, %q) = %v, want %v", tc.constraint, got, tc.want)
		}
	}
}

func TestParseExactVersion(t *testing.T) {
	v, err := ParseExactVersion("v0.1.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.String() != "0.1.0" {
		t.Fatalf("expected 0.1.0, got %s", v.String())
	}

	for _, raw := range []string{"master", "1.2", "release-1.0.0", ""} {
		if _, err := ParseExactVersion(raw); err == nil {
			t.Errorf("expected %q to be rejected", raw)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal(MustParseVersion("v1.2.3"), MustParseVersion("1.2.3")) {
		t.Fatalf("expected v1.2.3 == 1.2.3")
	}
	if Equal(MustParseVersion("0.1.0"), MustParseVersion("1.2.3")) {
		t.Fatalf("expected 0.1.0 != 1.2.3")
	}
	if Equal(Version{}, MustParseVersion("1.2.3")) {
		t.Fatalf("expected zero Version to never be equal")
	}
}

func TestParseConstraintRejectsGarbage(t *testing.T) {
	if _, err := ParseConstraint("latest"); err == nil {
		t.Fatalf("expected dist-tag to be rejected as a range")
	}
}
