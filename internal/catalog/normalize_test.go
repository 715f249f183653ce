package catalog

import "testing"

func TestCanonicalize_KnownVariants(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Netflix", "Netflix"},
		{"Netflix basic with Ads", "Netflix"},
		{"Amazon Prime Video", "Amazon Prime Video"},
		{"Amazon Video", "Amazon Video"},
		{"Disney Plus", "Disney+"},
		{"Canal+ Séries", "Canal+"},
		{"Canal Plus", "Canal+"},
		{"Paramount Plus", "Paramount+"},
		{"Paramount+ Amazon Channel", "Paramount+"},
		{"Max Amazon Channel", "HBO Max"},
		{"HBO Max", "HBO Max"},
		{"Apple TV Plus", "Apple TV+"},
		{"OCS Amazon Channel", "OCS"},
		{"YouTube Premium", "YouTube"},
		{"Google Play Movies", "Google Play"},
		{"Molotov TV", "Molotov TV"},
		{"france.tv", "France TV"},
	}
	for _, tc := range cases {
		if got := Canonicalize(tc.raw); got != tc.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestCanonicalize_UnknownPassesThrough(t *testing.T) {
	for _, raw := range []string{"FilmoTV", "Shadowz", "DefunctServiceXYZ"} {
		if got := Canonicalize(raw); got != raw {
			t.Errorf("Canonicalize(%q) = %q, want identity", raw, got)
		}
	}
}

// Brand tokens must win over the retailer token when both appear in a
// channel-bundle name.
func TestCanonicalize_BrandBeatsRetailer(t *testing.T) {
	if got := Canonicalize("Paramount Plus Amazon Channel"); got != "Paramount+" {
		t.Fatalf("expected Paramount+, got %q", got)
	}
	if got := Canonicalize("Amazon Prime Video"); got != "Amazon Prime Video" {
		t.Fatalf("expected Amazon Prime Video, got %q", got)
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Netflix", "Netflix Kids", "Amazon Prime Video", "Amazon Video",
		"Disney Plus", "Canal+ Ciné Séries", "Paramount+ Amazon Channel",
		"HBO Max", "Apple TV+", "OCS", "Crunchyroll", "Molotov TV",
		"france.tv", "Arte", "YouTube", "Google Play Movies", "Rakuten TV",
		"Some Unknown Platform",
	}
	for _, in := range inputs {
		once := Canonicalize(in)
		twice := Canonicalize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q != %q", in, once, twice)
		}
	}
	// Every canonical label in the rule table must be a fixed point.
	for _, r := range nameRules {
		if got := Canonicalize(r.canonical); got != r.canonical {
			t.Errorf("canonical %q is not a fixed point, got %q", r.canonical, got)
		}
	}
}

func TestFold(t *testing.T) {
	cases := map[string]string{
		"Canal+ Séries": "canal+ series",
		"Comédie":       "comedie",
		"  NETFLIX ":    "netflix",
		"Mystère":       "mystere",
	}
	for in, want := range cases {
		if got := Fold(in); got != want {
			t.Errorf("Fold(%q) = %q, want %q", in, got, want)
		}
	}
}
