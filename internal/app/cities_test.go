package app_test

import (
	"testing"

	"hotel_recommender/internal/app"
	"hotel_recommender/internal/domain"
)

func TestResolveCity_Aliases(t *testing.T) {
	cases := []struct {
		a, b string
	}{
		{"bangalore", "bengaluru"},
		{"gurgaon", "delhi"},
		{"thane", "mumbai"},
		{"kochi", "cochin"},
	}
	for _, c := range cases {
		ca, err := app.ResolveCity(c.a)
		if err != nil {
			t.Fatalf("%s: %v", c.a, err)
		}
		cb, err := app.ResolveCity(c.b)
		if err != nil {
			t.Fatalf("%s: %v", c.b, err)
		}
		if ca != cb {
			t.Fatalf("aliases %s/%s resolved to %s/%s", c.a, c.b, ca, cb)
		}
	}
}

func TestResolveCity_CaseAndWhitespace(t *testing.T) {
	for _, name := range []string{"Mumbai", "MUMBAI", "  mumbai  "} {
		code, err := app.ResolveCity(name)
		if err != nil {
			t.Fatalf("%q: %v", name, err)
		}
		if code != "BOM" {
			t.Fatalf("%q: got %s, want BOM", name, code)
		}
	}
}

func TestResolveCity_Unknown(t *testing.T) {
	for _, name := range []string{"Atlantis", "", "   "} {
		_, err := app.ResolveCity(name)
		if err == nil {
			t.Fatalf("%q: expected error", name)
		}
		if domain.KindOf(err) != domain.KindUnsupportedCity {
			t.Fatalf("%q: kind = %s, want %s", name, domain.KindOf(err), domain.KindUnsupportedCity)
		}
	}
}
