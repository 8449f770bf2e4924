package planner

import (
	"testing"
)

func TestGenerateCount(t *testing.T) {
	p := New()

	cases := []struct {
		name string
		n    int
		want int
	}{
		{"explicit", 20, 20},
		{"small", 5, 5},
		{"more than catalog", 50, 50},
		{"zero falls back to default", 0, DefaultCandidates},
		{"negative falls back to default", -3, DefaultCandidates},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Generate("http://example.com", nil, tc.n)
			if len(got) != tc.want {
				t.Errorf("expected %d candidates, got %d", tc.want, len(got))
			}
		})
	}
}

func TestGenerateFieldsPopulated(t *testing.T) {
	p := New()
	candidates := p.Generate("http://example.com", nil, 30)

	seen := make(map[string]bool)
	for _, c := range candidates {
		if c.ID == "" {
			t.Fatal("candidate without ID")
		}
		if seen[c.ID] {
			t.Fatalf("duplicate candidate ID %s", c.ID)
		}
		seen[c.ID] = true

		if c.Description == "" || len(c.Steps) == 0 || c.ExpectedResult == "" {
			t.Errorf("candidate %s is missing fields: %+v", c.ID, c)
		}
		if c.TargetURL != "http://example.com" {
			t.Errorf("candidate %s has target %s", c.ID, c.TargetURL)
		}
	}

	if candidates[0].ID != "cand_1" {
		t.Errorf("expected first ID cand_1, got %s", candidates[0].ID)
	}
}

func TestGenerateSeedsComeFirst(t *testing.T) {
	p := New()
	candidates := p.Generate("http://example.com", []string{"drag tiles offscreen"}, 10)

	if len(candidates) != 10 {
		t.Fatalf("expected 10 candidates, got %d", len(candidates))
	}
	if candidates[0].Category != "seeded" {
		t.Errorf("expected first candidate to be seeded, got %s", candidates[0].Category)
	}
	if candidates[1].Category == "seeded" {
		t.Error("only one seed was given, second candidate must come from the catalog")
	}
}

func TestGenerateVariantsWhenCatalogWraps(t *testing.T) {
	p := New()
	candidates := p.Generate("http://example.com", nil, len(catalog)*2)

	first := candidates[0]
	wrapped := candidates[len(catalog)]
	if wrapped.Category != first.Category {
		t.Fatalf("expected wrap-around to revisit the catalog, got %s vs %s", wrapped.Category, first.Category)
	}
	if wrapped.Description == first.Description {
		t.Error("wrapped candidate should carry a variant marker in its description")
	}
}
