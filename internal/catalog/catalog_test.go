package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"plantmanager/internal/model"
)

func plantNames(plants []model.Plant) []string {
	names := make([]string, 0, len(plants))
	for _, p := range plants {
		names = append(names, p.Name)
	}
	return names
}

func TestSeedPagesByEight(t *testing.T) {
	c, err := Seed()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	tests := []struct {
		name      string
		page      int
		wantCount int
	}{
		{name: "first page is full", page: 1, wantCount: 8},
		{name: "second page is partial", page: 2, wantCount: 3},
		{name: "third page is empty", page: 3, wantCount: 0},
		{name: "far page is empty", page: 40, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.ListPlants(Query{Sort: "name", Page: tt.page, Limit: 8})
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if diff := cmp.Diff(tt.wantCount, len(got)); diff != "" {
				t.Errorf("page size mismatch (-want +got):\n%s", diff)
			}
			if got == nil {
				t.Error("expected empty slice, got nil")
			}
		})
	}
}

func TestListPlantsSorting(t *testing.T) {
	c, err := Parse([]byte(`
environments:
  - {key: indoor, title: Indoor}
plants:
  - {id: 1, name: Yucca, environments: [indoor]}
  - {id: 2, name: Babosa, environments: [indoor]}
  - {id: 3, name: Pacová, environments: [indoor]}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{name: "unsorted keeps catalog order", query: Query{}, want: []string{"Yucca", "Babosa", "Pacová"}},
		{name: "name ascending", query: Query{Sort: "name"}, want: []string{"Babosa", "Pacová", "Yucca"}},
		{name: "name descending", query: Query{Sort: "name", Desc: true}, want: []string{"Yucca", "Pacová", "Babosa"}},
		{name: "id descending with limit", query: Query{Sort: "id", Desc: true, Limit: 2}, want: []string{"Pacová", "Babosa"}},
		{name: "second page of one", query: Query{Sort: "name", Page: 2, Limit: 1}, want: []string{"Pacová"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.ListPlants(tt.query)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if diff := cmp.Diff(tt.want, plantNames(got)); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := c.ListPlants(Query{Sort: "about"}); err == nil {
		t.Error("expected error for unsupported sort key")
	}
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "reserved environment key",
			yaml: "environments:\n  - {key: all, title: Everything}\n",
		},
		{
			name: "duplicate plant id",
			yaml: "environments:\n  - {key: a, title: A}\nplants:\n  - {id: 1, name: X}\n  - {id: 1, name: Y}\n",
		},
		{
			name: "unknown environment reference",
			yaml: "environments:\n  - {key: a, title: A}\nplants:\n  - {id: 1, name: X, environments: [b]}\n",
		},
		{
			name: "malformed yaml",
			yaml: "environments: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestListEnvironmentsByTitle(t *testing.T) {
	c, err := Seed()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := c.ListEnvironments(Query{Sort: "title"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []model.Environment{
		{Key: "bathroom", Title: "Bathroom"},
		{Key: "bedroom", Title: "Bedroom"},
		{Key: "kitchen", Title: "Kitchen"},
		{Key: "living_room", Title: "Living room"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("environments mismatch (-want +got):\n%s", diff)
	}
}
