package services

import (
	"fmt"
	"testing"

	"github.com/wfs/skijoring/internal/models"
)

func TestSearchCompetitors_ShortQuery(t *testing.T) {
	openTestDB(t)
	createUser(t, "Anna Rider", "anna@example.com", models.TypeRider)

	for _, q := range []string{"", "a", "  a  "} {
		out, err := SearchCompetitors(q, models.TypeSkier, 0)
		if err != nil {
			t.Fatalf("search %q: %v", q, err)
		}
		if out == nil || len(out) != 0 {
			t.Errorf("search %q: want empty non-nil slice, got %v", q, out)
		}
	}
}

func TestSearchCompetitors_ExcludesSelf(t *testing.T) {
	openTestDB(t)
	self := createUser(t, "Anna Rider", "anna@example.com", models.TypeRider)
	other := createUser(t, "Anna Racer", "racer@example.com", models.TypeRider)

	out, err := SearchCompetitors("anna", models.TypeRider, self.ID)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out) != 1 || out[0].ID != other.ID {
		t.Fatalf("want only the other Anna, got %v", out)
	}
}

func TestSearchCompetitors_RiderTarget(t *testing.T) {
	openTestDB(t)
	rider := createUser(t, "Kim Lane", "kim@example.com", models.TypeRider)
	dual := createUser(t, "Kim Dual", "dual@example.com", models.TypeRiderAndSkier)
	createUser(t, "Kim Skier", "skier@example.com", models.TypeSkier)
	createUser(t, "Kim Boarder", "board@example.com", models.TypeSnowboarder)

	out, err := SearchCompetitors("kim", models.TypeRider, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := map[uint]bool{rider.ID: true, dual.ID: true}
	if len(out) != 2 {
		t.Fatalf("want the rider and the dual, got %v", out)
	}
	for _, c := range out {
		if !want[c.ID] {
			t.Errorf("unexpected match %v", c)
		}
	}
}

func TestSearchCompetitors_PartnerTarget(t *testing.T) {
	openTestDB(t)
	createUser(t, "Kim Lane", "kim@example.com", models.TypeRider)
	dual := createUser(t, "Kim Dual", "dual@example.com", models.TypeRiderAndSkier)
	skier := createUser(t, "Kim Skier", "skier@example.com", models.TypeSkier)
	boarder := createUser(t, "Kim Boarder", "board@example.com", models.TypeSnowboarder)

	// Anything except a pure rider can fill the partner slot.
	out, err := SearchCompetitors("KIM", models.TypeSkier, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := map[uint]bool{dual.ID: true, skier.ID: true, boarder.ID: true}
	if len(out) != 3 {
		t.Fatalf("want 3 matches, got %v", out)
	}
	for _, c := range out {
		if !want[c.ID] {
			t.Errorf("unexpected match %v", c)
		}
	}
}

func TestSearchCompetitors_LimitAndOrder(t *testing.T) {
	openTestDB(t)
	for i := 0; i < 15; i++ {
		createUser(t, fmt.Sprintf("Skier %02d", i), fmt.Sprintf("s%02d@example.com", i), models.TypeSkier)
	}

	out, err := SearchCompetitors("skier", models.TypeSkier, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out) != 10 {
		t.Fatalf("limit: want 10, got %d", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i-1].FullName > out[i].FullName {
			t.Fatalf("not sorted by name: %q before %q", out[i-1].FullName, out[i].FullName)
		}
	}
}
