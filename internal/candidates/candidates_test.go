package candidates

import (
	"errors"
	"strings"
	"testing"
)

func TestCatalogIsOrderedAndComplete(t *testing.T) {
	catalog := Catalog()

	if catalog.Len() != 8 {
		t.Fatalf("expected 8 profiles, got %d", catalog.Len())
	}

	ids := catalog.IDs()
	if ids[0] != "profile_1" || ids[7] != "profile_8" {
		t.Fatalf("unexpected catalog order: %v", ids)
	}

	for _, profile := range catalog.Items {
		if profile.Name == "" || profile.Address == "" || profile.Description == "" {
			t.Fatalf("incomplete profile %s", profile.ID)
		}
	}
}

func TestFilterPreservesCatalogOrder(t *testing.T) {
	catalog := Catalog()

	subset, err := catalog.Filter([]string{"profile_5", "profile_2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := subset.IDs()
	if len(ids) != 2 || ids[0] != "profile_2" || ids[1] != "profile_5" {
		t.Fatalf("unexpected subset order: %v", ids)
	}
}

func TestFilterEmptyReturnsAll(t *testing.T) {
	catalog := Catalog()

	subset, err := catalog.Filter(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if subset.Len() != catalog.Len() {
		t.Fatalf("expected full catalog, got %d profiles", subset.Len())
	}
}

func TestFilterUnknownIDs(t *testing.T) {
	_, err := Catalog().Filter([]string{"profile_99"})
	if err == nil {
		t.Fatal("expected error for unknown ids")
	}

	if !errors.Is(err, ErrNoProfilesMatched) {
		t.Fatalf("expected ErrNoProfilesMatched, got %v", err)
	}
}

func TestFirstLimitsCatalog(t *testing.T) {
	catalog := Catalog()

	if got := catalog.First(2).Len(); got != 2 {
		t.Fatalf("expected 2 profiles, got %d", got)
	}

	if got := catalog.First(0).Len(); got != catalog.Len() {
		t.Fatalf("expected full catalog for n=0, got %d", got)
	}

	if got := catalog.First(100).Len(); got != catalog.Len() {
		t.Fatalf("expected full catalog for large n, got %d", got)
	}
}

func TestRenderCVSubstitutesContactBlock(t *testing.T) {
	catalog := Catalog()
	first := catalog.Items[0]
	second := catalog.Items[1]

	cvA := RenderCV(first)
	cvB := RenderCV(second)

	if !strings.Contains(cvA, first.Name) || !strings.Contains(cvA, first.Address) {
		t.Fatal("expected rendered CV to contain profile contact block")
	}

	if strings.Contains(cvA, "{{") {
		t.Fatal("unreplaced placeholder left in rendered CV")
	}

	// Identical bodies, different contact blocks only.
	if cvA == cvB {
		t.Fatal("expected different renderings for different profiles")
	}

	if !strings.Contains(cvA, "PROFESSIONAL EXPERIENCE") || !strings.Contains(cvB, "PROFESSIONAL EXPERIENCE") {
		t.Fatal("expected shared template body in both renderings")
	}
}

func TestDefaultJobDescription(t *testing.T) {
	job := DefaultJobDescription()

	if job == "" {
		t.Fatal("default job description is empty")
	}
	if !strings.Contains(job, "Safran.AI") {
		t.Fatal("default job description lost its employer")
	}
	if strings.HasSuffix(job, "\n") {
		t.Fatal("default job description must be trimmed")
	}
}
