package threadmatch

import (
	"strings"
	"testing"

	"github.com/coltonbatts/colorwizard/pkg/colorspace"
	"github.com/coltonbatts/colorwizard/pkg/threadcatalog"
)

func testCatalog(t *testing.T) *threadcatalog.Catalog {
	t.Helper()
	cat, err := threadcatalog.Load(strings.NewReader(
		"1,Black,0,0,0\n2,White,255,255,255\n3,Red,255,0,0\n",
	))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cat
}

func TestNearestReturnsClosest(t *testing.T) {
	cat := testCatalog(t)
	query := colorspace.RGB{R: 250, G: 5, B: 5}.ToLab()
	matches := Nearest(cat, query, 1, DeltaE00)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].ID != "3" {
		t.Fatalf("expected nearest to be Red (3), got %s", matches[0].ID)
	}
	if matches[0].DeltaE < 0 {
		t.Fatalf("expected non-negative delta-e")
	}
}

func TestNearestSortsAscending(t *testing.T) {
	cat := testCatalog(t)
	query := colorspace.RGB{R: 10, G: 10, B: 10}.ToLab()
	matches := Nearest(cat, query, 3, DeltaE76)
	for i := 1; i < len(matches); i++ {
		if matches[i].DeltaE < matches[i-1].DeltaE {
			t.Fatalf("matches not sorted ascending: %v", matches)
		}
	}
}

func TestNearestEmptyCatalog(t *testing.T) {
	cat, err := threadcatalog.Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	matches := Nearest(cat, colorspace.Lab{}, 1, DeltaE00)
	if len(matches) != 0 {
		t.Fatalf("expected empty result for empty catalog, got %d", len(matches))
	}
}
