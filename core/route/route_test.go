package route

import (
	"math"
	"testing"

	"github.com/kestrelsolar/simulator/core/model"
)

// testPath is a straight eastbound path on the equator; each segment is
// roughly 100m long.
func testPath(n int) ([]model.Coord, []float64, []int64) {
	coords := make([]model.Coord, n)
	elevations := make([]float64, n)
	timeZones := make([]int64, n)
	for i := range coords {
		coords[i] = model.Coord{Lat: 0, Lon: 0.0009 * float64(i)}
		elevations[i] = float64(10 * i)
	}
	return coords, elevations, timeZones
}

func TestNewValidates(t *testing.T) {
	coords, elevations, timeZones := testPath(3)
	if _, err := New(coords, elevations[:2], timeZones); err == nil {
		t.Errorf("expected error for mismatched elevations")
	}
	if _, err := New(coords, elevations, timeZones[:2]); err == nil {
		t.Errorf("expected error for mismatched time zones")
	}
	if _, err := New(coords[:1], elevations[:1], timeZones[:1]); err == nil {
		t.Errorf("expected error for a single coordinate")
	}
}

func TestNewDedupesConsecutiveDuplicates(t *testing.T) {
	coords := []model.Coord{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 0.0009},
		{Lat: 0, Lon: 0.0018},
		{Lat: 0, Lon: 0.0018},
	}
	elevations := []float64{5, 5, 10, 15, 15}
	timeZones := []int64{0, 0, 0, 0, 0}

	r, err := New(coords, elevations, timeZones)
	if err != nil {
		t.Fatalf("new route: %v", err)
	}
	if r.NumCoords() != 3 {
		t.Fatalf("expected 3 distinct coordinates, got %d", r.NumCoords())
	}
	if r.ElevationAt(0) != 5 || r.ElevationAt(1) != 10 || r.ElevationAt(2) != 15 {
		t.Errorf("elevations misaligned after dedupe")
	}
	for i := 0; i < 2; i++ {
		if g := r.GradientAt(i); math.IsInf(g, 0) || math.IsNaN(g) {
			t.Errorf("gradient %d not finite: %v", i, g)
		}
	}
}

func TestAllDuplicatesRejected(t *testing.T) {
	coords := []model.Coord{{Lat: 1, Lon: 2}, {Lat: 1, Lon: 2}, {Lat: 1, Lon: 2}}
	if _, err := New(coords, []float64{0, 0, 0}, []int64{0, 0, 0}); err == nil {
		t.Errorf("expected error when all coordinates collapse to one")
	}
}

func TestGradients(t *testing.T) {
	coords, elevations, timeZones := testPath(3)
	r, err := New(coords, elevations, timeZones)
	if err != nil {
		t.Fatalf("new route: %v", err)
	}
	// 10m rise over a 100m segment.
	for i := 0; i < 2; i++ {
		if g := r.GradientAt(i); math.Abs(g-0.0999) > 0.001 {
			t.Errorf("gradient %d: expected about 0.1, got %.5f", i, g)
		}
	}
}

func TestBearingsFinalRepeats(t *testing.T) {
	coords, elevations, timeZones := testPath(4)
	r, err := New(coords, elevations, timeZones)
	if err != nil {
		t.Fatalf("new route: %v", err)
	}
	for i := 0; i < r.NumCoords(); i++ {
		if b := r.BearingAt(i); math.Abs(b-90) > 0.01 {
			t.Errorf("bearing %d: expected 90 (due east), got %.4f", i, b)
		}
	}
	if r.BearingAt(3) != r.BearingAt(2) {
		t.Errorf("final bearing should repeat the previous one")
	}
}

func TestClosestIndicesBounded(t *testing.T) {
	coords, elevations, timeZones := testPath(4)
	r, err := New(coords, elevations, timeZones)
	if err != nil {
		t.Fatalf("new route: %v", err)
	}
	// Queries ranging far past the end of the route: the index must stay
	// within the valid segment range.
	queries := []float64{0, 50, 150, 250, 1000, 1e7}
	indices := r.ClosestIndices(queries)
	maxIdx := r.NumCoords() - 2
	prev := 0
	for i, idx := range indices {
		if idx < 0 || idx > maxIdx {
			t.Errorf("query %.0f: index %d out of range [0,%d]", queries[i], idx, maxIdx)
		}
		if idx < prev {
			t.Errorf("index regressed from %d to %d", prev, idx)
		}
		prev = idx
	}
	if indices[0] != 0 {
		t.Errorf("start of route should map to segment 0, got %d", indices[0])
	}
	if last := indices[len(indices)-1]; last != maxIdx {
		t.Errorf("far past the end should map to segment %d, got %d", maxIdx, last)
	}
}

func TestTotalLength(t *testing.T) {
	coords, elevations, timeZones := testPath(4)
	r, err := New(coords, elevations, timeZones)
	if err != nil {
		t.Fatalf("new route: %v", err)
	}
	if l := r.TotalLengthM(); math.Abs(l-300.2) > 1 {
		t.Errorf("expected about 300m total, got %.2fm", l)
	}
}

func TestTile(t *testing.T) {
	coords := []model.Coord{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0.001}}
	elevations := []float64{1, 2}
	tiledC, tiledE := Tile(coords, elevations, 3)
	if len(tiledC) != 6 || len(tiledE) != 6 {
		t.Fatalf("expected 6 entries, got %d coords and %d elevations", len(tiledC), len(tiledE))
	}
	if !tiledC[2].Equal(coords[0]) || tiledE[2] != 1 {
		t.Errorf("second lap should restart at the first coordinate")
	}

	sameC, sameE := Tile(coords, elevations, 1)
	if len(sameC) != 2 || len(sameE) != 2 {
		t.Errorf("single lap should return the path unchanged")
	}
}
