package garland

import (
	"math"
	"testing"
)

// unitSquare is a flat unit square in the XY plane, split into two
// triangles of equal area.
func unitSquare() *TriMesh {
	return &TriMesh{
		Vertices: []Vec3{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

func TestSurfaceArea(t *testing.T) {
	if area := unitSquare().SurfaceArea(); math.Abs(area-1) > 1e-12 {
		t.Errorf("area = %v, want 1", area)
	}
}

func TestSamplePointsOnSurface(t *testing.T) {
	mesh := unitSquare()
	points := mesh.SamplePoints(1000, testRNG())
	if len(points) != 1000 {
		t.Fatalf("len(points) = %d, want 1000", len(points))
	}
	for i, p := range points {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 || p.Z != 0 {
			t.Fatalf("point %d = %+v outside the unit square", i, p)
		}
	}
}

func TestSamplePointsQuadrantBalance(t *testing.T) {
	mesh := unitSquare()
	points := mesh.SamplePoints(10000, testRNG())

	var counts [4]int
	for _, p := range points {
		q := 0
		if p.X > 0.5 {
			q |= 1
		}
		if p.Y > 0.5 {
			q |= 2
		}
		counts[q]++
	}
	// Area-proportional sampling: ~2500 per quadrant. A vertex-biased
	// sampler would load the diagonal quadrants instead.
	for q, c := range counts {
		if c < 2200 || c > 2800 {
			t.Errorf("quadrant %d: %d samples, want ~2500", q, c)
		}
	}
}

func TestSamplePointsAreaWeighted(t *testing.T) {
	// One triangle has 9x the area of the other; it should draw ~90% of
	// the samples.
	mesh := &TriMesh{
		Vertices: []Vec3{
			{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 6}, // area 9
			{X: 10, Y: 0}, {X: 11, Y: 0}, {X: 10, Y: 2}, // area 1
		},
		Indices: []uint32{0, 1, 2, 3, 4, 5},
	}
	points := mesh.SamplePoints(5000, testRNG())

	big := 0
	for _, p := range points {
		if p.X < 9 {
			big++
		}
	}
	ratio := float64(big) / float64(len(points))
	if ratio < 0.87 || ratio > 0.93 {
		t.Errorf("large-triangle fraction = %v, want ~0.9", ratio)
	}
}

func TestSamplePointsDegenerateMesh(t *testing.T) {
	if pts := (&TriMesh{}).SamplePoints(10, testRNG()); pts != nil {
		t.Errorf("empty mesh: points = %v, want nil", pts)
	}

	// All triangles zero-area.
	flat := &TriMesh{
		Vertices: []Vec3{{X: 1}, {X: 2}, {X: 3}},
		Indices:  []uint32{0, 1, 2},
	}
	if pts := flat.SamplePoints(10, testRNG()); pts != nil {
		t.Errorf("zero-area mesh: points = %v, want nil", pts)
	}
}

func TestScatterFromDistanceBounds(t *testing.T) {
	points := unitSquare().SamplePoints(500, testRNG())
	chaos := ScatterFrom(points, Range{Min: 4, Max: 10}, testRNG())

	if len(chaos) != len(points) {
		t.Fatalf("len(chaos) = %d, want %d", len(chaos), len(points))
	}
	for i := range points {
		d := chaos[i].Sub(points[i]).Length()
		if d < 4-1e-9 || d > 10+1e-9 {
			t.Fatalf("sample %d: displacement %v outside [4, 10]", i, d)
		}
	}
}
