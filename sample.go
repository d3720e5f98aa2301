package garland

import (
	"math/rand/v2"
	"sort"
)

// TriMesh is a triangulated surface: a shared vertex array plus a triangle
// index list (len(Indices) is a multiple of 3). Typically produced by an
// external text-extrusion or model-loading collaborator.
type TriMesh struct {
	Vertices []Vec3
	Indices  []uint32
}

// TriangleCount returns the number of triangles in the mesh.
func (m *TriMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// triangle returns the three corners of triangle t.
func (m *TriMesh) triangle(t int) (a, b, c Vec3) {
	return m.Vertices[m.Indices[t*3]],
		m.Vertices[m.Indices[t*3+1]],
		m.Vertices[m.Indices[t*3+2]]
}

// triangleArea returns the area of the triangle (a, b, c).
func triangleArea(a, b, c Vec3) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Length() / 2
}

// SurfaceArea returns the total surface area of the mesh.
func (m *TriMesh) SurfaceArea() float64 {
	var total float64
	for t := 0; t < m.TriangleCount(); t++ {
		total += triangleArea(m.triangle(t))
	}
	return total
}

// SamplePoints returns count points approximately uniformly distributed
// over the mesh surface: each triangle is chosen with probability
// proportional to its area (prefix-sum CDF + binary search), then a point
// inside it is drawn via folded barycentric coordinates. Sampling per
// vertex instead would bias the cloud toward densely-triangulated regions.
//
// Returns nil for an empty or degenerate (zero-area) mesh.
func (m *TriMesh) SamplePoints(count int, rng *rand.Rand) []Vec3 {
	nTri := m.TriangleCount()
	if nTri == 0 || count <= 0 {
		return nil
	}

	cdf := make([]float64, nTri)
	var total float64
	for t := 0; t < nTri; t++ {
		total += triangleArea(m.triangle(t))
		cdf[t] = total
	}
	if total == 0 {
		return nil
	}

	points := make([]Vec3, count)
	for i := range points {
		target := rng.Float64() * total
		t := sort.SearchFloat64s(cdf, target)
		if t >= nTri {
			t = nTri - 1
		}
		a, b, c := m.triangle(t)

		// Fold (u, v) back into the triangle when the draw lands in the
		// mirrored half of the parallelogram.
		u := rng.Float64()
		v := rng.Float64()
		if u+v > 1 {
			u = 1 - u
			v = 1 - v
		}
		points[i] = a.Add(b.Sub(a).Scale(u)).Add(c.Sub(a).Scale(v))
	}
	return points
}

// ScatterFrom returns one chaos destination per input point: the point
// displaced outward along an independent random unit direction by a
// distance drawn from dist. The cloud explodes away from its own surface
// rather than converging on a shared chaos volume.
func ScatterFrom(points []Vec3, dist Range, rng *rand.Rand) []Vec3 {
	out := make([]Vec3, len(points))
	for i, p := range points {
		out[i] = p.Add(randomUnit(rng).Scale(dist.Random(rng)))
	}
	return out
}
