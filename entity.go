package garland

import (
	"math"
	"math/rand/v2"
)

// Kind distinguishes the animation rules applied to an entity.
type Kind uint8

const (
	// KindFoliage is bulk tree foliage. Foliage is normally GPU-resident
	// (see PointCloud); registry foliage is only used at small counts.
	KindFoliage Kind = iota
	// KindText is a particle-text sample point, also normally GPU-resident.
	KindText
	// KindOrnament is an instanced decorative mesh (bauble, star).
	KindOrnament
	// KindGift is an instanced gift box around the cone base.
	KindGift
	// KindCard is an interactive card; the only focusable kind.
	KindCard
)

// Entity is one animated element. Formation and Chaos are the two immutable
// destinations computed at construction; Current, Rotation, and Scale are
// the live interpolated state mutated in place each tick.
type Entity struct {
	// ID is the stable registry index, assigned at Spawn and never reused.
	ID   int
	Kind Kind

	Formation Vec3
	Chaos     Vec3
	Current   Vec3

	FormationRot Vec3
	ChaosRot     Vec3
	Rotation     Vec3

	// BaseScale is the immutable styling scale; Scale is the rendered
	// scale derived from it and the transition progress each tick.
	BaseScale float64
	Scale     float64

	// Phase in [0, 1) staggers this entity's float motion and transition
	// timing so thousands of entities do not move in lockstep.
	Phase float64

	// Focused is maintained exclusively by FocusController.
	Focused bool
}

// SpawnConfig describes one batch of entities sharing a layout.
type SpawnConfig struct {
	Count int
	Kind  Kind
	// Cone produces the formation positions for the batch.
	Cone ConeLayout
	// Sphere produces the chaos positions for the batch.
	Sphere SphereLayout
	// BaseScale is the range of per-entity styling scales. Zero means 1.
	BaseScale Range
	// ChaosSpin is the per-axis range of random chaos orientations in
	// radians.
	ChaosSpin Range
}

// Registry is the arena owning every entity record. Entities are appended
// once at scene construction and live until teardown; nothing is ever
// removed, so IDs double as stable slice indices.
type Registry struct {
	entities []Entity
}

// NewRegistry creates a registry with capacity for hint entities.
func NewRegistry(hint int) *Registry {
	return &Registry{entities: make([]Entity, 0, hint)}
}

// Len returns the number of entities.
func (r *Registry) Len() int {
	return len(r.entities)
}

// At returns the entity at index i for in-place mutation.
func (r *Registry) At(i int) *Entity {
	return &r.entities[i]
}

// Spawn appends cfg.Count entities laid out per cfg and returns the index
// of the first. Both destinations and all styling fields are drawn here,
// once; steady-state ticks draw no randomness.
func (r *Registry) Spawn(cfg SpawnConfig, rng *rand.Rand) int {
	first := len(r.entities)
	for i := 0; i < cfg.Count; i++ {
		formation := cfg.Cone.Position(i, cfg.Count, rng)

		// In formation, face outward from the trunk axis.
		facing := math.Atan2(formation.X, formation.Z)

		scale := cfg.BaseScale.Random(rng)
		if scale == 0 {
			scale = 1
		}

		e := Entity{
			ID:           first + i,
			Kind:         cfg.Kind,
			Formation:    formation,
			Chaos:        cfg.Sphere.Position(rng),
			Current:      formation,
			FormationRot: Vec3{Y: facing},
			ChaosRot: Vec3{
				X: cfg.ChaosSpin.Random(rng),
				Y: cfg.ChaosSpin.Random(rng),
				Z: cfg.ChaosSpin.Random(rng),
			},
			Rotation:  Vec3{Y: facing},
			BaseScale: scale,
			Scale:     scale,
			Phase:     rng.Float64(),
		}
		r.entities = append(r.entities, e)
	}
	return first
}

// SpawnAt appends entities with explicit destination pairs (e.g. surface
// samples from a TriMesh) and returns the index of the first. formation and
// chaos must be the same length.
func (r *Registry) SpawnAt(kind Kind, formation, chaos []Vec3, baseScale Range, rng *rand.Rand) int {
	first := len(r.entities)
	for i := range formation {
		scale := baseScale.Random(rng)
		if scale == 0 {
			scale = 1
		}
		r.entities = append(r.entities, Entity{
			ID:        first + i,
			Kind:      kind,
			Formation: formation[i],
			Chaos:     chaos[i],
			Current:   formation[i],
			BaseScale: scale,
			Scale:     scale,
			Phase:     rng.Float64(),
		})
	}
	return first
}
