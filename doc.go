// Package garland is a dual-state particle animation core for 3D
// ornamental scenes driven by hand gestures.
//
// Garland owns the procedural layouts, the entity registry, and the
// per-tick controllers that interpolate thousands of elements between a
// packed conical "tree" formation and a dispersed "chaos" cloud from a
// single smoothed progress value. Gesture inference and rendering are
// external collaborators: the host feeds a [DriverSnapshot] per frame and
// reads back transforms, attribute buffers, and two uniforms.
//
// # Quick start
//
// Build a [Scene] from a [SceneConfig] and advance it once per frame:
//
//	scene := garland.NewScene(garland.SceneConfig{
//		Foliage: garland.CloudSpawn{
//			Count:  9000,
//			Cone:   garland.ConeLayout{Height: 7, Width: 3.5},
//			Sphere: garland.SphereLayout{Scale: 28, MinRatio: 0.35},
//		},
//		Cards: garland.SpawnConfig{Count: 48, /* ... */},
//	})
//
//	// each frame:
//	scene.Update(snapshot, dt)
//
// For a ready-made Ebitengine host, [Renderer] projects and batches the
// whole scene; demos/treedemo shows the full wiring with a mouse-driven
// gesture stand-in.
//
// # Two-tier animation
//
// Coarse entities (ornaments, gifts, interactive cards; tens to low
// hundreds) live in the [Registry] and run the full [TransitionEngine]
// each tick on the CPU. Bulk tiers (foliage, particle text; tens of
// thousands) are [PointCloud] values: three static attribute buffers built
// once at construction, varied per tick by only two scalars
// ([CloudUniforms]). Keeping the bulk tier off the per-entity path is the
// load-bearing performance decision; do not route clouds through the
// registry.
//
// # Key pieces
//
// [ConeLayout] and [SphereLayout] generate the two destination sets;
// [TriMesh.SamplePoints] turns arbitrary surfaces (rendered text) into
// formation targets. [ProgressController] smooths the open/closed gesture
// into the progress scalar. [FocusController] flies at most one card to
// the viewer. [GestureCameraMapper] orbits the camera from the hand
// position. [ScriptRunner] replays scripted gesture sequences for tests
// and recordings.
//
// The package is single-threaded by design: everything runs on the
// hosting render loop's tick, and steady-state updates neither allocate
// nor draw randomness.
package garland
