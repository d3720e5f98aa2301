package garland

import (
	"math/rand/v2"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// CloudSpawn describes one GPU-resident particle tier.
type CloudSpawn struct {
	Count  int
	Cone   ConeLayout
	Sphere SphereLayout
	Cloud  CloudConfig
}

// AutopilotConfig tunes the idle attract mode. When no hand has been
// tracked for IdleAfter seconds, progress is tweened through full
// scatter/gather cycles so the scene keeps moving on its own.
type AutopilotConfig struct {
	// Enabled turns autopilot on.
	Enabled bool
	// IdleAfter is the tracking-loss delay in seconds before autopilot
	// engages. Zero means 6.
	IdleAfter float64
	// CycleDuration is the tween time of one scatter or gather leg in
	// seconds. Zero means 5.
	CycleDuration float32
	// Hold is the pause at each end of a leg in seconds. Zero means 3.
	Hold float64
}

func (c *AutopilotConfig) applyDefaults() {
	if c.IdleAfter == 0 {
		c.IdleAfter = 6
	}
	if c.CycleDuration == 0 {
		c.CycleDuration = 5
	}
	if c.Hold == 0 {
		c.Hold = 3
	}
}

// autopilot drives progress through eased cycles while the scene is idle.
type autopilot struct {
	cfg     AutopilotConfig
	idle    float64
	tween   *gween.Tween
	holding float64
	up      bool
}

// SceneConfig assembles a full scene. Per-category entity counts, layout
// geometry, and controller tuning all live here; a zero config is valid
// but empty.
type SceneConfig struct {
	// Foliage and Text are the bulk GPU tiers. Text installs later via
	// Scene.InstallTextCloud since its geometry loads asynchronously.
	Foliage CloudSpawn

	// Ornaments, Gifts, and Cards are the coarse per-entity tiers.
	Ornaments SpawnConfig
	Gifts     SpawnConfig
	Cards     SpawnConfig

	Progress   ProgressConfig
	Transition TransitionConfig
	Focus      FocusConfig
	Camera     GestureMapperConfig
	Autopilot  AutopilotConfig

	// Seed fixes the construction-time randomness. Zero seeds from the
	// clock.
	Seed uint64
}

// Scene owns the registry, controllers, and particle tiers, and advances
// them in order each tick: progress first, then every consumer of its
// value within the same frame. All randomness is drawn at construction;
// Update allocates nothing and draws none.
type Scene struct {
	reg      *Registry
	progress *ProgressController
	engine   *TransitionEngine
	focus    *FocusController
	mapper   *GestureCameraMapper
	pose     CameraPose

	foliage *PointCloud
	text    *PointCloud

	auto *autopilot
	rng  *rand.Rand

	debug bool
	stats frameStats
}

// NewScene constructs all entity tiers and controllers from cfg. Layout
// generation runs exactly once, here.
func NewScene(cfg SceneConfig) *Scene {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	reg := NewRegistry(cfg.Ornaments.Count + cfg.Gifts.Count + cfg.Cards.Count)
	if cfg.Ornaments.Count > 0 {
		cfg.Ornaments.Kind = KindOrnament
		reg.Spawn(cfg.Ornaments, rng)
	}
	if cfg.Gifts.Count > 0 {
		cfg.Gifts.Kind = KindGift
		reg.Spawn(cfg.Gifts, rng)
	}
	if cfg.Cards.Count > 0 {
		cfg.Cards.Kind = KindCard
		reg.Spawn(cfg.Cards, rng)
	}

	s := &Scene{
		reg:      reg,
		progress: NewProgressController(cfg.Progress),
		engine:   NewTransitionEngine(cfg.Transition),
		focus:    NewFocusController(cfg.Focus),
		mapper:   NewGestureCameraMapper(cfg.Camera),
		rng:      rng,
	}

	if cfg.Foliage.Count > 0 {
		formation := make([]Vec3, cfg.Foliage.Count)
		chaos := make([]Vec3, cfg.Foliage.Count)
		for i := range formation {
			formation[i] = cfg.Foliage.Cone.Position(i, cfg.Foliage.Count, rng)
			chaos[i] = cfg.Foliage.Sphere.Position(rng)
		}
		s.foliage = NewPointCloud(cfg.Foliage.Cloud, formation, chaos, rng)
	}

	if cfg.Autopilot.Enabled {
		ap := cfg.Autopilot
		ap.applyDefaults()
		s.auto = &autopilot{cfg: ap}
	}

	// Start the camera at the gesture rest pose so the first tracked
	// frame damps rather than jumps.
	s.pose = CameraPose{
		Position: s.mapper.TargetFor(DriverSnapshot{HandX: 0.5, HandY: 0.5, HandZ: 0.2}),
		Target:   cfg.Camera.LookAt,
	}

	return s
}

// Registry returns the coarse entity arena.
func (s *Scene) Registry() *Registry { return s.reg }

// Pose returns the current camera pose.
func (s *Scene) Pose() CameraPose { return s.pose }

// Progress returns the current smoothed progress value.
func (s *Scene) Progress() float64 { return s.progress.Value() }

// Elapsed returns the accumulated animation time in seconds.
func (s *Scene) Elapsed() float64 { return s.engine.Elapsed() }

// Foliage returns the foliage point cloud, or nil when unconfigured.
func (s *Scene) Foliage() *PointCloud { return s.foliage }

// TextCloud returns the particle-text cloud, or nil until installed.
func (s *Scene) TextCloud() *PointCloud { return s.text }

// Uniforms returns the two per-tick scalars the GPU tiers consume.
func (s *Scene) Uniforms() CloudUniforms {
	return CloudUniforms{
		Time:     float32(s.engine.Elapsed()),
		Progress: float32(s.progress.Value()),
	}
}

// SetDebug enables per-tick stage timing to stderr.
func (s *Scene) SetDebug(enabled bool) { s.debug = enabled }

// SetEventSink forwards focus changes to an optional ECS bridge.
func (s *Scene) SetEventSink(sink EventSink) { s.focus.SetSink(sink) }

// InstallTextCloud samples the given mesh into the particle-text tier and
// reports whether it took. Text geometry arrives from an asynchronous font
// collaborator, so a nil or degenerate mesh is not an error: the call is
// skipped and may simply be retried once the dependency resolves.
// Installing again replaces the previous cloud.
func (s *Scene) InstallTextCloud(mesh *TriMesh, count int, scatter Range, cfg CloudConfig) bool {
	if mesh == nil {
		return false
	}
	formation := mesh.SamplePoints(count, s.rng)
	if formation == nil {
		return false
	}
	chaos := ScatterFrom(formation, scatter, s.rng)
	s.text = NewPointCloud(cfg, formation, chaos, s.rng)
	return true
}

// ToggleFocus requests focus on entity idx, subject to the scatter gate
// and the card-only rule. Reports whether focus changed.
func (s *Scene) ToggleFocus(idx int) bool {
	return s.focus.Toggle(s.reg, idx, s.progress.ScatterActive())
}

// Focused returns the focused entity index, or -1.
func (s *Scene) Focused() int { return s.focus.Focused() }

// Update advances the whole scene by dt seconds using the given driver
// snapshot. Order is fixed: driver/autopilot resolve first, then progress,
// then the transition, focus, and camera consumers read the fresh value,
// never a stale one from the previous frame.
func (s *Scene) Update(snap DriverSnapshot, dt float64) {
	t0 := s.now()

	if snap.Tracking {
		s.progress.SetDriver(snap.HandOpen)
	}
	if s.auto != nil {
		s.updateAutopilot(snap, dt)
	}
	s.progress.Update(dt)
	t1 := s.now()

	s.engine.Update(s.reg, s.progress.Value(), dt)
	t2 := s.now()

	s.focus.Update(s.reg, s.pose, s.progress.ScatterActive(), dt)
	t3 := s.now()

	s.mapper.Update(&s.pose, snap, dt)
	t4 := s.now()

	if s.debug {
		s.stats.progressTime = t1.Sub(t0)
		s.stats.transitionTime = t2.Sub(t1)
		s.stats.focusTime = t3.Sub(t2)
		s.stats.cameraTime = t4.Sub(t3)
		s.stats.entityCount = s.reg.Len()
		s.debugLog()
	}
}

// updateAutopilot engages after the idle delay and hands progress control
// to an eased tween; any tracked frame disengages it immediately.
func (s *Scene) updateAutopilot(snap DriverSnapshot, dt float64) {
	a := s.auto
	if snap.Tracking {
		a.idle = 0
		a.tween = nil
		a.holding = 0
		return
	}

	a.idle += dt
	if a.idle < a.cfg.IdleAfter {
		return
	}

	if a.tween == nil {
		if a.holding > 0 {
			a.holding -= dt
			return
		}
		a.up = !a.up
		target := float32(0)
		if a.up {
			target = 1
		}
		a.tween = gween.New(float32(s.progress.Value()), target, a.cfg.CycleDuration, ease.InOutQuad)
	}

	v, finished := a.tween.Update(float32(dt))
	s.progress.SetValue(float64(v))
	if finished {
		a.tween = nil
		a.holding = a.cfg.Hold
	}
}
