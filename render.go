package garland

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not
// premultiplied; premultiplication occurs at vertex submission time.
type Color struct {
	R, G, B, A float64
}

// RendererConfig tunes the reference Ebitengine backend. Zero values take
// the documented defaults.
type RendererConfig struct {
	// FocalLength is the perspective projection constant in pixels.
	// Default 560.
	FocalLength float64
	// Near is the camera-space depth below which geometry is dropped.
	// Default 0.5.
	Near float64
	// PointSize is the world-space size of bulk cloud points. Default 0.35.
	PointSize float64

	// Per-tier tints. Defaults approximate foliage green, warm text,
	// gold ornaments, red gifts, and paper-white cards.
	Foliage  Color
	Text     Color
	Ornament Color
	Gift     Color
	Card     Color
}

func (c *RendererConfig) applyDefaults() {
	if c.FocalLength == 0 {
		c.FocalLength = 560
	}
	if c.Near == 0 {
		c.Near = 0.5
	}
	if c.PointSize == 0 {
		c.PointSize = 0.35
	}
	if c.Foliage == (Color{}) {
		c.Foliage = Color{0.25, 0.85, 0.4, 0.8}
	}
	if c.Text == (Color{}) {
		c.Text = Color{1, 0.9, 0.6, 0.9}
	}
	if c.Ornament == (Color{}) {
		c.Ornament = Color{1, 0.78, 0.25, 1}
	}
	if c.Gift == (Color{}) {
		c.Gift = Color{0.9, 0.2, 0.25, 1}
	}
	if c.Card == (Color{}) {
		c.Card = Color{0.95, 0.93, 0.88, 1}
	}
}

// World-space billboard sizes per coarse kind, multiplied by entity Scale.
const (
	ornamentSize = 0.8
	giftSize     = 1.2
	cardSize     = 1.6
)

// Renderer is the reference Ebitengine backend: perspective projection
// from the scene's CameraPose, additive point batches for the GPU tiers,
// and painter-sorted billboards for the coarse entities. Vertex and index
// buffers are reused across frames with high-water-mark growth.
//
// Ebitengine has no programmable vertex stage, so the staggered cloud
// blend is resolved through PointCloud.Resolve here; backends with one
// should upload the attribute buffers and evaluate it per vertex instead.
type Renderer struct {
	cfg RendererConfig

	verts    []ebiten.Vertex
	inds     []uint32
	resolved []float32
	order    []entityDepth
}

// entityDepth pairs a registry index with its camera-space depth for the
// back-to-front sort.
type entityDepth struct {
	index int
	depth float64
}

// NewRenderer creates a renderer with defaults applied.
func NewRenderer(cfg RendererConfig) *Renderer {
	cfg.applyDefaults()
	return &Renderer{cfg: cfg}
}

// --- Soft dot singleton (single-threaded; no sync.Once) ---

var dotImage *ebiten.Image

// ensureDot returns a lazily-initialized radial-falloff dot used to render
// every point and billboard.
func ensureDot() *ebiten.Image {
	if dotImage == nil {
		const size = 32
		dotImage = ebiten.NewImage(size, size)
		pix := make([]byte, size*size*4)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				dx := (float64(x) + 0.5 - size/2) / (size / 2)
				dy := (float64(y) + 0.5 - size/2) / (size / 2)
				d := math.Sqrt(dx*dx + dy*dy)
				a := clamp(1-d, 0, 1)
				a *= a
				v := byte(a * 255)
				i := (y*size + x) * 4
				pix[i] = v
				pix[i+1] = v
				pix[i+2] = v
				pix[i+3] = v
			}
		}
		dotImage.WritePixels(pix)
	}
	return dotImage
}

// viewBasis is the per-frame camera frame used for projection.
type viewBasis struct {
	eye, right, up, forward Vec3
	focal, near             float64
	halfW, halfH            float64
}

func (r *Renderer) makeBasis(pose CameraPose, w, h int) viewBasis {
	forward := pose.Target.Sub(pose.Position).Normalized()
	if forward == (Vec3{}) {
		forward = Vec3{Z: -1}
	}
	right := forward.Cross(Vec3{Y: 1}).Normalized()
	if right == (Vec3{}) {
		// Looking straight up or down; pick an arbitrary horizontal right.
		right = Vec3{X: 1}
	}
	up := right.Cross(forward)

	return viewBasis{
		eye:     pose.Position,
		right:   right,
		up:      up,
		forward: forward,
		focal:   r.cfg.FocalLength,
		near:    r.cfg.Near,
		halfW:   float64(w) / 2,
		halfH:   float64(h) / 2,
	}
}

// project maps a world position to screen coordinates plus a perspective
// scale factor. ok is false behind the near plane.
func (b *viewBasis) project(p Vec3) (sx, sy, scale float64, ok bool) {
	rel := p.Sub(b.eye)
	z := rel.Dot(b.forward)
	if z <= b.near {
		return 0, 0, 0, false
	}
	f := b.focal / z
	sx = rel.Dot(b.right)*f + b.halfW
	sy = -rel.Dot(b.up)*f + b.halfH
	return sx, sy, f, true
}

// Draw renders the scene: bulk clouds first with additive blending, then
// the coarse entities back to front with standard alpha blending.
func (r *Renderer) Draw(dst *ebiten.Image, s *Scene) {
	bounds := dst.Bounds()
	basis := r.makeBasis(s.Pose(), bounds.Dx(), bounds.Dy())
	u := s.Uniforms()

	if cloud := s.Foliage(); cloud != nil {
		r.drawCloud(dst, &basis, cloud, u, r.cfg.Foliage)
	}
	if cloud := s.TextCloud(); cloud != nil {
		r.drawCloud(dst, &basis, cloud, u, r.cfg.Text)
	}
	r.drawEntities(dst, &basis, s)
}

// drawCloud resolves one point cloud and submits it as a single additive
// DrawTriangles32 call.
func (r *Renderer) drawCloud(dst *ebiten.Image, basis *viewBasis, cloud *PointCloud, u CloudUniforms, tint Color) {
	r.resolved = cloud.Resolve(u, r.resolved)
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]

	half := r.cfg.PointSize / 2
	for i := 0; i < cloud.Count(); i++ {
		p := Vec3{
			X: float64(r.resolved[3*i]),
			Y: float64(r.resolved[3*i+1]),
			Z: float64(r.resolved[3*i+2]),
		}
		sx, sy, f, ok := basis.project(p)
		if !ok {
			continue
		}
		r.appendQuad(sx, sy, half*f, 0, tint)
	}
	r.flush(dst, ebiten.BlendLighter)
}

// drawEntities painter-sorts the coarse tier and submits it as one batch.
func (r *Renderer) drawEntities(dst *ebiten.Image, basis *viewBasis, s *Scene) {
	reg := s.Registry()
	r.order = r.order[:0]
	for i := 0; i < reg.Len(); i++ {
		depth := reg.At(i).Current.Sub(basis.eye).Dot(basis.forward)
		if depth <= basis.near {
			continue
		}
		r.order = append(r.order, entityDepth{index: i, depth: depth})
	}
	sort.Slice(r.order, func(a, b int) bool {
		return r.order[a].depth > r.order[b].depth
	})

	camYaw := math.Atan2(basis.forward.X, basis.forward.Z)

	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	for _, ed := range r.order {
		e := reg.At(ed.index)
		sx, sy, f, ok := basis.project(e.Current)
		if !ok {
			continue
		}

		var size float64
		var tint Color
		switch e.Kind {
		case KindOrnament:
			size, tint = ornamentSize, r.cfg.Ornament
		case KindGift:
			size, tint = giftSize, r.cfg.Gift
		case KindCard:
			size, tint = cardSize, r.cfg.Card
		default:
			size, tint = r.cfg.PointSize, r.cfg.Foliage
		}

		half := size * e.Scale / 2 * f

		// Billboard approximation of the 3D orientation: yaw relative to
		// the camera foreshortens the width, Z supplies the roll.
		widthFactor := math.Abs(math.Cos(e.Rotation.Y - camYaw))
		if widthFactor < 0.12 {
			widthFactor = 0.12
		}

		r.appendQuadStretched(sx, sy, half*widthFactor, half, e.Rotation.Z, tint)
	}
	r.flush(dst, ebiten.BlendSourceOver)
}

// appendQuad appends one rotated square billboard of half-extent half.
func (r *Renderer) appendQuad(sx, sy, half, roll float64, tint Color) {
	r.appendQuadStretched(sx, sy, half, half, roll, tint)
}

// appendQuadStretched appends one billboard with independent half-extents.
func (r *Renderer) appendQuadStretched(sx, sy, halfX, halfY, roll float64, tint Color) {
	dot := ensureDot()
	b := dot.Bounds()
	su0, sv0 := float32(b.Min.X), float32(b.Min.Y)
	su1, sv1 := float32(b.Max.X), float32(b.Max.Y)

	sin, cos := math.Sincos(roll)

	// Corner offsets for (-x,-y), (x,-y), (-x,y), (x,y) under the roll.
	lx := [4]float64{-halfX, halfX, -halfX, halfX}
	ly := [4]float64{-halfY, -halfY, halfY, halfY}
	psx := [4]float32{su0, su1, su0, su1}
	psy := [4]float32{sv0, sv0, sv1, sv1}

	ca := float32(tint.A)
	cr := float32(tint.R) * ca
	cg := float32(tint.G) * ca
	cb := float32(tint.B) * ca

	base := uint32(len(r.verts))
	for j := 0; j < 4; j++ {
		dx := float32(sx + lx[j]*cos - ly[j]*sin)
		dy := float32(sy + lx[j]*sin + ly[j]*cos)
		r.verts = append(r.verts, ebiten.Vertex{
			DstX: dx, DstY: dy,
			SrcX: psx[j], SrcY: psy[j],
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	r.inds = append(r.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

// flush submits the accumulated vertices in one DrawTriangles32 call.
func (r *Renderer) flush(dst *ebiten.Image, blend ebiten.Blend) {
	if len(r.verts) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.Blend = blend
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	dst.DrawTriangles32(r.verts, r.inds, ensureDot(), &op)
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
}

// Pick returns the registry index of the card entity under the screen
// point (sx, sy), or -1. The nearest hit wins. Feed the result to
// Scene.ToggleFocus from the hosting loop's pointer handler.
func (r *Renderer) Pick(s *Scene, sx, sy float64, w, h int) int {
	basis := r.makeBasis(s.Pose(), w, h)
	reg := s.Registry()

	best := -1
	bestDepth := math.Inf(1)
	for i := 0; i < reg.Len(); i++ {
		e := reg.At(i)
		if e.Kind != KindCard {
			continue
		}
		px, py, f, ok := basis.project(e.Current)
		if !ok {
			continue
		}
		half := cardSize * e.Scale / 2 * f
		if math.Abs(sx-px) > half || math.Abs(sy-py) > half {
			continue
		}
		depth := e.Current.Sub(basis.eye).Dot(basis.forward)
		if depth < bestDepth {
			bestDepth = depth
			best = i
		}
	}
	return best
}

// RGBA converts a Color to a color.RGBA, clamping components. Handy for
// hosting loops that fill a clear color.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp(c.R, 0, 1) * 255),
		G: uint8(clamp(c.G, 0, 1) * 255),
		B: uint8(clamp(c.B, 0, 1) * 255),
		A: uint8(clamp(c.A, 0, 1) * 255),
	}
}
