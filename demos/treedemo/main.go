// treedemo renders the full particle tree and stands in for the
// hand-tracking collaborator with the mouse: cursor position maps to
// handX/handY, the scroll wheel to the handZ depth proxy, and holding the
// left button opens the hand (scatter). Right-click a scattered card to
// focus it; right-click again to release.
package main

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lodengames/garland"
)

const (
	screenW = 1280
	screenH = 720
)

type Game struct {
	scene    *garland.Scene
	renderer *garland.Renderer
	depth    float64 // accumulated wheel input in [0, 1]
}

func (g *Game) Update() error {
	mx, my := ebiten.CursorPosition()

	_, wheelY := ebiten.Wheel()
	g.depth = math.Max(0, math.Min(1, g.depth+wheelY*0.05))

	inside := mx >= 0 && mx < screenW && my >= 0 && my < screenH
	snap := garland.DriverSnapshot{
		HandX:    float64(mx) / screenW,
		HandY:    1 - float64(my)/screenH,
		HandZ:    0.05 + g.depth*0.3,
		Tracking: inside,
		HandOpen: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		if idx := g.renderer.Pick(g.scene, float64(mx), float64(my), screenW, screenH); idx >= 0 {
			g.scene.ToggleFocus(idx)
		}
	}

	g.scene.Update(snap, 1.0/float64(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(garland.Color{R: 0.03, G: 0.04, B: 0.08, A: 1}.RGBA())
	g.renderer.Draw(screen, g.scene)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

// bannerMesh is a stand-in for extruded text geometry: a flat panel
// floating above the tree. A real host samples its rendered 3D text here.
func bannerMesh() *garland.TriMesh {
	return &garland.TriMesh{
		Vertices: []garland.Vec3{
			{X: -6, Y: 5.2, Z: 0},
			{X: 6, Y: 5.2, Z: 0},
			{X: 6, Y: 6.8, Z: 0},
			{X: -6, Y: 6.8, Z: 0},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

func main() {
	scene := garland.NewScene(garland.SceneConfig{
		Foliage: garland.CloudSpawn{
			Count:  9000,
			Cone:   garland.ConeLayout{Height: 7, Width: 3.5, Jitter: 0.12},
			Sphere: garland.SphereLayout{Scale: 28, MinRatio: 0.35},
		},
		Ornaments: garland.SpawnConfig{
			Count:     180,
			Cone:      garland.ConeLayout{Height: 6.8, Width: 3.7, AngleMultiplier: 1.37},
			Sphere:    garland.SphereLayout{Scale: 24, MinRatio: 0.3},
			BaseScale: garland.Range{Min: 0.7, Max: 1.2},
			ChaosSpin: garland.Range{Min: -math.Pi, Max: math.Pi},
		},
		Gifts: garland.SpawnConfig{
			Count:     24,
			Cone:      garland.ConeLayout{Height: 0.8, Width: 4.4},
			Sphere:    garland.SphereLayout{Scale: 22, MinRatio: 0.3},
			BaseScale: garland.Range{Min: 0.8, Max: 1.4},
			ChaosSpin: garland.Range{Min: -math.Pi, Max: math.Pi},
		},
		Cards: garland.SpawnConfig{
			Count:     48,
			Cone:      garland.ConeLayout{Height: 6.2, Width: 4.0, AngleMultiplier: 2.11},
			Sphere:    garland.SphereLayout{Scale: 20, MinRatio: 0.4},
			BaseScale: garland.Range{Min: 0.9, Max: 1.1},
			ChaosSpin: garland.Range{Min: -1, Max: 1},
		},
		Camera: garland.GestureMapperConfig{
			LookAt:    garland.Vec3{Y: 1},
			Home:      garland.Vec3{Y: 4, Z: 36},
			GlideHome: true,
		},
		Autopilot: garland.AutopilotConfig{Enabled: true},
	})

	if !scene.InstallTextCloud(bannerMesh(), 2500, garland.Range{Min: 4, Max: 10}, garland.CloudConfig{}) {
		log.Fatal("install text cloud: mesh rejected")
	}

	game := &Game{
		scene:    scene,
		renderer: garland.NewRenderer(garland.RendererConfig{}),
		depth:    0.5,
	}

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("garland tree demo")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
