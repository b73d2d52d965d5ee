package main

import (
	"bytes"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ScottBrooks/globepins"
)

var panelOffset = engo.Point{X: 12, Y: -8}

// DescriptionPanel is the text shown next to a marker while the pointer is over it.
type DescriptionPanel struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent

	Marker *globepins.Marker
}

func (dp *DescriptionPanel) SetVisible(visible bool) {
	dp.RenderComponent.Hidden = !visible
}

// PointerInputSystem writes the mouse position into the session's pointer cell when it moves,
// and keeps the camera in step with the window and the orbit keys.
type PointerInputSystem struct {
	Session *globepins.Session

	lastX, lastY float32
	seen         bool
}

func (*PointerInputSystem) Remove(ecs.BasicEntity) {}
func (pis *PointerInputSystem) Update(dt float32) {
	w, h := float64(engo.GameWidth()), float64(engo.GameHeight())
	cam := pis.Session.Camera
	cam.SetViewport(w, h)

	x, y := engo.Input.Mouse.X, engo.Input.Mouse.Y
	if !pis.seen || x != pis.lastX || y != pis.lastY {
		pis.Session.Pointer.Store(globepins.FromScreen(float64(x), float64(y), w, h))
		pis.lastX, pis.lastY, pis.seen = x, y, true
	}

	step := float64(dt) * 1.5
	if engo.Input.Button("Left").Down() {
		cam.Orbit(-step, 0)
	}
	if engo.Input.Button("Right").Down() {
		cam.Orbit(step, 0)
	}
	if engo.Input.Button("Up").Down() {
		cam.Orbit(0, -step)
	}
	if engo.Input.Button("Down").Down() {
		cam.Orbit(0, step)
	}
	if s := engo.Input.Mouse.ScrollY; s != 0 {
		cam.Zoom(1 - float64(s)*0.05)
	}
}

// SessionSystem ticks the globe session once per engine frame.
type SessionSystem struct {
	Session *globepins.Session
}

func (*SessionSystem) Remove(ecs.BasicEntity) {}
func (ss *SessionSystem) Update(dt float32) {
	ss.Session.Tick(dt)
}

// PanelLayoutSystem keeps each panel beside its marker's on-screen position.
type PanelLayoutSystem struct {
	Camera *globepins.PerspectiveCamera

	Entities []*DescriptionPanel
}

func (pls *PanelLayoutSystem) Add(p *DescriptionPanel) {
	pls.Entities = append(pls.Entities, p)
}
func (*PanelLayoutSystem) Remove(ecs.BasicEntity) {}
func (pls *PanelLayoutSystem) Update(dt float32) {
	w, h := float64(engo.GameWidth()), float64(engo.GameHeight())
	for _, p := range pls.Entities {
		ndc := pls.Camera.ProjectToNDC(p.Marker.Position.Vec3())
		x, y := globepins.ToScreen(ndc, w, h)
		pos := engo.Point{X: float32(x), Y: float32(y)}
		pos.Add(panelOffset)
		p.SpaceComponent.Position = pos
	}
}

type GlobeScene struct {
	Config  globepins.Config
	Catalog []globepins.CatalogEntry

	Font    *common.Font
	session *globepins.Session
}

func (*GlobeScene) Preload() {
	if err := engo.Files.LoadReaderData("go.ttf", bytes.NewReader(goregular.TTF)); err != nil {
		log.Fatalf("Unable to load font: %v", err)
	}
}

func (gs *GlobeScene) Setup(u engo.Updater) {
	w, _ := u.(*ecs.World)

	engo.Input.RegisterButton("Up", engo.KeyArrowUp)
	engo.Input.RegisterButton("Down", engo.KeyArrowDown)
	engo.Input.RegisterButton("Left", engo.KeyArrowLeft)
	engo.Input.RegisterButton("Right", engo.KeyArrowRight)

	common.SetBackground(color.Black)
	rs := common.RenderSystem{}
	w.AddSystem(&rs)

	gs.Font = &common.Font{
		URL:  "go.ttf",
		FG:   color.White,
		Size: 18,
	}
	if err := gs.Font.CreatePreloaded(); err != nil {
		log.Fatalf("Unable to create font: %v", err)
	}

	layout := PanelLayoutSystem{}
	session, err := globepins.NewSession(gs.Config, gs.Catalog, func(m *globepins.Marker) globepins.Visibility {
		panel := &DescriptionPanel{
			BasicEntity: ecs.NewBasic(),
			RenderComponent: common.RenderComponent{
				Drawable: common.Text{
					Font: gs.Font,
					Text: m.Description,
				},
				Scale:       engo.Point{X: 1, Y: 1},
				StartZIndex: 100,
			},
			Marker: m,
		}
		rs.Add(&panel.BasicEntity, &panel.RenderComponent, &panel.SpaceComponent)
		layout.Add(panel)
		return panel
	})
	if err != nil {
		log.Fatalf("Unable to start session: %v", err)
	}
	gs.session = session
	layout.Camera = session.Camera

	session.Hover.Notify = func(msg globepins.HoverChangedMessage) {
		engo.Mailbox.Dispatch(msg)
	}
	engo.Mailbox.Listen(globepins.HoverChangedMessage{}.Type(), func(msg engo.Message) {
		hcm, ok := msg.(globepins.HoverChangedMessage)
		if !ok {
			return
		}
		entry := log.WithField("marker", hcm.Marker.Label)
		merc, err := hcm.Marker.Coord.Mercator()
		if err != nil {
			entry.Warnf("%s: %v", hcm.State, err)
			return
		}
		entry.Infof("%s: %s", hcm.State, merc.AsText())
	})

	w.AddSystem(&PointerInputSystem{Session: session})
	w.AddSystem(&SessionSystem{Session: session})
	w.AddSystem(&layout)
}

func (*GlobeScene) Type() string { return "Globe" }
