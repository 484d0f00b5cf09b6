// Package desktop runs a match in a local ebiten window.
package desktop

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"lanewars/internal/battle"
	"lanewars/internal/render"
	"lanewars/internal/units"
)

const (
	panelHeight  = 70
	buttonWidth  = 200
	buttonHeight = 46
	buttonGap    = 16
	toastTicks   = 120

	ScreenWidth  = int(battle.FieldWidth)
	ScreenHeight = int(battle.FieldHeight) + panelHeight
)

var (
	panelColor    = color.RGBA{30, 30, 30, 255}
	buttonColor   = color.RGBA{70, 90, 130, 255}
	disabledColor = color.RGBA{60, 60, 60, 255}
	buttonText    = color.White
	disabledText  = color.RGBA{130, 130, 130, 255}
)

var spawnKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

type button struct {
	kind units.Kind
	rect image.Rectangle
	label string
}

// Game implements ebiten.Game around one Match. Update and Draw run on the
// same goroutine, so the match needs no locking here.
type Game struct {
	match   *battle.Match
	buttons []button
	face    font.Face

	toast      string
	toastTicks int
	banner     *ebiten.Image

	copyText func(string) error
}

// New creates a game with a fresh match.
func New(opts ...battle.Option) *Game {
	g := &Game{
		match:    battle.New(opts...),
		buttons:  layoutButtons(),
		face:     basicfont.Face7x13,
		copyText: clipboard.WriteAll,
	}
	g.match.OnMatchEnded = func(r battle.Result) {
		log.Printf("[DESKTOP] %s %s", r.Headline, r.Message)
	}
	return g
}

func layoutButtons() []button {
	all := units.All()
	total := len(all)*buttonWidth + (len(all)-1)*buttonGap
	x := (ScreenWidth - total) / 2
	y := int(battle.FieldHeight) + (panelHeight-buttonHeight)/2

	out := make([]button, 0, len(all))
	for i, a := range all {
		out = append(out, button{
			kind:  a.Kind,
			rect:  image.Rect(x, y, x+buttonWidth, y+buttonHeight),
			label: fmt.Sprintf("[%d] %s - %dg", i+1, a.Name, a.Cost),
		})
		x += buttonWidth + buttonGap
	}
	return out
}

// buttonAt returns the spawn button under screen point (x, y).
func (g *Game) buttonAt(x, y int) (units.Kind, bool) {
	p := image.Pt(x, y)
	for _, b := range g.buttons {
		if p.In(b.rect) {
			return b.kind, true
		}
	}
	return "", false
}

// Update handles input, then advances the match one tick.
func (g *Game) Update() error {
	for i, key := range spawnKeys {
		if i < len(g.buttons) && inpututil.IsKeyJustPressed(key) {
			g.spawn(g.buttons[i].kind)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if kind, ok := g.buttonAt(ebiten.CursorPosition()); ok {
			g.spawn(kind)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && !g.match.Running() {
		g.restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyReport()
	}

	g.match.Tick()
	if g.toastTicks > 0 {
		g.toastTicks--
	}
	return nil
}

func (g *Game) spawn(kind units.Kind) {
	if !g.match.Running() {
		g.notify("Battle over, press R to play again")
		return
	}
	if !g.match.TrySpawn(battle.Player, kind) {
		g.notify("Not enough gold for " + units.MustGet(kind).Name)
	}
}

func (g *Game) restart() {
	g.match.Restart()
	g.banner = nil
	g.notify("New battle!")
}

func (g *Game) copyReport() {
	if err := g.copyText(render.Report(g.match.Snapshot())); err != nil {
		log.Printf("[DESKTOP] clipboard: %v", err)
		g.notify("Clipboard unavailable")
		return
	}
	g.notify("Report copied to clipboard")
}

func (g *Game) notify(msg string) {
	g.toast = msg
	g.toastTicks = toastTicks
}

// Layout keeps the logical screen at field size plus the button panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Draw renders the current snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.match.Snapshot()

	drawSky(screen)
	drawBase(screen, snap.Player.X, render.PlayerBase, render.PlayerRoof)
	drawBase(screen, snap.Enemy.X, render.EnemyBase, render.EnemyRoof)
	fillRect(screen, 0, battle.FieldHeight-render.GroundHeight, battle.FieldWidth, render.GroundHeight, render.Ground)

	for _, u := range snap.Units {
		drawUnit(screen, u)
	}
	for _, p := range snap.Projectiles {
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), render.ProjectileRadius, render.Projectile, true)
	}
	for _, p := range snap.Particles {
		c, err := render.ParseHex(p.Color)
		if err != nil {
			continue
		}
		fillRect(screen, p.X-render.ParticleSize/2, p.Y-render.ParticleSize/2, render.ParticleSize, render.ParticleSize, render.WithAlpha(c, p.Life))
	}

	g.drawHUD(screen, snap)
	g.drawPanel(screen, snap)

	if res, ok := snap.Result(); ok {
		g.drawBanner(screen, res)
	}
	if g.toastTicks > 0 {
		w := font.MeasureString(g.face, g.toast).Ceil()
		text.Draw(screen, g.toast, g.face, (ScreenWidth-w)/2, 80, color.Black)
	}
}

func fillRect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), c, false)
}

// drawSky approximates the three-stop gradient with horizontal bands.
func drawSky(dst *ebiten.Image) {
	const bands = 60
	h := battle.FieldHeight / bands
	for i := 0; i < bands; i++ {
		t := float64(i) / bands
		var c color.RGBA
		if t < 0.7 {
			c = lerp(render.SkyTop, render.SkyHorizon, t/0.7)
		} else {
			c = lerp(render.SkyHorizon, render.SkyBottom, (t-0.7)/0.3)
		}
		fillRect(dst, 0, float64(i)*h, battle.FieldWidth, h+1, c)
	}
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 255}
}

func drawBase(dst *ebiten.Image, x float64, body, roof color.Color) {
	fillRect(dst, x-render.BaseWidth/2, battle.FieldHeight-100, render.BaseWidth, render.BaseHeight, body)
	fillRect(dst, x-render.RoofWidth/2, battle.FieldHeight-120, render.RoofWidth, render.RoofHeight, roof)
}

func drawUnit(dst *ebiten.Image, u battle.UnitView) {
	if c, err := render.ParseHex(u.Color); err == nil {
		fillRect(dst, u.X-u.Size/2, u.Y, u.Size, u.Size, c)
	}
	frac := 0.0
	if u.MaxHP > 0 {
		frac = u.HP / u.MaxHP
	}
	fillRect(dst, u.X-u.Size/2, u.Y-render.HPBarOffset, u.Size, render.HPBarHeight, render.BarTrack)
	fillRect(dst, u.X-u.Size/2, u.Y-render.HPBarOffset, u.Size*frac, render.HPBarHeight, render.HPColor(frac))
	vector.DrawFilledCircle(dst, float32(u.X), float32(u.Y-render.MarkOffset), render.MarkRadius, render.Mark(u.Side == battle.Player), true)
}

func (g *Game) drawHUD(dst *ebiten.Image, snap battle.Snapshot) {
	left, right := render.HUDLines(snap)
	for i, line := range left {
		text.Draw(dst, line, g.face, 12, 22+i*16, color.Black)
	}
	for i, line := range right {
		w := font.MeasureString(g.face, line).Ceil()
		text.Draw(dst, line, g.face, ScreenWidth-12-w, 22+i*16, color.Black)
	}
}

func (g *Game) drawPanel(dst *ebiten.Image, snap battle.Snapshot) {
	fillRect(dst, 0, battle.FieldHeight, battle.FieldWidth, panelHeight, panelColor)
	for _, b := range g.buttons {
		bg, fg := buttonColor, color.Color(buttonText)
		if !snap.Affordances[b.kind] {
			bg, fg = disabledColor, disabledText
		}
		r := b.rect
		fillRect(dst, float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), bg)
		w := font.MeasureString(g.face, b.label).Ceil()
		text.Draw(dst, b.label, g.face, r.Min.X+(r.Dx()-w)/2, r.Min.Y+r.Dy()/2+4, fg)
	}
}

func (g *Game) drawBanner(dst *ebiten.Image, res battle.Result) {
	fillRect(dst, 0, 0, battle.FieldWidth, battle.FieldHeight, render.Overlay)

	if g.banner == nil {
		g.banner = bannerImage(g.face, res)
	}
	const scale = 3
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	bw := g.banner.Bounds().Dx() * scale
	bh := g.banner.Bounds().Dy() * scale
	op.GeoM.Translate(float64(ScreenWidth-bw)/2, (battle.FieldHeight-float64(bh))/2)
	dst.DrawImage(g.banner, op)
}

// bannerImage renders the end text once at font size so it can be scaled up.
func bannerImage(face font.Face, res battle.Result) *ebiten.Image {
	hint := "Press R to play again, C to copy the report"
	w := max(font.MeasureString(face, res.Headline).Ceil(), font.MeasureString(face, res.Message).Ceil(), font.MeasureString(face, hint).Ceil())
	img := ebiten.NewImage(w+8, 52)

	headline := render.VictoryText
	if res.Winner != battle.Player {
		headline = render.DefeatText
	}
	center := func(s string) int { return (w+8-font.MeasureString(face, s).Ceil())/2 }
	text.Draw(img, res.Headline, face, center(res.Headline), 14, headline)
	text.Draw(img, res.Message, face, center(res.Message), 32, render.HUDText)
	text.Draw(img, hint, face, center(hint), 48, render.HUDText)
	return img
}
