// Package render draws match snapshots to images with gg and rescales them
// with imaging.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"lanewars/internal/battle"
)

// Scene geometry in field pixels.
const (
	Width  = battle.FieldWidth
	Height = battle.FieldHeight

	BaseWidth        = 60.0
	BaseHeight       = 80.0
	RoofWidth        = 50.0
	RoofHeight       = 20.0
	GroundHeight     = 20.0
	HPBarHeight      = 4.0
	HPBarOffset      = 8.0
	MarkRadius       = 3.0
	MarkOffset       = 12.0
	ProjectileRadius = 4.0
	ParticleSize     = 4.0
)

// Frame draws snap at field resolution.
func Frame(snap battle.Snapshot) image.Image {
	dc := gg.NewContext(Width, Height)
	dc.SetFontFace(basicfont.Face7x13)

	drawSky(dc)
	drawBase(dc, snap.Player.X, PlayerBase, PlayerRoof)
	drawBase(dc, snap.Enemy.X, EnemyBase, EnemyRoof)

	dc.SetColor(Ground)
	dc.DrawRectangle(0, Height-GroundHeight, float64(Width), GroundHeight)
	dc.Fill()

	for _, u := range snap.Units {
		drawUnit(dc, u)
	}

	dc.SetColor(Projectile)
	for _, p := range snap.Projectiles {
		dc.DrawCircle(p.X, p.Y, ProjectileRadius)
		dc.Fill()
	}

	for _, p := range snap.Particles {
		c, err := ParseHex(p.Color)
		if err != nil {
			continue
		}
		dc.SetColor(WithAlpha(c, p.Life))
		dc.DrawRectangle(p.X-ParticleSize/2, p.Y-ParticleSize/2, ParticleSize, ParticleSize)
		dc.Fill()
	}

	drawHUD(dc, snap)
	if res, ok := snap.Result(); ok {
		drawBanner(dc, res)
	}
	return dc.Image()
}

func drawSky(dc *gg.Context) {
	grad := gg.NewLinearGradient(0, 0, 0, float64(Height))
	grad.AddColorStop(0, SkyTop)
	grad.AddColorStop(0.7, SkyHorizon)
	grad.AddColorStop(1, SkyBottom)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, float64(Width), float64(Height))
	dc.Fill()
}

func drawBase(dc *gg.Context, x float64, body, roof color.Color) {
	dc.SetColor(body)
	dc.DrawRectangle(x-BaseWidth/2, Height-100, BaseWidth, BaseHeight)
	dc.Fill()
	dc.SetColor(roof)
	dc.DrawRectangle(x-RoofWidth/2, Height-120, RoofWidth, RoofHeight)
	dc.Fill()
}

func drawUnit(dc *gg.Context, u battle.UnitView) {
	if c, err := ParseHex(u.Color); err == nil {
		dc.SetColor(c)
		dc.DrawRectangle(u.X-u.Size/2, u.Y, u.Size, u.Size)
		dc.Fill()
	}

	frac := 0.0
	if u.MaxHP > 0 {
		frac = u.HP / u.MaxHP
	}
	dc.SetColor(BarTrack)
	dc.DrawRectangle(u.X-u.Size/2, u.Y-HPBarOffset, u.Size, HPBarHeight)
	dc.Fill()
	dc.SetColor(HPColor(frac))
	dc.DrawRectangle(u.X-u.Size/2, u.Y-HPBarOffset, u.Size*frac, HPBarHeight)
	dc.Fill()

	dc.SetColor(Mark(u.Side == battle.Player))
	dc.DrawCircle(u.X, u.Y-MarkOffset, MarkRadius)
	dc.Fill()
}

// HUDLines is the status text shown in the corners: player on the left,
// enemy on the right.
func HUDLines(snap battle.Snapshot) (left, right []string) {
	left = []string{
		fmt.Sprintf("Gold: %d", int(snap.Player.Gold)),
		fmt.Sprintf("Base HP: %d/%d", int(snap.Player.HP), int(snap.Player.MaxHP)),
		fmt.Sprintf("XP: %d  Age: %d", snap.Player.XP, snap.Player.Age),
	}
	right = []string{
		fmt.Sprintf("Enemy HP: %d/%d", int(snap.Enemy.HP), int(snap.Enemy.MaxHP)),
		fmt.Sprintf("Units: %d", len(snap.Units)),
	}
	return left, right
}

func drawHUD(dc *gg.Context, snap battle.Snapshot) {
	left, right := HUDLines(snap)
	dc.SetColor(color.Black)
	for i, line := range left {
		dc.DrawString(line, 12, 22+float64(i)*16)
	}
	for i, line := range right {
		dc.DrawStringAnchored(line, float64(Width)-12, 22+float64(i)*16, 1, 0)
	}
}

func drawBanner(dc *gg.Context, res battle.Result) {
	dc.SetColor(Overlay)
	dc.DrawRectangle(0, 0, float64(Width), float64(Height))
	dc.Fill()

	cx, cy := float64(Width)/2, float64(Height)/2
	if res.Winner == battle.Player {
		dc.SetColor(VictoryText)
	} else {
		dc.SetColor(DefeatText)
	}
	dc.Push()
	dc.ScaleAbout(4, 4, cx, cy-40)
	dc.DrawStringAnchored(res.Headline, cx, cy-40, 0.5, 0.5)
	dc.Pop()

	dc.SetColor(HUDText)
	dc.Push()
	dc.ScaleAbout(2, 2, cx, cy+20)
	dc.DrawStringAnchored(res.Message, cx, cy+20, 0.5, 0.5)
	dc.Pop()
}

// Scale resizes img to width pixels keeping the aspect ratio. A width of zero
// or the image's own width returns img unchanged.
func Scale(img image.Image, width int) image.Image {
	if width <= 0 || width == img.Bounds().Dx() {
		return img
	}
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
