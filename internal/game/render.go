package game

import (
	"image/color"

	"github.com/Garsondee/Pong/internal/pong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	colBackground = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	colForeground = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	colCenterLine = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	colHeader     = color.RGBA{R: 18, G: 18, B: 22, A: 255}
	colBanner     = color.RGBA{R: 250, G: 220, B: 80, A: 255}
)

const textLineSpacing = 16

type sprite struct {
	x, y    float64
	visible bool
}

// screenRenderer keeps the latest sprite and text state pushed by the match
// and paints it on Draw. It implements pong.Renderer.
type screenRenderer struct {
	field   pong.Field
	sprites map[pong.SpriteID]sprite
	texts   map[pong.TextID]string
	face    *text.GoXFace
}

func newScreenRenderer(f pong.Field) *screenRenderer {
	return &screenRenderer{
		field:   f,
		sprites: make(map[pong.SpriteID]sprite, 3),
		texts:   make(map[pong.TextID]string, 5),
		face:    text.NewGoXFace(basicfont.Face7x13),
	}
}

func (r *screenRenderer) DrawSprite(id pong.SpriteID, x, y float64, visible bool) {
	r.sprites[id] = sprite{x: x, y: y, visible: visible}
}

func (r *screenRenderer) SetText(id pong.TextID, value string) {
	r.texts[id] = value
}

func (r *screenRenderer) draw(screen *ebiten.Image) {
	f := r.field
	screen.Fill(colBackground)
	vector.FillRect(screen, 0, 0, float32(f.Width), float32(f.TopGap), colHeader, false)

	for _, d := range f.CenterLine() {
		vector.StrokeLine(screen, float32(d.X), float32(d.Y0), float32(d.X), float32(d.Y1), 2, colCenterLine, false)
	}

	r.drawBox(screen, r.sprites[pong.SpritePaddleLeft], f.PaddleWidth, f.PaddleHeight)
	r.drawBox(screen, r.sprites[pong.SpritePaddleRight], f.PaddleWidth, f.PaddleHeight)
	r.drawBox(screen, r.sprites[pong.SpriteBall], f.BallSize, f.BallSize)

	headerY := (f.TopGap - 13) / 2
	r.drawText(screen, r.texts[pong.TextScoreLeft], f.Width/4, headerY, colForeground)
	r.drawText(screen, r.texts[pong.TextScoreRight], f.Width*3/4, headerY, colForeground)
	r.drawText(screen, r.texts[pong.TextWinnerLeft], f.Width/4, f.Height/3, colBanner)
	r.drawText(screen, r.texts[pong.TextWinnerRight], f.Width*3/4, f.Height/3, colBanner)
	r.drawText(screen, r.texts[pong.TextInstructions], f.Width/2, f.Height*2/3, colForeground)
}

// drawBox fills a w*h rectangle centred on the sprite position.
func (r *screenRenderer) drawBox(screen *ebiten.Image, s sprite, w, h float64) {
	if !s.visible {
		return
	}
	vector.FillRect(screen, float32(s.x-w/2), float32(s.y-h/2), float32(w), float32(h), colForeground, false)
}

// drawText draws horizontally centred text with its top at y.
func (r *screenRenderer) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	if s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.LineSpacing = textLineSpacing
	text.Draw(screen, s, r.face, op)
}
