package game

import (
	"github.com/Garsondee/Pong/internal/pong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Paddle keys. Left accepts both the classic A/Z and W/S.
var (
	leftUpKeys    = []ebiten.Key{ebiten.KeyA, ebiten.KeyW}
	leftDownKeys  = []ebiten.Key{ebiten.KeyZ, ebiten.KeyS}
	rightUpKeys   = []ebiten.Key{ebiten.KeyArrowUp}
	rightDownKeys = []ebiten.Key{ebiten.KeyArrowDown}
	startKeys     = []ebiten.Key{ebiten.KeySpace, ebiten.KeyEnter}
)

// keyInput polls ebiten once per tick. It implements pong.InputSource.
type keyInput struct{}

func (keyInput) ReadInput() pong.Input {
	in := pollInput(ebiten.IsKeyPressed, inpututil.IsKeyJustPressed)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.Start = true
	}
	return in
}

// pollInput maps held keys to paddle input and freshly pressed keys to Start.
func pollInput(held, justPressed func(ebiten.Key) bool) pong.Input {
	return pong.Input{
		LeftUp:    anyKey(held, leftUpKeys),
		LeftDown:  anyKey(held, leftDownKeys),
		RightUp:   anyKey(held, rightUpKeys),
		RightDown: anyKey(held, rightDownKeys),
		Start:     anyKey(justPressed, startKeys),
	}
}

func anyKey(fn func(ebiten.Key) bool, keys []ebiten.Key) bool {
	for _, k := range keys {
		if fn(k) {
			return true
		}
	}
	return false
}
