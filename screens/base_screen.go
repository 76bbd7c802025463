package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"sinpath/config"
)

// debugGlyphWidth is the advance of one DebugPrint character in pixels
const debugGlyphWidth = 6

// BaseScreen provides common functionality for all screens
type BaseScreen struct {
	// Screen dimensions
	width  int
	height int
}

// NewBaseScreen creates a new base screen
func NewBaseScreen() *BaseScreen {
	width, height := config.GetScreenDimensions()
	return &BaseScreen{width: width, height: height}
}

// Update implements the Screen interface
func (s *BaseScreen) Update() error {
	return nil
}

// Draw implements the Screen interface
func (s *BaseScreen) Draw(screen *ebiten.Image) {}

// Layout implements the Screen interface
func (s *BaseScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return s.width, s.height
}

// GetWidth returns the screen width
func (s *BaseScreen) GetWidth() int {
	return s.width
}

// GetHeight returns the screen height
func (s *BaseScreen) GetHeight() int {
	return s.height
}

// drawText prints text tinted with clr. DebugPrint only draws white, so the
// text goes to a scratch image first.
func drawText(dst *ebiten.Image, text string, x, y int, clr color.Color) {
	if text == "" {
		return
	}
	line := ebiten.NewImage(len(text)*debugGlyphWidth+debugGlyphWidth, 16)
	ebitenutil.DebugPrintAt(line, text, 0, 0)

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleWithColor(clr)
	op.GeoM.Translate(float64(x), float64(y))
	dst.DrawImage(line, op)
	line.Deallocate()
}
