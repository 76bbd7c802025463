package screens

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Viewer implements ebiten.Game over a screen stack
type Viewer struct {
	stack *ScreenStack
}

// NewViewer creates the viewer game with its map screen as the root screen
func NewViewer(build func(stack *ScreenStack) Screen) *Viewer {
	stack := NewScreenStack()
	stack.Push(build(stack))
	return &Viewer{stack: stack}
}

// Update updates the top screen and ends the game once the stack is empty
func (v *Viewer) Update() error {
	if err := v.stack.Update(); err != nil {
		return err
	}
	if v.stack.Len() == 0 {
		return ebiten.Termination
	}
	return nil
}

// Draw draws the screen stack
func (v *Viewer) Draw(screen *ebiten.Image) {
	v.stack.Draw(screen)
}

// Layout handles layout for the top screen
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.stack.Layout(outsideWidth, outsideHeight)
}
