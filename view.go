package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"sinpath/config"
	"sinpath/screens"
)

// runViewer opens the map viewer on the run
func runViewer(r *gameRun) error {
	host := screens.NewViewerHost()
	nav := r.navigator(host)

	viewer := screens.NewViewer(func(stack *screens.ScreenStack) screens.Screen {
		return screens.NewMapScreen(r.runMap, r.report, nav, host, r.messages, stack)
	})

	windowWidth, windowHeight := config.GetWindowSize()
	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Sinpath - " + r.runMap.Seed)
	return ebiten.RunGame(viewer)
}
