package config

// Viewer layout configuration
const (
	// Cell size in pixels
	TileSize = 16

	// Window dimensions in cells
	ScreenWidth  = 64
	ScreenHeight = 48

	// UI layout
	MapPanelWidth  = 46 // Layer view width in cells, the rest is the side panel
	MapPanelHeight = 38 // Layer view height in cells, the rest is the message panel
	NodeRadius     = 6  // Radius of a drawn node in pixels
	NodeSpacing    = 3  // Cells between two nodes of a path
	PathSpacing    = 5  // Cells between two parallel paths
	MessageLines   = 8  // Messages shown under the layer view

	// Window dimensions in pixels (derived from cell dimensions)
	WindowWidth  = ScreenWidth * TileSize
	WindowHeight = ScreenHeight * TileSize
)

// GetScreenDimensions returns the screen dimensions in pixels
func GetScreenDimensions() (width, height int) {
	return WindowWidth, WindowHeight
}

// GetWindowSize returns the recommended window size (may be different from actual screen dimensions)
func GetWindowSize() (width, height int) {
	return 1024, 768
}
