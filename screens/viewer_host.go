package screens

import (
	"context"
	"sync"
)

// ViewerHost is the scene host of the map viewer. Scenes are only names
// here, so a load completes immediately.
type ViewerHost struct {
	mu      sync.Mutex
	current string
	loads   int
}

// NewViewerHost creates a viewer host
func NewViewerHost() *ViewerHost {
	return &ViewerHost{}
}

// LoadScene switches the displayed scene
func (h *ViewerHost) LoadScene(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = id
	h.loads++
	return nil
}

// CurrentScene returns the displayed scene
func (h *ViewerHost) CurrentScene() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Loads returns how many scenes were loaded
func (h *ViewerHost) Loads() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loads
}
