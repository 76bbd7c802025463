package systems

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// SceneHost loads scenes. Loads may block; the host owns cancellation and
// timeouts through ctx.
type SceneHost interface {
	LoadScene(ctx context.Context, id string) error
	CurrentScene() string
}

// LogHost is a headless SceneHost that only records what it was asked to load
type LogHost struct {
	mu      sync.Mutex
	current string
	history []string
	logger  zerolog.Logger
}

// NewLogHost creates a headless host
func NewLogHost(logger zerolog.Logger) *LogHost {
	return &LogHost{logger: logger}
}

// LoadScene records id as the current scene
func (h *LogHost) LoadScene(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = id
	h.history = append(h.history, id)
	h.logger.Info().Str("scene", id).Int("loads", len(h.history)).Msg("scene loaded")
	return nil
}

// CurrentScene returns the last loaded scene
func (h *LogHost) CurrentScene() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// History returns every load in order
func (h *LogHost) History() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.history...)
}
