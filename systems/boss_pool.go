package systems

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"sinpath/data"
	"sinpath/events"
	"sinpath/generation"
)

var (
	// ErrUnknownBoss is returned when marking a boss the pool never contained
	ErrUnknownBoss = errors.New("unknown boss")
	// ErrFinaleLocked is returned when the finale is marked while sins remain
	ErrFinaleLocked = errors.New("finale locked")
)

// ChoiceKind describes how a branch offer was formed
type ChoiceKind string

const (
	ChoiceDistinct  ChoiceKind = "distinct"  // Two different sins
	ChoiceConverged ChoiceKind = "converged" // Too few sins left, both sides agree
	ChoiceFinale    ChoiceKind = "finale"    // Every sin is down
	ChoiceExhausted ChoiceKind = "exhausted" // Nothing left to fight
)

// Side picks one half of a branch offer
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// Choices is the pair of bosses offered at a branch. Exhausted offers carry
// empty ids.
type Choices struct {
	Left  string     `json:"left"`
	Right string     `json:"right"`
	Kind  ChoiceKind `json:"kind"`
}

// Side returns the boss on the given side
func (c Choices) Side(side Side) string {
	if side == SideRight {
		return c.Right
	}
	return c.Left
}

// Available reports whether the offer has a boss to fight
func (c Choices) Available() bool {
	return c.Kind != ChoiceExhausted
}

// PoolState is everything needed to rebuild a pool: the seed, the order it
// produced and the defeats in the order they happened
type PoolState struct {
	Seed     string   `json:"seed"`
	Order    []string `json:"order"`
	Defeated []string `json:"defeated"`
}

// BossPool tracks which bosses of a run are still ahead. The order is fixed
// once from the seed; only the defeated set changes.
type BossPool struct {
	seed     string
	order    []string
	finale   string
	defeated []string
	catalog  *data.Catalog
	logger   zerolog.Logger
	bus      *events.Bus
}

// PoolOption configures a BossPool
type PoolOption func(*BossPool)

// WithPoolCatalog overrides the built-in boss catalog
func WithPoolCatalog(catalog *data.Catalog) PoolOption {
	return func(p *BossPool) {
		if catalog != nil {
			p.catalog = catalog
		}
	}
}

// WithPoolLogger sets the pool's logger
func WithPoolLogger(logger zerolog.Logger) PoolOption {
	return func(p *BossPool) {
		p.logger = logger
	}
}

// WithPoolEvents publishes defeats on bus
func WithPoolEvents(bus *events.Bus) PoolOption {
	return func(p *BossPool) {
		p.bus = bus
	}
}

func newBossPool(opts []PoolOption) *BossPool {
	p := &BossPool{
		catalog: data.DefaultCatalog(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.finale = p.catalog.FinaleID()
	return p
}

// NewBossPool shuffles the catalog's sins from seed. The map generator draws
// the same shuffle first, so pool order and layer order agree.
func NewBossPool(seed generation.Seed, opts ...PoolOption) *BossPool {
	p := newBossPool(opts)
	p.seed = seed.Text
	p.order = generation.BossOrderForSeed(p.catalog, seed)

	p.logger.Debug().Str("seed", p.seed).Strs("order", p.order).Msg("boss pool created")
	return p
}

// RestoreBossPool rebuilds a pool from state. A state without an order
// recomputes it from the seed.
func RestoreBossPool(state PoolState, opts ...PoolOption) (*BossPool, error) {
	p := newBossPool(opts)
	p.seed = state.Seed

	if len(state.Order) == 0 {
		p.order = generation.BossOrderForSeed(p.catalog, generation.ParseSeed(state.Seed))
	} else {
		p.order = slices.Clone(state.Order)
	}

	for _, id := range p.order {
		if _, ok := p.catalog.Boss(id); !ok || id == p.finale {
			return nil, fmt.Errorf("restore pool: %w: %q in order", ErrUnknownBoss, id)
		}
	}

	for _, id := range state.Defeated {
		if !p.contains(id) {
			return nil, fmt.Errorf("restore pool: %w: %q in defeated", ErrUnknownBoss, id)
		}
		if !slices.Contains(p.defeated, id) {
			p.defeated = append(p.defeated, id)
		}
	}
	if p.IsDefeated(p.finale) && len(p.remainingSins()) > 0 {
		return nil, fmt.Errorf("restore pool: %w: %q defeated with %d sin(s) left",
			ErrFinaleLocked, p.finale, len(p.remainingSins()))
	}
	return p, nil
}

// Seed returns the seed text the order was drawn from
func (p *BossPool) Seed() string {
	return p.seed
}

// Order returns the full shuffled sin sequence
func (p *BossPool) Order() []string {
	return slices.Clone(p.order)
}

// Finale returns the reserved last boss
func (p *BossPool) Finale() string {
	return p.finale
}

// Defeated returns defeats in the order they happened
func (p *BossPool) Defeated() []string {
	return slices.Clone(p.defeated)
}

// IsDefeated reports whether id was marked defeated
func (p *BossPool) IsDefeated(id string) bool {
	return slices.Contains(p.defeated, id)
}

// remainingSins is the order minus defeated entries, order preserved
func (p *BossPool) remainingSins() []string {
	out := make([]string, 0, len(p.order))
	for _, id := range p.order {
		if !p.IsDefeated(id) {
			out = append(out, id)
		}
	}
	return out
}

// Remaining returns the bosses still ahead. Once every sin is down the
// finale is the only entry until it is defeated too.
func (p *BossPool) Remaining() []string {
	sins := p.remainingSins()
	if len(sins) == 0 && p.finale != "" && !p.IsDefeated(p.finale) {
		return []string{p.finale}
	}
	return sins
}

// SelectNextChoices returns the next branch offer. With three or more sins
// left the first two remaining are offered; with one or two left both sides
// get the first one.
func (p *BossPool) SelectNextChoices() Choices {
	sins := p.remainingSins()
	switch {
	case len(sins) >= 3:
		return Choices{Left: sins[0], Right: sins[1], Kind: ChoiceDistinct}
	case len(sins) > 0:
		return Choices{Left: sins[0], Right: sins[0], Kind: ChoiceConverged}
	case p.finale != "" && !p.IsDefeated(p.finale):
		return Choices{Left: p.finale, Right: p.finale, Kind: ChoiceFinale}
	default:
		return Choices{Kind: ChoiceExhausted}
	}
}

// MarkDefeated records a defeat. Marking the same boss again is a no-op.
// The finale only counts once every sin is down.
func (p *BossPool) MarkDefeated(id string) error {
	if !p.contains(id) {
		return fmt.Errorf("mark defeated: %w: %q", ErrUnknownBoss, id)
	}
	if id == p.finale {
		if left := p.remainingSins(); len(left) > 0 {
			return fmt.Errorf("mark defeated: %w: %d sin(s) left, next %q", ErrFinaleLocked, len(left), left[0])
		}
	}
	if p.IsDefeated(id) {
		p.logger.Debug().Str("boss", id).Msg("boss already defeated, ignoring")
		return nil
	}

	p.defeated = append(p.defeated, id)
	remaining := p.Remaining()

	p.logger.Info().
		Str("boss", id).
		Strs("remaining", remaining).
		Bool("converged", p.IsConverged()).
		Msg("boss defeated")

	p.bus.Emit(events.BossDefeatedEvent{
		BossID:    id,
		Remaining: remaining,
		Converged: p.IsConverged(),
	})
	return nil
}

// IsConverged reports whether at most one boss is left
func (p *BossPool) IsConverged() bool {
	return len(p.Remaining()) <= 1
}

// State captures the pool for persistence
func (p *BossPool) State() PoolState {
	return PoolState{
		Seed:     p.seed,
		Order:    p.Order(),
		Defeated: p.Defeated(),
	}
}

func (p *BossPool) contains(id string) bool {
	return id != "" && (id == p.finale || slices.Contains(p.order, id))
}
