package generation

import "sinpath/components"

// MapSource produces the map of a seed. Persistence uses it to rebuild maps
// saved as a bare seed without depending on the concrete generator.
type MapSource interface {
	Generate(seed Seed, rules *Rules) (*components.Map, Report, error)
}

var _ MapSource = (*MapGenerator)(nil)
