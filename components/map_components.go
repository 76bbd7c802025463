package components

import (
	"fmt"
	"reflect"
	"sort"
)

// Layer is one boss tier: several parallel paths converging on one boss
type Layer struct {
	Index    int    `json:"index" yaml:"index"`
	BossID   string `json:"boss_id" yaml:"boss_id"`
	Location string `json:"location" yaml:"location"`
	Nodes    []Node `json:"nodes" yaml:"nodes"`
}

// Map is the full generated structure of a run
type Map struct {
	Seed   string  `json:"seed" yaml:"seed"`
	Layers []Layer `json:"layers" yaml:"layers"`
}

// PathCount returns the number of distinct path indexes in the layer
func (l Layer) PathCount() int {
	seen := make(map[int]bool)
	for _, n := range l.Nodes {
		seen[n.PathIndex] = true
	}
	return len(seen)
}

// PathIndexes returns the layer's path indexes in ascending order
func (l Layer) PathIndexes() []int {
	seen := make(map[int]bool)
	indexes := make([]int, 0)
	for _, n := range l.Nodes {
		if !seen[n.PathIndex] {
			seen[n.PathIndex] = true
			indexes = append(indexes, n.PathIndex)
		}
	}
	sort.Ints(indexes)
	return indexes
}

// Path returns the nodes of one path ordered by node index. The returned
// slice is a copy.
func (l Layer) Path(pathIndex int) []Node {
	path := make([]Node, 0)
	for _, n := range l.Nodes {
		if n.PathIndex == pathIndex {
			path = append(path, n)
		}
	}
	sort.SliceStable(path, func(i, j int) bool {
		return path[i].NodeIndex < path[j].NodeIndex
	})
	return path
}

// Paths returns every path of the layer in path index order
func (l Layer) Paths() [][]Node {
	indexes := l.PathIndexes()
	paths := make([][]Node, 0, len(indexes))
	for _, idx := range indexes {
		paths = append(paths, l.Path(idx))
	}
	return paths
}

// CountType counts nodes of the given type across all paths
func (l Layer) CountType(t NodeType) int {
	count := 0
	for _, n := range l.Nodes {
		if n.Type == t {
			count++
		}
	}
	return count
}

// CountEncounters counts encounter nodes of the given kind across all paths
func (l Layer) CountEncounters(kind EncounterKind) int {
	count := 0
	for _, n := range l.Nodes {
		if n.Type == NodeEncounter && n.Encounter != nil && n.Encounter.Kind == kind {
			count++
		}
	}
	return count
}

// Layer returns the layer at index, or false when out of range
func (m *Map) Layer(index int) (Layer, bool) {
	if m == nil || index < 0 || index >= len(m.Layers) {
		return Layer{}, false
	}
	return m.Layers[index], true
}

// LayerForBoss finds the layer whose boss is bossID
func (m *Map) LayerForBoss(bossID string) (Layer, bool) {
	if m == nil {
		return Layer{}, false
	}
	for _, l := range m.Layers {
		if l.BossID == bossID {
			return l, true
		}
	}
	return Layer{}, false
}

// NodeCount returns the number of nodes across every layer
func (m *Map) NodeCount() int {
	total := 0
	for _, l := range m.Layers {
		total += len(l.Nodes)
	}
	return total
}

// Equal compares two maps field by field
func (m *Map) Equal(other *Map) bool {
	if m == nil || other == nil {
		return m == other
	}
	return reflect.DeepEqual(m.normalized(), other.normalized())
}

// normalized treats nil and empty slices alike so that a decoded map
// compares equal to a generated one
func (m *Map) normalized() Map {
	out := Map{Seed: m.Seed, Layers: make([]Layer, len(m.Layers))}
	for i, l := range m.Layers {
		nodes := make([]Node, len(l.Nodes))
		copy(nodes, l.Nodes)
		l.Nodes = nodes
		out.Layers[i] = l
	}
	return out
}

// Validate checks structural consistency of a map that came from outside the
// generator, such as a save file
func (m *Map) Validate() error {
	if m == nil {
		return fmt.Errorf("map is nil")
	}
	for i, l := range m.Layers {
		if l.Index != i {
			return fmt.Errorf("layer %d: index field is %d", i, l.Index)
		}
		for _, n := range l.Nodes {
			if err := n.Validate(); err != nil {
				return fmt.Errorf("layer %d: %w", i, err)
			}
		}
	}
	return nil
}
