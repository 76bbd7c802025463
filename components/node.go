package components

import "fmt"

// NodeType identifies what kind of stop a node is along a path
type NodeType int

const (
	NodeStart NodeType = iota
	NodeEncounter
	NodeEvent
	NodeRestShop
	NodeBoss
	NodeConnector

	// Reserved for future content; the generator never emits these
	NodeTreasure
	NodeElite
	NodeMystery
)

var nodeTypeNames = map[NodeType]string{
	NodeStart:     "start",
	NodeEncounter: "encounter",
	NodeEvent:     "event",
	NodeRestShop:  "rest_shop",
	NodeBoss:      "boss",
	NodeConnector: "connector",
	NodeTreasure:  "treasure",
	NodeElite:     "elite",
	NodeMystery:   "mystery",
}

// String returns the stable name used in saves and diagnostics
func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("node_type(%d)", int(t))
}

// ParseNodeType is the inverse of String
func ParseNodeType(name string) (NodeType, error) {
	for t, n := range nodeTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown node type %q", name)
}

// MarshalText encodes the type by name so saves survive enum reordering
func (t NodeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name written by MarshalText
func (t *NodeType) UnmarshalText(text []byte) error {
	parsed, err := ParseNodeType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// EncounterKind is the enemy tier of a combat node
type EncounterKind string

const (
	EncounterMinor EncounterKind = "minor_enemy"
	EncounterMajor EncounterKind = "major_enemy"
)

// EncounterInfo is the payload of a NodeEncounter
type EncounterInfo struct {
	Kind             EncounterKind `json:"kind" yaml:"kind"`
	EnemyCount       int           `json:"enemy_count" yaml:"enemy_count"`
	RewardMultiplier float64       `json:"reward_multiplier" yaml:"reward_multiplier"`
}

// EventInfo is the payload of a NodeEvent
type EventInfo struct {
	Kind string `json:"kind" yaml:"kind"`
}

// RestShopInfo is the payload of a NodeRestShop. The concrete service is
// picked by the router at visit time.
type RestShopInfo struct{}

// BossInfo is the payload of a NodeBoss. Every path of a layer carries an
// identical copy.
type BossInfo struct {
	BossID      string `json:"boss_id" yaml:"boss_id"`
	Description string `json:"description" yaml:"description"`
}

// ConnectorInfo is the payload of a NodeConnector
type ConnectorInfo struct {
	BossID string `json:"boss_id,omitempty" yaml:"boss_id,omitempty"`
}

// Node is one step along a path. Exactly one payload pointer is set and it
// matches Type; Start nodes and the reserved types carry none.
type Node struct {
	ID        string   `json:"id" yaml:"id"`
	Type      NodeType `json:"type" yaml:"type"`
	PathIndex int      `json:"path_index" yaml:"path_index"`
	NodeIndex int      `json:"node_index" yaml:"node_index"`

	Encounter *EncounterInfo `json:"encounter,omitempty" yaml:"encounter,omitempty"`
	Event     *EventInfo     `json:"event,omitempty" yaml:"event,omitempty"`
	RestShop  *RestShopInfo  `json:"rest_shop,omitempty" yaml:"rest_shop,omitempty"`
	Boss      *BossInfo      `json:"boss,omitempty" yaml:"boss,omitempty"`
	Connector *ConnectorInfo `json:"connector,omitempty" yaml:"connector,omitempty"`
}

// NewStartNode creates the hub node that opens every route
func NewStartNode() Node {
	return Node{Type: NodeStart, PathIndex: -1, NodeIndex: -1}
}

// NewEncounterNode creates a combat node
func NewEncounterNode(kind EncounterKind, enemyCount int, reward float64) Node {
	return Node{
		Type:      NodeEncounter,
		Encounter: &EncounterInfo{Kind: kind, EnemyCount: enemyCount, RewardMultiplier: reward},
	}
}

// NewEventNode creates a narrative event node
func NewEventNode(kind string) Node {
	return Node{Type: NodeEvent, Event: &EventInfo{Kind: kind}}
}

// NewRestShopNode creates a service stop
func NewRestShopNode() Node {
	return Node{Type: NodeRestShop, RestShop: &RestShopInfo{}}
}

// NewBossNode creates a boss arena node
func NewBossNode(bossID, description string) Node {
	return Node{Type: NodeBoss, Boss: &BossInfo{BossID: bossID, Description: description}}
}

// NewConnectorNode creates a waypoint leading to a boss arena. bossID may be
// empty when the router should work it out from the route.
func NewConnectorNode(bossID string) Node {
	return Node{Type: NodeConnector, Connector: &ConnectorInfo{BossID: bossID}}
}

// IsCombat reports whether the node is a fight of any tier
func (n Node) IsCombat() bool {
	return n.Type == NodeEncounter || n.Type == NodeElite || n.Type == NodeBoss
}

// Validate checks that the payload matches the node type
func (n Node) Validate() error {
	set := 0
	for _, present := range []bool{n.Encounter != nil, n.Event != nil, n.RestShop != nil, n.Boss != nil, n.Connector != nil} {
		if present {
			set++
		}
	}

	var ok bool
	switch n.Type {
	case NodeEncounter:
		ok = n.Encounter != nil
	case NodeEvent:
		ok = n.Event != nil
	case NodeRestShop:
		ok = n.RestShop != nil
	case NodeBoss:
		ok = n.Boss != nil
	case NodeConnector:
		ok = n.Connector != nil
	default:
		ok = set == 0
	}
	if !ok || set > 1 {
		return fmt.Errorf("node %q: payload does not match type %s", n.ID, n.Type)
	}
	return nil
}
