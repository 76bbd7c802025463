package components

import "fmt"

// TransitionDirection records which way the last move went along a route
type TransitionDirection int

const (
	DirectionNone TransitionDirection = iota
	DirectionForward
	DirectionBackward
	DirectionBranch
)

var directionNames = [...]string{"none", "forward", "backward", "branch"}

// String returns the stable name of the direction
func (d TransitionDirection) String() string {
	if d >= 0 && int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// MarshalText encodes the direction by name
func (d TransitionDirection) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name
func (d *TransitionDirection) UnmarshalText(text []byte) error {
	for i, name := range directionNames {
		if name == string(text) {
			*d = TransitionDirection(i)
			return nil
		}
	}
	return fmt.Errorf("unknown transition direction %q", string(text))
}

// Transition describes one completed move between two locations
type Transition struct {
	From      string              // Location being left
	To        string              // Destination identifier handed to the scene host
	Direction TransitionDirection // How the move was requested
	Node      *Node               // Node that produced the destination, if any
}

// NewTransition creates a new transition record
func NewTransition(from, to string, direction TransitionDirection, node *Node) Transition {
	return Transition{
		From:      from,
		To:        to,
		Direction: direction,
		Node:      node,
	}
}
