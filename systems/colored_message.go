package systems

import (
	"image/color"

	"sinpath/components"
)

// MessageType defines different types of messages that can appear in the log
type MessageType int

const (
	// MessageTypeNormal is for standard messages (white/gray)
	MessageTypeNormal MessageType = iota
	// MessageTypeTransition is for scene changes (gold)
	MessageTypeTransition
	// MessageTypeBoss is for boss defeats (red)
	MessageTypeBoss
	// MessageTypeAlert is for forced convergence and empty pools (bright yellow)
	MessageTypeAlert
	// MessageTypeSystem is for generator and router diagnostics (purple/magenta)
	MessageTypeSystem
)

// ColoredMessage stores a message with its associated color
type ColoredMessage struct {
	Text string
	Type MessageType
}

// GetColor returns the color for the message based on its type
func (cm ColoredMessage) GetColor() color.RGBA {
	switch cm.Type {
	case MessageTypeTransition:
		return color.RGBA{218, 165, 32, 255} // Gold
	case MessageTypeBoss:
		return color.RGBA{255, 100, 100, 255} // Red
	case MessageTypeAlert:
		return color.RGBA{255, 255, 0, 255} // Bright Yellow
	case MessageTypeSystem:
		return color.RGBA{186, 85, 211, 255} // Medium Orchid (Purple)
	default:
		return color.RGBA{200, 200, 200, 255} // Light Gray (default)
	}
}

// NodeColor returns the map viewer color of a node type
func NodeColor(t components.NodeType) color.RGBA {
	switch t {
	case components.NodeStart:
		return color.RGBA{200, 200, 200, 255}
	case components.NodeEncounter, components.NodeElite:
		return color.RGBA{255, 100, 100, 255}
	case components.NodeEvent, components.NodeMystery:
		return color.RGBA{100, 149, 237, 255} // Cornflower Blue
	case components.NodeRestShop:
		return color.RGBA{60, 179, 113, 255} // Medium Sea Green
	case components.NodeBoss:
		return color.RGBA{186, 85, 211, 255}
	case components.NodeTreasure:
		return color.RGBA{218, 165, 32, 255}
	default:
		return color.RGBA{128, 128, 128, 255}
	}
}
