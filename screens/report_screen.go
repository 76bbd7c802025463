package screens

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"sinpath/generation"
	"sinpath/systems"
)

// ReportScreen shows the validation report and the message history in a
// modal window
type ReportScreen struct {
	*BaseScreen
	lines        []systems.ColoredMessage
	scrollOffset int
	width        int
	height       int
	background   color.Color
}

// NewReportScreen creates a new report screen
func NewReportScreen(report generation.Report, messages *systems.MessageLog) *ReportScreen {
	lines := []systems.ColoredMessage{{Text: fmt.Sprintf("Seed %q", report.Seed), Type: systems.MessageTypeAlert}}
	violations := report.Violations()
	if len(violations) == 0 {
		lines = append(lines, systems.ColoredMessage{Text: "All layers valid."})
	}
	for _, v := range violations {
		lines = append(lines, systems.ColoredMessage{Text: v, Type: systems.MessageTypeSystem})
	}
	lines = append(lines, systems.ColoredMessage{Text: "", Type: systems.MessageTypeNormal})
	lines = append(lines, messages.RecentMessages(messages.Len())...)

	return &ReportScreen{
		BaseScreen: NewBaseScreen(),
		lines:      lines,
		width:      720,
		height:     480,
		background: color.RGBA{0, 0, 0, 255},
	}
}

// Update handles input for the report screen
func (s *ReportScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && s.scrollOffset > 0 {
		s.scrollOffset--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && s.scrollOffset < len(s.lines)-1 {
		s.scrollOffset++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		return ErrCloseScreen
	}
	return nil
}

// Draw renders the report over the map
func (s *ReportScreen) Draw(screen *ebiten.Image) {
	bounds := screen.Bounds()
	x := float32((bounds.Dx() - s.width) / 2)
	y := float32((bounds.Dy() - s.height) / 2)

	vector.DrawFilledRect(screen, x, y, float32(s.width), float32(s.height), s.background, false)
	vector.StrokeRect(screen, x, y, float32(s.width), float32(s.height), 2, color.White, false)

	title := "REPORT"
	drawText(screen, title, int(x)+(s.width-len(title)*debugGlyphWidth)/2, int(y)+6, color.White)

	startY := 30
	lineHeight := 16
	maxLines := (s.height - startY - 24) / lineHeight

	for i := 0; i < maxLines && s.scrollOffset+i < len(s.lines); i++ {
		msg := s.lines[s.scrollOffset+i]
		drawText(screen, msg.Text, int(x)+10, int(y)+startY+i*lineHeight, msg.GetColor())
	}

	drawText(screen, "Up/Down: Scroll  ESC: Close", int(x)+10, int(y)+s.height-20, color.White)
}

// Layout implements the Screen interface
func (s *ReportScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return s.BaseScreen.Layout(outsideWidth, outsideHeight)
}
