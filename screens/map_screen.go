package screens

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"sinpath/components"
	"sinpath/config"
	"sinpath/generation"
	"sinpath/systems"
)

var (
	panelColor     = color.RGBA{20, 20, 28, 255}
	edgeColor      = color.RGBA{90, 90, 110, 255}
	highlightColor = color.RGBA{255, 255, 255, 255}
	textColor      = color.RGBA{200, 200, 200, 255}
)

// MapScreen shows one layer of the generated map and drives a run through it
type MapScreen struct {
	*BaseScreen
	runMap   *components.Map
	report   generation.Report
	nav      *systems.Navigator
	host     *ViewerHost
	messages *systems.MessageLog
	stack    *ScreenStack

	layer int // Layer being looked at
	path  int // Path selected within that layer
}

// NewMapScreen creates the main viewer screen
func NewMapScreen(runMap *components.Map, report generation.Report, nav *systems.Navigator, host *ViewerHost, messages *systems.MessageLog, stack *ScreenStack) *MapScreen {
	return &MapScreen{
		BaseScreen: NewBaseScreen(),
		runMap:     runMap,
		report:     report,
		nav:        nav,
		host:       host,
		messages:   messages,
		stack:      stack,
	}
}

// Update handles input for the map screen
func (s *MapScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ErrCloseScreen
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		s.stack.Push(NewReportScreen(s.report, s.messages))
		return nil
	}

	layerCount := len(s.runMap.Layers)
	if layerCount == 0 {
		return nil
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		s.layer = (s.layer + layerCount - 1) % layerCount
		s.path = 0
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		s.layer = (s.layer + 1) % layerCount
		s.path = 0
	}

	layer := s.runMap.Layers[s.layer]
	if paths := layer.PathCount(); paths > 0 {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
			s.path = (s.path + paths - 1) % paths
		case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
			s.path = (s.path + 1) % paths
		}
	}

	ctx := context.Background()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		_, err := s.nav.EnterHub(ctx)
		s.notify(err)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		if indexes := layer.PathIndexes(); s.path < len(indexes) {
			s.notify(s.nav.FollowPath(layer, indexes[s.path]))
		}
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		_, err := s.nav.Forward(ctx)
		s.notify(err)
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		_, err := s.nav.Backward(ctx)
		s.notify(err)
	case inpututil.IsKeyJustPressed(ebiten.KeyZ):
		s.nav.Offer()
		_, err := s.nav.Branch(ctx, systems.SideLeft)
		s.notify(err)
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		s.nav.Offer()
		_, err := s.nav.Branch(ctx, systems.SideRight)
		s.notify(err)
	case inpututil.IsKeyJustPressed(ebiten.KeyK):
		s.completeBoss()
	}
	return nil
}

// completeBoss defeats the boss under the player
func (s *MapScreen) completeBoss() {
	node := s.nav.Routing().CurrentNode()
	if node == nil || node.Type != components.NodeBoss || node.Boss == nil {
		s.messages.AddTyped("Not standing on a boss.", systems.MessageTypeAlert)
		return
	}
	s.notify(s.nav.CompleteBoss(node.Boss.BossID))
}

func (s *MapScreen) notify(err error) {
	if err != nil {
		s.messages.AddTyped(err.Error(), systems.MessageTypeSystem)
	}
}

// Draw draws the map screen
func (s *MapScreen) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if len(s.runMap.Layers) > 0 {
		s.drawLayer(screen, s.runMap.Layers[s.layer])
	}
	s.drawSidePanel(screen)
	s.drawMessages(screen)
}

// nodePosition places a node on the layer grid
func nodePosition(pathRow, nodeIndex int) (float32, float32) {
	x := float32((2 + nodeIndex*config.NodeSpacing) * config.TileSize)
	y := float32((4 + pathRow*config.PathSpacing) * config.TileSize)
	return x, y
}

func (s *MapScreen) drawLayer(screen *ebiten.Image, layer components.Layer) {
	header := fmt.Sprintf("Layer %d/%d  %s  (%s)", layer.Index+1, len(s.runMap.Layers), layer.Location, layer.BossID)
	drawText(screen, header, config.TileSize, config.TileSize, highlightColor)

	current := s.nav.Routing().CurrentNode()
	for row, pathIndex := range layer.PathIndexes() {
		path := layer.Path(pathIndex)
		for i, node := range path {
			x, y := nodePosition(row, node.NodeIndex)
			if i > 0 {
				px, py := nodePosition(row, path[i-1].NodeIndex)
				vector.StrokeLine(screen, px, py, x, y, 2, edgeColor, true)
			}
			vector.DrawFilledCircle(screen, x, y, config.NodeRadius, systems.NodeColor(node.Type), true)
			if current != nil && current.ID == node.ID {
				vector.StrokeCircle(screen, x, y, config.NodeRadius+4, 2, highlightColor, true)
			}
		}

		label := fmt.Sprintf("path %d", pathIndex)
		clr := textColor
		if row == s.path {
			label = "> " + label
			clr = highlightColor
		}
		_, y := nodePosition(row, 0)
		drawText(screen, label, config.TileSize/2, int(y)+config.NodeRadius+4, clr)
	}
}

func (s *MapScreen) drawSidePanel(screen *ebiten.Image) {
	x := float32(config.MapPanelWidth * config.TileSize)
	w := float32((config.ScreenWidth - config.MapPanelWidth) * config.TileSize)
	vector.DrawFilledRect(screen, x, 0, w, float32(config.MapPanelHeight*config.TileSize), panelColor, false)

	pool := s.nav.Pool()
	choices := pool.SelectNextChoices()
	rc := s.nav.Routing()

	lines := []string{
		"Seed: " + s.runMap.Seed,
		"Scene: " + s.host.CurrentScene(),
		fmt.Sprintf("Path index: %d (%s)", rc.PathIndex(), rc.LastDirection()),
		"",
		"Remaining:",
		"  " + strings.Join(pool.Remaining(), ", "),
		fmt.Sprintf("Next: %s / %s (%s)", choices.Left, choices.Right, choices.Kind),
		"",
		fmt.Sprintf("Violations: %d", len(s.report.Violations())),
		fmt.Sprintf("Flags: %d", rc.Persistent().Len()),
		"",
		"<-/->  layer   up/dn  path",
		"Enter  follow  H      hub",
		"Space  fwd     Bksp   back",
		"Z/X    branch  K      defeat",
		"F1     report  Esc    quit",
	}
	for i, line := range lines {
		drawText(screen, line, int(x)+8, 8+i*16, textColor)
	}
}

func (s *MapScreen) drawMessages(screen *ebiten.Image) {
	y := config.MapPanelHeight * config.TileSize
	for i, msg := range s.messages.RecentMessages(config.MessageLines) {
		drawText(screen, msg.Text, 8, y+8+i*16, msg.GetColor())
	}
}
