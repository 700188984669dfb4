package viewer

import (
	"fmt"
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mattn/go-runewidth"

	"github.com/Gaurav-Gosain/spatialwm/internal/config"
	"github.com/Gaurav-Gosain/spatialwm/internal/layout"
	"github.com/Gaurav-Gosain/spatialwm/internal/pool"
	"github.com/Gaurav-Gosain/spatialwm/internal/wm"
)

const (
	listWidth   = 30
	statusLines = 1
	cameraGlyph = '▲'
	gridGlyph   = '·'
)

var (
	borderStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")).Padding(0, 1)
	keyStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
)

// View renders the viewer.
func (m *Model) View() tea.View {
	var view tea.View
	view.SetContent(m.Render())
	view.AltScreen = true
	return view
}

// Render returns the frame as a string.
func (m *Model) Render() string {
	bodyHeight := max(m.height-statusLines, 3)

	var body string
	if m.showHelp {
		body = lipgloss.NewStyle().Width(m.width).Height(bodyHeight).Render(m.renderHelp())
	} else {
		mapWidth := max(m.width-listWidth, 10)
		// Borders take two rows and two columns.
		scene := borderStyle.Render(m.renderMap(mapWidth-2, bodyHeight-2))
		list := borderStyle.Width(listWidth).Height(bodyHeight).Render(m.renderList(bodyHeight - 2))
		body = lipgloss.JoinHorizontal(lipgloss.Top, scene, list)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatus())
}

// Project maps a world position onto map cell coordinates. The camera sits at
// the horizontal centre, two thirds down, looking towards the top row.
func (m *Model) Project(pos mgl64.Vec3, width, height int) (col, row int) {
	unitsPerCell := m.cfg.Appearance.UnitsPerCell
	if unitsPerCell <= 0 {
		unitsPerCell = 0.25
	}
	rel := m.camera.Orientation().Inverse().Rotate(pos.Sub(m.camera.Pos))
	cx, cy := width/2, height*2/3
	// Terminal cells are about twice as tall as wide.
	col = cx + int(math.Round(rel[0]/unitsPerCell))
	row = cy + int(math.Round(rel[2]/(unitsPerCell*2)))
	return col, row
}

func (m *Model) renderMap(width, height int) string {
	width, height = max(width, 1), max(height, 1)
	grid := pool.GetGrid(width, height)
	defer pool.PutGrid(grid)

	if m.cfg.Appearance.ShowGrid {
		m.drawGround(grid)
	}

	cx, cy := m.Project(m.camera.Pos, width, height)
	grid.Set(cx, cy, cameraGlyph)

	for _, w := range m.store.Windows() {
		if w.IsMinimized {
			continue
		}
		shown, ok := m.animator.Display(w.ID)
		if !ok {
			shown.Position, shown.Scale = w.Position, w.Scale
		}
		col, row := m.Project(shown.Position, width, height)
		label := windowLabel(w, w.ID == m.store.SelectedWindow())
		grid.WriteString(col-runewidth.StringWidth(label)/2, row, label)
	}

	return grid.String()
}

// drawGround dots every whole world unit on the camera's floor plane.
func (m *Model) drawGround(grid *pool.Grid) {
	unitsPerCell := m.cfg.Appearance.UnitsPerCell
	if unitsPerCell <= 0 {
		return
	}
	span := int(float64(max(grid.Width, grid.Height)) * unitsPerCell * 2)
	base := m.camera.Pos
	for x := -span; x <= span; x++ {
		for z := -span; z <= span; z++ {
			p := mgl64.Vec3{math.Round(base[0]) + float64(x), base[1], math.Round(base[2]) + float64(z)}
			col, row := m.Project(p, grid.Width, grid.Height)
			grid.Set(col, row, gridGlyph)
		}
	}
}

func windowLabel(w *wm.Window, selected bool) string {
	name := w.Title
	if name == "" {
		name = w.ID
	}
	name = runewidth.Truncate(name, 8, "")
	switch {
	case selected:
		return "[*" + name + "]"
	case w.IsFocused:
		return "<" + name + ">"
	default:
		return "[" + name + "]"
	}
}

func (m *Model) renderList(height int) string {
	sb := pool.GetStringBuilder()
	defer pool.PutStringBuilder(sb)

	sb.WriteString(titleStyle.Render(fmt.Sprintf("WINDOWS (%d)", m.store.Len())))
	sb.WriteByte('\n')

	lines := 1
	for _, w := range m.store.Windows() {
		if lines >= height {
			sb.WriteString(dimStyle.Render("…"))
			break
		}
		name := w.Title
		if name == "" {
			name = w.ID
		}
		line := runewidth.FillRight(runewidth.Truncate(name, 16, "…"), 16) + " " + w.State().String()
		if w.ID == m.store.SelectedWindow() {
			sb.WriteString(selectedStyle.Render("› " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteByte('\n')
		lines++
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m *Model) renderStatus() string {
	adjust := ""
	if m.adjustScale {
		adjust = " +scale"
	}
	left := fmt.Sprintf("mode:%s%s  cam:%.1f,%.1f yaw:%.0f°",
		m.store.CurrentMode(), adjust,
		m.camera.Pos[0], m.camera.Pos[2], mgl64.RadToDeg(m.camera.Rot.Y))
	if m.store.Debug() {
		left += fmt.Sprintf("  v%d f%d", m.store.Version(), m.frames)
	}
	help := m.registry.GetKeysForDisplay("toggle_help")
	right := m.status
	if right == "" && help != "" {
		right = help + " help"
	}
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return statusStyle.Width(max(m.width, 1)).Render(left + strings.Repeat(" ", gap) + right)
}

// renderHelp renders one table per keybinding section, as `keybinds list` does.
func (m *Model) renderHelp() string {
	tiling := m.store.CurrentMode() != layout.None
	var blocks []string
	blocks = append(blocks, titleStyle.Render("KEYBINDINGS"))

	for _, section := range config.GetKeybindings(m.registry) {
		if (section.Condition == "tiling" && !tiling) || (section.Condition == "!tiling" && tiling) {
			continue
		}
		rows := make([][]string, 0, len(section.Bindings))
		for _, b := range section.Bindings {
			rows = append(rows, []string{b.Key, b.Description})
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if col == 0 {
					return keyStyle
				}
				return cellStyle
			})
		blocks = append(blocks, sectionStyle.Render(section.Title), t.Render())
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}
