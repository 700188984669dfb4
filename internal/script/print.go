package script

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Gaurav-Gosain/spatialwm/internal/wm"
)

// Printer renders the store for the Print command.
type Printer func(w io.Writer, s *wm.Store) error

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// WindowTable renders every window in insertion order as a lipgloss table.
func WindowTable(s *wm.Store) string {
	rows := make([][]string, 0, s.Len())
	for _, w := range s.Windows() {
		marker := ""
		if w.ID == s.SelectedWindow() {
			marker = "*"
		}
		rot, _ := s.DisplayRotation(w.ID)
		rows = append(rows, []string{
			marker + w.ID,
			w.Title,
			w.State().String(),
			formatVec(w.Position),
			formatVec(w.Scale),
			formatVec(mgl64.Vec3{
				mgl64.RadToDeg(rot.X),
				mgl64.RadToDeg(rot.Y),
				mgl64.RadToDeg(rot.Z),
			}),
			fmt.Sprintf("%gx%g", w.Width, w.Height),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("ID", "TITLE", "STATE", "POSITION", "SCALE", "ROTATION°", "SIZE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	title := titleStyle.Render(fmt.Sprintf("mode=%s windows=%d", s.CurrentMode(), s.Len()))
	return lipgloss.JoinVertical(lipgloss.Left, title, t.Render())
}

// TablePrinter writes WindowTable followed by a newline.
func TablePrinter(w io.Writer, s *wm.Store) error {
	_, err := fmt.Fprintln(w, WindowTable(s))
	return err
}

func formatVec(v mgl64.Vec3) string {
	return fmt.Sprintf("%.2f, %.2f, %.2f", clean(v[0]), clean(v[1]), clean(v[2]))
}

// clean folds -0 and rounding noise to 0 so tables stay stable.
func clean(f float64) float64 {
	if f > -0.005 && f < 0.005 {
		return 0
	}
	return f
}
