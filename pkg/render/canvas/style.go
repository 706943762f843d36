package canvas

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme maps cell classes to lipgloss styles.
type Theme struct {
	Border  lipgloss.Style
	Active  lipgloss.Style
	Title   lipgloss.Style
	Divider lipgloss.Style
	Preview lipgloss.Style
}

// DefaultTheme matches the CLI palette.
func DefaultTheme() Theme {
	return Theme{
		Border:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Active:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		Title:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
		Divider: lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
		Preview: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	}
}

func (th Theme) style(class Class) (lipgloss.Style, bool) {
	switch class {
	case ClassBorder:
		return th.Border, true
	case ClassActive:
		return th.Active, true
	case ClassTitle:
		return th.Title, true
	case ClassDivider:
		return th.Divider, true
	case ClassPreview:
		return th.Preview, true
	}
	return lipgloss.Style{}, false
}

// Styled renders the canvas with runs of equally classed cells colored by
// th.
func (c *Canvas) Styled(th Theme) string {
	lines := make([]string, c.height)
	for y := 0; y < c.height; y++ {
		var line, run strings.Builder
		cur := ClassBlank
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if st, ok := th.style(cur); ok {
				line.WriteString(st.Render(run.String()))
			} else {
				line.WriteString(run.String())
			}
			run.Reset()
		}
		for x := 0; x < c.width; x++ {
			i := y*c.width + x
			if c.cells[i] == wide {
				continue
			}
			if cl := c.classes[i]; cl != cur {
				flush()
				cur = cl
			}
			run.WriteRune(c.cells[i])
		}
		flush()
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}
