package settings

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/giantswarm/microerror"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true)
	descriptionStyle = lipgloss.NewStyle().Faint(true)
	enabledStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	disabledStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8"))
)

// RenderText writes the page for a terminal. List values are rendered one
// bullet per line.
func RenderText(w io.Writer, page Page) error {
	blocks := make([]string, 0, len(page.Groups))
	for _, g := range page.Groups {
		blocks = append(blocks, renderTextGroup(g))
	}
	if _, err := fmt.Fprintln(w, strings.Join(blocks, "\n\n")); err != nil {
		return microerror.Mask(err)
	}
	return nil
}

func renderTextGroup(g Group) string {
	badge := disabledStyle.Render("[" + g.BadgeLabel() + "]")
	if g.Enabled {
		badge = enabledStyle.Render("[" + g.BadgeLabel() + "]")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Option", "Value")
	for _, r := range g.Rows {
		t.Row(r.Name+"\n"+descriptionStyle.Render(r.Description), textValue(r.Value))
	}

	lines := []string{
		titleStyle.Render(g.Title) + " " + badge,
		descriptionStyle.Render(g.Description),
	}
	if g.DocsHref != "" {
		lines = append(lines, g.DocsHref)
	}
	lines = append(lines, t.Render())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func textValue(v Value) string {
	if !v.IsList() {
		return v.String()
	}
	items := make([]string, 0, len(v.Items()))
	for _, item := range v.Items() {
		items = append(items, "• "+item)
	}
	return strings.Join(items, "\n")
}
