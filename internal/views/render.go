package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header     string
	LeftPane   string
	RightPane  string
	StatusLine string
	Footer     string
	Overlay    string
	Dark       bool
}

type styleSet struct {
	header lipgloss.Style
	status lipgloss.Style
	errTxt lipgloss.Style
	panel  lipgloss.Style
	footer lipgloss.Style
}

var (
	lightStyles = styleSet{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		errTxt: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		footer: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
	darkStyles = styleSet{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		errTxt: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("8")),
		footer: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	}
)

func stylesFor(dark bool) styleSet {
	if dark {
		return darkStyles
	}
	return lightStyles
}

func RenderApp(data AppData) string {
	st := stylesFor(data.Dark)
	left := st.panel.Width(58).Render(data.LeftPane)
	right := st.panel.Width(58).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := st.status.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = st.errTxt.Render(data.StatusLine)
	}

	lines := []string{
		st.header.Render(data.Header),
		row,
		status,
	}
	if data.Overlay != "" {
		lines = append(lines, st.panel.Render(data.Overlay))
	}
	if data.Footer != "" {
		lines = append(lines, st.footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders reminder notes; on failure the raw text is shown.
func RenderMarkdown(md string, dark bool) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "light"
	if dark {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
