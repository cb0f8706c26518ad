package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/sandboxer/pkg/button"
	"github.com/matzehuels/sandboxer/pkg/deps"
)

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleButton = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Bold(true)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// out receives all user-facing output. Logs go to the logger instead.
var out io.Writer = os.Stdout

func printSuccess(format string, args ...any) {
	fmt.Fprintln(out, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(out, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(out, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(out, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented dim line. Multi-line messages keep the
// indentation on every line.
func printDetail(format string, args ...any) {
	for _, line := range strings.Split(fmt.Sprintf(format, args...), "\n") {
		fmt.Fprintln(out, "  "+StyleDim.Render(line))
	}
}

func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(out, "  "+keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printDependencies prints the dependency map sorted by name, with the
// origin of each entry when known.
func printDependencies(m deps.Map, sources map[string]deps.Source) {
	width := 0
	for name := range m {
		width = max(width, lipgloss.Width(name))
	}
	nameStyle := lipgloss.NewStyle().Foreground(colorWhite).Width(width)
	for _, name := range m.Names() {
		line := "  " + nameStyle.Render(name) + "  " + lipgloss.NewStyle().Foreground(colorCyan).Render(m[name])
		if src, ok := sources[name]; ok {
			line += "  " + StyleDim.Render(string(src))
		}
		fmt.Fprintln(out, line)
	}
}

// printCacheStatus prints whether a result came from the cache.
func printCacheStatus(cached bool) {
	status, style := iconFresh, styleComputed
	if cached {
		status, style = iconCached, styleCached
	}
	fmt.Fprintln(out, "  "+style.Render(status))
}

// renderButton draws the anchor as a terminal badge in its state color.
func renderButton(a *button.Anchor) string {
	color := colorRed
	if a.OK() {
		color = colorGreen
	}
	badge := styleButton.BorderForeground(color).Foreground(color).Render(a.Text)
	if !a.OK() {
		return badge
	}
	return lipgloss.JoinVertical(lipgloss.Left, badge, StyleLink.Render(a.Href))
}

func printNewline() {
	fmt.Fprintln(out)
}
