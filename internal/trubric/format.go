package trubric

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// lineWidth is the total visible width of a status line; the dot padding
// between the label and the ending keeps the pass/fail markers aligned
// regardless of label length.
const lineWidth = 100

var (
	labelStyle  = lipgloss.NewStyle().Bold(true)
	passedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1"))
)

// FormatOutcome renders one outcome as a single display line. It is a pure
// function of the outcome; writing the line to a sink is the caller's
// concern.
func FormatOutcome(o Outcome) string {
	label := fmt.Sprintf("%s - %s", o.Kind, strings.ToUpper(string(o.Severity)))

	padding := lineWidth - len(label)
	if padding < 0 {
		padding = 0
	}

	ending := passedStyle.Render("PASSED")
	if o.Result == ResultFail {
		ending = failedStyle.Render("FAILED")
	}

	return labelStyle.Render(label) + strings.Repeat(".", padding) + ending
}
