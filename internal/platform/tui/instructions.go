package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// rules shown in the how-to-play overlay.
var rules = []string{
	"Race from square 1 to square 100.",
	"Players take turns rolling one die.",
	"A ladder's bottom climbs you to its top.",
	"A snake's head slides you down to its tail.",
	"Only one jump per move, never a chain.",
	"Reaching 100 takes the exact roll;",
	"roll too high and you stay put.",
	"First player on 100 wins.",
}

// renderInstructions draws the rules and the full key help, centered.
func renderInstructions(keys GameKeyMap, width, height int) string {
	h := help.New()
	h.ShowAll = true

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("HOW TO PLAY"))
	b.WriteString("\n\n")
	for _, r := range rules {
		b.WriteString("- " + r + "\n")
	}
	b.WriteString("\n")
	b.WriteString(h.View(keys))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Press any key to continue"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 2).
		Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
