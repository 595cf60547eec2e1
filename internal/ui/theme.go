package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending, Done, Selected lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	SymOK, SymFail, SymWarn  string
	Border                   lipgloss.Border
	BorderColor              lipgloss.TerminalColor
}

var asciiBorder = lipgloss.Border{
	Top: "-", Bottom: "-", Left: "|", Right: "|",
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
}

var current = classic()

// SetTheme switches the current theme. Unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = neon()
	case "mono":
		current = mono()
	default:
		current = classic()
	}
}

// Current is the active theme.
func Current() Theme { return current }

func classic() Theme {
	s := lipgloss.NewStyle()
	return Theme{
		Title:    s.Bold(true),
		Muted:    s.Faint(true),
		Accent:   s.Foreground(lipgloss.Color("12")),
		Success:  s.Foreground(lipgloss.Color("42")),
		Error:    s.Foreground(lipgloss.Color("9")).Bold(true),
		Pending:  s.Foreground(lipgloss.Color("214")),
		Done:     s.Faint(true).Strikethrough(true),
		Selected: s.Bold(true).Reverse(true),

		BoxUnchecked: "☐", BoxChecked: "☑",
		SymDone: "✔", SymPending: "•",
		SymOK: "✔", SymFail: "✖", SymWarn: "!",
		Border:      lipgloss.NormalBorder(),
		BorderColor: lipgloss.Color("8"),
	}
}

func neon() Theme {
	t := classic()
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	t.BoxUnchecked, t.BoxChecked = "◻", "◼"
	t.Border = lipgloss.RoundedBorder()
	t.BorderColor = lipgloss.Color("13")
	return t
}

func mono() Theme {
	s := lipgloss.NewStyle()
	return Theme{
		Title: s, Muted: s, Accent: s, Success: s, Error: s, Pending: s, Done: s, Selected: s,

		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		SymDone: "x", SymPending: "-",
		SymOK: "ok:", SymFail: "error:", SymWarn: "warning:",
		Border:      asciiBorder,
		BorderColor: lipgloss.NoColor{},
	}
}
