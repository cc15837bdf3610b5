package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lhaig/calcc/internal/diagnostic"
)

// Color palette
var (
	colorError   = lipgloss.Color("#EF4444") // Red
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorSuccess = lipgloss.Color("#10B981") // Emerald
	colorMuted   = lipgloss.Color("#6B7280") // Gray
)

type styles struct {
	err     lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
	hint    lipgloss.Style
	success lipgloss.Style
	heading lipgloss.Style
}

// newStyles returns the CLI styles. With color off every style renders
// text unchanged.
func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{err: plain, warning: plain, info: plain, hint: plain, success: plain, heading: plain}
	}
	return styles{
		err:     lipgloss.NewStyle().Foreground(colorError).Bold(true),
		warning: lipgloss.NewStyle().Foreground(colorWarning),
		info:    lipgloss.NewStyle().Foreground(colorMuted),
		hint:    lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		success: lipgloss.NewStyle().Foreground(colorSuccess),
		heading: lipgloss.NewStyle().Bold(true).Underline(true),
	}
}

// diagnostics renders every item, styling its header by severity and its
// hint line as a hint.
func (s styles) diagnostics(diag *diagnostic.Diagnostics, filename string) string {
	var sb strings.Builder
	for i, item := range diag.All() {
		if i > 0 {
			sb.WriteString("\n")
		}
		header, hint, hasHint := strings.Cut(item.Format(filename), "\n")
		sb.WriteString(s.severity(item.Severity).Render(header))
		if hasHint {
			sb.WriteString("\n")
			sb.WriteString(s.hint.Render(hint))
		}
	}
	return sb.String()
}

func (s styles) severity(sev diagnostic.Severity) lipgloss.Style {
	switch sev {
	case diagnostic.Error:
		return s.err
	case diagnostic.Warning:
		return s.warning
	default:
		return s.info
	}
}
