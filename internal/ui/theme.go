package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bamsammich/chunkcheck/internal/config"
)

// Catppuccin Mocha palette, mutable so config can override.
var (
	ColorGreen  = lipgloss.Color("#a6e3a1")
	ColorYellow = lipgloss.Color("#f9e2af")
	ColorRed    = lipgloss.Color("#f38ba8")
	ColorMuted  = lipgloss.Color("#5a6278")
	ColorBright = lipgloss.Color("#cdd6f4")
)

var (
	stylePass   lipgloss.Style
	styleFail   lipgloss.Style
	styleWarn   lipgloss.Style
	styleLabel  lipgloss.Style
	styleDetail lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	stylePass = lipgloss.NewStyle().Bold(true).Foreground(ColorGreen)
	styleFail = lipgloss.NewStyle().Bold(true).Foreground(ColorRed)
	styleWarn = lipgloss.NewStyle().Bold(true).Foreground(ColorYellow)
	styleLabel = lipgloss.NewStyle().Foreground(ColorBright)
	styleDetail = lipgloss.NewStyle().Foreground(ColorMuted)
}

// ApplyTheme overrides palette colors from the config file.
func ApplyTheme(t config.ThemeConfig) {
	set := func(dst *lipgloss.Color, v *string) {
		if v != nil && *v != "" {
			*dst = lipgloss.Color(*v)
		}
	}
	set(&ColorGreen, t.Green)
	set(&ColorYellow, t.Yellow)
	set(&ColorRed, t.Red)
	set(&ColorMuted, t.Muted)
	set(&ColorBright, t.Bright)
	rebuildStyles()
}
