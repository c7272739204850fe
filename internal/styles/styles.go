// Package styles provides shared lipgloss styles for the shell and CLI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	ColorGreen  = lipgloss.Color("#9ece6a")
	ColorYellow = lipgloss.Color("#e0af68")
	ColorBlue   = lipgloss.Color("#7aa2f7")
	ColorPink   = lipgloss.Color("#f7768e")
	ColorGray   = lipgloss.Color("#565f89")
)

// Banner ASCII art shown when the shell starts.
const Banner = `
   ___ _   _ _ __| | |__   __ _| |__  _   _
  / __| | | | '__| | '_ \ / _' | '_ \| | | |
 | (__| |_| | |  | | |_) | (_| | |_) | |_| |
  \___|\__,_|_|  |_|_.__/ \__,_|_.__/ \__, |
                                      |___/`

// BannerStyle styles the ASCII art banner.
var BannerStyle = lipgloss.NewStyle().
	Foreground(ColorPink).
	Bold(true)

// TaglineStyle styles the line under the banner.
var TaglineStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// PromptStyle styles the prompt text.
var PromptStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Bold(true)

// CommandStyle styles command names in help output.
var CommandStyle = lipgloss.NewStyle().
	Foreground(ColorGreen)

// HintStyle styles secondary text.
var HintStyle = lipgloss.NewStyle().
	Foreground(ColorGray)
