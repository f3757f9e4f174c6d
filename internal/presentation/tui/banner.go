package tui

import (
	"strings"

	"github.com/muesli/termenv"
)

// Banner returns the coloured title line printed above CLI reports.
// With the Ascii profile the text is returned without escape codes.
func Banner(p termenv.Profile, title string) string {
	var sb strings.Builder
	sb.WriteString(p.String("▌ winemix").Foreground(p.Color("#a78bfa")).Bold().String())
	if title != "" {
		sb.WriteString(" ")
		sb.WriteString(p.String(title).Foreground(p.Color("#f472b6")).String())
	}
	return sb.String()
}
