package tui

import (
	"fmt"
	"strings"

	"github.com/Victor-Leroy/winemix/pkg/domain"
)

// BuildReport writes the human-readable summary of a state.
// Tanks are numbered from 1 for operators.
func BuildReport(sb *strings.Builder, s *domain.State, contents bool) {
	fmt.Fprintf(sb, "State ID: %s\n", s.ID())
	fmt.Fprintf(sb, "Depth: %d\n", s.Depth())
	fmt.Fprintf(sb, "Volume: %g\n", s.Volume())
	fmt.Fprintf(sb, "Used Tanks: %d\n", s.UsedTanks())
	fmt.Fprintf(sb, "Total Wine: %g\n", s.TotalWine())

	if contents {
		sb.WriteString("Tank Contents:\n")
		for i, m := range s.Contents() {
			sum := 0.0
			if m != nil {
				sum = m.Sum()
			}
			fmt.Fprintf(sb, "Tank %d: %g %s\n", i+1, sum, m)
		}
	}
}

// Report is BuildReport into a fresh string.
func Report(s *domain.State, contents bool) string {
	var sb strings.Builder
	BuildReport(&sb, s, contents)
	return sb.String()
}

// Markdown renders the same summary as a markdown document with a tank table.
func Markdown(s *domain.State) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## State `%s`\n\n", s.ID().Short())
	fmt.Fprintf(&sb, "- **Depth:** %d\n", s.Depth())
	fmt.Fprintf(&sb, "- **Volume:** %g\n", s.Volume())
	fmt.Fprintf(&sb, "- **Used Tanks:** %d / %d\n", s.UsedTanks(), s.NumTanks())
	fmt.Fprintf(&sb, "- **Total Wine:** %g\n", s.TotalWine())
	if best := s.BestMix(); best != nil {
		fmt.Fprintf(&sb, "- **Best Mix:** %s (target distance %.3g)\n", best, domain.TargetDistance(best))
	}

	sb.WriteString("\n| Tank | Volume | Wines | Mix |\n|---:|---:|---:|:---|\n")
	for i, m := range s.Contents() {
		if m == nil {
			fmt.Fprintf(&sb, "| %d | - | - | empty |\n", i+1)
			continue
		}
		fmt.Fprintf(&sb, "| %d | %.3g | %d | %s |\n", i+1, m.Sum(), m.CountUsedWines(), m)
	}
	return sb.String()
}
