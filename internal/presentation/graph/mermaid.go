package graph

import (
	"fmt"
	"strings"

	"github.com/Victor-Leroy/winemix/pkg/domain"
	"github.com/Victor-Leroy/winemix/pkg/ports"
)

// GraphOverlay contains exploration results to highlight on the graph.
type GraphOverlay struct {
	Path    []domain.StateID
	Current domain.StateID
}

// GenerateMermaid produces a Mermaid flowchart of explored states.
// Each entry becomes a node; its parent edge is labelled with the transfer.
//   - Root: ((Circle))
//   - Default: [Rectangle]
func GenerateMermaid(entries []ports.Entry, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, entry := range entries {
		id := mermaidID(entry.ID())
		s := entry.State

		opener, closer := "[", "]"
		if entry.IsRoot() {
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s <br/> depth %d, %d tanks\"%s\n",
			id, opener, entry.ID().Short(), s.Depth(), s.UsedTanks(), closer)

		if !entry.IsRoot() {
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", mermaidID(entry.Parent), entry.Transfer, id)
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.StateID]bool)
		for _, id := range overlay.Path {
			if !seen[id] {
				seen[id] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", mermaidID(id))
			}
		}
		if !overlay.Current.IsZero() {
			fmt.Fprintf(&sb, "    class %s current;\n", mermaidID(overlay.Current))
		}
	}

	return sb.String()
}

// mermaidID uses the full hash; Short is only for labels.
func mermaidID(id domain.StateID) string {
	return "s" + id.String()
}
