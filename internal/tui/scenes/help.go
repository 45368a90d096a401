package scenes

import (
	"strings"

	"github.com/actuclaim/actuclaim/internal/tui/tuistyles"
)

// renderHelpLine joins key/description pairs into a single muted line.
func renderHelpLine(pairs [][2]string) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = tuistyles.HelpKeyStyle.Render(p[0]) + " " + tuistyles.HelpDescStyle.Render(p[1])
	}
	return strings.Join(parts, tuistyles.HelpDescStyle.Render(" • "))
}
