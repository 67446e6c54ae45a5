package components

import (
	"fmt"
	"strings"
)

// RenderBar draws a fixed-width progress bar followed by a percentage.
// Fractions outside [0, 1] are clamped.
func RenderBar(styles Styles, fraction float64, width int) string {
	fraction = max(0, min(fraction, 1))
	filled := int(fraction * float64(width))

	bar := styles.ProgressFull.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmpty.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %3d%%", bar, int(fraction*100+0.5))
}
