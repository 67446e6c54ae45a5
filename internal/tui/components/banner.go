package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var bannerArt = []string{
	` __  __  ____ ____  _ _ `,
	`|  \/  |/ ___|  _ \/ / |`,
	`| |\/| | |   | |_) | | |`,
	`| |  | | |___|  __/| | |`,
	`|_|  |_|\____|_|   |_|_|`,
}

// RenderBanner returns the mcp11 logo with its tagline.
func RenderBanner(styles Styles) string {
	logo := styles.Title.Render(strings.Join(bannerArt, "\n"))
	tagline := styles.Muted.Render("MCP server installer for Agent11")
	return lipgloss.JoinVertical(lipgloss.Left, logo, tagline)
}
