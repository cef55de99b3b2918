package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shindan/internal/ui/theme"
)

const bannerArt = `
 ███████╗██╗  ██╗██╗███╗   ██╗██████╗  █████╗ ███╗   ██╗
 ██╔════╝██║  ██║██║████╗  ██║██╔══██╗██╔══██╗████╗  ██║
 ███████╗███████║██║██╔██╗ ██║██║  ██║███████║██╔██╗ ██║
 ╚════██║██╔══██║██║██║╚██╗██║██║  ██║██╔══██║██║╚██╗██║
 ███████║██║  ██║██║██║ ╚████║██████╔╝██║  ██║██║ ╚████║
 ╚══════╝╚═╝  ╚═╝╚═╝╚═╝  ╚═══╝╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═══╝`

const bannerCompact = "S H I N D A N"

// RenderBanner returns the banner, or a compact fallback for terminals
// narrower than 60 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 60 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
