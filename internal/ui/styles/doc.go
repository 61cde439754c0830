// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for blogsmith.

All colors are Lip Gloss AdaptiveColor values, so the same palette serves
light and dark terminals.

# Color System (colors.go)

  - Purple - primary accent, focus and selection
  - Cyan - brand color, headers and key hints
  - Emerald - success banners, favorable SEO scores, online indicator
  - Amber - cautionary SEO scores, pending states
  - Rose - errors, unfavorable SEO scores, destructive confirmations

SEO tiers map onto colors through TierColor.

# Theme System (theme.go)

	theme := styles.NewTheme("auto")
	badge := theme.SEOBadge(model.TierFavorable).Render("85/100")

"auto" follows the terminal background; "dark" and "light" force a palette.

# Animation System (animations.go)

ASCII spinner frame sets, convertible to bubbles spinners.
*/
package styles
