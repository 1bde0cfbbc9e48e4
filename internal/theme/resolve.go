package theme

import (
	"github.com/marcus/daygrid/internal/community"
	"github.com/marcus/daygrid/internal/config"
	"github.com/marcus/daygrid/internal/styles"
)

// ResolvedTheme represents a fully-determined theme configuration.
type ResolvedTheme struct {
	BaseName      string
	CommunityName string
	Overrides     map[string]interface{}
	Styles        map[string]config.StyleConfig
}

// ResolveTheme determines the effective theme from config.
// An unknown base name falls back to "default".
func ResolveTheme(cfg *config.Config) ResolvedTheme {
	resolved := ResolvedTheme{
		BaseName:      cfg.UI.Theme.Name,
		CommunityName: cfg.UI.Theme.Community,
		Overrides:     cfg.UI.Theme.Overrides,
		Styles:        cfg.UI.Styles,
	}
	if resolved.BaseName == "" || !styles.IsValidTheme(resolved.BaseName) {
		resolved.BaseName = "default"
	}
	return resolved
}

// ApplyResolved applies a resolved theme to the styles system and
// registers the configured style classes.
func ApplyResolved(r ResolvedTheme) {
	styles.ResetNamedStyles()
	for name, sc := range r.Styles {
		styles.RegisterNamedStyle(name, sc.Spec())
	}

	if r.CommunityName != "" {
		scheme := community.GetScheme(r.CommunityName)
		if scheme != nil {
			palette := community.Convert(scheme)
			communityOverrides := community.PaletteToOverrides(palette)
			// Layer user overrides on top of community-derived colors
			for k, v := range r.Overrides {
				communityOverrides[k] = v
			}
			styles.ApplyThemeWithGenericOverrides(r.BaseName, communityOverrides)
			return
		}
	}

	if len(r.Overrides) > 0 {
		styles.ApplyThemeWithGenericOverrides(r.BaseName, r.Overrides)
	} else {
		styles.ApplyTheme(r.BaseName)
	}
}
