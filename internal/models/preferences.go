package models

// Theme values
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Preferences is the per-session chrome state (theme and sidebar)
type Preferences struct {
	Theme       string `json:"theme"`
	SidebarOpen bool   `json:"sidebarOpen"`
}

// DefaultPreferences follows the system theme with the sidebar open
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:       ThemeSystem,
		SidebarOpen: true,
	}
}

// ToggleTheme switches dark to light and anything else to dark
func (p *Preferences) ToggleTheme() {
	if p.Theme == ThemeDark {
		p.Theme = ThemeLight
		return
	}
	p.Theme = ThemeDark
}
