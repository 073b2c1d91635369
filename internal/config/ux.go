package config

// UIConfig holds terminal interface configuration.
type UIConfig struct {
	// Theme is "light" or "dark"
	Theme string `yaml:"theme"`

	// WordWrap is the preview column limit
	WordWrap int `yaml:"word_wrap"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() UIConfig {
	return UIConfig{
		Theme:    "dark",
		WordWrap: 80,
	}
}

// GlamourStyle maps the theme to a glamour style path.
func (c UIConfig) GlamourStyle() string {
	if c.Theme == "light" {
		return "light"
	}
	return "dark"
}
