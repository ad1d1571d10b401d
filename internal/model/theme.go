package model

// Theme is the UI color preference, persisted independently of the
// reminder collection.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
