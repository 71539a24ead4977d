package models

import "strings"

type Theme string

const (
	ThemeAutumn Theme = "Autumn"
	ThemeSummer Theme = "Summer"
	ThemeWinter Theme = "Winter"
	ThemeSpring Theme = "Spring"
)

func ParseTheme(s string) Theme {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "summer":
		return ThemeSummer
	case "winter":
		return ThemeWinter
	case "spring":
		return ThemeSpring
	default:
		return ThemeAutumn
	}
}

func Themes() []Theme {
	return []Theme{ThemeAutumn, ThemeSummer, ThemeWinter, ThemeSpring}
}
