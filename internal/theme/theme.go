// Package theme handles the light/dark colour scheme preference.
package theme

import (
	"net/http"
	"time"
)

type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"

	Default = Dark

	CookieName = "gta6_theme"
)

// Parse returns the theme named by s, or Default for anything else.
func Parse(s string) Theme {
	switch Theme(s) {
	case Dark, Light:
		return Theme(s)
	default:
		return Default
	}
}

func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// Icon is the symbol shown on the toggle: the theme it switches to.
func (t Theme) Icon() string {
	if t == Light {
		return "🌙"
	}
	return "☀️"
}

func (t Theme) AriaLabel() string {
	return "Switch to " + string(t.Toggle()) + " mode"
}

func FromRequest(r *http.Request) Theme {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return Default
	}
	return Parse(c.Value)
}

func (t Theme) Cookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    string(t),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	}
}
