// Package theme holds the site's colour themes: the fixed catalogue split into
// light, dark and unlockable sets, the picker model rendered by the views, and
// the stylesheet that maps each theme onto CSS custom properties.
package theme

import (
	"strings"
)

// Kind labels which set a theme belongs to.
type Kind string

const (
	KindLight      Kind = "light"
	KindDark       Kind = "dark"
	KindUnlockable Kind = "unlockable"
)

// Default is the theme value used when a visitor has not picked one.
const Default = "theme-blue"

// LockedTooltip is shown on placeholders for themes the visitor has not found yet.
const LockedTooltip = "Find this theme by exploring the site."

// Theme is a single catalogue entry.
type Theme struct {
	Name    string
	Kind    Kind
	Palette Palette
}

// Value returns the CSS class / cookie value for the theme, e.g. "theme-rhubarbandcustard".
func (t Theme) Value() string {
	return Value(t.Name)
}

// Icon returns the line-awesome icon class for the theme's kind.
func (t Theme) Icon() string {
	switch t.Kind {
	case KindLight:
		return "la-sun"
	case KindDark:
		return "la-moon"
	default:
		return "la-gift"
	}
}

// catalogue is in display order: light, dark, unlockable.
var catalogue = []Theme{
	{Name: "Blue", Kind: KindLight, Palette: paletteBlue},
	{Name: "Rhubarb and Custard", Kind: KindLight, Palette: paletteRhubarb},
	{Name: "Midnight Dreams", Kind: KindDark, Palette: paletteMidnight},
	{Name: "Apocalypse", Kind: KindDark, Palette: paletteApocalypse},
	{Name: "Fall Guys", Kind: KindUnlockable, Palette: paletteFallGuys},
	{Name: "Matrix", Kind: KindUnlockable, Palette: paletteMatrix},
	{Name: "Diet Purple", Kind: KindUnlockable, Palette: paletteDietPurple},
}

// All returns the catalogue in display order.
func All() []Theme {
	out := make([]Theme, len(catalogue))
	copy(out, catalogue)
	return out
}

// Names returns the names of every theme of the given kind.
func Names(kind Kind) []string {
	var names []string
	for _, t := range catalogue {
		if t.Kind == kind {
			names = append(names, t.Name)
		}
	}
	return names
}

// Value converts a theme name to its value: "theme-" followed by the
// lowercased name with spaces removed.
func Value(name string) string {
	return "theme-" + strings.ReplaceAll(strings.ToLower(name), " ", "")
}

// ByName finds a theme by its display name.
func ByName(name string) (Theme, bool) {
	for _, t := range catalogue {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Lookup finds a theme by its value.
func Lookup(value string) (Theme, bool) {
	for _, t := range catalogue {
		if t.Value() == value {
			return t, true
		}
	}
	return Theme{}, false
}

// Visible reports whether the named theme is always available (light or dark).
func Visible(name string) bool {
	t, ok := ByName(name)
	return ok && t.Kind != KindUnlockable
}

// Unlockable reports whether the named theme is a bonus theme.
func Unlockable(name string) bool {
	t, ok := ByName(name)
	return ok && t.Kind == KindUnlockable
}

// Enabled reports whether a visitor with the given unlocked names can use the theme.
func Enabled(name string, unlocked []string) bool {
	if Visible(name) {
		return true
	}
	if !Unlockable(name) {
		return false
	}
	for _, u := range unlocked {
		if u == name {
			return true
		}
	}
	return false
}

// Allowed reports whether value may be set as the current theme.
func Allowed(value string, unlocked []string) bool {
	t, ok := Lookup(value)
	return ok && Enabled(t.Name, unlocked)
}

// Resolve returns value when it is allowed, otherwise Default.
func Resolve(value string, unlocked []string) string {
	if Allowed(value, unlocked) {
		return value
	}
	return Default
}

// ParseUnlocked decodes the cookie form of the unlocked list.
func ParseUnlocked(s string) []string {
	if s == "" {
		return nil
	}
	return normalizeUnlocked(strings.Split(s, ","))
}

// FormatUnlocked encodes unlocked names for the cookie. Unknown names and
// duplicates are dropped and the result is in catalogue order.
func FormatUnlocked(names []string) string {
	return strings.Join(normalizeUnlocked(names), ",")
}

// Unlock adds name to unlocked. The second result is false if name is not
// an unlockable theme.
func Unlock(unlocked []string, name string) ([]string, bool) {
	if !Unlockable(name) {
		return normalizeUnlocked(unlocked), false
	}
	return normalizeUnlocked(append(unlocked, name)), true
}

func normalizeUnlocked(names []string) []string {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.TrimSpace(n)] = struct{}{}
	}
	var out []string
	for _, t := range catalogue {
		if t.Kind != KindUnlockable {
			continue
		}
		if _, ok := set[t.Name]; ok {
			out = append(out, t.Name)
		}
	}
	return out
}
