package theme

import (
	"fmt"
	"strings"
)

// Palette holds the values of the CSS custom properties a theme defines.
type Palette struct {
	TextPrimary     string
	TextSecondary   string
	TextLink        string
	TextDefault     string
	TextDefaultSoft string
	TextInverse     string
	TextInverseSoft string

	BgPrimary      string
	BgPrimaryLight string
	BgCompliment   string
	BgAccent       string
	BgAccentLight  string
	BgSecondary    string
	BgDefault      string
	BgInverse      string

	LogoOne   string
	LogoTwo   string
	LogoThree string
}

// Vars returns the palette as (property, value) pairs in a stable order.
func (p Palette) Vars() [][2]string {
	return [][2]string{
		{"--color-text-primary", p.TextPrimary},
		{"--color-text-secondary", p.TextSecondary},
		{"--color-text-link", p.TextLink},
		{"--color-text-default", p.TextDefault},
		{"--color-text-default-soft", p.TextDefaultSoft},
		{"--color-text-inverse", p.TextInverse},
		{"--color-text-inverse-soft", p.TextInverseSoft},
		{"--color-bg-primary", p.BgPrimary},
		{"--color-bg-primary-light", p.BgPrimaryLight},
		{"--color-bg-compliment", p.BgCompliment},
		{"--color-bg-accent", p.BgAccent},
		{"--color-bg-accent-light", p.BgAccentLight},
		{"--color-bg-secondary", p.BgSecondary},
		{"--color-bg-default", p.BgDefault},
		{"--color-bg-inverse", p.BgInverse},
		{"--color-logo-one", p.LogoOne},
		{"--color-logo-two", p.LogoTwo},
		{"--color-logo-three", p.LogoThree},
	}
}

// Stylesheet renders one rule per theme. The default theme is also applied
// to :root so pages render sensibly before a class is set.
func Stylesheet() string {
	var b strings.Builder
	if t, ok := Lookup(Default); ok {
		writeRule(&b, ":root", t.Palette)
	}
	for _, t := range catalogue {
		writeRule(&b, "."+t.Value(), t.Palette)
	}
	return b.String()
}

func writeRule(b *strings.Builder, selector string, p Palette) {
	fmt.Fprintf(b, "%s {\n", selector)
	for _, kv := range p.Vars() {
		if kv[1] == "" {
			continue
		}
		fmt.Fprintf(b, "  %s: %s;\n", kv[0], kv[1])
	}
	b.WriteString("}\n")
}

var paletteBlue = Palette{
	TextPrimary: "#ffffff", TextSecondary: "#1f2937", TextLink: "#067bc2",
	TextDefault: "#111111", TextDefaultSoft: "#444444", TextInverse: "#ffffff", TextInverseSoft: "#e5e7eb",
	BgPrimary: "#067bc2", BgPrimaryLight: "#3a9bd6", BgCompliment: "#84bcda", BgAccent: "#f37748",
	BgAccentLight: "#f69a77", BgSecondary: "#eef4f8", BgDefault: "#ffffff", BgInverse: "#1f2937",
	LogoOne: "#067bc2", LogoTwo: "#84bcda", LogoThree: "#f37748",
}

var paletteRhubarb = Palette{
	TextPrimary: "#ffffff", TextSecondary: "#3d1a24", TextLink: "#c2185b",
	TextDefault: "#2b1218", TextDefaultSoft: "#5c3a42", TextInverse: "#fff8e1", TextInverseSoft: "#ffe9a8",
	BgPrimary: "#c2185b", BgPrimaryLight: "#e05287", BgCompliment: "#ffd54f", BgAccent: "#ffca28",
	BgAccentLight: "#ffe082", BgSecondary: "#fff3e0", BgDefault: "#fffdf7", BgInverse: "#3d1a24",
	LogoOne: "#c2185b", LogoTwo: "#ffca28", LogoThree: "#8bc34a",
}

var paletteMidnight = Palette{
	TextPrimary: "#ffffff", TextSecondary: "#e2e8f0", TextLink: "#90cdf4",
	TextDefault: "#f7fafc", TextDefaultSoft: "#a0aec0", TextInverse: "#1a202c", TextInverseSoft: "#4a5568",
	BgPrimary: "#553c9a", BgPrimaryLight: "#6b46c1", BgCompliment: "#2c5282", BgAccent: "#d53f8c",
	BgAccentLight: "#ed64a6", BgSecondary: "#2d3748", BgDefault: "#1a202c", BgInverse: "#f7fafc",
	LogoOne: "#805ad5", LogoTwo: "#d53f8c", LogoThree: "#90cdf4",
}

var paletteApocalypse = Palette{
	TextPrimary: "#fff5f5", TextSecondary: "#fed7d7", TextLink: "#f6ad55",
	TextDefault: "#fff5f5", TextDefaultSoft: "#feb2b2", TextInverse: "#1a0b0b", TextInverseSoft: "#4a1c1c",
	BgPrimary: "#9b2c2c", BgPrimaryLight: "#c53030", BgCompliment: "#744210", BgAccent: "#dd6b20",
	BgAccentLight: "#ed8936", BgSecondary: "#2d1414", BgDefault: "#1a0b0b", BgInverse: "#fff5f5",
	LogoOne: "#e53e3e", LogoTwo: "#dd6b20", LogoThree: "#ecc94b",
}

var paletteFallGuys = Palette{
	TextPrimary: "#ffffff", TextSecondary: "#3c1361", TextLink: "#ff4fa3",
	TextDefault: "#2a0d45", TextDefaultSoft: "#5b3a7a", TextInverse: "#ffffff", TextInverseSoft: "#fde2ff",
	BgPrimary: "#ff4fa3", BgPrimaryLight: "#ff85c0", BgCompliment: "#3dd9ff", BgAccent: "#ffe600",
	BgAccentLight: "#fff266", BgSecondary: "#f3e8ff", BgDefault: "#ffffff", BgInverse: "#3c1361",
	LogoOne: "#ff4fa3", LogoTwo: "#3dd9ff", LogoThree: "#ffe600",
}

var paletteMatrix = Palette{
	TextPrimary: "#000000", TextSecondary: "#00ff41", TextLink: "#39ff14",
	TextDefault: "#00ff41", TextDefaultSoft: "#008f11", TextInverse: "#0d0208", TextInverseSoft: "#003b00",
	BgPrimary: "#00ff41", BgPrimaryLight: "#39ff14", BgCompliment: "#003b00", BgAccent: "#008f11",
	BgAccentLight: "#00b32c", BgSecondary: "#0a1a0a", BgDefault: "#0d0208", BgInverse: "#00ff41",
	LogoOne: "#00ff41", LogoTwo: "#008f11", LogoThree: "#003b00",
}

var paletteDietPurple = Palette{
	TextPrimary: "#ffffff", TextSecondary: "#44337a", TextLink: "#805ad5",
	TextDefault: "#322659", TextDefaultSoft: "#6b5b95", TextInverse: "#ffffff", TextInverseSoft: "#e9d8fd",
	BgPrimary: "#9f7aea", BgPrimaryLight: "#b794f4", BgCompliment: "#e9d8fd", BgAccent: "#ed64a6",
	BgAccentLight: "#f687b3", BgSecondary: "#faf5ff", BgDefault: "#ffffff", BgInverse: "#44337a",
	LogoOne: "#9f7aea", LogoTwo: "#ed64a6", LogoThree: "#b794f4",
}
