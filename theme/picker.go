package theme

// Control is one button of the theme picker.
type Control struct {
	Name     string
	Value    string
	Kind     Kind
	Icon     string
	Tooltip  string
	Enabled  bool
	Selected bool
}

// Label is the accessible label for the control.
func (c Control) Label() string {
	if !c.Enabled {
		return "Theme Locked"
	}
	return "Theme " + c.Name
}

// Picker builds the picker controls for a visitor whose current theme is
// current and who has unlocked the given bonus themes. Every catalogue entry
// yields a control in display order; themes the visitor cannot use become
// disabled placeholders that reveal nothing about the theme.
func Picker(current string, unlocked []string) []Control {
	controls := make([]Control, 0, len(catalogue))
	for _, t := range catalogue {
		if !Enabled(t.Name, unlocked) {
			controls = append(controls, Control{
				Icon:    "la-lock",
				Tooltip: LockedTooltip,
			})
			continue
		}
		controls = append(controls, Control{
			Name:     t.Name,
			Value:    t.Value(),
			Kind:     t.Kind,
			Icon:     t.Icon(),
			Tooltip:  t.Name,
			Enabled:  true,
			Selected: t.Value() == current,
		})
	}
	return controls
}
