package tui

import (
	"strings"
)

// formField is a single input line in a form. When options is non-nil the
// field is a left/right choice selector instead of free text.
type formField struct {
	label       string
	value       string
	placeholder string
	secret      bool
	options     []string
}

// form is a vertical stack of fields with a single focused input. Submission
// and validation stay with the owning model; the form only does editing and
// focus movement.
type form struct {
	fields []formField
	focus  int
}

func newForm(fields ...formField) form {
	return form{fields: fields}
}

func (f *form) value(i int) string {
	return f.fields[i].value
}

func (f *form) setValue(i int, v string) {
	f.fields[i].value = v
}

func (f *form) reset() {
	for i := range f.fields {
		if f.fields[i].options != nil {
			f.fields[i].value = f.fields[i].options[0]
		} else {
			f.fields[i].value = ""
		}
	}
	f.focus = 0
}

// handleKey consumes focus movement and editing keys. Returns false for keys
// the form does not handle (enter, esc, etc.) so the owner can act on them.
func (f *form) handleKey(key string) bool {
	switch key {
	case "tab", "down":
		f.focus = (f.focus + 1) % len(f.fields)
		return true
	case "shift+tab", "up":
		f.focus = (f.focus - 1 + len(f.fields)) % len(f.fields)
		return true
	}
	field := &f.fields[f.focus]
	if field.options != nil {
		switch key {
		case "left", "right":
			idx := 0
			for i, opt := range field.options {
				if opt == field.value {
					idx = i
					break
				}
			}
			if key == "left" {
				idx = (idx - 1 + len(field.options)) % len(field.options)
			} else {
				idx = (idx + 1) % len(field.options)
			}
			field.value = field.options[idx]
			return true
		}
		return false
	}
	if edited := editRune(field.value, key); edited != field.value {
		field.value = edited
		return true
	}
	return key == "backspace"
}

func (f *form) render() string {
	var b strings.Builder
	for i, field := range f.fields {
		label := metaStyle.Render(field.label)
		if i == f.focus {
			label = selectedStyle.Render(field.label)
		}
		b.WriteString("  " + label + "\n")

		if field.options != nil {
			var opts []string
			for _, opt := range field.options {
				if opt == field.value {
					opts = append(opts, accentStyle.Render("["+opt+"]"))
				} else {
					opts = append(opts, dimStyle.Render(" "+opt+" "))
				}
			}
			b.WriteString("  " + inputPromptStyle.Render("‣ ") + strings.Join(opts, " "))
		} else {
			shown := field.value
			if field.secret {
				shown = strings.Repeat("*", len([]rune(shown)))
			}
			if shown == "" && i != f.focus {
				shown = inputPlaceholderStyle.Render(field.placeholder)
			} else {
				shown = normalStyle.Render(shown)
			}
			cursor := ""
			if i == f.focus {
				cursor = accentStyle.Render("█")
			}
			b.WriteString("  " + inputPromptStyle.Render("> ") + shown + cursor)
		}
		b.WriteString("\n\n")
	}
	return b.String()
}
