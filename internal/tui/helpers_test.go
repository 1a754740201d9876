package tui

import "testing"

func TestEditRune(t *testing.T) {
	tests := []struct {
		name string
		text string
		key  string
		want string
	}{
		{"append rune", "hell", "o", "hello"},
		{"append space", "hello", "space", "hello "},
		{"literal space", "hello", " ", "hello "},
		{"backspace", "hello", "backspace", "hell"},
		{"backspace empty", "", "backspace", ""},
		{"backspace multibyte", "héllo", "backspace", "héll"},
		{"ignore named key", "hello", "enter", "hello"},
		{"ignore arrow", "hello", "left", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := editRune(tt.text, tt.key); got != tt.want {
				t.Errorf("editRune(%q, %q) = %q, want %q", tt.text, tt.key, got, tt.want)
			}
		})
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncStr("a longer string", 8); got != "a longe…" {
		t.Errorf("got %q", got)
	}
}

func TestTruncateToHeight(t *testing.T) {
	in := "a\nb\nc\nd\n"
	if got := truncateToHeight(in, 2); got != "a\nb\n" {
		t.Errorf("got %q", got)
	}
	if got := truncateToHeight(in, 0); got != in {
		t.Errorf("non-positive max should pass through, got %q", got)
	}
	if got := truncateToHeight(in, 10); got != in {
		t.Errorf("fitting input should pass through, got %q", got)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{125000, "₹125,000"},
		{1234567, "₹1,234,567"},
		{-5000, "-₹5,000"},
	}
	for _, tt := range tests {
		if got := formatMoney(tt.in); got != tt.want {
			t.Errorf("formatMoney(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormFocusAndEditing(t *testing.T) {
	f := newForm(
		formField{label: "A"},
		formField{label: "B"},
		formField{label: "C", options: []string{"one", "two"}, value: "one"},
	)
	if f.focus != 0 {
		t.Fatalf("initial focus = %d", f.focus)
	}
	f.handleKey("tab")
	if f.focus != 1 {
		t.Errorf("focus after tab = %d, want 1", f.focus)
	}
	f.handleKey("shift+tab")
	f.handleKey("shift+tab")
	if f.focus != 2 {
		t.Errorf("focus should wrap backwards, got %d", f.focus)
	}

	// Choice field cycles with left/right.
	f.handleKey("right")
	if f.value(2) != "two" {
		t.Errorf("choice after right = %q, want two", f.value(2))
	}
	f.handleKey("right")
	if f.value(2) != "one" {
		t.Errorf("choice should wrap, got %q", f.value(2))
	}

	f.focus = 0
	f.handleKey("h")
	f.handleKey("i")
	if f.value(0) != "hi" {
		t.Errorf("text field = %q, want hi", f.value(0))
	}

	f.reset()
	if f.value(0) != "" || f.value(2) != "one" || f.focus != 0 {
		t.Error("reset should clear text, restore first option, refocus")
	}
}
