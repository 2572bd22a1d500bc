package keymap

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"a", "a"},
		{"A", "A"},
		{"Right", "right"},
		{"PageDown", "pgdown"},
		{"page_up", "pgup"},
		{"Return", "enter"},
		{"Escape", "esc"},
		{" ", "space"},
		{"plus", "+"},
		{"minus", "-"},
		{"F11", "f11"},
		{"ctrl+z", "ctrl+z"},
		{"Ctrl+Shift+s", "ctrl+shift+s"},
		{"shift+ctrl+s", "ctrl+shift+s"},
		{"ctrl++", "ctrl++"},
		{"ctrl+ctrl+z", "ctrl+z"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.token); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestResolver_Resolve(t *testing.T) {
	common := Table{
		"navigate_next":     {"Right", "PageDown"},
		"navigate_previous": {"Left"},
		"toggle_pause":      {"space", "Return"},
		"undo":              {"ctrl+z"},
		"save_combo":        {"ctrl+shift+s"},
		"toggle_shuffle":    {"s"},
	}
	r := NewResolver(common, nil)

	tests := []struct {
		name      string
		key       string
		modifiers []string
		want      string
	}{
		{"bare key", "Right", nil, "navigate_next"},
		{"alias", "PageDown", nil, "navigate_next"},
		{"space", " ", nil, "toggle_pause"},
		{"modifier qualified", "z", []string{"ctrl"}, "undo"},
		{"modifier order independent", "s", []string{"ctrl", "shift"}, "save_combo"},
		{"modifier order reversed", "s", []string{"shift", "ctrl"}, "save_combo"},
		{"falls back to bare key", "s", []string{"alt"}, "toggle_shuffle"},
		{"unbound", "w", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.key, tt.modifiers); got != tt.want {
				t.Errorf("Resolve(%q, %v) = %q, want %q", tt.key, tt.modifiers, got, tt.want)
			}
		})
	}
}

func TestResolver_ContextOverridesCommon(t *testing.T) {
	common := Table{
		"toggle_pause": {"t"},
	}
	context := Table{
		"toggle_always_on_top": {"t"},
	}
	r := NewResolver(common, context)

	if got := r.Resolve("t", nil); got != "toggle_always_on_top" {
		t.Errorf("Resolve(t) = %q, want toggle_always_on_top", got)
	}
	// The displaced common binding must not linger in the reverse map.
	if tokens := r.TokensFor("toggle_pause"); len(tokens) != 0 {
		t.Errorf("TokensFor(toggle_pause) = %v, want empty", tokens)
	}
}

func TestResolver_CaseSensitiveSingleChars(t *testing.T) {
	r := NewResolver(Table{
		"open_folder": {"o"},
		"reveal_file": {"O"},
	}, nil)

	if got := r.Resolve("o", nil); got != "open_folder" {
		t.Errorf("Resolve(o) = %q, want open_folder", got)
	}
	if got := r.Resolve("O", nil); got != "reveal_file" {
		t.Errorf("Resolve(O) = %q, want reveal_file", got)
	}
}

func TestResolver_ResolveToken(t *testing.T) {
	r := NewResolver(Table{
		"navigate_next": {"swipe_left"},
		"undo":          {"ctrl+z"},
	}, nil)

	if got := r.ResolveToken("swipe_left"); got != "navigate_next" {
		t.Errorf("ResolveToken(swipe_left) = %q, want navigate_next", got)
	}
	if got := r.ResolveToken("ctrl+z"); got != "undo" {
		t.Errorf("ResolveToken(ctrl+z) = %q, want undo", got)
	}
	if got := r.ResolveToken("pinch_in"); got != "" {
		t.Errorf("ResolveToken(pinch_in) = %q, want empty", got)
	}
}

func TestResolver_TokensFor(t *testing.T) {
	r := NewResolver(Table{
		"navigate_next": {"Right", "PageDown", "Right"},
	}, nil)

	tokens := r.TokensFor("navigate_next")
	if len(tokens) != 2 {
		t.Fatalf("TokensFor() = %v, want 2 deduplicated tokens", tokens)
	}
}
