package keymap

import (
	"slices"
	"strings"
)

// keyAliases maps symbolic key names from configuration or input adapters
// to canonical tokens. Multi-character names are lowercased before lookup;
// single characters keep their case so that 'O' and 'o' stay distinct.
var keyAliases = map[string]string{
	" ":          "space",
	"spacebar":   "space",
	"return":     "enter",
	"escape":     "esc",
	"arrowleft":  "left",
	"arrowright": "right",
	"arrowup":    "up",
	"arrowdown":  "down",
	"pageup":     "pgup",
	"page_up":    "pgup",
	"pagedown":   "pgdown",
	"page_down":  "pgdown",
	"plus":       "+",
	"minus":      "-",
	"equal":      "=",
	"del":        "delete",
}

// Normalize canonicalizes an input token. Modifier prefixes are
// lowercased, sorted, and deduplicated so that modifier order never
// affects matching; the base key is mapped through keyAliases.
func Normalize(token string) string {
	base, mods := splitToken(token)
	base = canonicalKey(base)
	if base == "" || len(mods) == 0 {
		return base
	}
	slices.Sort(mods)
	mods = dedupe(mods)
	return strings.Join(append(mods, base), "+")
}

// Qualified builds the normalized modifier-qualified token for a key and
// an active modifier set.
func Qualified(key string, modifiers []string) string {
	mods := make([]string, 0, len(modifiers))
	for _, m := range modifiers {
		if m != "" {
			mods = append(mods, strings.ToLower(m))
		}
	}
	if len(mods) == 0 {
		return Normalize(key)
	}
	slices.Sort(mods)
	mods = dedupe(mods)
	return strings.Join(append(mods, canonicalKey(key)), "+")
}

// splitToken splits "ctrl+shift+s" into its base key and modifier names.
// A trailing "+" base ("ctrl++") means the key is the plus sign itself.
func splitToken(token string) (string, []string) {
	if token == "+" || !strings.Contains(token, "+") {
		return token, nil
	}
	i := strings.LastIndex(token, "+")
	base := token[i+1:]
	head := token[:i]
	if base == "" {
		base = "+"
		head = strings.TrimSuffix(head, "+")
	}
	var mods []string
	for _, m := range strings.Split(head, "+") {
		if m != "" {
			mods = append(mods, strings.ToLower(m))
		}
	}
	return base, mods
}

func canonicalKey(key string) string {
	lookup := key
	if len(key) > 1 {
		lookup = strings.ToLower(key)
	}
	if alias, ok := keyAliases[lookup]; ok {
		return alias
	}
	if len(key) > 1 {
		return lookup
	}
	return key
}
