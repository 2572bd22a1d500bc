// Package keymap resolves input tokens (keys with modifiers, or gesture
// names) to action names through a layered binding table.
package keymap

// Table maps action names to one or more input tokens. Configuration
// supplies two layers per input modality: a common table and a
// context-specific table.
type Table map[string][]string

// Resolver maps normalized input tokens to action names.
type Resolver struct {
	bindings map[string]string   // normalized token -> action name
	byAction map[string][]string // action name -> tokens (for help/documentation)
}

// NewResolver builds a resolver by merging the common table with a
// context-specific table. Context entries override common entries that
// share the same token.
func NewResolver(common, context Table) *Resolver {
	r := &Resolver{
		bindings: make(map[string]string),
		byAction: make(map[string][]string),
	}
	r.merge(common)
	r.merge(context)
	for action := range r.byAction {
		r.byAction[action] = dedupe(r.byAction[action])
	}
	return r
}

func (r *Resolver) merge(t Table) {
	for action, tokens := range t {
		for _, tok := range tokens {
			norm := Normalize(tok)
			if norm == "" {
				continue
			}
			if prev, ok := r.bindings[norm]; ok && prev != action {
				r.byAction[prev] = remove(r.byAction[prev], norm)
			}
			r.bindings[norm] = action
			r.byAction[action] = append(r.byAction[action], norm)
		}
	}
}

// Resolve returns the action name for a key with active modifiers.
// The modifier-qualified token is tried first, then the bare key.
// Returns empty string if nothing is bound.
func (r *Resolver) Resolve(key string, modifiers []string) string {
	if len(modifiers) > 0 {
		if action, ok := r.bindings[Qualified(key, modifiers)]; ok {
			return action
		}
	}
	return r.bindings[Normalize(key)]
}

// ResolveToken returns the action name for an already-complete token,
// such as a gesture name or a "ctrl+shift+s" string.
func (r *Resolver) ResolveToken(token string) string {
	return r.bindings[Normalize(token)]
}

// TokensFor returns the tokens bound to an action (for help/documentation).
func (r *Resolver) TokensFor(action string) []string {
	return r.byAction[action]
}

// Bindings returns a copy of the effective token -> action map.
func (r *Resolver) Bindings() map[string]string {
	out := make(map[string]string, len(r.bindings))
	for k, v := range r.bindings {
		out[k] = v
	}
	return out
}

// dedupe removes duplicate strings from a slice, preserving order.
func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}

func remove(s []string, v string) []string {
	result := s[:0]
	for _, x := range s {
		if x != v {
			result = append(result, x)
		}
	}
	return result
}
