package engine

import (
	"fmt"
	"strings"
)

// SelfKey is the scope entry holding the presenter.  Templates reach the
// presenter's fields and methods through it, e.g. {{ .self.Name }}.
const SelfKey = "self"

// Scope builds the evaluation data handed to every engine: the locals plus
// the presenter under SelfKey.  The presenter always wins over a local of
// the same name.  locals is never modified.
func Scope(self any, locals map[string]any) map[string]any {
	out := make(map[string]any, len(locals)+1)
	for k, v := range locals {
		out[k] = v
	}
	out[SelfKey] = self
	return out
}

// funcs are the helpers shared by the Go-template based engines.
func funcs() map[string]any {
	return map[string]any{
		"add":   func(a, b int) int { return a + b },
		"sub":   func(a, b int) int { return a - b },
		"dict":  dict,
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"trim":  strings.TrimSpace,
	}
}

// dict builds a map in templates: {{ dict "k" 1 "k2" "v" }}.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments (%d)", len(kv))
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[key] = kv[i+1]
	}
	return m, nil
}
