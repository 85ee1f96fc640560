package stagehand

import "strings"

// CurrentDateVar is the implicit template variable bound to the execution
// date in YYYY-MM-DD form. It is volatile: resolved at render time from the
// runner's TimeProvider, never from the caller-supplied variable map.
const CurrentDateVar = "CURRENT_DATE"

// RenderTemplate substitutes {{key}} placeholders in s by literal substring
// replacement. There is no control flow and no escaping: prompts are plain
// text with holes. The CURRENT_DATE key is reserved: it always resolves from
// the TimeProvider and cannot be shadowed by vars.
func RenderTemplate(s string, vars map[string]string, tp TimeProvider) string {
	for key, value := range vars {
		if key == CurrentDateVar {
			continue
		}
		s = strings.ReplaceAll(s, placeholder(key), value)
	}
	if tp != nil {
		s = strings.ReplaceAll(s, placeholder(CurrentDateVar), tp.Today())
	}
	return s
}

func placeholder(key string) string {
	return "{{" + key + "}}"
}
