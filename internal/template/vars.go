package template

import "github.com/conn-castle/recipegen/internal/schema"

// substitute replaces every {{name}} placeholder in text with its value.
// A placeholder with no binding fails with UndeclaredVariableError; this
// re-checks dynamically what the schema validator enforced statically,
// guarding against caller-supplied variable sets that omit required names.
func substitute(text, templateName, method string, values map[string]string) (string, error) {
	var missing string
	out := schema.PlaceholderPattern.ReplaceAllStringFunc(text, func(token string) string {
		name := schema.PlaceholderPattern.FindStringSubmatch(token)[1]
		value, ok := values[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return token
		}
		return value
	})
	if missing != "" {
		return "", &UndeclaredVariableError{Template: templateName, Method: method, Name: missing}
	}
	return out, nil
}
