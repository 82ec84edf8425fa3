package processor

import "regexp"

var (
	variablesBlock = regexp.MustCompile(`(?is)@variables[^{]*\{(.*?)\}`)
	variableDecl   = regexp.MustCompile(`([^:;\s]+)\s*:\s*([^;]+?)\s*(?:;|$)`)
	variableUse    = regexp.MustCompile(`var\(\s*([^)\s]+)\s*\)`)
)

// ResolveCSSVariables expands references to variables declared in
// "@variables { name: value; }" blocks and removes the blocks. A var(...)
// reference to an undeclared name, such as a CSS custom property, is kept.
func ResolveCSSVariables() PostProcessor {
	return transform(func(s string) string {
		blocks := variablesBlock.FindAllStringSubmatch(s, -1)
		if len(blocks) == 0 {
			return s
		}

		vars := make(map[string]string)
		for _, b := range blocks {
			for _, decl := range variableDecl.FindAllStringSubmatch(b[1], -1) {
				vars[decl[1]] = decl[2]
			}
		}

		s = variablesBlock.ReplaceAllString(s, "")
		s = variableUse.ReplaceAllStringFunc(s, func(match string) string {
			name := variableUse.FindStringSubmatch(match)[1]
			if value, ok := vars[name]; ok {
				return value
			}
			return match
		})
		return s
	})
}
