package processor

import (
	"regexp"
	"sort"
	"strings"
)

// importPattern matches one @import directive: the target in url(...),
// quoted or bare form, an optional media list and an optional semicolon.
var importPattern = regexp.MustCompile(`(?i)@import\s*(?:url\(\s*(?:"([^"]*)"|'([^']*)'|([^"'()\s]*))\s*\)|"([^"]*)"|'([^']*)'|([^\s"';{}()]+))[^;{}\n]*;?`)

// bareGroup is the submatch holding an unquoted target without url().
const bareGroup = 6

var (
	importKeyword  = regexp.MustCompile(`(?i)@import\b`)
	commentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// directive is one @import statement found in a stylesheet.
// text[Start:End] is the verbatim statement.
type directive struct {
	Start  int
	End    int
	Target string
}

// scanImports finds the @import directives of text outside of comments.
// Offsets of @import keywords that do not form a valid directive are
// returned separately.
func scanImports(text string) (directives []directive, malformed []int) {
	comments := commentPattern.FindAllStringIndex(text, -1)
	inComment := func(pos int) bool {
		i := sort.Search(len(comments), func(i int) bool { return comments[i][1] > pos })
		return i < len(comments) && comments[i][0] <= pos
	}

	valid := make(map[int]struct{})
	for _, m := range importPattern.FindAllStringSubmatchIndex(text, -1) {
		if inComment(m[0]) {
			continue
		}
		target, group := "", 0
		for g := 1; g*2 < len(m); g++ {
			if m[g*2] >= 0 {
				target, group = strings.TrimSpace(text[m[g*2]:m[g*2+1]]), g
				break
			}
		}
		// A bare target directly followed by "(" is a url(...) that did not parse.
		if target == "" || group == bareGroup && m[group*2+1] < len(text) && text[m[group*2+1]] == '(' {
			continue
		}
		valid[m[0]] = struct{}{}
		directives = append(directives, directive{Start: m[0], End: m[1], Target: target})
	}

	for _, m := range importKeyword.FindAllStringIndex(text, -1) {
		if _, ok := valid[m[0]]; ok || inComment(m[0]) {
			continue
		}
		malformed = append(malformed, m[0])
	}
	return directives, malformed
}

// stripImports removes every directive from text and keeps all other bytes.
func stripImports(text string) string {
	directives, _ := scanImports(text)
	if len(directives) == 0 {
		return text
	}
	var sb strings.Builder
	last := 0
	for _, d := range directives {
		sb.WriteString(text[last:d.Start])
		last = d.End
	}
	sb.WriteString(text[last:])
	return sb.String()
}

func lineOf(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}
