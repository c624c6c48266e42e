package source

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// ExtractDoc returns the comment attached to the top-level statement that
// declares fn, or "" when there is none.
//
// Of the comments directly above the statement, the first JSDoc block wins
// and is returned with its delimiters, leading asterisks and block tags
// removed. Without a JSDoc block the first comment is returned verbatim.
func ExtractDoc(fn *Function) string {
	if fn == nil || fn.stmt == nil {
		return ""
	}
	content := fn.unit.content

	var comments []*sitter.Node
	for prev := fn.stmt.PrevSibling(); prev != nil && prev.Type() == "comment"; prev = prev.PrevSibling() {
		// A comment on the line where the previous statement ends belongs
		// to that statement.
		if before := prev.PrevSibling(); before != nil && before.Type() != "comment" &&
			before.EndPoint().Row == prev.StartPoint().Row {
			break
		}
		comments = append(comments, prev)
	}
	if len(comments) == 0 {
		return ""
	}

	// Collected nearest first.
	for i := len(comments) - 1; i >= 0; i-- {
		if c := comments[i].Content(content); strings.HasPrefix(c, "/**") {
			return normalizeJSDoc(c)
		}
	}
	return comments[len(comments)-1].Content(content)
}

func normalizeJSDoc(comment string) string {
	body := strings.TrimSuffix(strings.TrimPrefix(comment, "/**"), "*/")

	var lines []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
		if strings.HasPrefix(line, "@") {
			break
		}
		lines = append(lines, line)
	}

	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
