package annotations

import (
	"go/ast"
	"go/token"
	"strings"
)

const (
	// TagRoute declares the method and full path of a route
	TagRoute = "route"
	// TagStatus overrides the success status code on a Response field
	TagStatus = "status"
)

// Tag is one @name annotation found in a doc comment
type Tag struct {
	Name string    // tag name without the @
	Text string    // remainder of the line, trimmed
	Pos  token.Pos // position of the comment holding the tag
}

// Tags is an ordered list of tags from one or more comment groups
type Tags []Tag

// Find returns the first tag with the given name
func (t Tags) Find(name string) (Tag, bool) {
	for _, tag := range t {
		if tag.Name == name {
			return tag, true
		}
	}
	return Tag{}, false
}

// Has reports whether a tag with the given name exists
func (t Tags) Has(name string) bool {
	_, ok := t.Find(name)
	return ok
}

// ExtractTags collects @tags from the given comment groups in order.
// Both line and block comments are supported; a leading '*' on block
// comment lines is ignored.
func ExtractTags(groups ...*ast.CommentGroup) Tags {
	var tags Tags
	for _, group := range groups {
		if group == nil {
			continue
		}
		for _, comment := range group.List {
			for _, line := range commentLines(comment.Text) {
				if tag, ok := parseTagLine(line); ok {
					tag.Pos = comment.Slash
					tags = append(tags, tag)
				}
			}
		}
	}
	return tags
}

func commentLines(text string) []string {
	switch {
	case strings.HasPrefix(text, "//"):
		return []string{strings.TrimPrefix(text, "//")}
	case strings.HasPrefix(text, "/*"):
		body := strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
		lines := strings.Split(body, "\n")
		for i, line := range lines {
			line = strings.TrimSpace(line)
			lines[i] = strings.TrimPrefix(line, "*")
		}
		return lines
	default:
		return []string{text}
	}
}

func parseTagLine(line string) (Tag, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "@") {
		return Tag{}, false
	}
	line = line[1:]
	end := strings.IndexAny(line, " \t")
	name, text := line, ""
	if end >= 0 {
		name, text = line[:end], strings.TrimSpace(line[end:])
	}
	if !isTagName(name) {
		return Tag{}, false
	}
	return Tag{Name: name, Text: text}, true
}

func isTagName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '_' || r == '-' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')) {
			return false
		}
	}
	return true
}
