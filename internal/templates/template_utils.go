package templates

import (
	"strconv"
	"strings"
	"text/template"
	"unicode"
)

// templateFuncs are available to every router template
var templateFuncs = template.FuncMap{
	"quote": strconv.Quote,
	"title": TitleMethod,
	"mount": MountPath,
}

// MountPath is the path a route is registered under on a group mounted at the
// module base path. The base path itself is registered as "" so gin and echo
// serve it without a trailing slash.
func MountPath(path string) string {
	if path == "/" {
		return ""
	}
	return path
}

// TitleMethod converts an HTTP method to the casing fiber uses for its route methods
func TitleMethod(method string) string {
	if method == "" {
		return method
	}
	return method[:1] + strings.ToLower(method[1:])
}

// ExportedName converts a file base name like "friend_requests" into "FriendRequests"
func ExportedName(base string) string {
	var b strings.Builder
	upper := true
	for _, r := range base {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}

	name := b.String()
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "R" + name
	}
	return name
}

// PackageName converts a directory name into a valid package name
func PackageName(dir string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(dir) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}

	name := b.String()
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "routes" + name
	}
	return name
}
