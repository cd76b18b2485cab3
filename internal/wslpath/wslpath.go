// Package wslpath rewrites Windows paths into the form a WSL shell sees.
package wslpath

import "strings"

// ToWSL maps `D:\a\b` to `/mnt/d/a/b`. Only drive-absolute paths are
// mapped; drive-relative forms such as `C:foo` or a bare `C:` depend on the
// drive's current directory and only have their backslashes turned into
// slashes, like any other path.
func ToWSL(path string) string {
	slashed := strings.ReplaceAll(path, `\`, "/")
	if len(path) < 3 || !isASCIILetter(path[0]) || path[1] != ':' || !isSeparator(path[2]) {
		return slashed
	}
	return "/mnt/" + strings.ToLower(path[:1]) + slashed[2:]
}

func isASCIILetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isSeparator(b byte) bool {
	return b == '\\' || b == '/'
}
