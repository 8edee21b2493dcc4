package common

import (
	"path"
	"strings"
)

// PkgAlias returns the name a package is referred to by when imported
// without an alias: the last path element, skipping a trailing major
// version element such as "/v2" and dropping a gopkg.in ".v3" suffix.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if isMajorVersion(base) {
		if parent := path.Dir(pkgPath); parent != "." {
			base = path.Base(parent)
		}
	}

	if i := strings.LastIndex(base, ".v"); i > 0 && isMajorVersion(base[i+1:]) {
		base = base[:i]
	}

	return base
}

func isMajorVersion(elem string) bool {
	digits, ok := strings.CutPrefix(elem, "v")
	if !ok || digits == "" || digits[0] == '0' {
		return false
	}

	return strings.Trim(digits, "0123456789") == ""
}
