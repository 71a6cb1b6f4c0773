package environment

import (
	"os"
	"regexp"
)

var varPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Resolve replaces {{name}} placeholders from vars, then from the OS
// environment. Unknown placeholders are left as written.
func Resolve(input string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(input, func(match string) string {
		key := varPattern.FindStringSubmatch(match)[1]
		if v, ok := vars[key]; ok {
			return v
		}
		if v := os.Getenv(key); v != "" {
			return v
		}
		return match
	})
}
