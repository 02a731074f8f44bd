package interp

import (
	"fmt"
	"strings"
)

// ref is one reference occurrence located in a scalar string. Pure means
// the reference spans the entire string, so its resolved value keeps its
// original type instead of being stringified.
type ref struct {
	body  string
	start int
	end   int
	pure  bool
}

// Contains reports whether the string holds at least one unescaped
// reference opener. Strings for which this returns false are plain
// literals and never reach the resolver.
func Contains(s string) bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '$' && s[i+1] == '$' {
			i++ // escaped opener, skip the pair
			continue
		}
		if s[i] == '$' && s[i+1] == '{' {
			return true
		}
	}
	return false
}

// findInnermost locates the leftmost innermost reference in s, skipping
// escaped openers. Innermost-first ordering makes nested references like
// ${a.${key}} resolve from the inside out. Returns ok=false when the
// string holds no reference.
func findInnermost(s string) (ref, bool, error) {
	open := -1
	sawRef := false
	for i := 0; i < len(s); i++ {
		if s[i] == '$' && i+1 < len(s) && s[i+1] == '$' {
			i++
			continue
		}
		if s[i] == '$' && i+1 < len(s) && s[i+1] == '{' {
			open = i
			sawRef = true
			i++
			continue
		}
		if s[i] == '}' && open != -1 {
			r := ref{
				body:  s[open+2 : i],
				start: open,
				end:   i + 1,
				pure:  open == 0 && i+1 == len(s),
			}
			return r, true, nil
		}
	}
	if sawRef {
		return ref{}, false, fmt.Errorf("unterminated reference in %q", s)
	}
	return ref{}, false, nil
}

// unescape rewrites escaped openers into literal text. Applied once all
// real references have been substituted.
func unescape(s string) string {
	return strings.ReplaceAll(s, "$${", "${")
}
