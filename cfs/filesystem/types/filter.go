package types

import (
	"strings"

	"github.com/cachefoundry/cachefs/cfs/paths"
)

// FilterRule defines whether matched names are kept or dropped
type FilterRule string

const (
	FilterAll     FilterRule = "all"
	FilterInclude FilterRule = "include"
	FilterExclude FilterRule = "exclude"
)

// FilterMatch defines how the pattern is compared against a name
type FilterMatch string

const (
	MatchSubstring FilterMatch = "substring"
	MatchExtension FilterMatch = "extension"
)

// Filter represents an immutable include/exclude predicate applied to
// file names during traversal. The zero value keeps every name. Filters
// evaluate bare file names only, never full paths; directories are not
// filtered.
type Filter struct {
	pattern string
	rule    FilterRule
	match   FilterMatch
}

// All keeps every name. It is the explicit form of the zero value, for
// overriding a narrower default filter.
func All() Filter {
	return Filter{rule: FilterAll, match: MatchSubstring}
}

// IncludeSubstring keeps only names containing pattern.
func IncludeSubstring(pattern string) Filter {
	return Filter{pattern: pattern, rule: FilterInclude, match: MatchSubstring}
}

// IncludeExtension keeps only names whose extension equals ext (with dot).
func IncludeExtension(ext string) Filter {
	return Filter{pattern: ext, rule: FilterInclude, match: MatchExtension}
}

// ExcludeSubstring drops names containing pattern.
func ExcludeSubstring(pattern string) Filter {
	return Filter{pattern: pattern, rule: FilterExclude, match: MatchSubstring}
}

// ExcludeExtension drops names whose extension equals ext (with dot).
func ExcludeExtension(ext string) Filter {
	return Filter{pattern: ext, rule: FilterExclude, match: MatchExtension}
}

// Keep reports whether name survives the filter.
func (f Filter) Keep(name string) bool {
	if f.rule == "" || f.rule == FilterAll {
		return true
	}
	var matched bool
	if f.match == MatchExtension {
		matched = paths.Extension(name) == f.pattern
	} else {
		matched = strings.Contains(name, f.pattern)
	}
	if f.rule == FilterInclude {
		return matched
	}
	return !matched
}
