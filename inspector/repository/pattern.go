package repository

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Patterns matches slash separated relative paths against MSBuild style globs
type Patterns struct {
	globs []glob.Glob
}

// NewPatterns compiles patterns; a leading **/ also matches paths at the root
func NewPatterns(patterns ...string) (*Patterns, error) {
	ret := &Patterns{}
	for _, pattern := range patterns {
		variants := []string{pattern}
		if strings.HasPrefix(pattern, "**/") {
			variants = append(variants, strings.TrimPrefix(pattern, "**/"))
		}
		if strings.HasSuffix(pattern, "/") || strings.HasSuffix(pattern, "/**") {
			variants = append(variants, strings.TrimSuffix(strings.TrimSuffix(pattern, "**"), "/")+"/**")
		}
		for _, variant := range variants {
			compiled, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			ret.globs = append(ret.globs, compiled)
		}
	}
	return ret, nil
}

// Match returns true if any pattern matches the relative path
func (p *Patterns) Match(relative string) bool {
	if p == nil {
		return false
	}
	for _, candidate := range p.globs {
		if candidate.Match(relative) {
			return true
		}
	}
	return false
}

// Len returns the number of compiled patterns
func (p *Patterns) Len() int {
	if p == nil {
		return 0
	}
	return len(p.globs)
}
