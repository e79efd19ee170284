// Package models defines the request, option and response types of a file search.
package models

// RootOptions constrains the search under one root.
type RootOptions struct {
	IncludePatterns []string `json:"include_patterns,omitempty" yaml:"include_patterns,omitempty"`
	ExcludePatterns []string `json:"exclude_patterns,omitempty" yaml:"exclude_patterns,omitempty"`
	// UseGitIgnore overrides the global ignore-file setting for this root when set.
	UseGitIgnore *bool `json:"use_git_ignore,omitempty" yaml:"use_git_ignore,omitempty"`
}

// UseGitIgnoreOrDefault returns whether ignore files are honored; defaults to true when unset.
func (o RootOptions) UseGitIgnoreOrDefault() bool {
	if o.UseGitIgnore != nil {
		return *o.UseGitIgnore
	}
	return true
}

// Clone returns a deep copy of o.
func (o RootOptions) Clone() RootOptions {
	c := RootOptions{
		IncludePatterns: append([]string(nil), o.IncludePatterns...),
		ExcludePatterns: append([]string(nil), o.ExcludePatterns...),
	}
	if o.UseGitIgnore != nil {
		v := *o.UseGitIgnore
		c.UseGitIgnore = &v
	}
	return c
}

// FindOptions are the caller-supplied options of a find call. Zero values mean "use the
// configured default".
type FindOptions struct {
	// RootURIs lists the roots to search, as file:// URIs or absolute paths.
	RootURIs []string `json:"root_uris,omitempty"`
	// RootOptions holds per-root constraints keyed by root identifier. Keys are searched
	// even when absent from RootURIs.
	RootOptions     map[string]RootOptions `json:"root_options,omitempty"`
	IncludePatterns []string               `json:"include_patterns,omitempty"`
	ExcludePatterns []string               `json:"exclude_patterns,omitempty"`
	FuzzyMatch      *bool                  `json:"fuzzy_match,omitempty"`
	// Limit caps the number of results; zero or negative means unbounded.
	Limit        int   `json:"limit,omitempty"`
	UseGitIgnore *bool `json:"use_git_ignore,omitempty"`
}

// EffectiveOptions is the fully merged option set of one find call.
// Every searched root has an entry in Roots, and each entry has UseGitIgnore set.
type EffectiveOptions struct {
	FuzzyMatch   bool
	Limit        int
	UseGitIgnore bool
	Roots        map[string]RootOptions
}

// Unbounded reports whether no result limit applies.
func (e *EffectiveOptions) Unbounded() bool {
	return e.Limit <= 0
}
