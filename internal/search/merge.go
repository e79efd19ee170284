package search

import (
	"github.com/hyperjump/fsearch/internal/config"
	"github.com/hyperjump/fsearch/internal/fileuri"
	"github.com/hyperjump/fsearch/internal/models"
)

// Merge combines request options with configured defaults.
//
// Roots come from the request's RootOptions keys and RootURIs, or from the configuration
// when the request names none. Each root starts from its own options (request first, then
// configuration) and gets the request's and then the configured global globs appended.
// Configured root options match a root whether either side names it by path or by file:// URI.
// A root without an ignore-file override inherits the global setting.
func Merge(opts *models.FindOptions, cfg *config.SearchConfig) *models.EffectiveOptions {
	if opts == nil {
		opts = &models.FindOptions{}
	}
	if cfg == nil {
		cfg = &config.SearchConfig{}
	}

	eff := &models.EffectiveOptions{
		FuzzyMatch:   cfg.FuzzyMatchOrDefault(),
		UseGitIgnore: cfg.UseGitIgnoreOrDefault(),
		Limit:        cfg.DefaultLimit,
		Roots:        make(map[string]models.RootOptions),
	}
	if opts.FuzzyMatch != nil {
		eff.FuzzyMatch = *opts.FuzzyMatch
	}
	if opts.UseGitIgnore != nil {
		eff.UseGitIgnore = *opts.UseGitIgnore
	}
	if opts.Limit > 0 {
		eff.Limit = opts.Limit
	}
	if cfg.MaxLimit > 0 && (eff.Unbounded() || eff.Limit > cfg.MaxLimit) {
		eff.Limit = cfg.MaxLimit
	}

	configured := rootOptionsByPath(cfg.RootOptions)
	base := func(root string) models.RootOptions {
		if ro, ok := opts.RootOptions[root]; ok {
			return ro.Clone()
		}
		if ro, ok := cfg.RootOptions[root]; ok {
			return ro.Clone()
		}
		if p, err := fileuri.ToPath(root); err == nil {
			if ro, ok := configured[p]; ok {
				return ro.Clone()
			}
		}
		return models.RootOptions{}
	}
	for root := range opts.RootOptions {
		eff.Roots[root] = base(root)
	}
	for _, root := range opts.RootURIs {
		if _, ok := eff.Roots[root]; !ok {
			eff.Roots[root] = base(root)
		}
	}
	if len(eff.Roots) == 0 {
		for _, root := range cfg.Roots {
			eff.Roots[root] = base(root)
		}
	}

	for root, ro := range eff.Roots {
		ro.IncludePatterns = append(ro.IncludePatterns, opts.IncludePatterns...)
		ro.IncludePatterns = append(ro.IncludePatterns, cfg.IncludePatterns...)
		ro.ExcludePatterns = append(ro.ExcludePatterns, opts.ExcludePatterns...)
		ro.ExcludePatterns = append(ro.ExcludePatterns, cfg.ExcludePatterns...)
		if ro.UseGitIgnore == nil {
			v := eff.UseGitIgnore
			ro.UseGitIgnore = &v
		}
		eff.Roots[root] = ro
	}
	return eff
}

// rootOptionsByPath re-keys configured root options by native path.
func rootOptionsByPath(in map[string]models.RootOptions) map[string]models.RootOptions {
	out := make(map[string]models.RootOptions, len(in))
	for key, ro := range in {
		if p, err := fileuri.ToPath(key); err == nil {
			out[p] = ro
		}
	}
	return out
}
