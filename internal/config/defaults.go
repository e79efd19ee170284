package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Search.Executable == "" {
		cfg.Search.Executable = "rg"
	}
	if cfg.Search.DefaultLimit < 0 {
		cfg.Search.DefaultLimit = 0
	}
	if cfg.Search.MaxLimit < 0 {
		cfg.Search.MaxLimit = 0
	}
	if cfg.Search.MaxConcurrentRoots < 0 {
		cfg.Search.MaxConcurrentRoots = 0
	}
	// Fuzzy matching and ignore files default to on when unset (nil).
	if cfg.Search.FuzzyMatch == nil {
		t := true
		cfg.Search.FuzzyMatch = &t
	}
	if cfg.Search.UseGitIgnore == nil {
		t := true
		cfg.Search.UseGitIgnore = &t
	}
}
