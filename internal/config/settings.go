// Package config assembles one pipeline run's settings: CLI flags and an
// optional operator-supplied language-configuration override (§1a, §4.1a).
// The .env-backed install identifier used by analytics is handled by
// analytics.LoadEnvFile, not by this package.
package config

import (
	"fmt"

	"github.com/codepathfinder/polyglot-callgraph/internal/langconfig"
	"github.com/codepathfinder/polyglot-callgraph/model"
)

// Settings holds one run's resolved options.
type Settings struct {
	Workers        int
	Format         string // "text", "json", or "sarif"
	Languages      map[model.Language]bool
	ConfigPath     string // optional operator override YAML, empty if unset
	DisableMetrics bool
}

// BuildTable loads the four built-in language configs, applying s.ConfigPath
// as an override for whichever single language it names, when set.
func (s Settings) BuildTable() (*langconfig.Table, error) {
	overrides := make(map[langconfig.Language]*langconfig.Config)
	if s.ConfigPath != "" {
		cfg, err := langconfig.LoadFile(s.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if cfg.Language == "" {
			return nil, fmt.Errorf("config: %s must set a top-level 'language' field", s.ConfigPath)
		}
		overrides[cfg.Language] = cfg
	}
	return langconfig.NewTable(overrides)
}

// ParseLanguages converts a comma-separated --lang flag value ("js,ts,py,rs"
// or full names) into the Languages selection set. An empty string selects
// all four.
func ParseLanguages(flag string) (map[model.Language]bool, error) {
	if flag == "" {
		return nil, nil
	}
	aliases := map[string]model.Language{
		"js": model.LangJavaScript, "javascript": model.LangJavaScript,
		"ts": model.LangTypeScript, "typescript": model.LangTypeScript,
		"py": model.LangPython, "python": model.LangPython,
		"rs": model.LangRust, "rust": model.LangRust,
	}
	out := make(map[model.Language]bool)
	start := 0
	for i := 0; i <= len(flag); i++ {
		if i == len(flag) || flag[i] == ',' {
			token := flag[start:i]
			start = i + 1
			if token == "" {
				continue
			}
			lang, ok := aliases[token]
			if !ok {
				return nil, fmt.Errorf("config: unrecognized language %q", token)
			}
			out[lang] = true
		}
	}
	return out, nil
}
