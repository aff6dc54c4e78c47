package engine

import "golang.org/x/text/language"

// ============================================================================
// ENGINE OPTIONS: Functional options for NewPass()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	TopN     int          // how many modes the Overview lists
	Language language.Tag // number formatting in value-box text
}

// WithTopN sets how many top industries/activities are listed (default 3).
func WithTopN(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.TopN = n
		}
	}
}

// WithLanguage sets the locale for value-box number formatting.
func WithLanguage(tag language.Tag) Option {
	return func(c *config) {
		c.Language = tag
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		TopN:     3,
		Language: language.English,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
