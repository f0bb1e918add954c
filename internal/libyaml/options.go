//
// Copyright (c) 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0
//

package libyaml

// Config holds the tunable emitter/loader behavior: just enough knobs to
// drive the Emitter and the Composer's strictness, with the versioned
// preset (V2/V3/V4) machinery dropped.
type Config struct {
	Indent        int
	LineWidth     int
	Unicode       bool
	Canonical     bool
	LineBreak     LineBreak
	ExplicitStart bool
	ExplicitEnd   bool
	KnownFields   bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig mirrors the common V4 preset defaults.
func DefaultConfig() Config {
	return Config{
		Indent:    2,
		LineWidth: 80,
		Unicode:   true,
		LineBreak: LN_BREAK,
	}
}

// WithIndent sets the number of spaces used per indentation level.
func WithIndent(n int) Option {
	return func(c *Config) { c.Indent = n }
}

// WithLineWidth sets Config.LineWidth. The Emitter does not read it and
// never wraps lines.
func WithLineWidth(n int) Option {
	return func(c *Config) { c.LineWidth = n }
}

// WithUnicode sets Config.Unicode. The Emitter does not read it; non-ASCII
// runes are written as-is either way.
func WithUnicode(v bool) Option {
	return func(c *Config) { c.Unicode = v }
}

// WithCanonical sets Config.Canonical. The Emitter does not read it and
// produces no canonical form.
func WithCanonical(v bool) Option {
	return func(c *Config) { c.Canonical = v }
}

// WithExplicitStart always emits the "---" document start marker.
func WithExplicitStart(v bool) Option {
	return func(c *Config) { c.ExplicitStart = v }
}

// WithExplicitEnd always emits the "..." document end marker.
func WithExplicitEnd(v bool) Option {
	return func(c *Config) { c.ExplicitEnd = v }
}

// WithKnownFields sets Config.KnownFields. Nothing in this package reads
// it; construction never rejects mapping keys.
func WithKnownFields(v bool) Option {
	return func(c *Config) { c.KnownFields = v }
}

// Apply folds a list of options onto DefaultConfig.
func Apply(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}
