// Package pipeline provides the load → simplify → render pipeline shared
// by the CLI and the HTTP server.
//
// Centralizing the stages keeps behavior consistent across entry points:
// the same caching, logging, and hook emission happens whether a diagram
// is rendered from the command line or served over HTTP.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{Formats: []string{pipeline.FormatSVG}}
//	opts.SetDefaults()
//	artifacts, err := runner.Execute(ctx, "diagram.json", opts)
//	svg := artifacts[pipeline.FormatSVG]
//
// Stages can also run individually: [Runner.Load], [Runner.Simplify],
// [Runner.Render].
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Output format identifiers.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// DefaultCacheTTL is how long rendered artifacts stay cached. Renders are
// deterministic, so the TTL only bounds disk usage, not staleness.
const DefaultCacheTTL = 30 * 24 * time.Hour

// Options configures a pipeline run.
type Options struct {
	// Simplify runs the rewrite pass (spider fusion + identity removal)
	// before rendering.
	Simplify bool

	// Formats lists the artifacts to produce. Defaults to ["svg"].
	Formats []string

	// CacheTTL bounds artifact cache entries. Defaults to DefaultCacheTTL.
	CacheTTL time.Duration

	// Logger receives stage progress. Defaults to log.Default().
	Logger *log.Logger
}

// SetDefaults fills unset fields with their defaults.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// ValidateFormats returns an error naming the first unsupported format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !ValidFormats[f] {
			return fmt.Errorf("unsupported format %q (valid: svg, png, dot, json)", f)
		}
	}
	return nil
}
