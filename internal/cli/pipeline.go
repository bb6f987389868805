package cli

import (
	"context"

	"github.com/shpitdev/air-assist/internal/config"
	"github.com/shpitdev/air-assist/internal/generate"
	"github.com/shpitdev/air-assist/internal/generate/gemini"
	"github.com/shpitdev/air-assist/internal/generate/rest"
	"github.com/shpitdev/air-assist/internal/recommend"
)

// newGenerator builds the generation client for c. Tests swap it out.
var newGenerator = buildGenerator

func buildGenerator(ctx context.Context, c config.Config) (generate.Generator, error) {
	gc := c.Generate()
	if c.Gemini.Transport == config.TransportSDK {
		client, err := gemini.New(ctx, gc)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	client, err := rest.New(gc)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// newPipeline validates the loaded configuration and wires a pipeline.
func newPipeline(ctx context.Context) (*recommend.Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, usageError(err)
	}
	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		return nil, usageError(err)
	}
	return recommend.New(gen, recommend.WithLogger(logger)), nil
}
