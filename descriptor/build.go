package descriptor

import (
	"context"

	"github.com/kbukum/pktchain/errors"
	"github.com/kbukum/pktchain/filter"
	"github.com/kbukum/pktchain/logger"
	"github.com/kbukum/pktchain/observability"
)

// BuildOption customises chain construction.
type BuildOption func(*buildOptions)

type buildOptions struct {
	log     *logger.Logger
	ctx     context.Context
	metrics *observability.Metrics
}

// WithLogger wraps every stage with filter.WithLogging.
func WithLogger(log *logger.Logger) BuildOption {
	return func(o *buildOptions) { o.log = log }
}

// WithMetrics wraps every stage with filter.WithMetrics.
func WithMetrics(ctx context.Context, m *observability.Metrics) BuildOption {
	return func(o *buildOptions) {
		o.ctx = ctx
		o.metrics = m
	}
}

// Build parses desc and constructs its stages from reg. Either the whole
// chain is returned or an error and no chain. An empty descriptor yields a
// pass-through chain.
func Build(desc string, reg *filter.Registry, opts ...BuildOption) (*filter.Chain, error) {
	configs, err := Parse(desc)
	if err != nil {
		return nil, err
	}
	chain, err := BuildConfigs(configs, reg, opts...)
	if err != nil {
		return nil, err
	}
	chain.SetDescriptor(desc)
	return chain, nil
}

// BuildConfigs constructs a chain from already parsed configs.
func BuildConfigs(configs []FilterConfig, reg *filter.Registry, opts ...BuildOption) (*filter.Chain, error) {
	o := &buildOptions{ctx: context.Background()}
	for _, opt := range opts {
		opt(o)
	}

	stages := make([]filter.Filter, 0, len(configs))
	for i, cfg := range configs {
		f, err := reg.Construct(cfg.Name, cfg.Options)
		if err != nil {
			if appErr, ok := errors.AsAppError(err); ok {
				appErr.WithDetail("stage", i)
			}
			if o.log != nil {
				o.log.WithError(err).Warn("chain construction failed", logger.Fields(
					logger.FieldFilter, cfg.Name,
					logger.FieldStage, i,
				))
			}
			return nil, err
		}
		if o.metrics != nil {
			f = filter.WithMetrics(o.ctx, f, o.metrics, i)
		}
		if o.log != nil {
			f = filter.WithLogging(f, o.log, i)
		}
		stages = append(stages, f)
	}

	chain := filter.NewChain(stages...)
	if o.log != nil {
		o.log.Debug("chain built", logger.Fields(
			logger.FieldDescriptor, chain.String(),
			"stages", len(stages),
		))
	}
	return chain, nil
}
