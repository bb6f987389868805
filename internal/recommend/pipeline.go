package recommend

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shpitdev/air-assist/internal/generate"
	"github.com/shpitdev/air-assist/internal/util"
)

// Pipeline runs answers through prompt building, one generation call, and the
// sanitize/parse/normalize/order stages. It holds no per-invocation state and is
// safe for concurrent use; overlapping invocations are fully independent.
type Pipeline struct {
	gen    generate.Generator
	logger *zap.Logger
	newID  func() string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New constructs a Pipeline around gen.
func New(gen generate.Generator, opts ...Option) *Pipeline {
	p := &Pipeline{
		gen:    gen,
		logger: zap.NewNop(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one invocation. On failure the returned error is always a *Error
// and the Set is zero.
func (p *Pipeline) Run(ctx context.Context, answers Answers) (Set, error) {
	set, perr := p.run(ctx, p.newID(), answers)
	if perr != nil {
		return Set{}, perr
	}
	return set, nil
}

// Start runs one invocation in the background. The returned channel yields exactly
// one Result and is then closed.
func (p *Pipeline) Start(ctx context.Context, answers Answers) <-chan Result {
	ch := make(chan Result, 1)
	id := p.newID()
	go func() {
		defer close(ch)
		start := time.Now()
		set, perr := p.run(ctx, id, answers)
		res := Result{InvocationID: id, Duration: time.Since(start)}
		if perr != nil {
			res.Err = perr
		} else {
			res.Set = &set
		}
		ch <- res
	}()
	return ch
}

func (p *Pipeline) run(ctx context.Context, id string, answers Answers) (Set, *Error) {
	log := p.logger.With(zap.String("invocation", id))
	start := time.Now()

	prompt := BuildPrompt(answers)
	log.Debug("recommend: generating", zap.Int("answers", len(answers)), zap.Int("promptBytes", len(prompt)))

	raw, err := p.gen.Generate(ctx, prompt)
	if err != nil {
		perr := classifyGenerateErr(err)
		log.Warn("recommend: generation failed",
			zap.String("kind", string(perr.Kind)),
			zap.Duration("duration", time.Since(start)),
			zap.String("error", util.RedactSecrets(err.Error())),
		)
		return Set{}, perr
	}

	if strings.TrimSpace(raw) == "" {
		return Set{}, p.fail(log, start, newError(KindEmpty, "", generate.ErrEmptyResponse))
	}

	v, err := Parse(Sanitize(raw))
	if err != nil {
		return Set{}, p.fail(log, start, err)
	}
	set, err := Normalize(v)
	if err != nil {
		return Set{}, p.fail(log, start, err)
	}
	set = Order(set)

	log.Info("recommend: ok",
		zap.Duration("duration", time.Since(start)),
		zap.Int("homes", len(set.Homes)),
		zap.Int("placesToVisit", len(set.PlacesToVisit)),
		zap.Int("placesToEat", len(set.PlacesToEat)),
		zap.Bool("advisory", set.Advisory),
	)
	return set, nil
}

func (p *Pipeline) fail(log *zap.Logger, start time.Time, err error) *Error {
	var perr *Error
	if !errors.As(err, &perr) {
		perr = newError(KindParse, "", err)
	}
	log.Warn("recommend: reply rejected",
		zap.String("kind", string(perr.Kind)),
		zap.Duration("duration", time.Since(start)),
		zap.String("detail", perr.Detail),
	)
	return perr
}

func classifyGenerateErr(err error) *Error {
	if generate.IsEmpty(err) {
		return newError(KindEmpty, "", err)
	}
	return newError(KindTransport, util.Truncate(err.Error(), detailMax), err)
}
