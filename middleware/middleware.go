// Package middleware wraps completion models with cross-cutting
// behavior such as logging.
package middleware

import (
	"context"
	"log"
	"time"

	"github.com/ncecere/textgen-demo/engine"
)

// Logger is the minimal logging interface used by the middleware package.
// It matches the Printf method on *log.Logger so callers can pass
// log.Default() or a custom logger implementation.
type Logger interface {
	Printf(format string, v ...any)
}

// CompletionMiddleware wraps an engine.CompletionModel with additional
// behavior such as logging or telemetry.
type CompletionMiddleware func(engine.CompletionModel) engine.CompletionModel

// WrapCompletionModel applies the provided middlewares around the base
// model. Middlewares are applied in the order provided, so the first
// middleware becomes the outermost wrapper.
func WrapCompletionModel(base engine.CompletionModel, mws ...CompletionMiddleware) engine.CompletionModel {
	wrapped := base
	for i := len(mws) - 1; i >= 0; i-- {
		wrapped = mws[i](wrapped)
	}
	return wrapped
}

// LoggingOptions controls which aspects of a completion call are logged
// by the logging middleware.
type LoggingOptions struct {
	// Logger is the destination for log output. If nil, log.Default() is used.
	Logger Logger
	// LogRequest controls whether request parameters are logged.
	LogRequest bool
	// LogErrors controls whether errors are logged.
	LogErrors bool
	// LogDuration controls whether call duration is logged.
	LogDuration bool
}

func defaultLoggingOptions(opts LoggingOptions) LoggingOptions {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if !opts.LogRequest && !opts.LogErrors && !opts.LogDuration {
		opts.LogRequest = true
		opts.LogErrors = true
		opts.LogDuration = true
	}
	return opts
}

// WithLogging returns a middleware that logs completion calls. Prompt
// text itself is never logged, only its length and the sampling
// parameters.
func WithLogging(opts LoggingOptions) CompletionMiddleware {
	opts = defaultLoggingOptions(opts)
	return func(next engine.CompletionModel) engine.CompletionModel {
		return &loggingModel{next: next, opts: opts}
	}
}

type loggingModel struct {
	next engine.CompletionModel
	opts LoggingOptions
}

func (m *loggingModel) Generate(ctx context.Context, req *engine.CompletionRequest) (*engine.CompletionResult, error) {
	if m.opts.LogRequest {
		m.opts.Logger.Printf("completion request: prompt_len=%d max_tokens=%d temperature=%.1f top_p=%.1f",
			len(req.Prompt), req.MaxTokens, req.Temperature, req.TopP)
	}

	start := time.Now()
	res, err := m.next.Generate(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		if m.opts.LogErrors {
			m.opts.Logger.Printf("completion failed after %s: %v", elapsed.Round(time.Millisecond), err)
		}
		return nil, err
	}
	if m.opts.LogDuration {
		m.opts.Logger.Printf("completion done in %s: completion_len=%d", elapsed.Round(time.Millisecond), len(res.Text))
	}
	return res, nil
}
