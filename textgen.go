// Package textgen implements the interaction core of a text-generation
// demo: a prompt submission controller that mediates one user-initiated
// request/response cycle at a time against a completion engine.
//
// The controller owns the page-level state explicitly instead of
// spreading it across the rendering surface, so the full submission
// lifecycle can be exercised without a browser. Rendering surfaces plug
// in through the View interface.
package textgen

import (
	"context"
	"strings"
	"sync"

	"github.com/ncecere/textgen-demo/engine"
	"github.com/ncecere/textgen-demo/engineutil"
)

// State is the transient UI state of one demo page.
type State int

const (
	// StateIdle is the initial state; no request has been submitted
	// since the last page load.
	StateIdle State = iota
	// StatePending means a request is in flight.
	StatePending
	// StateSuccess means the last request returned a completion.
	StateSuccess
	// StateFailed means the last request failed.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Form holds the demo form fields at the moment of submission.
//
// The ranges mirror the sliders on the demo page: MaxTokens 32-512 in
// steps of 32, Temperature 0.1-1.0, TopP 0.0-1.0. The page enforces
// them structurally; Validate enforces them for programmatic callers.
type Form struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// Validate checks that every field is within its slider-enforced range.
func (f Form) Validate() error {
	if f.MaxTokens < 32 || f.MaxTokens > 512 {
		return &InvalidArgumentError{
			Parameter: "max_tokens",
			Value:     f.MaxTokens,
			Message:   "must be between 32 and 512",
		}
	}
	if f.MaxTokens%32 != 0 {
		return &InvalidArgumentError{
			Parameter: "max_tokens",
			Value:     f.MaxTokens,
			Message:   "must be a multiple of 32",
		}
	}
	if f.Temperature < 0.1 || f.Temperature > 1.0 {
		return &InvalidArgumentError{
			Parameter: "temperature",
			Value:     f.Temperature,
			Message:   "must be between 0.1 and 1.0",
		}
	}
	if f.TopP < 0.0 || f.TopP > 1.0 {
		return &InvalidArgumentError{
			Parameter: "top_p",
			Value:     f.TopP,
			Message:   "must be between 0.0 and 1.0",
		}
	}
	return nil
}

// Outcome is the discriminated result of one submission. Exactly one of
// Completion or Err is meaningful: on success Prompt echoes the
// normalized submitted prompt and Completion holds the generated text;
// on failure both are empty and Err holds the raw error text.
type Outcome struct {
	Prompt     string
	Completion string
	Err        string
}

// Controller mediates one user-initiated request/response cycle at a
// time. It owns the page state and is the only mutator of it.
//
// A second Submit while one is pending is rejected with
// ErrRequestInFlight; the first proceeds undisturbed.
type Controller struct {
	model engine.CompletionModel
	view  View

	mu      sync.Mutex
	state   State
	pending bool
}

// NewController creates a Controller in the Idle state.
//
// Errors:
//   - ErrMissingModel if model is nil.
func NewController(model engine.CompletionModel, view View) (*Controller, error) {
	if model == nil {
		return nil, ErrMissingModel
	}
	if view == nil {
		view = NopView{}
	}
	return &Controller{
		model: model,
		view:  view,
		state: StateIdle,
	}, nil
}

// State returns the controller's current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Submit runs one request/response cycle: it displays the estimated
// wait, enters the pending state (busy indicator on, prior error
// cleared), issues a single POST to the engine, and renders either the
// completion or the raw error text. The busy indicator is released
// exactly once on both outcomes.
//
// Errors:
//   - An *InvalidArgumentError if a field is outside its slider range.
//   - ErrRequestInFlight if another submission is still pending.
//   - The engine error on failure; the Outcome carries the raw error
//     text that was shown to the user.
func (c *Controller) Submit(ctx context.Context, form Form) (Outcome, error) {
	if err := form.Validate(); err != nil {
		return Outcome{}, err
	}

	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return Outcome{}, ErrRequestInFlight
	}
	c.pending = true
	c.state = StatePending
	c.mu.Unlock()

	c.view.ShowETA(EstimateWait(form.MaxTokens))
	c.view.SetBusy(true)
	c.view.ClearError()
	defer func() {
		c.view.SetBusy(false)
		c.mu.Lock()
		c.pending = false
		c.mu.Unlock()
	}()

	prompt := NormalizePrompt(form.Prompt)
	res, err := c.model.Generate(ctx, &engine.CompletionRequest{
		Prompt:      prompt,
		MaxTokens:   form.MaxTokens,
		Temperature: form.Temperature,
		TopP:        form.TopP,
	})
	if err != nil {
		raw := engineutil.ErrorBody(err)
		c.setState(StateFailed)
		c.view.ShowResult("", "")
		c.view.ShowError(raw)
		return Outcome{Err: raw}, err
	}

	c.setState(StateSuccess)
	c.view.ShowResult(prompt, res.Text)
	return Outcome{Prompt: prompt, Completion: res.Text}, nil
}

// NormalizePrompt converts CRLF sequences to LF. Prompts pasted from
// Windows sources otherwise smuggle carriage returns into the request
// body.
func NormalizePrompt(prompt string) string {
	return strings.ReplaceAll(prompt, "\r\n", "\n")
}
