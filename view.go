package textgen

import "time"

// View receives display updates from a Controller during a submission.
// Implementations render to whatever surface hosts the demo: the web
// handler snapshots the calls into a JSON response, the CLI prints them
// to the terminal, and tests record them.
//
// All methods are invoked from the goroutine running Submit.
type View interface {
	// SetBusy toggles the busy indicator and the submit affordance.
	// Submit guarantees SetBusy(false) is called exactly once after
	// SetBusy(true), on both success and failure.
	SetBusy(busy bool)

	// ShowETA displays the estimated wait before the response arrives.
	ShowETA(eta time.Duration)

	// ShowResult displays the submitted prompt and the completion.
	// Both are empty on failure.
	ShowResult(prompt, completion string)

	// ShowError displays the raw error text of a failed request.
	ShowError(raw string)

	// ClearError empties the error display region.
	ClearError()
}

// NopView is a View that ignores all updates. Useful when only the
// Outcome returned by Submit is of interest.
type NopView struct{}

func (NopView) SetBusy(bool)           {}
func (NopView) ShowETA(time.Duration)  {}
func (NopView) ShowResult(_, _ string) {}
func (NopView) ShowError(string)       {}
func (NopView) ClearError()            {}
