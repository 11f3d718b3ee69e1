package textgen

import "time"

// Rough service-time model for a large model behind the demo endpoint:
// a fixed scheduling/queueing overhead plus a per-token decode cost.
const (
	// EtaOverhead is the fixed portion of the estimated wait.
	EtaOverhead = 5 * time.Second
	// EtaPerToken is the estimated decode cost per requested token.
	EtaPerToken = 60 * time.Millisecond
)

// EstimateWait returns the estimated wait time displayed to the user
// before a submission's response arrives.
func EstimateWait(maxTokens int) time.Duration {
	return EtaOverhead + time.Duration(maxTokens)*EtaPerToken
}
