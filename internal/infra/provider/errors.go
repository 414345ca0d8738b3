package provider

import "fmt"

const (
	StageCompletion = "completion"
	StageSynthesis  = "synthesis"
)

// UpstreamError wraps a failure from one of the external collaborators and
// records which stage of the request produced it.
type UpstreamError struct {
	Stage string
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Stage, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
