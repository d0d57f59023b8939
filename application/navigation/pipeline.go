package navigation

import (
	"context"

	"github.com/Dimo99/angular/domain/events"
	"github.com/Dimo99/angular/domain/urltree"
)

// Status is the terminal classification of a processed transition
type Status string

const (
	// StatusSuccess means the navigation activated fully
	StatusSuccess Status = "success"
	// StatusCanceled means a guard or policy declined the navigation
	StatusCanceled Status = "canceled"
	// StatusFailed means an unexpected error interrupted the pipeline
	StatusFailed Status = "failed"
)

// Outcome is the terminal result the pipeline reports for one transition
type Outcome struct {
	Status Status
	Code   events.CancellationCode
	Reason string
	Err    error
}

// Success reports a fully activated navigation
func Success() Outcome {
	return Outcome{Status: StatusSuccess}
}

// Canceled reports a benign cancellation with a machine-readable code
// and a human-readable reason
func Canceled(code events.CancellationCode, reason string) Outcome {
	return Outcome{Status: StatusCanceled, Code: code, Reason: reason}
}

// Failed reports an unrecovered pipeline error
func Failed(err error) Outcome {
	return Outcome{Status: StatusFailed, Err: err}
}

// PhaseHooks are callbacks the pipeline must invoke at documented
// points so the engine can keep the visible address in step with the
// configured update strategy.
type PhaseHooks struct {
	// Recognized must be called once matching and redirects resolved
	// the final address of the transition
	Recognized func(finalURL *urltree.Tree)

	// PreActivation must be called once guards and resolvers have
	// passed and activation is assured
	PreActivation func()
}

// Pipeline turns a scheduled navigation into a terminal outcome. The
// engine owns sequencing and reconciliation; the pipeline owns
// matching, guard evaluation, data resolution and activation.
//
// The context is cancelled when a newer navigation supersedes this
// one; a cooperative pipeline returns a superseded cancellation.
type Pipeline interface {
	Process(ctx context.Context, nav *Navigation, phases PhaseHooks) Outcome
}

// PipelineFunc adapts a function to the Pipeline interface
type PipelineFunc func(ctx context.Context, nav *Navigation, phases PhaseHooks) Outcome

// Process implements Pipeline
func (f PipelineFunc) Process(ctx context.Context, nav *Navigation, phases PhaseHooks) Outcome {
	return f(ctx, nav, phases)
}

// AcceptPipeline recognizes every address as final and activates it
// without guards. It is the default wiring for hosts that only need
// the scheduling and history behavior.
type AcceptPipeline struct{}

// Process implements Pipeline
func (AcceptPipeline) Process(ctx context.Context, nav *Navigation, phases PhaseHooks) Outcome {
	select {
	case <-ctx.Done():
		return Canceled(events.CancellationCodeSupersededByNewNavigation,
			"superseded by a newer navigation")
	default:
	}
	phases.Recognized(nav.ExtractedURL)
	phases.PreActivation()
	return Success()
}
