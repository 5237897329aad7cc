// Package workflow drives the generate-validate-repair loop for one
// dashboard request and owns the retry budget.
package workflow

import (
	"context"

	"github.com/rs/zerolog/log"

	"dashforge/internal/grammar"
	"dashforge/internal/task"
)

// Phase is a step of the run state machine.
type Phase string

// Run phases. A run moves Generating → Validating, then cycles
// Repairing → Validating until the budget is spent, and ends in Done or
// Escalating.
const (
	PhaseGenerating Phase = "generating"
	PhaseValidating Phase = "validating"
	PhaseRepairing  Phase = "repairing"
	PhaseEscalating Phase = "escalating"
	PhaseDone       Phase = "done"
)

// Request is one dashboard generation request. Provider and MaxRepairs
// are optional; zero values select the configured defaults.
type Request struct {
	Text       string
	Provider   string
	MaxRepairs int
	UseContext bool
}

// RunState is the full state of a run between phases.
type RunState struct {
	Phase       Phase
	Candidate   map[string]any
	Diagnostics []grammar.Diagnostic
	Attempts    int
}

// Outcome is the terminal result of a run. Status is one of the task
// status values; Err is set only when Status is failed.
type Outcome struct {
	Status      string
	Candidate   map[string]any
	Diagnostics []grammar.Diagnostic
	Attempts    int
	Err         error
}

// Generator produces an initial candidate from request text.
type Generator interface {
	Generate(ctx context.Context, text string, useContext bool) (map[string]any, error)
}

// Repairer produces a corrected candidate from the current one and hints.
type Repairer interface {
	Repair(ctx context.Context, dashboard map[string]any, hints []string) (map[string]any, error)
}

// Controller executes runs. It knows nothing about tasks or transport;
// the run service layers those on top.
type Controller struct {
	generator  Generator
	repairer   Repairer
	maxRepairs int
}

// NewController constructs a controller with the given default repair
// budget.
func NewController(generator Generator, repairer Repairer, maxRepairs int) *Controller {
	return &Controller{generator: generator, repairer: repairer, maxRepairs: maxRepairs}
}

// Run executes one request to a terminal outcome. observe, if non-nil, is
// called after every phase transition with the current state.
func (c *Controller) Run(ctx context.Context, req Request, observe func(*RunState)) Outcome {
	maxRepairs := c.maxRepairs
	if req.MaxRepairs > 0 {
		maxRepairs = req.MaxRepairs
	}
	state := &RunState{Phase: PhaseGenerating}
	notify := func() {
		if observe != nil {
			observe(state)
		}
	}
	notify()

	candidate, err := c.generator.Generate(ctx, req.Text, req.UseContext)
	if err != nil {
		// A driver failure ends the run; it is never routed through repair.
		state.Phase = PhaseDone
		notify()
		return Outcome{Status: task.StatusFailed, Attempts: state.Attempts, Err: err}
	}
	state.Candidate = candidate

	for {
		state.Phase = PhaseValidating
		state.Diagnostics = grammar.Validate(state.Candidate)
		notify()

		switch {
		case len(state.Diagnostics) == 0:
			state.Phase = PhaseDone
			notify()
			return Outcome{
				Status:    task.StatusCompleted,
				Candidate: state.Candidate,
				Attempts:  state.Attempts,
			}

		case state.Attempts < maxRepairs:
			// The attempt is spent when repair is invoked, whether or not
			// the repaired candidate turns out valid.
			state.Attempts++
			state.Phase = PhaseRepairing
			notify()

			fixed, err := c.repairer.Repair(ctx, state.Candidate, grammar.Hints(state.Diagnostics))
			if err != nil {
				state.Phase = PhaseDone
				notify()
				return Outcome{
					Status:      task.StatusFailed,
					Candidate:   state.Candidate,
					Diagnostics: state.Diagnostics,
					Attempts:    state.Attempts,
					Err:         err,
				}
			}
			state.Candidate = fixed

		default:
			log.Info().Int("attempts", state.Attempts).Msg("repair budget exhausted, escalating")
			state.Phase = PhaseEscalating
			notify()
			return Outcome{
				Status:      task.StatusAwaitingHuman,
				Candidate:   state.Candidate,
				Diagnostics: state.Diagnostics,
				Attempts:    state.Attempts,
			}
		}
	}
}
