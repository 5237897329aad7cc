package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"dashforge/internal/journal"
	"dashforge/internal/task"
)

// Submission errors.
var (
	ErrEmptyRequest    = errors.New("request text is empty")
	ErrUnknownProvider = errors.New("unknown provider")
)

// Service ties the controllers to the task store: it creates a task per
// request and runs the workflow in a goroutine, mirroring every phase
// into the store and the journal.
type Service struct {
	store       *task.Store
	controllers map[string]*Controller
	defaultID   string
	recorder    *journal.Recorder
}

// NewService constructs a run service over one controller per provider id.
// recorder may be nil.
func NewService(store *task.Store, controllers map[string]*Controller, defaultID string, recorder *journal.Recorder) *Service {
	return &Service{store: store, controllers: controllers, defaultID: defaultID, recorder: recorder}
}

// Submit registers a task for the request and starts its run. The returned
// id is valid immediately; the run proceeds in the background.
func (s *Service) Submit(ctx context.Context, req Request) (string, error) {
	if req.Text == "" {
		return "", ErrEmptyRequest
	}
	provider := req.Provider
	if provider == "" {
		provider = s.defaultID
	}
	controller, ok := s.controllers[provider]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}

	t := s.store.Create()
	// The run outlives the submitting request.
	go s.run(context.WithoutCancel(ctx), controller, t.ID, req)
	return t.ID, nil
}

func (s *Service) run(ctx context.Context, controller *Controller, id string, req Request) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("task_id", id).Any("panic", r).Msg("run panicked")
			s.finish(ctx, id, Outcome{
				Status: task.StatusFailed,
				Err:    fmt.Errorf("internal error: %v", r),
			})
		}
	}()

	status := task.StatusRunning
	if _, err := s.store.Update(id, task.Update{Status: &status}); err != nil {
		log.Error().Err(err).Str("task_id", id).Msg("marking task running failed")
		return
	}
	s.recorder.RunStarted(ctx, id, req.Text)

	outcome := controller.Run(ctx, req, func(state *RunState) {
		s.store.Update(id, task.Update{Attempts: &state.Attempts}) //nolint:errcheck
		s.recorder.Phase(ctx, id, string(state.Phase), phaseMessage(state), phaseData(state))
	})
	s.finish(ctx, id, outcome)
}

func (s *Service) finish(ctx context.Context, id string, outcome Outcome) {
	update := task.Update{
		Status:      &outcome.Status,
		Attempts:    &outcome.Attempts,
		Result:      outcome.Candidate,
		Diagnostics: outcome.Diagnostics,
	}
	if outcome.Err != nil {
		msg := outcome.Err.Error()
		update.Error = &msg
	}
	if _, err := s.store.Update(id, update); err != nil {
		log.Error().Err(err).Str("task_id", id).Msg("recording run outcome failed")
	}
	s.recorder.RunFinished(ctx, id, outcome.Status, outcome.Attempts)

	log.Info().
		Str("task_id", id).
		Str("status", outcome.Status).
		Int("attempts", outcome.Attempts).
		Msg("run finished")
}

func phaseMessage(state *RunState) string {
	switch state.Phase {
	case PhaseValidating:
		return fmt.Sprintf("%d diagnostics", len(state.Diagnostics))
	case PhaseRepairing:
		return fmt.Sprintf("attempt %d", state.Attempts)
	default:
		return ""
	}
}

// phaseData is the structured snapshot journaled with a phase event.
func phaseData(state *RunState) any {
	if state.Phase == PhaseValidating && len(state.Diagnostics) > 0 {
		return state.Diagnostics
	}
	return nil
}
