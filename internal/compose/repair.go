package compose

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"dashforge/internal/llm"
)

// Repairer asks the backend to correct a dashboard document given repair
// hints. It never inspects attempt counts; budget enforcement lives in the
// workflow.
type Repairer struct {
	client llm.Client
}

// NewRepairer constructs a repairer.
func NewRepairer(client llm.Client) *Repairer {
	return &Repairer{client: client}
}

// Repair serializes the document and hints into the repair prompt, performs
// a single backend call, and parses the response like Generate does.
func (r *Repairer) Repair(ctx context.Context, dashboard map[string]any, hints []string) (map[string]any, error) {
	serialized, err := json.MarshalIndent(dashboard, "", "  ")
	if err != nil {
		return nil, &StageError{Stage: StageRepair, Reason: ReasonParse, Err: fmt.Errorf("serialize dashboard: %w", err)}
	}

	resp, err := r.client.Complete(ctx, llm.Request{
		Instructions: repairSystemPrompt,
		Input:        fmt.Sprintf(repairInputTemplate, serialized, strings.Join(hints, "\n")),
	})
	if err != nil {
		return nil, &StageError{Stage: StageRepair, Reason: ReasonCall, Err: err}
	}

	fixed, err := decodeDashboard(resp.OutputText)
	if err != nil {
		return nil, &StageError{Stage: StageRepair, Reason: ReasonParse, Err: err}
	}
	return fixed, nil
}
