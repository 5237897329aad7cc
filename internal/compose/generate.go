package compose

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"dashforge/internal/llm"
	"dashforge/internal/retrieval"
)

// Generator produces an initial dashboard document from a request. It owns
// prompt construction and response extraction; retrying is the workflow's
// concern, not the generator's.
type Generator struct {
	client    llm.Client
	retriever retrieval.Retriever
}

// NewGenerator constructs a generator. The retriever may be nil, in which
// case context augmentation is unavailable even when requested.
func NewGenerator(client llm.Client, retriever retrieval.Retriever) *Generator {
	return &Generator{client: client, retriever: retriever}
}

// Generate builds the generation prompt, performs a single backend call, and
// parses the response into a dashboard document.
func (g *Generator) Generate(ctx context.Context, text string, useContext bool) (map[string]any, error) {
	input := text
	if useContext && g.retriever != nil {
		retrieved, err := g.retriever.Retrieve(ctx, text)
		if err != nil {
			// Retrieval is best-effort: a failed lookup degrades the prompt,
			// it does not fail the run.
			log.Warn().Err(err).Msg("context retrieval failed, generating without context")
		} else {
			input = fmt.Sprintf(contextualInputTemplate, text, retrieval.Render(retrieved))
		}
	}

	resp, err := g.client.Complete(ctx, llm.Request{
		Instructions: generationInstructions(),
		Input:        input,
	})
	if err != nil {
		return nil, &StageError{Stage: StageGeneration, Reason: ReasonCall, Err: err}
	}

	dashboard, err := decodeDashboard(resp.OutputText)
	if err != nil {
		return nil, &StageError{Stage: StageGeneration, Reason: ReasonParse, Err: err}
	}
	return dashboard, nil
}
