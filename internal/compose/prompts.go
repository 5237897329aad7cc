package compose

import (
	"fmt"
	"sort"
	"strings"

	"dashforge/internal/grammar"
)

const generationSystemPrompt = `You are an expert in creating Grafana dashboards.
Your task is to generate a valid JSON configuration for a Grafana dashboard based on the user's description.

The generated JSON should follow these guidelines:
1. Include all required fields: panels, title
2. Each panel should have id, type, title, and proper gridPos
3. Use appropriate data sources and query expressions
4. Include reasonable visualization options
5. Ensure the dashboard is well-organized and visually effective

IMPORTANT: You must output ONLY the valid JSON object with no additional text or explanations.

Example of a valid panel structure:
{
  "id": 1,
  "type": "graph",
  "title": "Panel Title",
  "gridPos": {
    "h": 8,
    "w": 12,
    "x": 0,
    "y": 0
  }
}`

const repairSystemPrompt = `You are an expert in fixing Grafana dashboard JSON configurations.
You will be given a JSON configuration that has validation errors, along with error descriptions.

Your task is to fix these errors and return the corrected JSON configuration.

IMPORTANT:
1. Fix all validation errors
2. Only output the fixed JSON with no additional text or explanation
3. Ensure all required fields are present and have the correct types
4. Maintain as much of the original structure and intent as possible`

const contextualInputTemplate = `I am generating a Grafana dashboard for the following description:

%s

I have some additional context that might be helpful:

%s

Using the context provided above, please generate a complete, valid JSON configuration for a Grafana dashboard based on the description. Each panel must have the required fields (id, type, title, gridPos), organized in a logical layout.

Your response should be ONLY the valid JSON object with no additional text or explanations.`

const repairInputTemplate = `Here's a Grafana dashboard JSON with validation errors:

%s

The following errors were found:
%s

Please provide the fixed JSON that resolves these errors.`

// generationInstructions is the generation system prompt plus the panel-type
// catalogue, so the model knows which visualization types are allowed.
func generationInstructions() string {
	docs := grammar.PanelTypeDocs()
	types := make([]string, 0, len(docs))
	for name := range docs {
		types = append(types, name)
	}
	sort.Strings(types)

	var b strings.Builder
	b.WriteString(generationSystemPrompt)
	b.WriteString("\n\nAvailable panel types:\n")
	for _, name := range types {
		fmt.Fprintf(&b, "- %s: %s\n", name, docs[name])
	}
	return b.String()
}
