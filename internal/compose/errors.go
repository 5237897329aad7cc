// Package compose builds prompts for the generation backends and extracts
// dashboard documents from their responses.
package compose

import "fmt"

// Stage identifies which driver a failure came from.
type Stage string

// Driver stages.
const (
	StageGeneration Stage = "generation"
	StageRepair     Stage = "repair"
)

// Failure reasons.
const (
	ReasonCall  = "call"
	ReasonParse = "parse"
)

// StageError is a fatal driver failure: the backend call failed or its
// response could not be parsed as a dashboard document.
type StageError struct {
	Stage  Stage
	Reason string
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed (%s): %v", e.Stage, e.Reason, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
