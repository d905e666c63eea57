package entities

import (
	"fmt"

	"github.com/google/uuid"
)

// PipelineStage is a state of a dubbing run
type PipelineStage string

const (
	StageReceived           PipelineStage = "received"
	StageTableValidated     PipelineStage = "table_validated"
	StagePersisted          PipelineStage = "persisted"
	StageVoicesResolved     PipelineStage = "voices_resolved"
	StageColumnResolved     PipelineStage = "column_resolved"
	StageEnglishSynthesized PipelineStage = "english_synthesized"
	StageTargetSynthesized  PipelineStage = "target_synthesized"
	StageComplete           PipelineStage = "complete"
	StageFailed             PipelineStage = "failed"
)

// stageOrder lists the happy path; Failed is reachable from any stage.
var stageOrder = []PipelineStage{
	StageReceived,
	StageTableValidated,
	StagePersisted,
	StageVoicesResolved,
	StageColumnResolved,
	StageEnglishSynthesized,
	StageTargetSynthesized,
	StageComplete,
}

// IsTerminal reports whether no further transition is allowed
func (s PipelineStage) IsTerminal() bool {
	return s == StageComplete || s == StageFailed
}

func (s PipelineStage) next() (PipelineStage, bool) {
	for i, st := range stageOrder {
		if st == s && i+1 < len(stageOrder) {
			return stageOrder[i+1], true
		}
	}
	return "", false
}

// PipelineRun holds the request-scoped state of one dubbing request
type PipelineRun struct {
	ID           uuid.UUID
	Source       string
	Stage        PipelineStage
	Table        *Table
	Input        ArtifactRef
	Column       string
	Voices       VoiceAssignment
	EnglishAudio ArtifactRef
	TargetAudio  ArtifactRef
	Err          error
	FailedAt     PipelineStage
}

// NewPipelineRun creates a run in the Received stage
func NewPipelineRun(source string) *PipelineRun {
	return &PipelineRun{
		ID:     uuid.New(),
		Source: source,
		Stage:  StageReceived,
	}
}

// Advance moves the run to to, which must be the next stage on the happy path
func (r *PipelineRun) Advance(to PipelineStage) error {
	want, ok := r.Stage.next()
	if !ok || want != to {
		return fmt.Errorf("invalid pipeline transition %s -> %s", r.Stage, to)
	}
	r.Stage = to
	return nil
}

// Fail moves the run to the Failed stage and records err
func (r *PipelineRun) Fail(err error) error {
	if r.Stage.IsTerminal() {
		return err
	}
	r.FailedAt = r.Stage
	r.Stage = StageFailed
	r.Err = err
	return err
}
