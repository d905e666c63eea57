package dubbing

import (
	"fmt"

	"github.com/johnquangdev/transcript-dubber/internal/domain/entities"
)

// PipelineError describes why a dubbing run stopped
type PipelineError struct {
	// Kind is one of the entities.Err* pipeline error kinds
	Kind error
	// Stage is the last stage the run reached
	Stage entities.PipelineStage
	// Subject names what the failure is about: a locale or a column
	Subject string
	Err     error
}

func (e *PipelineError) Error() string {
	msg := e.Kind.Error()
	if e.Subject != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Subject)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s at %s: %v", msg, e.Stage, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As
func (e *PipelineError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
