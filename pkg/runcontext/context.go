package runcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type KeyContext string

var (
	keyRunID     KeyContext = "run_id"
	keySource    KeyContext = "source"
	keyStartTime KeyContext = "run_start_time"
)

// RunMetadata holds metadata for one dubbing run
type RunMetadata struct {
	RunID     uuid.UUID
	Source    string
	StartTime time.Time
}

// Begin attaches run metadata to ctx
func Begin(ctx context.Context, runID uuid.UUID, source string) context.Context {
	ctx = context.WithValue(ctx, keyRunID, runID)
	ctx = context.WithValue(ctx, keySource, source)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())
	return ctx
}

// GetRunID extracts the run ID from context
func GetRunID(ctx context.Context) (uuid.UUID, bool) {
	runID, ok := ctx.Value(keyRunID).(uuid.UUID)
	return runID, ok
}

// GetSource extracts the requested locale from context
func GetSource(ctx context.Context) (string, bool) {
	source, ok := ctx.Value(keySource).(string)
	return source, ok
}

// GetStartTime extracts the run start time from context
func GetStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyStartTime).(time.Time)
	return startTime, ok
}

// GetRunMetadata extracts all run metadata from context
func GetRunMetadata(ctx context.Context) *RunMetadata {
	runID, _ := GetRunID(ctx)
	source, _ := GetSource(ctx)
	startTime, _ := GetStartTime(ctx)

	return &RunMetadata{
		RunID:     runID,
		Source:    source,
		StartTime: startTime,
	}
}

// LogFields returns zap fields describing the run in ctx, or nothing when
// ctx carries no run
func LogFields(ctx context.Context) []zap.Field {
	runID, ok := GetRunID(ctx)
	if !ok {
		return nil
	}
	fields := []zap.Field{zap.String("run_id", runID.String())}
	if source, ok := GetSource(ctx); ok {
		fields = append(fields, zap.String("source", source))
	}
	return fields
}
