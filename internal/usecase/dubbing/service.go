package dubbing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/johnquangdev/transcript-dubber/internal/domain/entities"
	"github.com/johnquangdev/transcript-dubber/internal/domain/repositories"
	"github.com/johnquangdev/transcript-dubber/internal/infrastructure/telemetry"
	"github.com/johnquangdev/transcript-dubber/internal/usecase/ssml"
	"github.com/johnquangdev/transcript-dubber/pkg/runcontext"
)

// ErrEmptyTable is the InvalidTable cause for uploads without data rows
var ErrEmptyTable = errors.New("the uploaded CSV is empty")

// Service defines the dubbing use case
type Service interface {
	// Dub turns an uploaded transcript into English and target-language audio
	Dub(ctx context.Context, req Request) (*Result, error)
}

// Request is one upload
type Request struct {
	// Source is the requested locale, e.g. "fr-FR"
	Source string
	Data   []byte
}

// Result holds the links to both generated audio files
type Result struct {
	RunID        string
	Source       string
	Column       string
	Input        entities.ArtifactRef
	EnglishAudio entities.ArtifactRef
	TargetAudio  entities.ArtifactRef
}

// EnglishVoices configures the fixed English rendition
type EnglishVoices struct {
	Locale string
	Voices entities.VoiceAssignment
}

// LocaleChecker rejects malformed locales before the voice catalog is queried
type LocaleChecker interface {
	ValidLocale(locale string) bool
}

// Options configures a dubbing service
type Options struct {
	Store   repositories.ArtifactRepository
	Speech  repositories.SpeechRepository
	Builder *ssml.Builder
	English EnglishVoices
	// Locales is optional; without it every locale goes to the catalog
	Locales LocaleChecker
	Metrics *telemetry.PipelineMetrics
	Logger  *zap.Logger
}

type dubbingService struct {
	store   repositories.ArtifactRepository
	speech  repositories.SpeechRepository
	builder *ssml.Builder
	english EnglishVoices
	locales LocaleChecker
	metrics *telemetry.PipelineMetrics
	logger  *zap.Logger
}

// Ensure dubbingService implements Service interface
var _ Service = (*dubbingService)(nil)

// NewService constructs the dubbing pipeline
func NewService(opts Options) (Service, error) {
	if opts.Store == nil || opts.Speech == nil {
		return nil, fmt.Errorf("dubbing service requires a store and a speech provider")
	}
	if opts.Builder == nil {
		opts.Builder = ssml.NewBuilder(nil)
	}
	if opts.Metrics == nil {
		m, err := telemetry.NewPipelineMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
		}
		opts.Metrics = m
	}

	return &dubbingService{
		store:   opts.Store,
		speech:  opts.Speech,
		builder: opts.Builder,
		english: opts.English,
		locales: opts.Locales,
		metrics: opts.Metrics,
		logger:  opts.Logger,
	}, nil
}

// CleanSource strips whitespace, backslashes, newlines and tabs that form
// submissions tend to carry around the locale.
func CleanSource(source string) string {
	source = strings.TrimSpace(source)
	return strings.NewReplacer("\\", "", "\n", "", "\t", "").Replace(source)
}

// Dub runs the pipeline:
//
//	Received -> TableValidated -> Persisted -> VoicesResolved -> ColumnResolved
//	  -> EnglishSynthesized -> TargetSynthesized -> Complete
//
// Any failure moves the run to Failed and nothing partial is returned.
func (s *dubbingService) Dub(ctx context.Context, req Request) (*Result, error) {
	started := time.Now()
	run := entities.NewPipelineRun(CleanSource(req.Source))
	ctx = runcontext.Begin(ctx, run.ID, run.Source)

	ctx, span := s.metrics.StartStage(ctx, "run")
	span.SetAttributes(
		attribute.String("run_id", run.ID.String()),
		attribute.String("source", run.Source),
	)
	defer span.End()

	err := s.execute(ctx, run, req.Data)

	outcome, failedAt := "ok", ""
	if err != nil {
		outcome, failedAt = kindLabel(err), string(run.FailedAt)
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	s.metrics.RecordRun(ctx, outcome, failedAt, time.Since(started))

	if err != nil {
		if s.logger != nil {
			s.logger.Error("dubbing run failed",
				zap.String("run_id", run.ID.String()),
				zap.String("source", run.Source),
				zap.String("failed_at", failedAt),
				zap.Error(err))
		}
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("dubbing run complete",
			zap.String("run_id", run.ID.String()),
			zap.String("source", run.Source),
			zap.String("column", run.Column),
			zap.Duration("elapsed", time.Since(started)))
	}

	return &Result{
		RunID:        run.ID.String(),
		Source:       run.Source,
		Column:       run.Column,
		Input:        run.Input,
		EnglishAudio: run.EnglishAudio,
		TargetAudio:  run.TargetAudio,
	}, nil
}

func (s *dubbingService) execute(ctx context.Context, run *entities.PipelineRun, data []byte) error {
	// Received -> TableValidated
	table, err := ParseTable(data)
	if err != nil {
		kind := entities.ErrInvalidTable
		if errors.Is(err, entities.ErrMalformedEncoding) {
			kind = entities.ErrMalformedEncoding
		}
		return s.fail(run, kind, "", err)
	}
	if table.IsEmpty() {
		return s.fail(run, entities.ErrInvalidTable, "", ErrEmptyTable)
	}
	run.Table = table
	if err := run.Advance(entities.StageTableValidated); err != nil {
		return err
	}

	// TableValidated -> Persisted
	input, err := s.persist(ctx, "persist_input", entities.FolderInput, "csv", "text/csv", data)
	if err != nil {
		return s.fail(run, entities.ErrStorageUnavailable, "", err)
	}
	run.Input = input
	if err := run.Advance(entities.StagePersisted); err != nil {
		return err
	}

	// Persisted -> VoicesResolved
	if s.locales != nil && !s.locales.ValidLocale(run.Source) {
		return s.fail(run, entities.ErrUnsupportedLocale, run.Source, fmt.Errorf("malformed locale %q", run.Source))
	}
	voices, err := s.resolveVoices(ctx, run.Source)
	if err != nil {
		return s.fail(run, kindOf(err, entities.ErrProviderUnavailable), run.Source, err)
	}
	run.Voices = voices
	if err := run.Advance(entities.StageVoicesResolved); err != nil {
		return err
	}

	// VoicesResolved -> ColumnResolved
	code := ssml.LocaleCode(run.Source)
	column, err := ssml.ResolveTranscriptionColumn(table.Columns, code)
	if err != nil {
		return s.fail(run, entities.ErrMissingTranscriptionColumn, code+entities.TranscriptionSuffix, err)
	}
	if !hasSpeakableText(table, column) {
		return s.fail(run, entities.ErrEmptyTranscriptionColumn, column, nil)
	}
	run.Column = column
	if err := run.Advance(entities.StageColumnResolved); err != nil {
		return err
	}

	// ColumnResolved -> EnglishSynthesized
	if !table.HasColumn(entities.EnglishTranscriptionColumn) {
		return s.fail(run, entities.ErrMissingTranscriptionColumn, entities.EnglishTranscriptionColumn, nil)
	}
	english, err := s.render(ctx, table, entities.EnglishTranscriptionColumn, s.english.Voices, s.english.Locale)
	if err != nil {
		return s.fail(run, kindOf(err, entities.ErrSynthesisFailed), entities.EnglishTranscriptionColumn, err)
	}
	run.EnglishAudio = english
	if err := run.Advance(entities.StageEnglishSynthesized); err != nil {
		return err
	}

	// EnglishSynthesized -> TargetSynthesized
	// TODO: return the English audio when only the target rendition fails once
	// the response schema grows a partial-result shape.
	target, err := s.render(ctx, table, column, voices, run.Source)
	if err != nil {
		return s.fail(run, kindOf(err, entities.ErrSynthesisFailed), column, err)
	}
	run.TargetAudio = target
	if err := run.Advance(entities.StageTargetSynthesized); err != nil {
		return err
	}

	return run.Advance(entities.StageComplete)
}

func (s *dubbingService) resolveVoices(ctx context.Context, locale string) (entities.VoiceAssignment, error) {
	ctx, span := s.metrics.StartStage(ctx, "resolve_voices")
	defer span.End()

	catalog, err := s.speech.ListVoices(ctx)
	if err != nil {
		return entities.VoiceAssignment{}, err
	}
	voices, err := ssml.SelectVoices(catalog, locale)
	if err == nil {
		return voices, nil
	}

	// A cached catalog may predate voices added for this locale; look once
	// more against a fresh copy.
	inv, ok := s.speech.(repositories.CatalogInvalidator)
	if !ok {
		return entities.VoiceAssignment{}, err
	}
	inv.Invalidate()
	if s.logger != nil {
		s.logger.Info("voice catalog invalidated", append(runcontext.LogFields(ctx), zap.Error(err))...)
	}

	catalog, err = s.speech.ListVoices(ctx)
	if err != nil {
		return entities.VoiceAssignment{}, err
	}
	return ssml.SelectVoices(catalog, locale)
}

// hasSpeakableText reports whether any row of column still has text once
// bracketed annotations are removed
func hasSpeakableText(table *entities.Table, column string) bool {
	for _, row := range table.Rows {
		if strings.TrimSpace(ssml.SanitizeText(row[column])) != "" {
			return true
		}
	}
	return false
}

// render builds, persists and synthesizes one language and stores the audio
func (s *dubbingService) render(ctx context.Context, table *entities.Table, column string, voices entities.VoiceAssignment, lang string) (entities.ArtifactRef, error) {
	ctx, span := s.metrics.StartStage(ctx, "render")
	span.SetAttributes(attribute.String("column", column), attribute.String("lang", lang))
	defer span.End()

	doc := s.builder.Build(table, column, voices, lang)
	if doc.Utterances == 0 {
		return entities.ArtifactRef{}, entities.ErrEmptyTranscriptionColumn
	}

	ref, err := s.persist(ctx, "persist_ssml", entities.FolderSSML, "ssml", "application/ssml+xml", doc.Bytes())
	if err != nil {
		return entities.ArtifactRef{}, err
	}

	markup, err := s.store.Fetch(ctx, ref.Key)
	if err != nil {
		return entities.ArtifactRef{}, err
	}

	_, synthSpan := s.metrics.StartStage(ctx, "synthesize")
	audio, err := s.speech.Synthesize(ctx, markup)
	synthSpan.End()
	if err != nil {
		return entities.ArtifactRef{}, err
	}

	if s.logger != nil {
		s.logger.Info("language rendered", append(runcontext.LogFields(ctx),
			zap.String("column", column),
			zap.String("lang", lang),
			zap.Int("utterances", doc.Utterances),
			zap.String("ssml_key", ref.Key))...)
	}

	return s.persist(ctx, "persist_audio", entities.FolderAudio, "wav", "audio/wav", audio)
}

func (s *dubbingService) persist(ctx context.Context, stage, folder, ext, contentType string, data []byte) (entities.ArtifactRef, error) {
	ctx, span := s.metrics.StartStage(ctx, stage)
	defer span.End()

	ref, err := s.store.Persist(ctx, folder, ext, contentType, data)
	if err != nil && !errors.Is(err, entities.ErrStorageUnavailable) {
		err = fmt.Errorf("%w: %v", entities.ErrStorageUnavailable, err)
	}
	return ref, err
}

func (s *dubbingService) fail(run *entities.PipelineRun, kind error, subject string, cause error) error {
	perr := &PipelineError{
		Kind:    kind,
		Stage:   run.Stage,
		Subject: subject,
		Err:     cause,
	}
	return run.Fail(perr)
}

var pipelineKinds = []error{
	entities.ErrInvalidTable,
	entities.ErrMalformedEncoding,
	entities.ErrStorageUnavailable,
	entities.ErrUnsupportedLocale,
	entities.ErrIncompleteVoiceCoverage,
	entities.ErrMissingTranscriptionColumn,
	entities.ErrEmptyTranscriptionColumn,
	entities.ErrProviderUnavailable,
	entities.ErrSynthesisFailed,
}

// kindOf returns the pipeline kind carried by err, or fallback
func kindOf(err error, fallback error) error {
	for _, kind := range pipelineKinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return fallback
}

func kindLabel(err error) string {
	var perr *PipelineError
	if errors.As(err, &perr) {
		return strings.ReplaceAll(perr.Kind.Error(), " ", "_")
	}
	return "internal"
}
