package dubbing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/johnquangdev/transcript-dubber/internal/domain/entities"
)

const frenchCSV = "Speaker,Time Markers,EN--Transcription,FR--Transcription\n" +
	"spk_0,0:00,Hello there,Bonjour\n" +
	"spk_1,0:04,[laughs] Hi,Salut\n" +
	"spk_0,0:10,See you,A plus\n"

func newTestService(t *testing.T, store *memoryStore, speech *fakeSpeech) Service {
	t.Helper()
	svc, err := NewService(Options{
		Store:  store,
		Speech: speech,
		English: testEnglish,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

var testEnglish = EnglishVoices{
	Locale: "en-US",
	Voices: entities.VoiceAssignment{Male: "en-US-GuyNeural", Female: "en-US-JennyNeural"},
}

func dubError(t *testing.T, err error) *PipelineError {
	t.Helper()
	var perr *PipelineError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *PipelineError, got %v", err)
	}
	return perr
}

func TestDub_Success(t *testing.T) {
	store := newMemoryStore()
	speech := &fakeSpeech{catalog: defaultCatalog()}
	svc := newTestService(t, store, speech)

	res, err := svc.Dub(context.Background(), Request{Source: " fr-FR\n", Data: []byte(frenchCSV)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Source != "fr-FR" || res.Column != "FR--Transcription" {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.EnglishAudio.URL == "" || res.TargetAudio.URL == "" {
		t.Fatal("expected both audio links")
	}
	if res.EnglishAudio.Key == res.TargetAudio.Key {
		t.Fatal("audio artifacts must be distinct")
	}
	if !strings.HasPrefix(res.Input.Key, entities.FolderInput) {
		t.Errorf("input key = %q", res.Input.Key)
	}

	if n := len(store.keys(entities.FolderSSML)); n != 2 {
		t.Errorf("expected 2 ssml documents, got %d", n)
	}
	if n := len(store.keys(entities.FolderAudio)); n != 2 {
		t.Errorf("expected 2 audio files, got %d", n)
	}

	if len(speech.synthesized) != 2 {
		t.Fatalf("expected 2 synthesis calls, got %d", len(speech.synthesized))
	}
	english, target := speech.synthesized[0], speech.synthesized[1]
	if !strings.Contains(english, "xml:lang='en-US'") || !strings.Contains(english, "en-US-GuyNeural") {
		t.Errorf("english document not voiced in English:\n%s", english)
	}
	if strings.Contains(english, "[laughs]") {
		t.Errorf("bracketed annotations must be stripped:\n%s", english)
	}
	if !strings.Contains(target, "fr-FR-HenriNeural") || !strings.Contains(target, "fr-FR-DeniseNeural") {
		t.Errorf("target document missing French voices:\n%s", target)
	}
	if !strings.Contains(target, "<break time='4s' />") {
		t.Errorf("expected gap pause in target document:\n%s", target)
	}
}

func TestDub_EmptyTable(t *testing.T) {
	for name, data := range map[string]string{
		"no bytes":    "",
		"header only": "Speaker,Time Markers,EN--Transcription\n",
	} {
		t.Run(name, func(t *testing.T) {
			store := newMemoryStore()
			speech := &fakeSpeech{catalog: defaultCatalog()}

			_, err := newTestService(t, store, speech).Dub(context.Background(), Request{Source: "fr-FR", Data: []byte(data)})
			if !errors.Is(err, entities.ErrInvalidTable) || !errors.Is(err, ErrEmptyTable) {
				t.Fatalf("expected empty table error, got %v", err)
			}
			if dubError(t, err).Stage != entities.StageReceived {
				t.Errorf("unexpected stage %s", dubError(t, err).Stage)
			}
			if len(store.order) != 0 {
				t.Error("nothing must be persisted for an empty upload")
			}
		})
	}
}

func TestDub_MalformedEncoding(t *testing.T) {
	_, err := newTestService(t, newMemoryStore(), &fakeSpeech{catalog: defaultCatalog()}).
		Dub(context.Background(), Request{Source: "fr-FR", Data: []byte("Speaker,FR--Transcription\nspk_0,caf\xe9\n")})
	if !errors.Is(err, entities.ErrMalformedEncoding) {
		t.Fatalf("expected ErrMalformedEncoding, got %v", err)
	}
}

func TestDub_MissingTargetColumn(t *testing.T) {
	store := newMemoryStore()
	speech := &fakeSpeech{catalog: defaultCatalog()}

	speech.catalog = append(speech.catalog, entities.Voice{Locale: "de-DE", ShortName: "de-DE-KatjaNeural", Gender: "Female"})

	_, err := newTestService(t, store, speech).Dub(context.Background(), Request{Source: "de-DE", Data: []byte(frenchCSV)})
	if !errors.Is(err, entities.ErrMissingTranscriptionColumn) {
		t.Fatalf("expected ErrMissingTranscriptionColumn, got %v", err)
	}
	if perr := dubError(t, err); perr.Subject != "DE--Transcription" || perr.Stage != entities.StageVoicesResolved {
		t.Fatalf("unexpected error details %+v", perr)
	}
	if len(speech.synthesized) != 0 {
		t.Fatal("no synthesis must happen without a target column")
	}
}

func TestDub_EmptyTargetColumn(t *testing.T) {
	data := "Speaker,Time Markers,EN--Transcription,FR--Transcription\n" +
		"spk_0,0:00,Hello,\n" +
		"spk_1,0:04,Hi,  \n"

	_, err := newTestService(t, newMemoryStore(), &fakeSpeech{catalog: defaultCatalog()}).
		Dub(context.Background(), Request{Source: "fr-FR", Data: []byte(data)})
	if !errors.Is(err, entities.ErrEmptyTranscriptionColumn) {
		t.Fatalf("expected ErrEmptyTranscriptionColumn, got %v", err)
	}
	if perr := dubError(t, err); perr.Subject != "FR--Transcription" {
		t.Fatalf("subject = %q", perr.Subject)
	}
}

func TestDub_AnnotationOnlyColumnIsEmpty(t *testing.T) {
	data := "Speaker,Time Markers,EN--Transcription,FR--Transcription\n" +
		"spk_0,0:00,Hello,[music]\n"

	store := newMemoryStore()
	speech := &fakeSpeech{catalog: defaultCatalog()}

	_, err := newTestService(t, store, speech).Dub(context.Background(), Request{Source: "fr-FR", Data: []byte(data)})
	if !errors.Is(err, entities.ErrEmptyTranscriptionColumn) {
		t.Fatalf("expected ErrEmptyTranscriptionColumn, got %v", err)
	}
	if perr := dubError(t, err); perr.Stage != entities.StageVoicesResolved || perr.Subject != "FR--Transcription" {
		t.Fatalf("unexpected error details %+v", perr)
	}
	if len(speech.synthesized) != 0 {
		t.Fatalf("expected no synthesis, got %d calls", len(speech.synthesized))
	}
	if n := len(store.keys(entities.FolderAudio)); n != 0 {
		t.Fatalf("expected no audio objects, got %d", n)
	}
}

func TestDub_MissingEnglishColumn(t *testing.T) {
	data := "Speaker,Time Markers,FR--Transcription\nspk_0,0:00,Bonjour\n"

	_, err := newTestService(t, newMemoryStore(), &fakeSpeech{catalog: defaultCatalog()}).
		Dub(context.Background(), Request{Source: "fr-FR", Data: []byte(data)})
	if !errors.Is(err, entities.ErrMissingTranscriptionColumn) {
		t.Fatalf("expected ErrMissingTranscriptionColumn, got %v", err)
	}
	if perr := dubError(t, err); perr.Subject != entities.EnglishTranscriptionColumn {
		t.Fatalf("subject = %q", perr.Subject)
	}
}

func TestDub_IncompleteVoiceCoverage(t *testing.T) {
	// the default catalog only has a male German voice
	_, err := newTestService(t, newMemoryStore(), &fakeSpeech{catalog: defaultCatalog()}).
		Dub(context.Background(), Request{Source: "de-DE", Data: []byte(frenchCSV)})
	if !errors.Is(err, entities.ErrIncompleteVoiceCoverage) {
		t.Fatalf("expected ErrIncompleteVoiceCoverage, got %v", err)
	}
}

func TestDub_UnsupportedLocale(t *testing.T) {
	_, err := newTestService(t, newMemoryStore(), &fakeSpeech{catalog: defaultCatalog()}).
		Dub(context.Background(), Request{Source: "xx-YY", Data: []byte(frenchCSV)})
	if !errors.Is(err, entities.ErrUnsupportedLocale) {
		t.Fatalf("expected ErrUnsupportedLocale, got %v", err)
	}
	if perr := dubError(t, err); perr.Subject != "xx-YY" {
		t.Fatalf("subject = %q", perr.Subject)
	}
}

func TestDub_CatalogUnavailable(t *testing.T) {
	speech := &fakeSpeech{catalogErr: errors.New("dial tcp: connection refused")}

	_, err := newTestService(t, newMemoryStore(), speech).
		Dub(context.Background(), Request{Source: "fr-FR", Data: []byte(frenchCSV)})
	if !errors.Is(err, entities.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestDub_StorageUnavailable(t *testing.T) {
	store := newMemoryStore()
	store.failOn = entities.FolderInput
	speech := &fakeSpeech{catalog: defaultCatalog()}

	_, err := newTestService(t, store, speech).Dub(context.Background(), Request{Source: "fr-FR", Data: []byte(frenchCSV)})
	if !errors.Is(err, entities.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if dubError(t, err).Stage != entities.StageTableValidated {
		t.Fatalf("unexpected stage %s", dubError(t, err).Stage)
	}
	if len(speech.synthesized) != 0 {
		t.Fatal("no synthesis must happen when the input cannot be stored")
	}
}

func TestDub_TargetSynthesisFailureReturnsNothing(t *testing.T) {
	store := newMemoryStore()
	speech := &fakeSpeech{catalog: defaultCatalog(), failOnLang: "fr-FR"}

	res, err := newTestService(t, store, speech).Dub(context.Background(), Request{Source: "fr-FR", Data: []byte(frenchCSV)})
	if res != nil {
		t.Fatalf("expected no result, got %+v", res)
	}
	if !errors.Is(err, entities.ErrSynthesisFailed) {
		t.Fatalf("expected ErrSynthesisFailed, got %v", err)
	}
	if dubError(t, err).Stage != entities.StageEnglishSynthesized {
		t.Fatalf("unexpected stage %s", dubError(t, err).Stage)
	}
	if n := len(store.keys(entities.FolderAudio)); n != 1 {
		t.Fatalf("expected only the English audio to be stored, got %d", n)
	}
}

func TestDub_RepeatedUploadsGetDistinctArtifacts(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(t, store, &fakeSpeech{catalog: defaultCatalog()})

	first, err := svc.Dub(context.Background(), Request{Source: "fr-FR", Data: []byte(frenchCSV)})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := svc.Dub(context.Background(), Request{Source: "fr-FR", Data: []byte(frenchCSV)})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first.RunID == second.RunID || first.Input.Key == second.Input.Key || first.TargetAudio.Key == second.TargetAudio.Key {
		t.Fatal("identical uploads must not share artifacts")
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(Options{}); err == nil {
		t.Fatal("expected error without store and speech provider")
	}
}

func TestCleanSource(t *testing.T) {
	cases := map[string]string{
		"fr-FR":        "fr-FR",
		"  fr-FR \n":   "fr-FR",
		"fr-\\FR":      "fr-FR",
		"\tes-ES\r\n":  "es-ES",
		"de-\nDE":      "de-DE",
	}
	for in, want := range cases {
		if got := CleanSource(in); got != want {
			t.Errorf("CleanSource(%q) = %q, want %q", in, got, want)
		}
	}
}

func newCheckedService(t *testing.T, store *memoryStore, speech *fakeSpeech) Service {
	t.Helper()
	svc, err := NewService(Options{
		Store:   store,
		Speech:  speech,
		English: testEnglish,
		Locales: localeShape{},
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestDub_MalformedLocaleRejectedBeforeCatalog(t *testing.T) {
	speech := &fakeSpeech{catalog: defaultCatalog()}

	_, err := newCheckedService(t, newMemoryStore(), speech).
		Dub(context.Background(), Request{Source: "french", Data: []byte(frenchCSV)})
	if !errors.Is(err, entities.ErrUnsupportedLocale) {
		t.Fatalf("expected ErrUnsupportedLocale, got %v", err)
	}
	if perr := dubError(t, err); perr.Subject != "french" || perr.Stage != entities.StagePersisted {
		t.Fatalf("unexpected error details %+v", perr)
	}
	if speech.listCalls != 0 {
		t.Fatalf("catalog must not be queried for a malformed locale, got %d calls", speech.listCalls)
	}
}

func TestDub_EmptyTableWinsOverMalformedLocale(t *testing.T) {
	_, err := newCheckedService(t, newMemoryStore(), &fakeSpeech{catalog: defaultCatalog()}).
		Dub(context.Background(), Request{Source: "french", Data: nil})
	if !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("expected empty table error, got %v", err)
	}
}

func TestDub_StaleCatalogIsRefreshedOnce(t *testing.T) {
	speech := &cachingSpeech{
		fakeSpeech: &fakeSpeech{catalog: defaultCatalog()},
		stale:      defaultCatalog()[:2], // English voices only
	}
	svc, err := NewService(Options{Store: newMemoryStore(), Speech: speech, English: testEnglish})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Dub(context.Background(), Request{Source: "fr-FR", Data: []byte(frenchCSV)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if speech.invalidated != 1 || speech.listCalls != 1 {
		t.Fatalf("expected one refresh, got %d invalidations and %d fresh lookups", speech.invalidated, speech.listCalls)
	}
}

func TestDub_UnknownLocaleAfterRefresh(t *testing.T) {
	speech := &cachingSpeech{
		fakeSpeech: &fakeSpeech{catalog: defaultCatalog()},
		stale:      defaultCatalog(),
	}
	svc, err := NewService(Options{Store: newMemoryStore(), Speech: speech, English: testEnglish})
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Dub(context.Background(), Request{Source: "xx-YY", Data: []byte(frenchCSV)})
	if !errors.Is(err, entities.ErrUnsupportedLocale) {
		t.Fatalf("expected ErrUnsupportedLocale, got %v", err)
	}
	if speech.invalidated != 1 {
		t.Fatalf("expected exactly one refresh, got %d", speech.invalidated)
	}
}
