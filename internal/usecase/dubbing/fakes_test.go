package dubbing

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/johnquangdev/transcript-dubber/internal/domain/entities"
)

type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	order   []string
	failOn  string // folder whose uploads fail
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: make(map[string][]byte)}
}

func (m *memoryStore) Persist(ctx context.Context, folder, ext, contentType string, data []byte) (entities.ArtifactRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failOn == folder {
		return entities.ArtifactRef{}, fmt.Errorf("%w: connection refused", entities.ErrStorageUnavailable)
	}
	key := fmt.Sprintf("%s%s.%s", folder, uuid.NewString(), ext)
	m.objects[key] = append([]byte(nil), data...)
	m.order = append(m.order, key)
	return entities.ArtifactRef{Key: key, URL: "https://storage.example/" + key + "?sig=1"}, nil
}

func (m *memoryStore) Fetch(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s not found", entities.ErrStorageUnavailable, key)
	}
	return data, nil
}

func (m *memoryStore) keys(folder string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []string
	for _, k := range m.order {
		if strings.HasPrefix(k, folder) {
			out = append(out, k)
		}
	}
	return out
}

type fakeSpeech struct {
	catalog     []entities.Voice
	catalogErr  error
	failOnLang  string
	synthesized []string
	listCalls   int
}

func (f *fakeSpeech) ListVoices(ctx context.Context) ([]entities.Voice, error) {
	f.listCalls++
	return f.catalog, f.catalogErr
}

// cachingSpeech serves a stale catalog until invalidated
type cachingSpeech struct {
	*fakeSpeech
	stale       []entities.Voice
	invalidated int
}

func (c *cachingSpeech) ListVoices(ctx context.Context) ([]entities.Voice, error) {
	if c.invalidated == 0 {
		return c.stale, nil
	}
	return c.fakeSpeech.ListVoices(ctx)
}

func (c *cachingSpeech) Invalidate() {
	c.invalidated++
}

// localeShape accepts anything with a hyphen
type localeShape struct{}

func (localeShape) ValidLocale(locale string) bool {
	return strings.Contains(locale, "-")
}

func (f *fakeSpeech) Synthesize(ctx context.Context, ssml []byte) ([]byte, error) {
	doc := string(ssml)
	if f.failOnLang != "" && strings.Contains(doc, "xml:lang='"+f.failOnLang+"'") {
		return nil, fmt.Errorf("%w: status 400", entities.ErrSynthesisFailed)
	}
	f.synthesized = append(f.synthesized, doc)
	return []byte("RIFF" + doc), nil
}

func defaultCatalog() []entities.Voice {
	return []entities.Voice{
		{Locale: "en-US", ShortName: "en-US-GuyNeural", Gender: "Male"},
		{Locale: "en-US", ShortName: "en-US-JennyNeural", Gender: "Female"},
		{Locale: "fr-FR", ShortName: "fr-FR-HenriNeural", Gender: "Male"},
		{Locale: "fr-FR", ShortName: "fr-FR-DeniseNeural", Gender: "Female"},
		{Locale: "de-DE", ShortName: "de-DE-ConradNeural", Gender: "Male"},
	}
}
