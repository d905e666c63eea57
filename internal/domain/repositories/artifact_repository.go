package repositories

import (
	"context"

	"github.com/johnquangdev/transcript-dubber/internal/domain/entities"
)

// ArtifactRepository persists pipeline artifacts (input tables, SSML
// documents and audio) and hands out time-limited references to them.
type ArtifactRepository interface {
	// Persist stores data under folder with a fresh unique name and returns
	// a presigned reference. ext is the file extension without the dot.
	Persist(ctx context.Context, folder, ext, contentType string, data []byte) (entities.ArtifactRef, error)

	// Fetch reads back a persisted payload by its object key
	Fetch(ctx context.Context, key string) ([]byte, error)
}
