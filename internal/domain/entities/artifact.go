package entities

import "time"

// Artifact folders in the object store
const (
	FolderInput = "input/"
	FolderSSML  = "ssml/"
	FolderAudio = "audio/"
)

// ArtifactRef points at a persisted payload. URL is only valid until ExpiresAt.
type ArtifactRef struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
