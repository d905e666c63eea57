package ssml

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/johnquangdev/transcript-dubber/internal/domain/entities"
)

const (
	speakOpen  = "<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xml:lang='%s'>\n"
	speakClose = "</speak>"
	breakTag   = "<break time='%ds' />\n"
	voiceTag   = "<voice name='%s'>%s</voice>\n"
)

// SpeakerRoles maps a speaker id to the voice it is read with
type SpeakerRoles map[string]entities.VoiceRole

// DefaultSpeakerRoles reads the primary speaker with the male voice; every
// other speaker falls back to the female voice.
func DefaultSpeakerRoles() SpeakerRoles {
	return SpeakerRoles{entities.PrimarySpeaker: entities.VoiceRoleMale}
}

// Role returns the voice role for speaker
func (r SpeakerRoles) Role(speaker string) entities.VoiceRole {
	if role, ok := r[speaker]; ok {
		return role
	}
	return entities.VoiceRoleFemale
}

// Builder turns transcript rows into timed SSML
type Builder struct {
	roles SpeakerRoles
}

// NewBuilder creates a builder. A nil roles map uses DefaultSpeakerRoles.
func NewBuilder(roles SpeakerRoles) *Builder {
	if roles == nil {
		roles = DefaultSpeakerRoles()
	}
	return &Builder{roles: roles}
}

// Build walks table in order and renders the transcription column as SSML.
//
// Rows whose sanitized text is blank are skipped entirely: they emit nothing
// and do not move the running timestamp. Pauses are computed against the
// previous emitted row only.
func (b *Builder) Build(table *entities.Table, column string, voices entities.VoiceAssignment, lang string) entities.Document {
	var sb strings.Builder
	fmt.Fprintf(&sb, speakOpen, lang)

	utterances := 0
	last := 0
	if table != nil {
		for _, row := range table.Rows {
			speaker := row.Get(entities.ColumnSpeaker, entities.PrimarySpeaker)
			if speaker == "" {
				speaker = entities.PrimarySpeaker
			}

			text := strings.TrimSpace(SanitizeText(row[column]))
			if text == "" {
				continue
			}

			ts := NormalizeTimestamp(row.Get(entities.ColumnTimeMarkers, "0:00"))
			delay := ts - last
			last = ts
			if delay > 0 {
				fmt.Fprintf(&sb, breakTag, delay)
			}

			fmt.Fprintf(&sb, voiceTag, voices.VoiceFor(b.roles.Role(speaker)), escape(text))
			utterances++
		}
	}

	sb.WriteString(speakClose)
	return entities.Document{
		Lang:       lang,
		Content:    sb.String(),
		Utterances: utterances,
	}
}

func escape(text string) string {
	var sb strings.Builder
	// strings.Builder never returns a write error
	_ = xml.EscapeText(&sb, []byte(text))
	return sb.String()
}
