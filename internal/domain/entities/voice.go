package entities

// Voice is one entry of the speech provider's voice catalog
type Voice struct {
	Locale    string `json:"Locale"`
	ShortName string `json:"ShortName"`
	Gender    string `json:"Gender"`
}

// VoiceAssignment is the pair of voices used for one locale
type VoiceAssignment struct {
	Male   string
	Female string
}

// VoiceRole selects one side of a VoiceAssignment
type VoiceRole int

const (
	VoiceRoleFemale VoiceRole = iota
	VoiceRoleMale
)

// VoiceFor returns the voice short name for role
func (a VoiceAssignment) VoiceFor(role VoiceRole) string {
	if role == VoiceRoleMale {
		return a.Male
	}
	return a.Female
}
