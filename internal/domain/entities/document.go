package entities

// Document is a built SSML document for one language
type Document struct {
	Lang       string
	Content    string
	Utterances int
}

// Bytes returns the document encoded for upload
func (d Document) Bytes() []byte {
	return []byte(d.Content)
}
