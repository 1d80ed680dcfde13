package preview

import (
	"bytes"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// Metadata holds the song information embedded in a preview payload.
type Metadata struct {
	Title  string
	Artist string
}

// readMetadata reads ID3v2 tags from the payload. Payloads without a tag
// yield an empty Metadata.
func readMetadata(payload []byte) Metadata {
	if !bytes.HasPrefix(payload, []byte("ID3")) {
		return Metadata{}
	}
	tag, err := id3v2.ParseReader(bytes.NewReader(payload), id3v2.Options{Parse: true})
	if err != nil {
		return Metadata{}
	}
	defer tag.Close()
	return Metadata{
		Title:  strings.TrimSpace(tag.Title()),
		Artist: strings.TrimSpace(tag.Artist()),
	}
}
