package media

import (
	"bytes"
	"mime"
	"strings"
)

// Format is an audio container the preview player can decode.
type Format int

const (
	FormatUnknown Format = iota
	FormatMP3
	FormatOgg
	FormatWAV
)

func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "mp3"
	case FormatOgg:
		return "ogg"
	case FormatWAV:
		return "wav"
	default:
		return "unknown"
	}
}

// Detect sniffs the container from the first bytes of a payload.
func Detect(head []byte) Format {
	switch {
	case len(head) >= 4 && bytes.Equal(head[:4], []byte("OggS")):
		return FormatOgg
	case len(head) >= 12 && bytes.Equal(head[:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WAVE")):
		return FormatWAV
	case len(head) >= 3 && bytes.Equal(head[:3], []byte("ID3")):
		return FormatMP3
	case len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0:
		return FormatMP3
	default:
		return FormatUnknown
	}
}

// NormalizeContentType strips parameters and lowercases a Content-Type value.
func NormalizeContentType(contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return ""
	}
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		return strings.ToLower(strings.TrimSpace(mediaType))
	}
	return strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
}

// IsAudioContentType reports whether a normalized content type names audio.
func IsAudioContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "audio/") ||
		contentType == "application/ogg" ||
		contentType == "application/octet-stream"
}

// LooksLikeHTML reports whether a body is an HTML page rather than media.
func LooksLikeHTML(head []byte) bool {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(head, []byte("\uFEFF")))
	if len(trimmed) > 512 {
		trimmed = trimmed[:512]
	}
	lower := bytes.ToLower(trimmed)
	return bytes.HasPrefix(lower, []byte("<!doctype html")) ||
		bytes.HasPrefix(lower, []byte("<html")) ||
		bytes.HasPrefix(lower, []byte("<head")) ||
		bytes.HasPrefix(lower, []byte("<body"))
}
