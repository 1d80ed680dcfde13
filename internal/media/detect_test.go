package media

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		head []byte
		want Format
	}{
		{"id3 tagged mp3", []byte("ID3\x04\x00\x00"), FormatMP3},
		{"bare mp3 frame", []byte{0xFF, 0xFB, 0x90, 0x64}, FormatMP3},
		{"ogg", []byte("OggS\x00\x02"), FormatOgg},
		{"wav", []byte("RIFF\x24\x08\x00\x00WAVEfmt "), FormatWAV},
		{"riff but not wave", []byte("RIFF\x24\x08\x00\x00AVI LIST"), FormatUnknown},
		{"html", []byte("<!DOCTYPE html>"), FormatUnknown},
		{"empty", nil, FormatUnknown},
	}
	for _, tc := range cases {
		if got := Detect(tc.head); got != tc.want {
			t.Fatalf("%s: Detect() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestNormalizeContentType(t *testing.T) {
	if got := NormalizeContentType("Audio/MPEG; charset=binary"); got != "audio/mpeg" {
		t.Fatalf("NormalizeContentType() = %q", got)
	}
	if got := NormalizeContentType(""); got != "" {
		t.Fatalf("NormalizeContentType(\"\") = %q", got)
	}
	if !IsAudioContentType("audio/mpeg") || IsAudioContentType("text/html") {
		t.Fatal("IsAudioContentType misclassified")
	}
}

func TestLooksLikeHTML(t *testing.T) {
	if !LooksLikeHTML([]byte("\n  <html><body>blocked</body></html>")) {
		t.Fatal("expected html body to be detected")
	}
	if LooksLikeHTML([]byte("ID3\x04")) {
		t.Fatal("expected mp3 header not to look like html")
	}
}
