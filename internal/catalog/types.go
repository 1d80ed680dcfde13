package catalog

import "github.com/saberdeck/saberdeck/internal/util"

// Map is one catalog entry as returned by the search and detail endpoints.
type Map struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	LastPublishedAt string    `json:"lastPublishedAt"`
	Metadata        Metadata  `json:"metadata"`
	Stats           Stats     `json:"stats"`
	Ranked          bool      `json:"ranked"`
	Qualified       bool      `json:"qualified"`
	Automapper      bool      `json:"automapper"`
	Versions        []Version `json:"versions"`
}

type Metadata struct {
	SongName        string  `json:"songName"`
	SongSubName     string  `json:"songSubName"`
	SongAuthorName  string  `json:"songAuthorName"`
	LevelAuthorName string  `json:"levelAuthorName"`
	BPM             float64 `json:"bpm"`
	Duration        int     `json:"duration"` // seconds
}

type Stats struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

// Version is one published revision of a map. Only the first is shown.
type Version struct {
	Hash        string       `json:"hash"`
	DownloadURL string       `json:"downloadURL"`
	PreviewURL  string       `json:"previewURL"`
	CoverURL    string       `json:"coverURL"`
	Diffs       []Difficulty `json:"diffs"`
}

// Difficulty keeps the order the catalog returns it in.
type Difficulty struct {
	Difficulty     string  `json:"difficulty"`
	Characteristic string  `json:"characteristic"`
	Notes          int     `json:"notes"`
	Bombs          int     `json:"bombs"`
	NJS            float64 `json:"njs"`
	NPS            float64 `json:"nps"`
}

// LatestVersion returns the version the browser works with, if any.
func (m Map) LatestVersion() (Version, bool) {
	if len(m.Versions) == 0 {
		return Version{}, false
	}
	return m.Versions[0], true
}

// PublishedDate trims the timestamp to its date part.
func (m Map) PublishedDate() string {
	return util.DatePart(m.LastPublishedAt)
}

type searchResponse struct {
	Docs []Map `json:"docs"`
}
