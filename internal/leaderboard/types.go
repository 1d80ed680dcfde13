package leaderboard

// Info identifies the leaderboard of one difficulty. ID 0 means the
// difficulty has no competitive leaderboard.
type Info struct {
	ID         uint32         `json:"id"`
	SongHash   string         `json:"songHash"`
	MaxScore   int            `json:"maxScore"`
	Stars      float64        `json:"stars"`
	Ranked     bool           `json:"ranked"`
	Difficulty DifficultyInfo `json:"difficulty"`
}

type DifficultyInfo struct {
	Difficulty uint8  `json:"difficulty"`
	GameMode   string `json:"gameMode"`
}

// HasLeaderboard reports whether scores can be fetched for i.
func (i Info) HasLeaderboard() bool {
	return i.ID != 0
}

// Score is one row of a leaderboard page, in server order.
type Score struct {
	Rank        int     `json:"rank"`
	Player      Player  `json:"leaderboardPlayerInfo"`
	BaseScore   int     `json:"baseScore"`
	PP          float64 `json:"pp"`
	BadCuts     int     `json:"badCuts"`
	MissedNotes int     `json:"missedNotes"`
}

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Misses counts bad cuts and missed notes together.
func (s Score) Misses() int {
	return s.BadCuts + s.MissedNotes
}

// Accuracy is the score as a percentage of maxScore.
func (s Score) Accuracy(maxScore int) float64 {
	if maxScore <= 0 {
		return 0
	}
	return float64(s.BaseScore) / float64(maxScore) * 100
}

type scoresResponse struct {
	Scores []Score `json:"scores"`
}
