package leaderboard

// DifficultyID maps a catalog difficulty label to the leaderboard's numeric id.
func DifficultyID(label string) uint8 {
	switch label {
	case "Easy":
		return 1
	case "Normal":
		return 3
	case "Hard":
		return 5
	case "Expert":
		return 7
	case "ExpertPlus", "Expert+":
		return 9
	default:
		return 0
	}
}

// DifficultyName is the display label for a numeric difficulty id.
func DifficultyName(id uint8) string {
	switch id {
	case 1:
		return "Easy"
	case 3:
		return "Normal"
	case 5:
		return "Hard"
	case 7:
		return "Expert"
	case 9:
		return "Expert+"
	default:
		return "Unknown"
	}
}

// ModeName is the leaderboard game mode for a characteristic.
func ModeName(characteristic string) string {
	return "Solo" + characteristic
}

// IsCompetitive reports whether a characteristic can have a leaderboard.
func IsCompetitive(characteristic string) bool {
	switch characteristic {
	case "Lightshow", "Legacy":
		return false
	default:
		return true
	}
}
