package utils

// Helpers for period display names and emojis.
func GetPeriodName(periodStr string) string {
	switch periodStr {
	case "manha":
		return "🌅 Manhã"
	case "tarde":
		return "🌤 Tarde"
	case "noite":
		return "🌙 Noite"
	default:
		return periodStr
	}
}

func GetPeriodEmoji(periodStr string) string {
	switch periodStr {
	case "manha":
		return "🌅"
	case "tarde":
		return "🌤"
	case "noite":
		return "🌙"
	default:
		return "📌"
	}
}

func CheckmarkFor(completed bool) string {
	if completed {
		return "✅"
	}
	return "⬜"
}
