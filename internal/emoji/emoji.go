package emoji

// emojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":     {"❌", "[ERR]"},
	"warning":   {"⚠️", "[WRN]"},
	"info":      {"ℹ️", "[INF]"},
	"success":   {"✅", "[OK]"},
	"pill":      {"💊", "[Rx]"},
	"home":      {"🏠", "[H]"},
	"search":    {"🔍", "[S]"},
	"ai":        {"🤖", "[AI]"},
	"community": {"💬", "[C]"},
	"write":     {"✏️", "[W]"},
	"post":      {"📄", "[P]"},
	"mypage":    {"👤", "[ME]"},
	"login":     {"🔑", "[IN]"},
	"signup":    {"📝", "[UP]"},
	"kakao":     {"🟡", "[K]"},
	"admin":     {"🛡️", "[ADM]"},
	"lock":      {"🔒", "[LCK]"},
	"route":     {"🧭", "[>]"},
	"door":      {"🚪", "[EXIT]"},
	"help":      {"❓", "[?]"},
	"chart":     {"📊", "[#]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}
