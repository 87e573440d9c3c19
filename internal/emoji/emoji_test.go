package emoji

import "testing"

func TestGetEmoji(t *testing.T) {
	defer SetEmojiDisabled(false)

	tests := []struct {
		key      string
		disabled bool
		want     string
	}{
		{"pill", false, "💊"},
		{"pill", true, "[Rx]"},
		{"lock", true, "[LCK]"},
		{"missing", false, "[?]"},
		{"missing", true, "[?]"},
	}

	for _, tt := range tests {
		SetEmojiDisabled(tt.disabled)
		if got := GetEmoji(tt.key); got != tt.want {
			t.Errorf("GetEmoji(%q) disabled=%v = %q, want %q", tt.key, tt.disabled, got, tt.want)
		}
		if IsEmojiDisabled() != tt.disabled {
			t.Errorf("IsEmojiDisabled() = %v, want %v", IsEmojiDisabled(), tt.disabled)
		}
	}
}
