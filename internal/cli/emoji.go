package cli

import (
	"github.com/yildizm/go-termfmt"
	"github.com/yildizm/pilly/internal/emoji"
	"github.com/yildizm/pilly/internal/ui"
)

// GetEmoji is a wrapper for the shared emoji package
func GetEmoji(key string) string {
	return emoji.GetEmoji(key)
}

// termOptions returns tree rendering options matching the global flags
func termOptions() *termfmt.TerminalOptions {
	opts := termfmt.DefaultOptions()
	opts.Color = !ui.IsColorDisabled()
	opts.Emoji = !emoji.IsEmojiDisabled()
	return opts
}

// markLast flags the final item of every level so the tree closes its
// branches
func markLast(items []termfmt.TreeItem) []termfmt.TreeItem {
	for i := range items {
		items[i].Last = i == len(items)-1
		items[i].Children = markLast(items[i].Children)
	}
	return items
}
