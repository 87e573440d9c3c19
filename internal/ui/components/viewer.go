package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/pilly/internal/api"
	"github.com/yildizm/pilly/internal/emoji"
)

// DetailViewer represents a detailed view of a specific item
type DetailViewer struct {
	Title   string
	Content []DetailSection
	Width   int
	Height  int
}

// DetailSection represents a section in the detail view
type DetailSection struct {
	Title   string
	Content []string
	Style   string // "info", "warning", "error", "success"
}

// NewDetailViewer creates a new detail viewer
func NewDetailViewer(title string, width, height int) *DetailViewer {
	return &DetailViewer{
		Title:  title,
		Width:  width,
		Height: height,
	}
}

// AddSection adds a section to the detail view
func (d *DetailViewer) AddSection(section DetailSection) {
	d.Content = append(d.Content, section)
}

// Clear clears all content
func (d *DetailViewer) Clear() {
	d.Content = d.Content[:0]
}

// Render renders the detail viewer
func (d *DetailViewer) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)

	content := make([]string, 0, len(d.Content)*2+2)
	content = append(content, headerStyle.Render(d.Title), "")

	for _, section := range d.Content {
		content = append(content, d.renderSection(section)...)
		content = append(content, "")
	}

	joined := lipgloss.JoinVertical(lipgloss.Left, content...)
	if d.Width <= 0 {
		return joined
	}
	return lipgloss.NewStyle().Width(d.Width).Render(joined)
}

func (d *DetailViewer) renderSection(section DetailSection) []string {
	lines := make([]string, 0, len(section.Content)+1)

	titleStyle := lipgloss.NewStyle().Foreground(secondaryColor).Bold(true)
	switch section.Style {
	case "success":
		titleStyle = titleStyle.Foreground(successColor)
	case "warning":
		titleStyle = titleStyle.Foreground(warningColor)
	case "info":
		titleStyle = titleStyle.Foreground(primaryColor)
	}

	if section.Title != "" {
		lines = append(lines, titleStyle.Render(section.Title))
	}
	for _, line := range section.Content {
		lines = append(lines, "  "+line)
	}

	return lines
}

// NewPostViewer lays out a board post
func NewPostViewer(p *api.Post, width, height int) *DetailViewer {
	d := NewDetailViewer(emoji.GetEmoji("post")+" "+p.Title, width, height)

	meta := fmt.Sprintf("%s · %s · %s", categoryLabel(p.Category), p.Username, p.CreatedAt)
	d.AddSection(DetailSection{Content: []string{meta}, Style: "info"})
	d.AddSection(DetailSection{Content: strings.Split(strings.TrimRight(p.Content, "\n"), "\n")})
	d.AddSection(DetailSection{
		Content: []string{fmt.Sprintf("%s 좋아요 %d · 댓글 %d", likeMark(p.IsLiked), p.LikeCount, p.CommentCount)},
		Style:   "success",
	})

	return d
}

func likeMark(liked bool) string {
	if liked {
		return "♥"
	}
	return "♡"
}

func categoryLabel(category string) string {
	switch category {
	case api.CategoryCombo:
		return "복용 조합"
	case api.CategoryReview:
		return "복용 후기"
	case api.CategoryQnA:
		return "Q&A"
	default:
		return category
	}
}

// CategoryLabel returns the display name of a board category
func CategoryLabel(category string) string {
	return categoryLabel(category)
}
