package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/pilly/internal/api"
	"github.com/yildizm/pilly/internal/emoji"
)

// ListItem represents an item in a list
type ListItem struct {
	ID          string
	Title       string
	Description string
	Status      string
	Icon        string
	Data        interface{} // api value behind the row
}

// List represents a navigable list component
type List struct {
	Title         string
	Items         []ListItem
	Selected      int
	Focused       bool
	Width         int
	Height        int
	ShowNumbers   bool
	ShowIcons     bool
	EmptyText     string
	searchQuery   string
	filteredItems []int // Indices of filtered items
}

var (
	primaryColor   = lipgloss.AdaptiveColor{Light: "#556B2F", Dark: "#9ACD32"}
	secondaryColor = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	selectedColor  = lipgloss.AdaptiveColor{Light: "#ECFCCB", Dark: "#365314"}
	successColor   = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
	warningColor   = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
)

// NewList creates a new list component
func NewList(title string, width, height int) *List {
	return &List{
		Title:       title,
		Width:       width,
		Height:      height,
		ShowNumbers: true,
		ShowIcons:   true,
		EmptyText:   "항목이 없습니다.",
	}
}

// AddItem adds an item to the list
func (l *List) AddItem(item *ListItem) {
	l.Items = append(l.Items, *item)
	l.updateFilter()
}

// SetItems sets all items in the list
func (l *List) SetItems(items []ListItem) {
	l.Items = items
	l.Selected = 0
	l.updateFilter()
}

// Len returns the number of visible items
func (l *List) Len() int {
	return len(l.filteredItems)
}

// SetSize updates the render area
func (l *List) SetSize(width, height int) {
	l.Width = width
	l.Height = height
}

// SetFocused sets the focus state of the list
func (l *List) SetFocused(focused bool) {
	l.Focused = focused
}

// GetSelectedItem returns the currently selected item
func (l *List) GetSelectedItem() *ListItem {
	if len(l.filteredItems) == 0 || l.Selected >= len(l.filteredItems) {
		return nil
	}
	index := l.filteredItems[l.Selected]
	if index >= len(l.Items) {
		return nil
	}
	return &l.Items[index]
}

// MoveUp moves selection up
func (l *List) MoveUp() {
	if l.Selected > 0 {
		l.Selected--
	}
}

// MoveDown moves selection down
func (l *List) MoveDown() {
	if l.Selected < len(l.filteredItems)-1 {
		l.Selected++
	}
}

// SetSearch sets the search query and filters items
func (l *List) SetSearch(query string) {
	l.searchQuery = query
	l.Selected = 0
	l.updateFilter()
}

func (l *List) updateFilter() {
	l.filteredItems = l.filteredItems[:0]

	for i, item := range l.Items {
		if l.searchQuery == "" || l.matchesSearch(&item, l.searchQuery) {
			l.filteredItems = append(l.filteredItems, i)
		}
	}
}

func (l *List) matchesSearch(item *ListItem, query string) bool {
	query = strings.ToLower(query)
	return strings.Contains(strings.ToLower(item.Title), query) ||
		strings.Contains(strings.ToLower(item.Description), query) ||
		strings.Contains(strings.ToLower(item.ID), query)
}

// Render renders the list
func (l *List) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	normalStyle := lipgloss.NewStyle().Foreground(secondaryColor)

	var content []string

	if l.Title != "" {
		content = append(content, headerStyle.Render(l.Title))
	}

	if l.searchQuery != "" {
		searchText := fmt.Sprintf("검색: %s (%d건)", l.searchQuery, len(l.filteredItems))
		content = append(content, normalStyle.Render(searchText))
	}

	if len(l.filteredItems) == 0 {
		content = append(content, "", normalStyle.Render(l.EmptyText))
		return lipgloss.JoinVertical(lipgloss.Left, content...)
	}

	content = append(content, "")

	maxVisible := l.Height - 4 // title and spacing
	if maxVisible < 1 {
		maxVisible = 1
	}

	startIndex := 0
	if l.Selected >= maxVisible {
		startIndex = l.Selected - maxVisible + 1
	}

	endIndex := startIndex + maxVisible
	if endIndex > len(l.filteredItems) {
		endIndex = len(l.filteredItems)
	}

	for i := startIndex; i < endIndex; i++ {
		item := l.Items[l.filteredItems[i]]
		content = append(content, l.renderItem(&item, i+1, l.Focused && i == l.Selected))
	}

	if len(l.filteredItems) > maxVisible {
		scrollInfo := fmt.Sprintf("(%d-%d / %d)", startIndex+1, endIndex, len(l.filteredItems))
		content = append(content, "", normalStyle.Render(scrollInfo))
	}

	return lipgloss.JoinVertical(lipgloss.Left, content...)
}

func (l *List) renderItem(item *ListItem, number int, selected bool) string {
	var parts []string

	if selected {
		parts = append(parts, "▶")
	} else {
		parts = append(parts, " ")
	}

	if l.ShowNumbers {
		parts = append(parts, fmt.Sprintf("%2d.", number))
	}

	if l.ShowIcons && item.Icon != "" {
		parts = append(parts, item.Icon)
	}

	title := item.Title
	if item.Description != "" {
		title += " - " + item.Description
	}
	parts = append(parts, title)

	line := strings.Join(parts, " ")

	var style lipgloss.Style
	if selected {
		style = lipgloss.NewStyle().Background(selectedColor).Foreground(primaryColor).Bold(true)
	} else {
		style = lipgloss.NewStyle().Foreground(secondaryColor)
		switch item.Status {
		case "success":
			style = style.Foreground(successColor)
		case "warning":
			style = style.Foreground(warningColor)
		case "info":
			style = style.Foreground(primaryColor)
		}
	}

	width := l.Width - 4
	if width < 10 {
		return style.Render(line)
	}
	return style.Width(width).Render(truncate(line, width))
}

// NewPillList creates a list component for search results
func NewPillList(pills []api.Pill, width, height int) *List {
	list := NewList("", width, height)
	list.EmptyText = "검색 결과가 없습니다."

	for i := range pills {
		p := pills[i]
		description := p.EntpName
		if shape := strings.TrimSpace(p.DrugShape + " " + p.ColorClass1); shape != "" {
			description += " · " + shape
		}
		status := ""
		if p.IsLiked {
			status = "success"
		}
		list.AddItem(&ListItem{
			ID:          p.ItemSeq,
			Title:       p.ItemName,
			Description: description,
			Status:      status,
			Icon:        emoji.GetEmoji("pill"),
			Data:        p,
		})
	}

	return list
}

// NewPostList creates a list component for board posts
func NewPostList(posts []api.Post, width, height int) *List {
	list := NewList("", width, height)
	list.EmptyText = "게시글이 없습니다."

	for i := range posts {
		p := posts[i]
		description := fmt.Sprintf("%s · ♥%d · 💬%d", p.Username, p.LikeCount, p.CommentCount)
		if emoji.IsEmojiDisabled() {
			description = fmt.Sprintf("%s · likes %d · comments %d", p.Username, p.LikeCount, p.CommentCount)
		}
		list.AddItem(&ListItem{
			ID:          fmt.Sprintf("post-%d", p.ID),
			Title:       p.Title,
			Description: description,
			Icon:        emoji.GetEmoji("post"),
			Data:        p,
		})
	}

	return list
}

// NewMyPageList creates one list over search history, own posts and scraps
func NewMyPageList(page *api.MyPage, width, height int) *List {
	list := NewList("", width, height)
	list.ShowNumbers = false
	if page == nil {
		return list
	}

	for _, h := range page.History {
		list.AddItem(&ListItem{
			ID:          fmt.Sprintf("history-%d", h.ID),
			Title:       h.Keyword,
			Description: h.CreatedAt,
			Status:      "info",
			Icon:        emoji.GetEmoji("search"),
			Data:        h,
		})
	}
	for _, p := range page.Posts {
		list.AddItem(&ListItem{
			ID:          fmt.Sprintf("post-%d", p.ID),
			Title:       p.Title,
			Description: p.Category,
			Icon:        emoji.GetEmoji("post"),
			Data:        p,
		})
	}
	for _, s := range page.Scraps {
		list.AddItem(&ListItem{
			ID:          s.ItemSeq,
			Title:       s.ItemName,
			Description: s.EntpName,
			Status:      "success",
			Icon:        emoji.GetEmoji("pill"),
			Data:        s,
		})
	}

	return list
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
