package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/pilly/internal/api"
)

// writeForm creates a post, or edits one when editID is set
type writeForm struct {
	editID   int
	category int
	title    textinput.Model
	body     textarea.Model
	focus    int
	loading  bool
	busy     bool
	err      string
}

func newWriteForm(editID int, category string) *writeForm {
	body := textarea.New()
	body.Placeholder = "내용을 입력하세요"
	body.ShowLineNumbers = false
	body.CharLimit = 2000
	body.SetHeight(8)
	body.Cursor.SetMode(cursor.CursorStatic)

	f := &writeForm{
		editID: editID,
		title:  newInput("제목", false),
		body:   body,
	}
	for i, c := range api.Categories {
		if c == category {
			f.category = i
		}
	}
	f.title.Focus()
	return f
}

func (f *writeForm) mount(ctx context.Context, backend Backend) tea.Cmd {
	if f.editID == 0 {
		return nil
	}
	f.loading = true
	id := f.editID
	return func() tea.Msg {
		post, err := backend.GetPost(ctx, id)
		return postMsg{id: id, post: post, err: err, forEdit: true}
	}
}

func (f *writeForm) handlePost(msg postMsg) {
	if msg.id != f.editID {
		return
	}
	f.loading = false
	if msg.err != nil {
		f.err = errorText(msg.err)
		return
	}
	f.title.SetValue(msg.post.Title)
	f.body.SetValue(msg.post.Content)
	for i, c := range api.Categories {
		if c == msg.post.Category {
			f.category = i
		}
	}
}

func (f *writeForm) categoryName() string {
	return api.Categories[f.category]
}

func (f *writeForm) toggleFocus() {
	if f.focus == 0 {
		f.focus = 1
		f.title.Blur()
		f.body.Focus()
		return
	}
	f.focus = 0
	f.body.Blur()
	f.title.Focus()
}

func (f *writeForm) update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	if f.focus == 0 {
		f.title, cmd = f.title.Update(msg)
	} else {
		f.body, cmd = f.body.Update(msg)
	}
	return cmd
}

func (f *writeForm) submit(ctx context.Context, backend Backend) tea.Cmd {
	draft := &api.PostDraft{
		Category: f.categoryName(),
		Title:    strings.TrimSpace(f.title.Value()),
		Content:  f.body.Value(),
	}
	switch {
	case draft.Title == "":
		f.err = "제목을 입력해주세요."
		return nil
	case strings.TrimSpace(draft.Content) == "":
		f.err = "내용을 입력해주세요."
		return nil
	}
	if err := draft.Validate(); err != nil {
		f.err = errorText(err)
		return nil
	}

	f.busy = true
	f.err = ""
	id := f.editID
	return func() tea.Msg {
		if id > 0 {
			return postSavedMsg{id: id, err: backend.UpdatePost(ctx, id, draft)}
		}
		newID, err := backend.CreatePost(ctx, draft)
		return postSavedMsg{id: newID, err: err}
	}
}

func (m *Model) handleWriteKey(msg tea.KeyMsg) tea.Cmd {
	f := m.write
	if msg.String() == "esc" {
		m.router.Back()
		return nil
	}
	if f.busy || f.loading {
		return nil
	}

	switch msg.String() {
	case "tab":
		f.toggleFocus()
	case "ctrl+t":
		f.category = (f.category + 1) % len(api.Categories)
	case "ctrl+s":
		return f.submit(m.ctx, m.backend)
	default:
		return f.update(msg)
	}
	return nil
}
