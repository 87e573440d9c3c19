package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/pilly/internal/api"
	"github.com/yildizm/pilly/internal/history"
	"github.com/yildizm/pilly/internal/view"
)

// navItems are the header tabs, bound to the number keys
var navItems = []struct {
	key   string
	label string
	icon  string
	path  string
}{
	{"1", "홈", "home", view.PathHome},
	{"2", "약 검색", "search", view.PathSearch},
	{"3", "AI 검색", "ai", view.PathAISearch},
	{"4", "커뮤니티", "community", view.PathCommunity},
	{"5", "마이페이지", "mypage", view.PathMyPage},
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return tea.Quit
	}

	// notices block like an alert until acknowledged
	if m.notice != "" {
		m.notice = ""
		return nil
	}

	if m.auth != nil {
		return m.handleAuthKey(msg)
	}

	state := m.router.Content().State
	switch {
	case state == view.CommunityWrite && m.write != nil:
		return m.handleWriteKey(msg)
	case state == view.Search && m.search.focused:
		return m.handleSearchInputKey(msg)
	case state == view.CommunityDetail && m.detail.confirm != nil:
		return m.handleConfirmKey(msg.String())
	case state == view.CommunityDetail && m.detail.commenting:
		return m.handleCommentInputKey(msg)
	}

	if cmd, ok := m.handleGlobalKey(msg.String()); ok {
		return cmd
	}

	switch state {
	case view.Home:
		return m.handleHomeKey(msg.String())
	case view.Search:
		return m.handleSearchKey(msg.String())
	case view.Community:
		return m.handleCommunityKey(msg.String())
	case view.CommunityDetail:
		return m.handleDetailKey(msg.String())
	case view.MyPage:
		return m.handleMyPageKey(msg.String())
	case view.Admin:
		if msg.String() == "r" && m.admin.loaded {
			m.admin.loaded = false
			return m.admin.load(m.ctx, m.backend)
		}
	}
	return nil
}

func (m *Model) handleGlobalKey(key string) (tea.Cmd, bool) {
	for _, item := range navItems {
		if item.key == key {
			m.router.HandleNavIntent(view.Navigate(item.path))
			return nil, true
		}
	}

	switch key {
	case "q":
		m.quitting = true
		return tea.Quit, true
	case "l":
		if !m.session.HasToken() {
			m.router.HandleNavIntent(view.OpenOverlay(view.Login))
		}
		return nil, true
	case "s":
		if !m.session.HasToken() {
			m.router.HandleNavIntent(view.OpenOverlay(view.Signup))
		}
		return nil, true
	case "o":
		return m.logout(), true
	case "a":
		if m.session.IsAdmin() {
			m.router.HandleNavIntent(view.Navigate(view.PathAdmin))
		}
		return nil, true
	}
	return nil, false
}

func (m *Model) handleHomeKey(key string) tea.Cmd {
	switch key {
	case "enter", "/":
		m.history.Push(view.PathSearch, nil)
	case "i":
		m.router.HandleNavIntent(view.Navigate(view.PathAISearch))
	}
	return nil
}

func (m *Model) handleSearchInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		return m.search.submit(m.ctx, m.backend)
	case "esc":
		m.search.blur()
		return nil
	}
	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	return cmd
}

func (m *Model) handleSearchKey(key string) tea.Cmd {
	switch key {
	case "/", "i":
		m.search.focus()
	case "up", "k":
		if m.search.list != nil {
			m.search.list.MoveUp()
		}
	case "down", "j":
		if m.search.list != nil {
			m.search.list.MoveDown()
		}
	case "n":
		return m.search.turnPage(m.ctx, m.backend, 1)
	case "p":
		return m.search.turnPage(m.ctx, m.backend, -1)
	}
	return nil
}

func (m *Model) handleCommunityKey(key string) tea.Cmd {
	c := &m.community
	switch key {
	case "tab", "right":
		return c.switchCategory(m.ctx, m.backend, 1)
	case "shift+tab", "left":
		return c.switchCategory(m.ctx, m.backend, -1)
	case "up", "k":
		if c.list != nil {
			c.list.MoveUp()
		}
	case "down", "j":
		if c.list != nil {
			c.list.MoveDown()
		}
	case "enter":
		if p, ok := c.selectedPost(); ok {
			m.router.SetTransientSelection(view.DetailOf(p.ID))
		}
	case "w":
		m.router.SetTransientSelection(view.WriteNew())
	case "r":
		return c.load(m.ctx, m.backend)
	}
	return nil
}

func (m *Model) handleMyPageKey(key string) tea.Cmd {
	p := &m.mypage
	switch key {
	case "up", "k":
		if p.list != nil {
			p.list.MoveUp()
		}
	case "down", "j":
		if p.list != nil {
			p.list.MoveDown()
		}
	case "r":
		return p.mount(m.ctx, m.backend)
	case "enter":
		switch item := p.selected().(type) {
		case api.HistoryItem:
			m.bus.GoSearch(item.Keyword)
		case api.Pill:
			m.bus.GoSearch(firstNonEmpty(item.ItemSeq, item.ItemName))
		case api.Post:
			m.history.Push(view.PathCommunity, &history.Payload{
				TargetView: view.CommunityDetail.String(),
				PostID:     item.ID,
			})
		}
	}
	return nil
}
