package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/pilly/internal/api"
	"github.com/yildizm/pilly/internal/ui/components"
)

const searchPageSize = 20

// newInput builds a single-line input with a steady cursor
func newInput(placeholder string, password bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	ti.Cursor.SetMode(cursor.CursorStatic)
	if password {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

// searchScreen is the pill search. It starts over every time it is mounted.
type searchScreen struct {
	input   textinput.Model
	focused bool
	filters api.SearchFilters
	page    int
	seq     int
	list    *components.List
	resp    *api.PillSearchResponse
	loading bool
	err     string
}

func newSearchScreen() searchScreen {
	return searchScreen{input: newInput("약 이름, 성분, 제조사", false), page: 1}
}

func (s *searchScreen) mount(ctx context.Context, backend Backend, filters api.SearchFilters) tea.Cmd {
	s.input.SetValue(filters.Keyword)
	s.blur()
	// drop whatever the previous mount still has in flight
	s.seq++
	s.filters = filters
	s.page = 1
	s.list = nil
	s.resp = nil
	s.err = ""
	s.loading = false
	if filters.IsZero() {
		return nil
	}
	return s.run(ctx, backend)
}

func (s *searchScreen) focus() {
	s.focused = true
	s.input.Focus()
}

func (s *searchScreen) blur() {
	s.focused = false
	s.input.Blur()
}

func (s *searchScreen) submit(ctx context.Context, backend Backend) tea.Cmd {
	s.filters.Keyword = strings.TrimSpace(s.input.Value())
	s.page = 1
	s.blur()
	if s.filters.IsZero() {
		s.list = nil
		s.resp = nil
		return nil
	}
	return s.run(ctx, backend)
}

func (s *searchScreen) turnPage(ctx context.Context, backend Backend, delta int) tea.Cmd {
	if s.resp == nil || s.loading {
		return nil
	}
	next := s.page + delta
	if next < 1 || (next-1)*searchPageSize >= s.resp.Total {
		return nil
	}
	s.page = next
	return s.run(ctx, backend)
}

func (s *searchScreen) run(ctx context.Context, backend Backend) tea.Cmd {
	s.seq++
	s.loading = true
	s.err = ""
	seq, filters, page := s.seq, s.filters, s.page
	return func() tea.Msg {
		resp, err := backend.SearchPills(ctx, filters, page, searchPageSize)
		return searchResultMsg{seq: seq, resp: resp, err: err}
	}
}

func (s *searchScreen) handleResult(msg searchResultMsg, width, height int) {
	// superseded by a newer search or a remount
	if msg.seq != s.seq {
		return
	}
	s.loading = false
	if msg.err != nil {
		s.err = errorText(msg.err)
		return
	}
	s.resp = msg.resp
	s.list = components.NewPillList(msg.resp.Items, width, height)
	s.list.SetFocused(true)
}

func (s *searchScreen) selectedPill() (api.Pill, bool) {
	if s.list == nil {
		return api.Pill{}, false
	}
	item := s.list.GetSelectedItem()
	if item == nil {
		return api.Pill{}, false
	}
	p, ok := item.Data.(api.Pill)
	return p, ok
}

// communityScreen is the board list with category tabs
type communityScreen struct {
	category int
	seq      int
	list     *components.List
	loading  bool
	err      string
}

func (c *communityScreen) categoryName() string {
	return api.Categories[c.category]
}

func (c *communityScreen) mount(ctx context.Context, backend Backend) tea.Cmd {
	c.list = nil
	return c.load(ctx, backend)
}

func (c *communityScreen) switchCategory(ctx context.Context, backend Backend, delta int) tea.Cmd {
	n := len(api.Categories)
	c.category = ((c.category+delta)%n + n) % n
	c.list = nil
	return c.load(ctx, backend)
}

func (c *communityScreen) load(ctx context.Context, backend Backend) tea.Cmd {
	c.seq++
	c.loading = true
	c.err = ""
	seq, category := c.seq, c.categoryName()
	return func() tea.Msg {
		posts, err := backend.ListPosts(ctx, category)
		return postsMsg{seq: seq, posts: posts, err: err}
	}
}

func (c *communityScreen) handleResult(msg postsMsg, width, height int) {
	if msg.seq != c.seq {
		return
	}
	c.loading = false
	if msg.err != nil {
		c.err = errorText(msg.err)
		return
	}
	c.list = components.NewPostList(msg.posts, width, height)
	c.list.SetFocused(true)
}

func (c *communityScreen) selectedPost() (api.Post, bool) {
	if c.list == nil {
		return api.Post{}, false
	}
	item := c.list.GetSelectedItem()
	if item == nil {
		return api.Post{}, false
	}
	p, ok := item.Data.(api.Post)
	return p, ok
}

// myPageScreen shows the profile with history, own posts and scraps
type myPageScreen struct {
	seq     int
	page    *api.MyPage
	list    *components.List
	loading bool
	err     string
}

func (p *myPageScreen) mount(ctx context.Context, backend Backend) tea.Cmd {
	p.page = nil
	p.list = nil
	p.seq++
	p.err = ""
	p.loading = true
	seq := p.seq
	return func() tea.Msg {
		page, err := backend.LoadMyPage(ctx)
		return myPageMsg{seq: seq, page: page, err: err}
	}
}

func (p *myPageScreen) handleResult(msg myPageMsg, width, height int) {
	if msg.seq != p.seq {
		return
	}
	p.loading = false
	if msg.err != nil {
		p.err = errorText(msg.err)
		return
	}
	p.page = msg.page
	p.list = components.NewMyPageList(msg.page, width, height)
	p.list.SetFocused(true)
}

func (p *myPageScreen) selected() interface{} {
	if p.list == nil {
		return nil
	}
	if item := p.list.GetSelectedItem(); item != nil {
		return item.Data
	}
	return nil
}

// adminScreen is the admin console. Stats load once the role check passes.
type adminScreen struct {
	stats      *api.AdminStats
	loading    bool
	loaded     bool
	redirected bool
	err        string
}

func (a *adminScreen) load(ctx context.Context, backend Backend) tea.Cmd {
	if a.loading || a.loaded {
		return nil
	}
	a.loading = true
	a.err = ""
	return func() tea.Msg {
		stats, err := backend.AdminStats(ctx)
		return adminStatsMsg{stats: stats, err: err}
	}
}

func (a *adminScreen) handleResult(msg adminStatsMsg) {
	a.loading = false
	a.loaded = true
	if msg.err != nil {
		a.err = errorText(msg.err)
		return
	}
	a.stats = msg.stats
}
