package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/pilly/internal/api"
	"github.com/yildizm/pilly/internal/emoji"
	"github.com/yildizm/pilly/internal/session"
	"github.com/yildizm/pilly/internal/ui/components"
	"github.com/yildizm/pilly/internal/view"
)

// View renders the header, the mounted screen or the auth overlay, and the
// footer
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.auth != nil {
		body = m.renderAuth()
	} else {
		body = m.renderContent()
	}

	width := m.listWidth() + 2
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.styles.Box.Width(width).Render(body),
		m.renderFooter(),
	)
}

func (m *Model) renderHeader() string {
	s := m.styles
	brand := s.Render(&s.Brand, emoji.GetEmoji("pill")+" Pilly")

	state := m.router.Content().State
	tabs := make([]string, 0, len(navItems))
	for _, item := range navItems {
		label := fmt.Sprintf("%s %s %s", item.key, emoji.GetEmoji(item.icon), item.label)
		routed, _ := view.Lookup(item.path)
		if routed == state || (routed == view.Community && state.IsCommunitySubView()) {
			tabs = append(tabs, s.Render(&s.ActiveTab, label))
		} else {
			tabs = append(tabs, s.Render(&s.Tab, label))
		}
	}

	var user string
	if p := m.session.Profile(); p != nil {
		user = s.Render(&s.Subtitle, p.DisplayName()+"님")
		if m.session.IsAdmin() {
			user += " " + s.Render(&s.Muted, "a "+emoji.GetEmoji("admin")+" 관리자")
		}
	} else if m.session.HasToken() {
		user = s.Render(&s.Muted, "...")
	} else {
		user = s.Render(&s.Muted, "l 로그인 · s 회원가입")
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, append([]string{brand}, append(tabs, "  ", user)...)...)
}

func (m *Model) renderContent() string {
	switch c := m.router.Content(); c.State {
	case view.Home:
		return m.renderHome()
	case view.Search:
		return m.renderSearch()
	case view.AISearch:
		return m.renderAISearch()
	case view.Community:
		return m.renderCommunity()
	case view.CommunityDetail:
		return m.renderDetail()
	case view.CommunityWrite:
		return m.renderWrite()
	case view.MyPage:
		return m.renderMyPage()
	case view.KakaoRedirect:
		return m.spinnerLine("카카오 로그인 중입니다...")
	case view.Admin:
		return m.renderAdmin()
	}
	return ""
}

func (m *Model) renderHome() string {
	s := m.styles
	lines := []string{
		s.Render(&s.Title, emoji.GetEmoji("pill")+" 내 약, 제대로 알고 먹자"),
		"",
		s.Render(&s.Body, "약 이름이나 모양으로 궁금한 약을 찾아보세요."),
		"",
		s.Render(&s.Info, "enter  약 검색 시작"),
		s.Render(&s.Info, "i      AI 검색"),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderSearch() string {
	s := m.styles
	sc := &m.search

	label := "검색"
	if sc.focused {
		label = s.Render(&s.Focused, label)
	}
	lines := []string{label + " " + sc.input.View(), ""}

	switch {
	case sc.loading:
		lines = append(lines, m.spinnerLine("검색 중..."))
	case sc.err != "":
		lines = append(lines, s.Render(&s.Error, sc.err))
	case sc.resp == nil:
		lines = append(lines, s.Render(&s.Muted, "/ 를 눌러 검색어를 입력하세요."))
	default:
		lines = append(lines,
			s.Render(&s.Subtitle, fmt.Sprintf("'%s' 검색 결과 %d건 (%d쪽)", sc.filters.Keyword, sc.resp.Total, sc.page)),
			sc.list.Render(),
		)
		if p, ok := sc.selectedPill(); ok && p.Efficacy != "" {
			lines = append(lines, "", s.Render(&s.Info, "효능: ")+truncateText(p.Efficacy, m.listWidth()-6))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderAISearch() string {
	s := m.styles
	return strings.Join([]string{
		s.Render(&s.Title, emoji.GetEmoji("ai")+" AI 검색"),
		"",
		s.Render(&s.Muted, "사진으로 약을 찾는 AI 검색은 준비 중입니다."),
	}, "\n")
}

func (m *Model) renderCommunity() string {
	s := m.styles
	c := &m.community

	tabs := make([]string, 0, len(api.Categories))
	for i, cat := range api.Categories {
		if i == c.category {
			tabs = append(tabs, s.Render(&s.ActiveTab, components.CategoryLabel(cat)))
		} else {
			tabs = append(tabs, s.Render(&s.Tab, components.CategoryLabel(cat)))
		}
	}
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, tabs...), ""}

	switch {
	case c.loading:
		lines = append(lines, m.spinnerLine("게시글을 불러오는 중..."))
	case c.err != "":
		lines = append(lines, s.Render(&s.Error, c.err))
	case c.list != nil:
		lines = append(lines, c.list.Render())
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderDetail() string {
	s := m.styles
	d := &m.detail
	switch {
	case d.loading:
		return m.spinnerLine("게시글을 불러오는 중...")
	case d.err != "":
		return s.Render(&s.Error, d.err)
	case d.post == nil:
		return ""
	}
	lines := []string{components.NewPostViewer(d.post, m.listWidth(), m.listHeight()).Render(), ""}
	lines = append(lines, s.Render(&s.Subtitle, fmt.Sprintf("%s 댓글 %d", emoji.GetEmoji("community"), len(d.comments))))
	switch {
	case d.commentsErr != "":
		lines = append(lines, s.Render(&s.Error, d.commentsErr))
	case len(d.comments) == 0:
		lines = append(lines, s.Render(&s.Muted, "첫 댓글을 남겨보세요."))
	}
	for i, c := range d.comments {
		line := fmt.Sprintf("%s: %s", c.Username, truncateText(c.Content, m.listWidth()-len(c.Username)-8))
		if i == d.selected {
			line = s.Render(&s.Focused, "▸ "+line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	lines = append(lines, "")
	switch {
	case d.confirm != nil:
		lines = append(lines, s.Render(&s.Warning, d.confirm.prompt+" (y/n)"))
	case d.sending:
		lines = append(lines, m.spinnerLine("댓글 등록 중..."))
	case d.commenting:
		lines = append(lines, d.input.View())
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderWrite() string {
	s := m.styles
	f := m.write
	if f == nil {
		return ""
	}
	if f.loading {
		return m.spinnerLine("게시글을 불러오는 중...")
	}

	title := emoji.GetEmoji("write") + " 글쓰기"
	if f.editID > 0 {
		title = emoji.GetEmoji("write") + " 글 수정"
	}
	f.body.SetWidth(m.listWidth() - 4)

	lines := []string{
		s.Render(&s.Title, title),
		"",
		s.Render(&s.Subtitle, "카테고리: ") + components.CategoryLabel(f.categoryName()),
		f.title.View(),
		f.body.View(),
	}
	switch {
	case f.busy:
		lines = append(lines, m.spinnerLine("저장 중..."))
	case f.err != "":
		lines = append(lines, s.Render(&s.Error, f.err))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderMyPage() string {
	s := m.styles
	p := &m.mypage
	switch {
	case p.loading:
		return m.spinnerLine("불러오는 중...")
	case p.err != "":
		return s.Render(&s.Error, p.err)
	case p.page == nil:
		return ""
	}

	lines := []string{components.NewProfileSummary(p.page.Profile, m.listWidth()-4).Render(), ""}
	if p.list.Len() == 0 {
		lines = append(lines, s.Render(&s.Muted, "검색 기록, 작성한 글, 스크랩이 없습니다."))
	} else {
		lines = append(lines, p.list.Render())
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderAdmin() string {
	s := m.styles
	switch m.session.AdminGate() {
	case session.GateChecking:
		return m.spinnerLine("로그인 정보를 확인하는 중...")
	case session.GateDenied:
		return ""
	}

	a := &m.admin
	switch {
	case a.loading:
		return m.spinnerLine("통계를 불러오는 중...")
	case a.err != "":
		return s.Render(&s.Error, a.err)
	case a.stats == nil:
		return ""
	}
	return strings.Join([]string{
		s.Render(&s.Title, emoji.GetEmoji("admin")+" 관리자 콘솔"),
		"",
		components.NewAdminDashboard(a.stats).Render(),
	}, "\n")
}

func (m *Model) renderAuth() string {
	s := m.styles
	f := m.auth

	title := emoji.GetEmoji("login") + " 로그인"
	switchHint := "ctrl+n 회원가입으로"
	if f.mode == view.Signup {
		title = emoji.GetEmoji("signup") + " 회원가입"
		switchHint = "ctrl+n 로그인으로"
	}

	lines := []string{s.Render(&s.Title, title), ""}
	for _, in := range f.inputs {
		lines = append(lines, in.View())
	}
	lines = append(lines, "")
	switch {
	case f.busy:
		lines = append(lines, m.spinnerLine("처리 중..."))
	case f.err != "":
		lines = append(lines, s.Render(&s.Error, f.err))
	}
	lines = append(lines, s.Render(&s.Muted, "enter 다음/확인 · esc 닫기 · "+switchHint))

	return s.Overlay.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	s := m.styles
	if m.notice != "" {
		style := s.Info
		icon := emoji.GetEmoji("info")
		switch m.noticeLevel {
		case "warning":
			style, icon = s.Warning, emoji.GetEmoji("warning")
		case "error":
			style, icon = s.Error, emoji.GetEmoji("error")
		case "success":
			style, icon = s.Success, emoji.GetEmoji("success")
		}
		return s.Render(&style, icon+" "+m.notice) + "  " + s.Render(&s.Muted, "[아무 키나 누르세요]")
	}
	return s.Render(&s.Muted, m.hints())
}

func (m *Model) hints() string {
	if m.auth != nil {
		return "tab 이동 · enter 확인 · esc 닫기"
	}
	var hint string
	switch m.router.Content().State {
	case view.Search:
		hint = "/ 검색 · ↑↓ 이동 · n/p 쪽 넘기기"
	case view.Community:
		hint = "←→ 카테고리 · enter 보기 · w 글쓰기 · r 새로고침"
	case view.CommunityDetail:
		hint = "b 목록 · f 좋아요 · c 댓글 · ↑↓ 선택 · x 댓글 삭제 · e 수정 · d 삭제"
		if m.detail.commenting {
			return "enter 등록 · esc 취소"
		}
	case view.CommunityWrite:
		return "tab 제목/내용 · ctrl+t 카테고리 · ctrl+s 저장 · esc 취소"
	case view.MyPage:
		hint = "↑↓ 이동 · enter 열기 · r 새로고침"
	case view.Admin:
		hint = "r 새로고침"
	}
	base := "1-5 메뉴 · q 종료"
	if m.session.HasToken() {
		base = "1-5 메뉴 · o 로그아웃 · q 종료"
	}
	if hint == "" {
		return base
	}
	return hint + " · " + base
}

func (m *Model) spinnerLine(label string) string {
	m.spinner.SetLabel(label)
	return m.spinner.Render()
}

func truncateText(s string, width int) string {
	runes := []rune(s)
	if width <= 3 || lipgloss.Width(s) <= width {
		return s
	}
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-3 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
