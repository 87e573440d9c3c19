package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/pilly/internal/api"
	"github.com/yildizm/pilly/internal/history"
	"github.com/yildizm/pilly/internal/logger"
	"github.com/yildizm/pilly/internal/router"
	"github.com/yildizm/pilly/internal/session"
	"github.com/yildizm/pilly/internal/signal"
	"github.com/yildizm/pilly/internal/ui/components"
	"github.com/yildizm/pilly/internal/view"
)

// Options wires the model to its collaborators
type Options struct {
	Context context.Context
	History *history.History
	Session *session.Session
	Backend Backend
	Bus     *signal.Bus
	Logger  *logger.Logger
}

// Model is the bubbletea host around the view router. It is the only
// goroutine that touches the router or the history.
type Model struct {
	ctx         context.Context
	history     *history.History
	session     *session.Session
	backend     Backend
	bus         *signal.Bus
	log         *logger.Logger
	router      *router.Router
	unsubscribe func()

	width    int
	height   int
	quitting bool
	started  bool
	ticking  bool
	styles   *Styles
	spinner  *components.Spinner

	notice      string
	noticeLevel string

	mounted    router.Content
	hasMounted bool

	auth      *authForm
	search    searchScreen
	community communityScreen
	detail    detailScreen
	write     *writeForm
	mypage    myPageScreen
	admin     adminScreen
	kakaoCode string
}

// New builds the model and the router it drives
func New(opts Options) (*Model, error) {
	if opts.History == nil || opts.Session == nil || opts.Backend == nil {
		return nil, errors.New("ui: history, session and backend are required")
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Bus == nil {
		opts.Bus = signal.NewBus()
	}

	m := &Model{
		ctx:     opts.Context,
		history: opts.History,
		session: opts.Session,
		backend: opts.Backend,
		bus:     opts.Bus,
		log:     opts.Logger.WithComponent("ui"),
		styles:  GetStyles(),
		spinner: components.NewSpinner("불러오는 중..."),
		search:  newSearchScreen(),
	}
	m.router = router.New(router.Deps{
		Navigator: opts.History,
		Auth:      opts.Session,
		Notifier:  router.NotifierFunc(m.warn),
		Logger:    opts.Logger.WithComponent("router"),
	})
	m.unsubscribe = m.router.Attach(opts.Bus)
	return m, nil
}

// Router exposes the router for inspection
func (m *Model) Router() *router.Router {
	return m.router
}

// Close detaches the model from the signal bus
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Init delivers the start location
func (m *Model) Init() tea.Cmd {
	locations := append([]history.Location{m.history.Current()}, m.history.Drain()...)
	return deliver(locations)
}

// Update handles messages, then mounts whatever the router now shows and
// delivers any location changes made along the way
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case locationMsg:
		cmd = m.handleLocations(msg)
	case profileMsg:
		m.handleProfile(msg)
	case CredentialsChanged:
		m.log.Debug("credential file changed")
		cmd = m.refreshProfile()
	case authResultMsg:
		cmd = m.handleAuthResult(msg)
	case kakaoResultMsg:
		m.handleKakaoResult(msg)
	case searchResultMsg:
		m.search.handleResult(msg, m.listWidth(), m.listHeight())
	case postsMsg:
		m.community.handleResult(msg, m.listWidth(), m.listHeight())
	case postMsg:
		m.handlePost(msg)
	case postSavedMsg:
		m.handlePostSaved(msg)
	case commentsMsg:
		m.detail.handleComments(msg)
	case likeMsg:
		m.handleLikeResult(msg)
	case commentSavedMsg:
		m.handleCommentSaved(msg)
	case commentDeletedMsg:
		m.handleCommentDeleted(msg)
	case postDeletedMsg:
		m.handlePostDeleted(msg)
	case myPageMsg:
		m.mypage.handleResult(msg, m.listWidth(), m.listHeight())
	case adminStatsMsg:
		m.admin.handleResult(msg)
	case tickMsg:
		cmd = m.handleTick()
	}

	if m.quitting {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.sync())
}

func (m *Model) sync() tea.Cmd {
	var cmds []tea.Cmd

	overlay, open := m.router.AuthOverlay()
	switch {
	case !open:
		m.auth = nil
	case m.auth == nil || m.auth.mode != overlay:
		m.auth = newAuthForm(overlay)
	}

	content := m.router.Content()
	if key := mountKey(content); !m.hasMounted || key != m.mounted {
		m.mounted = key
		m.hasMounted = true
		cmds = append(cmds, m.mount(content))
	}
	if content.State == view.Admin {
		cmds = append(cmds, m.guardAdmin())
	}

	cmds = append(cmds, deliver(m.history.Drain()))

	if m.loading() && !m.ticking {
		m.ticking = true
		cmds = append(cmds, tick())
	}
	return tea.Batch(cmds...)
}

// mountKey keeps only the parts of the content that require a fresh screen
func mountKey(c router.Content) router.Content {
	switch c.State {
	case view.Search:
		return router.Content{State: c.State, SearchKey: c.SearchKey, Filters: c.Filters}
	case view.CommunityDetail:
		return router.Content{State: c.State, PostID: c.PostID}
	case view.CommunityWrite:
		return router.Content{State: c.State, EditPostID: c.EditPostID}
	}
	return router.Content{State: c.State}
}

func (m *Model) mount(c router.Content) tea.Cmd {
	m.log.DebugWithFields("mount", []logger.Field{logger.View(c.State)})

	switch c.State {
	case view.Search:
		return m.search.mount(m.ctx, m.backend, c.Filters)
	case view.Community:
		return m.community.mount(m.ctx, m.backend)
	case view.CommunityDetail:
		return m.detail.mount(m.ctx, m.backend, c.PostID)
	case view.CommunityWrite:
		m.write = newWriteForm(c.EditPostID, m.community.categoryName())
		return m.write.mount(m.ctx, m.backend)
	case view.MyPage:
		return m.mypage.mount(m.ctx, m.backend)
	case view.KakaoRedirect:
		return m.mountKakao()
	case view.Admin:
		m.admin = adminScreen{}
	}
	return nil
}

func (m *Model) handleLocations(msg locationMsg) tea.Cmd {
	var cmds []tea.Cmd
	for _, loc := range msg.locations {
		m.log.DebugWithFields("location", []logger.Field{logger.Path(loc.String())})
		if changed := m.router.OnLocationChange(loc); changed || !m.started {
			m.started = true
			cmds = append(cmds, m.refreshProfile())
		}
	}
	return tea.Batch(cmds...)
}

// refreshProfile starts a generation-checked profile load. Only the newest
// generation's result is applied.
func (m *Model) refreshProfile() tea.Cmd {
	gen := m.session.BeginRefresh()
	if !m.session.HasToken() {
		m.session.Apply(gen, nil, nil)
		return nil
	}

	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		profile, err := backend.GetMyProfile(ctx)
		return profileMsg{gen: gen, profile: profile, err: err}
	}
}

func (m *Model) handleProfile(msg profileMsg) {
	m.session.Apply(msg.gen, msg.profile, msg.err)
}

// guardAdmin keeps the admin console behind the role check
func (m *Model) guardAdmin() tea.Cmd {
	switch m.session.AdminGate() {
	case session.GateChecking:
		return nil
	case session.GateDenied:
		if !m.admin.redirected {
			m.admin.redirected = true
			m.log.Debug("admin console denied, returning home")
			m.history.Replace(view.PathHome, nil)
		}
		return nil
	}
	return m.admin.load(m.ctx, m.backend)
}

func (m *Model) mountKakao() tea.Cmd {
	code := m.history.Current().Query.Get("code")
	if code == "" {
		m.history.Replace(view.PathHome, nil)
		return nil
	}
	if code == m.kakaoCode {
		return nil
	}
	m.kakaoCode = code

	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		resp, err := backend.KakaoLogin(ctx, code)
		return kakaoResultMsg{resp: resp, err: err}
	}
}

func (m *Model) handleKakaoResult(msg kakaoResultMsg) {
	if msg.err == nil {
		name := firstNonEmpty(msg.resp.Username, msg.resp.Name, "사용자")
		if err := m.session.Login(msg.resp.AccessToken, name); err != nil {
			m.log.Error("failed to store credentials: %v", err)
			m.fail("로그인 정보를 저장하지 못했습니다.")
		} else {
			m.info(fmt.Sprintf("%s님, 환영합니다!", name))
		}
		m.history.Replace(view.PathHome, nil)
		return
	}

	m.log.WarnWithFields("kakao login failed", []logger.Field{logger.Error(msg.err)})
	// a repeated exchange fails even though the first one stored a token
	if !m.session.HasToken() {
		m.fail("로그인 처리에 실패했습니다. 다시 시도해주세요.")
	}
	m.history.Replace(view.PathHome, nil)
}

func (m *Model) handleAuthResult(msg authResultMsg) tea.Cmd {
	if m.auth == nil {
		return nil
	}
	m.auth.busy = false
	if msg.err != nil {
		m.auth.err = errorText(msg.err)
		return nil
	}

	name := firstNonEmpty(msg.resp.Username, msg.username)
	if err := m.session.Login(msg.resp.AccessToken, name); err != nil {
		m.log.Error("failed to store credentials: %v", err)
		m.auth.err = "로그인 정보를 저장하지 못했습니다."
		return nil
	}

	m.router.CloseOverlay()
	if msg.signup {
		m.info("회원가입이 완료되었습니다.")
	} else {
		m.info(fmt.Sprintf("%s님, 환영합니다!", firstNonEmpty(msg.resp.Name, name)))
	}
	return m.refreshProfile()
}

func (m *Model) logout() tea.Cmd {
	if !m.session.HasToken() {
		return nil
	}
	if err := m.session.Logout(); err != nil {
		m.log.Error("failed to clear credentials: %v", err)
	}
	m.info("로그아웃 되었습니다.")
	m.router.HandleNavIntent(view.Navigate(view.PathHome))
	return nil
}

func (m *Model) handlePost(msg postMsg) {
	if msg.forEdit {
		if m.write != nil {
			m.write.handlePost(msg)
		}
		return
	}
	m.detail.handleResult(msg)
}

func (m *Model) handlePostSaved(msg postSavedMsg) {
	if m.write == nil {
		return
	}
	m.write.busy = false
	if msg.err != nil {
		m.write.err = errorText(msg.err)
		return
	}
	m.info("게시글이 저장되었습니다.")
	m.router.Back()
}

func (m *Model) handleTick() tea.Cmd {
	m.spinner.Tick()
	if m.loading() {
		return tick()
	}
	m.ticking = false
	return nil
}

func (m *Model) loading() bool {
	return m.search.loading || m.community.loading || m.detail.loading || m.detail.sending ||
		m.mypage.loading || m.admin.loading || (m.write != nil && (m.write.loading || m.write.busy)) ||
		(m.auth != nil && m.auth.busy)
}

func (m *Model) warn(msg string) {
	m.notice, m.noticeLevel = msg, "warning"
}

func (m *Model) info(msg string) {
	m.notice, m.noticeLevel = msg, "success"
}

func (m *Model) fail(msg string) {
	m.notice, m.noticeLevel = msg, "error"
}

func (m *Model) resizeLists() {
	for _, l := range []*components.List{m.search.list, m.community.list, m.mypage.list} {
		if l != nil {
			l.SetSize(m.listWidth(), m.listHeight())
		}
	}
}

func (m *Model) listWidth() int {
	if m.width <= 0 {
		return 76
	}
	return max(30, m.width-6)
}

func (m *Model) listHeight() int {
	if m.height <= 0 {
		return 20
	}
	return max(6, m.height-10)
}

// errorText picks the message shown for a failed request
func errorText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// NewProgram wraps the model in a full-screen program. Callers may Send
// CredentialsChanged from other goroutines.
func NewProgram(m *Model, opts ...tea.ProgramOption) *tea.Program {
	return tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
}
