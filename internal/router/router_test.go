package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/pilly/internal/api"
	"github.com/yildizm/pilly/internal/history"
	"github.com/yildizm/pilly/internal/session"
	"github.com/yildizm/pilly/internal/signal"
	"github.com/yildizm/pilly/internal/view"
)

type fixture struct {
	r       *Router
	h       *history.History
	store   *session.MemoryStore
	notices []string
}

func newFixture(token string) *fixture {
	f := &fixture{h: history.New("/"), store: session.NewMemoryStore(token)}
	f.r = New(Deps{
		Navigator: f.h,
		Auth:      f.store,
		Notifier:  NotifierFunc(func(msg string) { f.notices = append(f.notices, msg) }),
	})
	return f
}

// deliver hands every pending location change to the router, the way the
// UI loop does on its next turn.
func (f *fixture) deliver() {
	for _, loc := range f.h.Drain() {
		f.r.OnLocationChange(loc)
	}
}

func TestInitialState(t *testing.T) {
	f := newFixture("")
	assert.Equal(t, view.Home, f.r.State())
	_, open := f.r.AuthOverlay()
	assert.False(t, open)
	assert.Equal(t, view.Home, f.r.Screen().State())
}

func TestSyncFromURLFollowsPathTable(t *testing.T) {
	for _, p := range view.Paths() {
		t.Run(p, func(t *testing.T) {
			f := newFixture("")
			want, _ := view.Lookup(p)

			f.r.SyncFromURL(p)
			assert.Equal(t, want, f.r.State())

			f.r.SyncFromURL(p)
			assert.Equal(t, want, f.r.State(), "sync must be idempotent")

			routed, ok := f.r.Screen().(view.RoutedScreen)
			require.True(t, ok)
			assert.Equal(t, p, routed.Path())
		})
	}
}

func TestSyncFromURLIgnoresUnknownPaths(t *testing.T) {
	f := newFixture("")
	f.r.SyncFromURL("/mypage")

	for _, p := range []string{"/nope", "", "/community/42", "/MYPAGE", "/admin"} {
		f.r.SyncFromURL(p)
		assert.Equal(t, view.MyPage, f.r.State(), "path %q changed the view", p)
	}
}

func TestSyncFromURLKeepsCommunitySubViews(t *testing.T) {
	f := newFixture("tok")
	f.r.SyncFromURL("/community")
	require.True(t, f.r.SetTransientSelection(view.DetailOf(42)))

	f.r.SyncFromURL("/community")

	assert.Equal(t, view.CommunityDetail, f.r.State())
	assert.Equal(t, 42, f.r.Selection().SelectedPostID)

	require.True(t, f.r.SetTransientSelection(view.WriteNew()))
	f.r.SyncFromURL("/community")
	assert.Equal(t, view.CommunityWrite, f.r.State())

	// any other routed path still leaves the sub-view
	f.r.SyncFromURL("/search")
	assert.Equal(t, view.Search, f.r.State())
}

func TestHandleNavIntentOverlay(t *testing.T) {
	for _, s := range []view.State{view.Login, view.Signup} {
		f := newFixture("")
		f.r.SyncFromURL("/search")

		out := f.r.HandleNavIntent(view.OpenOverlay(s))

		assert.Equal(t, OutcomeOverlay, out)
		overlay, open := f.r.AuthOverlay()
		assert.True(t, open)
		assert.Equal(t, s, overlay)
		assert.Equal(t, view.Search, f.r.State())
		assert.Equal(t, "/", f.h.Current().Path)
		assert.Empty(t, f.h.Drain())
	}
}

func TestHandleNavIntentGatedWithoutToken(t *testing.T) {
	for _, p := range []string{"/community", "/ai-search", "/mypage"} {
		t.Run(p, func(t *testing.T) {
			f := newFixture("")

			out := f.r.HandleNavIntent(view.Navigate(p))

			assert.Equal(t, OutcomeDenied, out)
			assert.Equal(t, view.Home, f.r.State())
			overlay, open := f.r.AuthOverlay()
			assert.True(t, open)
			assert.Equal(t, view.Login, overlay)
			assert.Equal(t, "/", f.h.Current().Path)
			assert.Empty(t, f.h.Drain(), "denied navigation must not touch the URL")
			assert.Equal(t, []string{NoticeLoginRequired}, f.notices)
		})
	}
}

func TestHandleNavIntentGatedWithToken(t *testing.T) {
	f := newFixture("tok")

	out := f.r.HandleNavIntent(view.Navigate("/community"))

	assert.Equal(t, OutcomeNavigated, out)
	assert.Equal(t, "/community", f.h.Current().Path)
	assert.Equal(t, view.Home, f.r.State(), "state follows only after the location is delivered")

	f.r.SyncFromURL(f.h.Current().Path)
	assert.Equal(t, view.Community, f.r.State())
	assert.Empty(t, f.notices)
}

func TestHandleNavIntentSearchAlwaysResets(t *testing.T) {
	for _, token := range []string{"", "tok"} {
		f := newFixture(token)
		f.r.HandleSearchSignal(signal.SearchSignal{Keyword: "게보린"})
		f.deliver()
		require.Equal(t, "게보린", f.r.Selection().Filters.Keyword)

		before := f.r.Selection().SearchKey
		f.r.HandleNavIntent(view.Navigate("/search"))
		f.deliver()

		assert.Equal(t, before+1, f.r.Selection().SearchKey)
		assert.True(t, f.r.Selection().Filters.IsZero())
		assert.Equal(t, view.Search, f.r.State())

		// already on search: still remounts
		f.r.HandleNavIntent(view.Navigate("/search"))
		assert.Equal(t, before+2, f.r.Selection().SearchKey)
	}
}

func TestHandleNavIntentInvalid(t *testing.T) {
	f := newFixture("tok")
	assert.Equal(t, OutcomeIgnored, f.r.HandleNavIntent(view.OpenOverlay(view.Community)))
	assert.Equal(t, OutcomeIgnored, f.r.HandleNavIntent(view.Navigate("")))
	assert.Equal(t, view.Home, f.r.State())
	assert.Empty(t, f.h.Drain())
}

func TestUnroutedNavigationKeepsView(t *testing.T) {
	f := newFixture("tok")
	f.r.SyncFromURL("/mypage")

	assert.Equal(t, OutcomeNavigated, f.r.HandleNavIntent(view.Navigate("/nowhere")))
	f.deliver()
	assert.Equal(t, view.MyPage, f.r.State())
}

func TestSearchSignal(t *testing.T) {
	f := newFixture("")
	bus := signal.NewBus()
	unsubscribe := f.r.Attach(bus)
	defer unsubscribe()

	bus.GoSearch("타이레놀")
	f.deliver()

	assert.Equal(t, view.Search, f.r.State())
	assert.Equal(t, "타이레놀", f.r.Selection().Filters.Keyword)
	assert.Equal(t, 0, f.r.Selection().SearchKey, "signal does not remount")
}

func TestSearchSignalIgnoresMalformedPayloads(t *testing.T) {
	f := newFixture("")
	bus := signal.NewBus()
	f.r.Attach(bus)
	f.r.SyncFromURL("/")

	bus.GoSearch("")
	bus.GoSearch("   ")
	bus.Publish(signal.EventGoSearch, map[string]string{"keyword": "x"})
	bus.Publish(signal.EventGoSearch, nil)

	assert.Empty(t, f.h.Drain())
	assert.Equal(t, view.Home, f.r.State())
	assert.True(t, f.r.Selection().Filters.IsZero())
}

func TestSetTransientSelection(t *testing.T) {
	f := newFixture("tok")
	f.r.SyncFromURL("/mypage")

	require.True(t, f.r.SetTransientSelection(view.DetailOf(7)))

	assert.Equal(t, view.CommunityDetail, f.r.State())
	assert.Equal(t, 7, f.r.Selection().SelectedPostID)
	assert.Equal(t, "/", f.h.Current().Path, "selection never touches the URL")

	screen, ok := f.r.Screen().(view.OverlayScreen)
	require.True(t, ok)
	assert.Equal(t, 7, screen.Selection().PostID())

	require.True(t, f.r.SetTransientSelection(view.EditOf(7)))
	assert.Equal(t, view.CommunityWrite, f.r.State())
	assert.Equal(t, 7, f.r.Selection().EditPostID)

	require.True(t, f.r.SetTransientSelection(view.WriteNew()))
	assert.Equal(t, 0, f.r.Selection().EditPostID, "a new post must not inherit the edited id")

	assert.False(t, f.r.SetTransientSelection(view.DetailOf(0)))
	assert.Equal(t, view.CommunityWrite, f.r.State())
}

func TestBack(t *testing.T) {
	f := newFixture("tok")
	assert.False(t, f.r.Back())

	f.r.SetTransientSelection(view.DetailOf(3))
	require.True(t, f.r.Back())
	assert.Equal(t, view.Community, f.r.State())
}

func TestOneShotDetailPayload(t *testing.T) {
	f := newFixture("tok")
	f.h.Push("/community", &history.Payload{TargetView: "COMMUNITY_DETAIL", PostID: 12})

	f.deliver()

	assert.Equal(t, view.CommunityDetail, f.r.State())
	assert.Equal(t, 12, f.r.Selection().SelectedPostID)
	assert.Nil(t, f.h.Current().Payload, "payload is consumed once")
	assert.Empty(t, f.h.Drain())

	// a later back to the list and resync does not reopen the detail
	f.r.Back()
	f.r.OnLocationChange(f.h.Current())
	assert.Equal(t, view.Community, f.r.State())
}

func TestOneShotPayloadIgnoresOtherTargets(t *testing.T) {
	f := newFixture("tok")
	f.h.Push("/community", &history.Payload{TargetView: "MYPAGE", PostID: 12})
	f.deliver()
	assert.Equal(t, view.Community, f.r.State())

	f.h.Push("/community", &history.Payload{TargetView: "COMMUNITY_DETAIL"})
	f.deliver()
	assert.Equal(t, view.Community, f.r.State())
}

func TestOnLocationChangeReportsPathChanges(t *testing.T) {
	f := newFixture("tok")
	assert.False(t, f.r.OnLocationChange(history.Location{Path: "/"}))
	assert.True(t, f.r.OnLocationChange(history.Location{Path: "/search"}))
	assert.False(t, f.r.OnLocationChange(history.Location{Path: "/search"}))
}

func TestOverlaySwitchAndClose(t *testing.T) {
	f := newFixture("")
	f.r.SwitchOverlay(view.Signup)
	_, open := f.r.AuthOverlay()
	assert.False(t, open, "switch does not open a closed overlay")

	f.r.HandleNavIntent(view.OpenOverlay(view.Login))
	f.r.SwitchOverlay(view.Signup)
	overlay, _ := f.r.AuthOverlay()
	assert.Equal(t, view.Signup, overlay)

	f.r.SwitchOverlay(view.Home)
	overlay, _ = f.r.AuthOverlay()
	assert.Equal(t, view.Signup, overlay)

	f.r.CloseOverlay()
	_, open = f.r.AuthOverlay()
	assert.False(t, open)
}

func TestContent(t *testing.T) {
	f := newFixture("tok")
	f.r.HandleSearchSignal(signal.SearchSignal{Keyword: "부루펜"})
	f.deliver()

	c := f.r.Content()
	assert.Equal(t, view.Search, c.State)
	assert.Equal(t, api.SearchFilters{Keyword: "부루펜"}, c.Filters)

	f.h.Push("/admin", nil)
	f.deliver()
	assert.Equal(t, view.Admin, f.r.Content().State)
	assert.Equal(t, view.Search, f.r.State(), "admin is keyed on the path, not the view")

	f.h.Push("/", nil)
	f.deliver()
	assert.Equal(t, view.Home, f.r.Content().State)

	f.r.SetTransientSelection(view.DetailOf(9))
	c = f.r.Content()
	assert.Equal(t, view.CommunityDetail, c.State)
	assert.Equal(t, 9, c.PostID)
}
