// Package router keeps the single current view and reconciles location
// changes, widget navigation requests and in-app transitions into it.
//
// All methods must be called from one goroutine (the UI loop). A navigation
// pushes onto the history and returns; the host later hands the resulting
// location back through OnLocationChange.
package router

import (
	"strings"

	"github.com/yildizm/pilly/internal/api"
	"github.com/yildizm/pilly/internal/history"
	"github.com/yildizm/pilly/internal/logger"
	"github.com/yildizm/pilly/internal/signal"
	"github.com/yildizm/pilly/internal/view"
)

// Deps are the router's collaborators
type Deps struct {
	Navigator Navigator
	Auth      AuthGate
	Notifier  Notifier
	Logger    *logger.Logger
}

// Router is the view state machine
type Router struct {
	nav    Navigator
	auth   AuthGate
	notify Notifier
	log    *logger.Logger

	state   view.State
	screen  view.Screen
	overlay view.State
	hasAuth bool
	path    string
	sel     TransientSelection
}

// New creates a router showing HOME
func New(deps Deps) *Router {
	r := &Router{
		nav:    deps.Navigator,
		auth:   deps.Auth,
		notify: deps.Notifier,
		log:    deps.Logger,
		state:  view.Home,
		path:   view.PathHome,
	}
	if r.notify == nil {
		r.notify = nopNotifier{}
	}
	if r.log == nil {
		r.log = logger.Nop()
	}
	r.screen, _ = view.Routed(view.PathHome)
	return r
}

// State returns the current view
func (r *Router) State() view.State { return r.state }

// Screen returns the current view with its payload
func (r *Router) Screen() view.Screen { return r.screen }

// Selection returns a copy of the transient selection
func (r *Router) Selection() TransientSelection { return r.sel }

// AuthOverlay returns the open auth overlay, if any
func (r *Router) AuthOverlay() (view.State, bool) { return r.overlay, r.hasAuth }

// SyncFromURL moves to the view the path maps to. Unknown paths are ignored.
// The community path is ignored while a community sub-view is showing,
// since those sub-views share its URL.
func (r *Router) SyncFromURL(path string) {
	r.path = path

	target, ok := view.Lookup(path)
	if !ok {
		r.log.DebugWithFields("ignoring unrouted path", []logger.Field{logger.Path(path)})
		return
	}
	if path == view.PathCommunity && r.state.IsCommunitySubView() {
		r.log.DebugWithFields("keeping community sub-view", []logger.Field{logger.Path(path), logger.View(r.state)})
		return
	}
	if target == r.state {
		return
	}

	screen, err := view.Routed(path)
	if err != nil {
		return
	}
	r.log.DebugWithFields("view changed", []logger.Field{logger.Path(path), logger.F("from", r.state), logger.F("to", target)})
	r.state = target
	r.screen = screen
}

// HandleNavIntent applies a navigation request from a widget
func (r *Router) HandleNavIntent(intent view.Intent) Outcome {
	if overlay, ok := intent.Overlay(); ok {
		r.openOverlay(overlay)
		return OutcomeOverlay
	}

	path, ok := intent.Path()
	if !ok {
		r.log.Debug("ignoring invalid navigation intent")
		return OutcomeIgnored
	}

	// the search view is rebuilt on every header navigation, even when it
	// is already showing
	if path == view.PathSearch {
		r.sel.SearchKey++
		r.sel.Filters = api.SearchFilters{}
	}

	if view.IsGatedPath(path) && !r.authorized() {
		r.log.DebugWithFields("navigation needs login", []logger.Field{logger.Path(path)})
		r.notify.Notify(NoticeLoginRequired)
		r.openOverlay(view.Login)
		return OutcomeDenied
	}

	r.nav.Push(path, nil)
	return OutcomeNavigated
}

// SetTransientSelection opens a community sub-view without touching the URL
func (r *Router) SetTransientSelection(sel view.Selection) bool {
	screen, err := view.Overlay(sel)
	if err != nil {
		r.log.Debug("ignoring selection: %v", err)
		return false
	}

	switch sel.State() {
	case view.CommunityDetail:
		r.sel.SelectedPostID = sel.PostID()
	case view.CommunityWrite:
		r.sel.EditPostID = sel.PostID()
	}
	r.log.DebugWithFields("selection", []logger.Field{logger.View(sel.State()), logger.F("post", sel.PostID())})
	r.state = sel.State()
	r.screen = screen
	return true
}

// Back leaves a community sub-view for the list
func (r *Router) Back() bool {
	if !r.state.IsCommunitySubView() {
		return false
	}
	r.state = view.Community
	r.screen, _ = view.Routed(view.PathCommunity)
	return true
}

// HandleSearchSignal opens the search view with the signalled keyword.
// Payloads without a keyword are ignored.
func (r *Router) HandleSearchSignal(payload any) bool {
	sig, ok := payload.(signal.SearchSignal)
	if !ok {
		return false
	}
	keyword := strings.TrimSpace(sig.Keyword)
	if keyword == "" {
		return false
	}
	r.sel.Filters = api.SearchFilters{Keyword: keyword}
	r.nav.Push(view.PathSearch, nil)
	return true
}

// Attach subscribes the router to the signals it handles
func (r *Router) Attach(bus *signal.Bus) func() {
	return bus.Subscribe(signal.EventGoSearch, func(p any) { r.HandleSearchSignal(p) })
}

// OnLocationChange is the host's entry point for a delivered location. It
// syncs the view, then consumes a one-shot detail payload if one is
// attached. It reports whether the path differs from the previous one.
func (r *Router) OnLocationChange(loc history.Location) bool {
	changed := loc.Path != r.path
	r.SyncFromURL(loc.Path)

	if p := loc.Payload; p != nil && p.TargetView == view.CommunityDetail.String() && p.PostID > 0 {
		if r.SetTransientSelection(view.DetailOf(p.PostID)) {
			r.nav.ClearPayload()
		}
	}
	return changed
}

// CloseOverlay closes the auth overlay
func (r *Router) CloseOverlay() {
	r.hasAuth = false
}

// SwitchOverlay flips the open auth overlay between login and signup
func (r *Router) SwitchOverlay(s view.State) {
	if r.hasAuth && s.IsAuthOverlay() {
		r.overlay = s
	}
}

// Content decides what the host mounts. The admin console is keyed on the
// path alone; role checks are the host's job.
func (r *Router) Content() Content {
	if r.path == view.PathAdmin {
		return Content{State: view.Admin}
	}

	return Content{
		State:      r.state,
		PostID:     r.sel.SelectedPostID,
		EditPostID: r.sel.EditPostID,
		SearchKey:  r.sel.SearchKey,
		Filters:    r.sel.Filters,
	}
}

func (r *Router) openOverlay(s view.State) {
	r.overlay = s
	r.hasAuth = true
}

func (r *Router) authorized() bool {
	return r.auth != nil && r.auth.HasToken()
}
