package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/pilly/internal/api"
	"github.com/yildizm/pilly/internal/history"
)

// locationMsg carries history changes drained after an update. They are
// handed to the router in order, one turn after the change was made.
type locationMsg struct {
	locations []history.Location
}

type profileMsg struct {
	gen     uint64
	profile *api.Profile
	err     error
}

type searchResultMsg struct {
	seq  int
	resp *api.PillSearchResponse
	err  error
}

type postsMsg struct {
	seq   int
	posts []api.Post
	err   error
}

type postMsg struct {
	seq     int
	id      int
	post    *api.Post
	err     error
	forEdit bool
}

type commentsMsg struct {
	seq      int
	comments []api.Comment
	err      error
}

type likeMsg struct {
	seq   int
	prev  bool
	state *api.LikeState
	err   error
}

type commentSavedMsg struct {
	seq     int
	comment *api.Comment
	err     error
}

type commentDeletedMsg struct {
	seq int
	id  int
	err error
}

type postDeletedMsg struct {
	seq int
	err error
}

type postSavedMsg struct {
	id  int
	err error
}

type myPageMsg struct {
	seq  int
	page *api.MyPage
	err  error
}

type adminStatsMsg struct {
	stats *api.AdminStats
	err   error
}

type authResultMsg struct {
	signup   bool
	username string
	resp     *api.LoginResponse
	err      error
}

type kakaoResultMsg struct {
	resp *api.LoginResponse
	err  error
}

type tickMsg time.Time

// CredentialsChanged tells the model that the credential file was rewritten
// by another process
type CredentialsChanged struct{}

func tick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func deliver(locations []history.Location) tea.Cmd {
	if len(locations) == 0 {
		return nil
	}
	return func() tea.Msg {
		return locationMsg{locations: locations}
	}
}
