package router

import (
	"github.com/yildizm/pilly/internal/api"
	"github.com/yildizm/pilly/internal/view"
)

// TransientSelection is in-memory state that never reaches the URL
type TransientSelection struct {
	SelectedPostID int
	EditPostID     int
	Filters        api.SearchFilters
	// SearchKey changes whenever the search view must start from scratch
	SearchKey int
}

// Content describes what the host should mount
type Content struct {
	State      view.State
	PostID     int
	EditPostID int
	SearchKey  int
	Filters    api.SearchFilters
}

// Outcome reports what HandleNavIntent did
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeOverlay
	OutcomeDenied
	OutcomeNavigated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOverlay:
		return "overlay"
	case OutcomeDenied:
		return "denied"
	case OutcomeNavigated:
		return "navigated"
	default:
		return "ignored"
	}
}
