package view

import "fmt"

// Screen is the current top-level screen. It is either a RoutedScreen,
// reachable through the path table, or an OverlayScreen, which carries a
// post selection and shares its URL with the community list.
type Screen interface {
	State() State
	screen()
}

// RoutedScreen is a screen derived from a location path
type RoutedScreen struct {
	path  string
	state State
}

// Routed builds a screen from a path in the path table
func Routed(path string) (RoutedScreen, error) {
	s, ok := Lookup(path)
	if !ok {
		return RoutedScreen{}, fmt.Errorf("no route for path %q", path)
	}
	return RoutedScreen{path: path, state: s}, nil
}

// Path returns the path the screen was routed from
func (r RoutedScreen) Path() string { return r.path }

// State returns the routed state
func (r RoutedScreen) State() State { return r.state }

func (RoutedScreen) screen() {}

// Selection is the payload carried by community sub-views
type Selection struct {
	state  State
	postID int
}

// DetailOf selects a post for the detail view
func DetailOf(postID int) Selection {
	return Selection{state: CommunityDetail, postID: postID}
}

// EditOf selects a post for editing
func EditOf(postID int) Selection {
	return Selection{state: CommunityWrite, postID: postID}
}

// WriteNew selects the write view for a new post
func WriteNew() Selection {
	return Selection{state: CommunityWrite}
}

// State returns the sub-view the selection opens
func (s Selection) State() State { return s.state }

// PostID returns the selected post, zero for a new post
func (s Selection) PostID() int { return s.postID }

// Valid reports whether the selection can be opened
func (s Selection) Valid() bool {
	switch s.state {
	case CommunityDetail:
		return s.postID > 0
	case CommunityWrite:
		return s.postID >= 0
	}
	return false
}

// OverlayScreen is a community sub-view opened by selection
type OverlayScreen struct {
	sel Selection
}

// Overlay builds a screen from a selection
func Overlay(sel Selection) (OverlayScreen, error) {
	if !sel.Valid() {
		return OverlayScreen{}, fmt.Errorf("invalid selection for %s (post %d)", sel.state, sel.postID)
	}
	return OverlayScreen{sel: sel}, nil
}

// Selection returns the carried selection
func (o OverlayScreen) Selection() Selection { return o.sel }

// State returns the sub-view state
func (o OverlayScreen) State() State { return o.sel.state }

func (OverlayScreen) screen() {}
