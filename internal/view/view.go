package view

import "strings"

// State identifies which top-level screen is active
type State int

const (
	Home State = iota
	Login
	Signup
	Search
	AISearch
	Community
	CommunityWrite
	CommunityDetail
	MyPage
	KakaoRedirect
	Admin
)

var stateNames = [...]string{
	Home:            "HOME",
	Login:           "LOGIN",
	Signup:          "SIGNUP",
	Search:          "SEARCH",
	AISearch:        "AI_SEARCH",
	Community:       "COMMUNITY",
	CommunityWrite:  "COMMUNITY_WRITE",
	CommunityDetail: "COMMUNITY_DETAIL",
	MyPage:          "MYPAGE",
	KakaoRedirect:   "KAKAO_REDIRECT",
	Admin:           "ADMIN",
}

// String returns the upper-case state name
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "UNKNOWN"
	}
	return stateNames[s]
}

// ParseState converts a state name back into a State
func ParseState(name string) (State, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range stateNames {
		if n == name {
			return State(i), true
		}
	}
	return Home, false
}

// IsGated reports whether the state requires a credential token
func (s State) IsGated() bool {
	switch s {
	case AISearch, Community, MyPage:
		return true
	}
	return false
}

// IsAuthOverlay reports whether the state is drawn as the auth overlay
// rather than replacing the page underneath.
func (s State) IsAuthOverlay() bool {
	return s == Login || s == Signup
}

// IsCommunitySubView reports whether the state shares its URL with the
// community list.
func (s State) IsCommunitySubView() bool {
	return s == CommunityDetail || s == CommunityWrite
}
