package view

import "sort"

// Well-known paths
const (
	PathHome      = "/"
	PathSearch    = "/search"
	PathAISearch  = "/ai-search"
	PathCommunity = "/community"
	PathMyPage    = "/mypage"
	PathKakao     = "/oauth/kakao"
	PathAdmin     = "/admin"
)

// pathTable is fixed for the process lifetime; /admin is resolved by
// the router, not here.
var pathTable = map[string]State{
	PathHome:      Home,
	PathSearch:    Search,
	PathAISearch:  AISearch,
	PathCommunity: Community,
	PathMyPage:    MyPage,
	PathKakao:     KakaoRedirect,
}

var gatedPaths = map[string]bool{
	PathAISearch:  true,
	PathCommunity: true,
	PathMyPage:    true,
}

// Lookup returns the state a path maps to
func Lookup(path string) (State, bool) {
	s, ok := pathTable[path]
	return s, ok
}

// IsGatedPath reports whether navigating to path requires a credential token
func IsGatedPath(path string) bool {
	return gatedPaths[path]
}

// PathFor returns the path that routes to s, if any
func PathFor(s State) (string, bool) {
	for p, st := range pathTable {
		if st == s {
			return p, true
		}
	}
	return "", false
}

// Paths returns the routed paths in sorted order
func Paths() []string {
	paths := make([]string, 0, len(pathTable))
	for p := range pathTable {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
