package view

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		path string
		want State
		ok   bool
	}{
		{"/", Home, true},
		{"/search", Search, true},
		{"/ai-search", AISearch, true},
		{"/community", Community, true},
		{"/mypage", MyPage, true},
		{"/oauth/kakao", KakaoRedirect, true},
		{"/admin", Home, false},
		{"/community/42", Home, false},
		{"", Home, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := Lookup(tt.path)
			if ok != tt.ok {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Lookup(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestGatedPathsMatchGatedStates(t *testing.T) {
	for _, p := range Paths() {
		s, _ := Lookup(p)
		if IsGatedPath(p) != s.IsGated() {
			t.Errorf("path %s gated=%v but state %s gated=%v", p, IsGatedPath(p), s, s.IsGated())
		}
	}
}

func TestStateString(t *testing.T) {
	if CommunityDetail.String() != "COMMUNITY_DETAIL" {
		t.Errorf("unexpected name %s", CommunityDetail)
	}
	if State(99).String() != "UNKNOWN" {
		t.Errorf("expected UNKNOWN for out of range state")
	}
	s, ok := ParseState("ai_search")
	if !ok || s != AISearch {
		t.Errorf("ParseState(ai_search) = %s, %v", s, ok)
	}
}

func TestRoutedRejectsUnknownPath(t *testing.T) {
	if _, err := Routed("/nowhere"); err == nil {
		t.Fatal("expected error for unknown path")
	}
	r, err := Routed("/mypage")
	if err != nil {
		t.Fatalf("Routed: %v", err)
	}
	if r.State() != MyPage || r.Path() != "/mypage" {
		t.Errorf("unexpected routed screen %+v", r)
	}
}

func TestOverlayRequiresSelection(t *testing.T) {
	tests := []struct {
		name    string
		sel     Selection
		wantErr bool
	}{
		{"detail with post", DetailOf(7), false},
		{"detail without post", DetailOf(0), true},
		{"new post", WriteNew(), false},
		{"edit post", EditOf(3), false},
		{"zero selection", Selection{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := Overlay(tt.sel)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Overlay() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !o.State().IsCommunitySubView() {
				t.Errorf("overlay state %s is not a community sub-view", o.State())
			}
		})
	}
}

func TestIntent(t *testing.T) {
	if _, ok := OpenOverlay(Login).Overlay(); !ok {
		t.Error("login overlay intent should be valid")
	}
	if OpenOverlay(Community).Valid() {
		t.Error("community is not an overlay")
	}
	if p, ok := Navigate("/search").Path(); !ok || p != "/search" {
		t.Errorf("unexpected path intent %q %v", p, ok)
	}
	if Navigate("").Valid() {
		t.Error("empty path should be invalid")
	}
}
