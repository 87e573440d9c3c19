package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/yildizm/pilly/internal/monitor"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, h http.HandlerFunc, token string) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	client, err := New(&Config{BaseURL: server.URL + "/api", Timeout: 5 * time.Second}, staticToken(token))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return client
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{"valid", &Config{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout}, false},
		{"missing base URL", &Config{Timeout: DefaultTimeout}, true},
		{"invalid base URL", &Config{BaseURL: "http://[::1]:namedport", Timeout: time.Second}, true},
		{"zero timeout", &Config{BaseURL: DefaultBaseURL}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetMyProfile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/mypage/profile" {
			t.Errorf("Expected /api/mypage/profile, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok" {
			t.Errorf("Expected bearer token, got %q", auth)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"username":"kim","name":"김약사","role":"ADMIN","profileImage":"/img/1.png"}`))
	}, "tok")

	p, err := client.GetMyProfile(context.Background())
	if err != nil {
		t.Fatalf("GetMyProfile() error: %v", err)
	}
	if p.Name != "김약사" || p.Role != "ADMIN" || p.ProfileImage != "/img/1.png" {
		t.Errorf("unexpected profile %+v", p)
	}
	if p.DisplayName() != "김약사" {
		t.Errorf("unexpected display name %s", p.DisplayName())
	}
}

func TestAnonymousRequestHasNoAuthHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("anonymous request should not carry Authorization")
		}
		_, _ = w.Write([]byte(`[]`))
	}, "")

	posts, err := client.ListPosts(context.Background(), CategoryQnA)
	if err != nil {
		t.Fatalf("ListPosts() error: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("expected no posts, got %d", len(posts))
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind ErrorKind
		wantMsg  string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"detail":"자격 증명이 유효하지 않습니다."}`, KindUnauthorized, "자격 증명이 유효하지 않습니다."},
		{"forbidden", http.StatusForbidden, `{"detail":"admin only"}`, KindForbidden, "admin only"},
		{"not found", http.StatusNotFound, `not json`, KindNotFound, "request failed with status 404"},
		{"validation", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body"]}]}`, KindValidation, "request failed with status 422"},
		{"server", http.StatusInternalServerError, ``, KindServer, "request failed with status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, "tok")

			_, err := client.GetPost(context.Background(), 3)
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if apiErr.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", apiErr.Kind, tt.wantKind)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
			if apiErr.Endpoint != "/community/post/3" {
				t.Errorf("endpoint = %s", apiErr.Endpoint)
			}
		})
	}
}

func TestIsUnauthorized(t *testing.T) {
	err := NewError(KindUnauthorized, "/mypage/profile", "expired")
	if !IsUnauthorized(err) {
		t.Error("expected unauthorized")
	}
	if IsUnauthorized(NewError(KindServer, "", "boom")) {
		t.Error("server error is not unauthorized")
	}
	if !strings.Contains(err.Error(), "kind=unauthorized") {
		t.Errorf("unexpected message %s", err.Error())
	}
}

func TestNetworkError(t *testing.T) {
	client, err := New(&Config{BaseURL: "http://127.0.0.1:1/api", Timeout: time.Second}, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	_, err = client.GetMyProfile(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("expected network error, got %v", err)
	}
}

func TestSearchPillsQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("keyword") != "타이레놀" {
			t.Errorf("keyword = %q", q.Get("keyword"))
		}
		if q.Get("drug_shape") != "원형" {
			t.Errorf("drug_shape = %q", q.Get("drug_shape"))
		}
		if q.Has("color_class") {
			t.Error("empty filters must be omitted")
		}
		if q.Get("page") != "1" || q.Get("page_size") != "20" {
			t.Errorf("unexpected paging %s/%s", q.Get("page"), q.Get("page_size"))
		}
		_ = json.NewEncoder(w).Encode(PillSearchResponse{
			Keyword: "타이레놀", Page: 1, PageSize: 20, Total: 1,
			Items: []Pill{{ItemSeq: "200300406", ItemName: "타이레놀정500밀리그람"}},
		})
	}, "")

	resp, err := client.SearchPills(context.Background(), SearchFilters{Keyword: "타이레놀", Shape: "원형"}, 0, 0)
	if err != nil {
		t.Fatalf("SearchPills() error: %v", err)
	}
	if resp.Total != 1 || resp.Items[0].ItemSeq != "200300406" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestLoginAndKakao(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch r.URL.Path {
		case "/api/auth/login":
			if body["username"] != "kim" || body["password"] != "pw" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"access_token":"abc","token_type":"bearer","name":"김","username":"kim"}`))
		case "/api/auth/kakao":
			if body["code"] != "kcode" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(`{"access_token":"kakao-token","username":"kakao_1"}`))
		}
	}, "")

	resp, err := client.Login(context.Background(), "kim", "pw")
	if err != nil || resp.AccessToken != "abc" {
		t.Fatalf("Login() = %+v, %v", resp, err)
	}
	if _, err := client.Login(context.Background(), "kim", "wrong"); !IsUnauthorized(err) {
		t.Errorf("expected unauthorized, got %v", err)
	}

	kresp, err := client.KakaoLogin(context.Background(), "kcode")
	if err != nil || kresp.AccessToken != "kakao-token" {
		t.Fatalf("KakaoLogin() = %+v, %v", kresp, err)
	}
	if _, err := client.KakaoLogin(context.Background(), ""); err == nil {
		t.Error("expected validation error for empty code")
	}
}

func TestLoadMyPage(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/api/mypage/profile":
			_, _ = w.Write([]byte(`{"id":1,"username":"kim","name":"김","role":"user"}`))
		case "/api/mypage/history":
			_, _ = w.Write([]byte(`{"items":[{"id":1,"keyword":"게보린"}]}`))
		case "/api/mypage/posts":
			_, _ = w.Write([]byte(`{"items":[{"id":42,"title":"후기"}]}`))
		case "/api/mypage/scraps":
			_, _ = w.Write([]byte(`{"items":[]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, "tok")

	page, err := client.LoadMyPage(context.Background())
	if err != nil {
		t.Fatalf("LoadMyPage() error: %v", err)
	}
	if calls.Load() != 4 {
		t.Errorf("expected 4 calls, got %d", calls.Load())
	}
	if page.Profile.Username != "kim" || len(page.History) != 1 || page.Posts[0].ID != 42 || len(page.Scraps) != 0 {
		t.Errorf("unexpected page %+v", page)
	}
}

func TestLoadMyPageFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/mypage/posts" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"items":[]}`))
	}, "tok")

	if _, err := client.LoadMyPage(context.Background()); err == nil {
		t.Error("expected error when one endpoint fails")
	}
}

func TestRequestMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/community/post/9" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"id":1,"title":"t"}`))
	}))
	t.Cleanup(server.Close)

	metrics := monitor.NewRequests()
	client, err := New(&Config{BaseURL: server.URL + "/api", Timeout: 5 * time.Second, Metrics: metrics}, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx := context.Background()
	if _, err := client.GetPost(ctx, 1); err != nil {
		t.Fatalf("GetPost(1) error: %v", err)
	}
	if _, err := client.GetPost(ctx, 9); err == nil {
		t.Fatal("GetPost(9) expected error")
	}

	stats := client.Metrics().Snapshot()
	if len(stats) != 1 {
		t.Fatalf("Expected one endpoint, got %+v", stats)
	}
	if stats[0].Endpoint != "GET /community/post/:id" || stats[0].Calls != 2 || stats[0].Errors != 1 {
		t.Errorf("unexpected stats %+v", stats[0])
	}
}
