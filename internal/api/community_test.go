package api

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	json "github.com/goccy/go-json"
)

func TestPostDraftValidate(t *testing.T) {
	tests := []struct {
		name    string
		draft   PostDraft
		wantErr bool
	}{
		{"valid", PostDraft{Category: CategoryReview, Title: "후기", Content: "좋아요"}, false},
		{"unknown category", PostDraft{Category: "free", Title: "t", Content: "c"}, true},
		{"blank title", PostDraft{Category: CategoryQnA, Title: "  ", Content: "c"}, true},
		{"blank content", PostDraft{Category: CategoryCombo, Title: "t"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var apiErr *Error
				if !errors.As(err, &apiErr) || apiErr.Kind != KindValidation {
					t.Errorf("Expected validation error, got %v", err)
				}
			}
		})
	}
}

func TestCreatePost(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/community" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		var d PostDraft
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			t.Errorf("Failed to decode body: %v", err)
		}
		if d.Category != CategoryQnA || d.Title != "질문" {
			t.Errorf("Unexpected draft %+v", d)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"success","post_id":31}`))
	}, "tok")

	id, err := client.CreatePost(context.Background(), &PostDraft{Category: CategoryQnA, Title: "질문", Content: "내용"})
	if err != nil {
		t.Fatalf("CreatePost() error: %v", err)
	}
	if id != 31 {
		t.Errorf("Expected post id 31, got %d", id)
	}
}

func TestUpdatePostForbidden(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/community/7" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"detail":"권한 없음"}`))
	}, "tok")

	err := client.UpdatePost(context.Background(), 7, &PostDraft{Category: CategoryCombo, Title: "t", Content: "c"})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *Error, got %v", err)
	}
	if apiErr.Kind != KindForbidden || apiErr.Message != "권한 없음" {
		t.Errorf("Unexpected error %+v", apiErr)
	}
}

func TestUpdatePostRejectsInvalidID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("No request expected")
	}, "tok")

	if err := client.UpdatePost(context.Background(), 0, &PostDraft{}); err == nil {
		t.Error("Expected error for post id 0")
	}
}

func TestSignup(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/signup" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		var req SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode body: %v", err)
		}
		if req.Name != "kim" {
			t.Errorf("Expected name to default to username, got %q", req.Name)
		}
		w.WriteHeader(http.StatusCreated)
	}, "")

	if err := client.Signup(context.Background(), &SignupRequest{Username: "kim", Password: "pw"}); err != nil {
		t.Fatalf("Signup() error: %v", err)
	}
	if err := client.Signup(context.Background(), &SignupRequest{Username: "kim"}); err == nil {
		t.Error("Expected error without password")
	}
}

func TestTogglePostLike(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/community/5/like" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Unexpected authorization %q", got)
		}
		_, _ = w.Write([]byte(`{"like_count":4,"is_liked":true}`))
	}, "tok")

	state, err := client.TogglePostLike(context.Background(), 5)
	if err != nil {
		t.Fatalf("TogglePostLike() error: %v", err)
	}
	if state.LikeCount != 4 || !state.IsLiked {
		t.Errorf("Unexpected like state %+v", state)
	}
}

func TestComments(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/community/5/comments":
			_, _ = w.Write([]byte(`[{"id":1,"user_id":2,"username":"kim","content":"저도요","like_count":0}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/community/5/comments":
			var body struct {
				Content string `json:"content"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("Failed to decode body: %v", err)
			}
			_, _ = w.Write([]byte(`{"id":2,"username":"lee","content":"` + body.Content + `"}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/community/comments/2":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}, "tok")
	ctx := context.Background()

	comments, err := client.ListComments(ctx, 5)
	if err != nil {
		t.Fatalf("ListComments() error: %v", err)
	}
	if len(comments) != 1 || comments[0].Username != "kim" || comments[0].Content != "저도요" {
		t.Errorf("Unexpected comments %+v", comments)
	}

	created, err := client.CreateComment(ctx, 5, "  감사합니다 ")
	if err != nil {
		t.Fatalf("CreateComment() error: %v", err)
	}
	if created.ID != 2 || created.Content != "감사합니다" {
		t.Errorf("Unexpected comment %+v", created)
	}

	if err := client.DeleteComment(ctx, 2); err != nil {
		t.Fatalf("DeleteComment() error: %v", err)
	}
}

func TestCreateCommentRejectsBlank(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}, "tok")

	_, err := client.CreateComment(context.Background(), 5, "   ")
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindValidation {
		t.Errorf("Expected validation error, got %v", err)
	}
	if calls.Load() != 0 {
		t.Error("blank comment should not reach the server")
	}
}

func TestDeletePost(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/community/9" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"message":"deleted"}`))
	}, "tok")

	if err := client.DeletePost(context.Background(), 9); err != nil {
		t.Fatalf("DeletePost() error: %v", err)
	}
	if err := client.DeletePost(context.Background(), 0); err == nil {
		t.Error("Expected error for non-positive id")
	}
}
