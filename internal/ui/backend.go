package ui

import (
	"context"

	"github.com/yildizm/pilly/internal/api"
	"github.com/yildizm/pilly/internal/session"
)

// Backend is the slice of the API client the screens use
type Backend interface {
	session.ProfileFetcher
	Login(ctx context.Context, username, password string) (*api.LoginResponse, error)
	Signup(ctx context.Context, req *api.SignupRequest) error
	KakaoLogin(ctx context.Context, code string) (*api.LoginResponse, error)
	SearchPills(ctx context.Context, f api.SearchFilters, page, size int) (*api.PillSearchResponse, error)
	ListPosts(ctx context.Context, category string) ([]api.Post, error)
	GetPost(ctx context.Context, id int) (*api.Post, error)
	CreatePost(ctx context.Context, d *api.PostDraft) (int, error)
	UpdatePost(ctx context.Context, id int, d *api.PostDraft) error
	DeletePost(ctx context.Context, id int) error
	TogglePostLike(ctx context.Context, id int) (*api.LikeState, error)
	ListComments(ctx context.Context, postID int) ([]api.Comment, error)
	CreateComment(ctx context.Context, postID int, content string) (*api.Comment, error)
	DeleteComment(ctx context.Context, commentID int) error
	LoadMyPage(ctx context.Context) (*api.MyPage, error)
	AdminStats(ctx context.Context) (*api.AdminStats, error)
}

var _ Backend = (*api.Client)(nil)
