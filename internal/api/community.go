package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// PostDraft is the body of a create or update request
type PostDraft struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url,omitempty"`
	PillIDs  []int  `json:"pill_ids,omitempty"`
}

// Validate checks the fields the board requires
func (d *PostDraft) Validate() error {
	if !isCategory(d.Category) {
		return NewError(KindValidation, "", fmt.Sprintf("unknown category %q", d.Category))
	}
	if strings.TrimSpace(d.Title) == "" {
		return NewError(KindValidation, "", "title is required")
	}
	if strings.TrimSpace(d.Content) == "" {
		return NewError(KindValidation, "", "content is required")
	}
	return nil
}

type createPostResponse struct {
	PostID int `json:"post_id"`
}

// CreatePost publishes a new post and returns its id
func (c *Client) CreatePost(ctx context.Context, d *PostDraft) (int, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	var out createPostResponse
	if err := c.do(ctx, http.MethodPost, "/community", nil, d, &out); err != nil {
		return 0, err
	}
	return out.PostID, nil
}

// UpdatePost rewrites an existing post owned by the caller
func (c *Client) UpdatePost(ctx context.Context, id int, d *PostDraft) error {
	if id <= 0 {
		return NewError(KindValidation, "", "post id must be positive")
	}
	if err := d.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/community/%d", id), nil, d, nil)
}

// DeletePost removes a post owned by the caller
func (c *Client) DeletePost(ctx context.Context, id int) error {
	if id <= 0 {
		return NewError(KindValidation, "", "post id must be positive")
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/community/%d", id), nil, nil, nil)
}

// TogglePostLike flips the caller's like on a post and returns the state
// the server settled on
func (c *Client) TogglePostLike(ctx context.Context, id int) (*LikeState, error) {
	var out LikeState
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/community/%d/like", id), nil, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListComments returns the comments of a post, oldest first
func (c *Client) ListComments(ctx context.Context, postID int) ([]Comment, error) {
	var out []Comment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/community/%d/comments", postID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type commentRequest struct {
	Content string `json:"content"`
}

// CreateComment adds a comment to a post
func (c *Client) CreateComment(ctx context.Context, postID int, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, NewError(KindValidation, "", "comment is empty")
	}
	var out Comment
	path := fmt.Sprintf("/community/%d/comments", postID)
	if err := c.do(ctx, http.MethodPost, path, nil, commentRequest{Content: content}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteComment removes a comment owned by the caller
func (c *Client) DeleteComment(ctx context.Context, commentID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/community/comments/%d", commentID), nil, nil, nil)
}

func isCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}
