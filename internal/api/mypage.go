package api

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// GetMyHistory returns the user's recent search keywords
func (c *Client) GetMyHistory(ctx context.Context) ([]HistoryItem, error) {
	var env itemsEnvelope[HistoryItem]
	if err := c.do(ctx, "GET", "/mypage/history", nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// GetMyPosts returns the posts the user wrote
func (c *Client) GetMyPosts(ctx context.Context) ([]Post, error) {
	var env itemsEnvelope[Post]
	if err := c.do(ctx, "GET", "/mypage/posts", nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// GetMyScraps returns the pills the user saved
func (c *Client) GetMyScraps(ctx context.Context) ([]Pill, error) {
	var env itemsEnvelope[Pill]
	if err := c.do(ctx, "GET", "/mypage/scraps", nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// LoadMyPage fetches the profile, history, posts and scraps concurrently.
// The first failure cancels the rest.
func (c *Client) LoadMyPage(ctx context.Context) (*MyPage, error) {
	var page MyPage
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := c.GetMyProfile(gctx)
		page.Profile = p
		return err
	})
	g.Go(func() error {
		h, err := c.GetMyHistory(gctx)
		page.History = h
		return err
	})
	g.Go(func() error {
		p, err := c.GetMyPosts(gctx)
		page.Posts = p
		return err
	})
	g.Go(func() error {
		s, err := c.GetMyScraps(gctx)
		page.Scraps = s
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}
