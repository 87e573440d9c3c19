package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/pilly/internal/api"
	"github.com/yildizm/pilly/internal/logger"
	"github.com/yildizm/pilly/internal/view"
)

// pendingDelete is a delete waiting for y/n
type pendingDelete struct {
	prompt    string
	commentID int // 0 deletes the post itself
}

// detailScreen shows one post with its comments. Every request it starts
// carries the mount sequence so answers for an earlier mount are dropped.
type detailScreen struct {
	id      int
	seq     int
	post    *api.Post
	loading bool
	err     string

	comments    []api.Comment
	commentsErr string
	selected    int
	input       textinput.Model
	commenting  bool
	sending     bool
	liking      bool
	confirm     *pendingDelete
}

func (d *detailScreen) mount(ctx context.Context, backend Backend, id int) tea.Cmd {
	d.seq++
	d.id = id
	d.post = nil
	d.err = ""
	d.loading = true
	d.comments = nil
	d.commentsErr = ""
	d.selected = 0
	d.input = newInput("댓글을 입력하세요", false)
	d.commenting = false
	d.sending = false
	d.liking = false
	d.confirm = nil

	seq := d.seq
	return tea.Batch(
		func() tea.Msg {
			post, err := backend.GetPost(ctx, id)
			return postMsg{seq: seq, id: id, post: post, err: err}
		},
		func() tea.Msg {
			comments, err := backend.ListComments(ctx, id)
			return commentsMsg{seq: seq, comments: comments, err: err}
		},
	)
}

func (d *detailScreen) handleResult(msg postMsg) {
	if msg.seq != d.seq {
		return
	}
	d.loading = false
	if msg.err != nil {
		d.err = errorText(msg.err)
		return
	}
	d.post = msg.post
}

func (d *detailScreen) handleComments(msg commentsMsg) {
	if msg.seq != d.seq {
		return
	}
	if msg.err != nil {
		d.commentsErr = errorText(msg.err)
		return
	}
	d.comments = msg.comments
}

// toggleLike flips the like right away. The server's answer replaces the
// flipped state, and a failure puts the previous one back.
func (d *detailScreen) toggleLike(ctx context.Context, backend Backend) tea.Cmd {
	if d.post == nil || d.liking {
		return nil
	}
	prev := d.post.IsLiked
	d.post.IsLiked = !prev
	d.liking = true

	seq, id := d.seq, d.id
	return func() tea.Msg {
		state, err := backend.TogglePostLike(ctx, id)
		return likeMsg{seq: seq, prev: prev, state: state, err: err}
	}
}

func (d *detailScreen) handleLike(msg likeMsg) error {
	if msg.seq != d.seq || d.post == nil {
		return nil
	}
	d.liking = false
	if msg.err != nil {
		d.post.IsLiked = msg.prev
		return msg.err
	}
	d.post.IsLiked = msg.state.IsLiked
	d.post.LikeCount = msg.state.LikeCount
	return nil
}

func (d *detailScreen) focusComment() {
	d.commenting = true
	d.input.Focus()
}

func (d *detailScreen) blurComment() {
	d.commenting = false
	d.input.Blur()
}

func (d *detailScreen) submitComment(ctx context.Context, backend Backend) tea.Cmd {
	content := strings.TrimSpace(d.input.Value())
	if content == "" || d.sending {
		return nil
	}
	d.sending = true
	seq, id := d.seq, d.id
	return func() tea.Msg {
		comment, err := backend.CreateComment(ctx, id, content)
		return commentSavedMsg{seq: seq, comment: comment, err: err}
	}
}

func (d *detailScreen) handleCommentSaved(msg commentSavedMsg) error {
	if msg.seq != d.seq {
		return nil
	}
	d.sending = false
	if msg.err != nil {
		return msg.err
	}
	d.comments = append(d.comments, *msg.comment)
	d.selected = len(d.comments) - 1
	d.input.SetValue("")
	d.blurComment()
	if d.post != nil {
		d.post.CommentCount++
	}
	return nil
}

func (d *detailScreen) move(delta int) {
	if len(d.comments) == 0 {
		return
	}
	d.selected = min(max(d.selected+delta, 0), len(d.comments)-1)
}

func (d *detailScreen) selectedComment() (api.Comment, bool) {
	if d.selected < 0 || d.selected >= len(d.comments) {
		return api.Comment{}, false
	}
	return d.comments[d.selected], true
}

func (d *detailScreen) deleteConfirmed(ctx context.Context, backend Backend) tea.Cmd {
	pending := d.confirm
	d.confirm = nil
	if pending == nil {
		return nil
	}

	seq, id := d.seq, d.id
	if pending.commentID == 0 {
		return func() tea.Msg {
			return postDeletedMsg{seq: seq, err: backend.DeletePost(ctx, id)}
		}
	}
	commentID := pending.commentID
	return func() tea.Msg {
		return commentDeletedMsg{seq: seq, id: commentID, err: backend.DeleteComment(ctx, commentID)}
	}
}

func (d *detailScreen) handleCommentDeleted(msg commentDeletedMsg) error {
	if msg.seq != d.seq {
		return nil
	}
	if msg.err != nil {
		return msg.err
	}
	kept := d.comments[:0]
	for _, c := range d.comments {
		if c.ID != msg.id {
			kept = append(kept, c)
		}
	}
	d.comments = kept
	d.move(0)
	if d.post != nil && d.post.CommentCount > 0 {
		d.post.CommentCount--
	}
	return nil
}

func (m *Model) handleLikeResult(msg likeMsg) {
	if err := m.detail.handleLike(msg); err != nil {
		m.log.WarnWithFields("like toggle failed", []logger.Field{logger.F("post", m.detail.id), logger.Error(err)})
	}
}

func (m *Model) handleCommentSaved(msg commentSavedMsg) {
	if err := m.detail.handleCommentSaved(msg); err != nil {
		m.fail(errorText(err))
	}
}

func (m *Model) handleCommentDeleted(msg commentDeletedMsg) {
	if err := m.detail.handleCommentDeleted(msg); err != nil {
		m.fail("삭제에 실패했습니다.")
	}
}

func (m *Model) handlePostDeleted(msg postDeletedMsg) {
	if msg.seq != m.detail.seq {
		return
	}
	if msg.err != nil {
		m.fail("삭제에 실패했습니다.")
		return
	}
	m.info("삭제되었습니다.")
	m.router.Back()
}

// ownedBy reports whether the logged-in user wrote something
func (m *Model) ownedBy(username string) bool {
	profile := m.session.Profile()
	return profile != nil && profile.Username == username
}

func (m *Model) handleDetailKey(key string) tea.Cmd {
	d := &m.detail
	switch key {
	case "b", "esc", "backspace":
		m.router.Back()
	case "up", "k":
		d.move(-1)
	case "down", "j":
		d.move(1)
	case "f":
		if !m.session.HasToken() {
			m.warn("로그인이 필요합니다.")
			return nil
		}
		return d.toggleLike(m.ctx, m.backend)
	case "c":
		if d.post != nil {
			d.focusComment()
		}
	case "e":
		if d.post == nil {
			return nil
		}
		if !m.ownedBy(d.post.Username) {
			m.warn("본인이 작성한 글만 수정할 수 있습니다.")
			return nil
		}
		m.router.SetTransientSelection(view.EditOf(d.post.ID))
	case "d":
		if d.post == nil {
			return nil
		}
		if !m.ownedBy(d.post.Username) {
			m.warn("본인이 작성한 글만 삭제할 수 있습니다.")
			return nil
		}
		d.confirm = &pendingDelete{prompt: "정말 이 글을 삭제하시겠습니까?"}
	case "x":
		c, ok := d.selectedComment()
		if !ok {
			return nil
		}
		if !m.ownedBy(c.Username) {
			m.warn("본인이 작성한 댓글만 삭제할 수 있습니다.")
			return nil
		}
		d.confirm = &pendingDelete{prompt: "댓글을 삭제할까요?", commentID: c.ID}
	}
	return nil
}

func (m *Model) handleCommentInputKey(msg tea.KeyMsg) tea.Cmd {
	d := &m.detail
	switch msg.String() {
	case "enter":
		return d.submitComment(m.ctx, m.backend)
	case "esc":
		d.blurComment()
		return nil
	}
	if d.sending {
		return nil
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return cmd
}

func (m *Model) handleConfirmKey(key string) tea.Cmd {
	if key == "y" {
		return m.detail.deleteConfirmed(m.ctx, m.backend)
	}
	m.detail.confirm = nil
	return nil
}
