package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/pilly/internal/api"
	"github.com/yildizm/pilly/internal/view"
)

// authForm is the login or signup overlay
type authForm struct {
	mode   view.State
	inputs []textinput.Model
	focus  int
	busy   bool
	err    string
}

func newAuthForm(mode view.State) *authForm {
	f := &authForm{mode: mode}
	f.inputs = append(f.inputs, newInput("아이디", false), newInput("비밀번호", true))
	if mode == view.Signup {
		f.inputs = append(f.inputs, newInput("닉네임 (선택)", false))
	}
	f.inputs[0].Focus()
	return f
}

func (f *authForm) move(delta int) {
	f.inputs[f.focus].Blur()
	n := len(f.inputs)
	f.focus = ((f.focus+delta)%n + n) % n
	f.inputs[f.focus].Focus()
}

func (f *authForm) last() bool {
	return f.focus == len(f.inputs)-1
}

func (f *authForm) update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *authForm) submit(ctx context.Context, backend Backend) tea.Cmd {
	username := strings.TrimSpace(f.inputs[0].Value())
	password := f.inputs[1].Value()
	if username == "" || password == "" {
		f.err = "아이디와 비밀번호를 입력해주세요."
		return nil
	}
	f.busy = true
	f.err = ""

	if f.mode == view.Signup {
		req := &api.SignupRequest{
			Username: username,
			Password: password,
			Name:     strings.TrimSpace(f.inputs[2].Value()),
		}
		return func() tea.Msg {
			if err := backend.Signup(ctx, req); err != nil {
				return authResultMsg{signup: true, username: username, err: err}
			}
			resp, err := backend.Login(ctx, username, password)
			return authResultMsg{signup: true, username: username, resp: resp, err: err}
		}
	}

	return func() tea.Msg {
		resp, err := backend.Login(ctx, username, password)
		return authResultMsg{username: username, resp: resp, err: err}
	}
}

func (m *Model) handleAuthKey(msg tea.KeyMsg) tea.Cmd {
	f := m.auth
	switch msg.String() {
	case "esc":
		m.router.CloseOverlay()
		return nil
	}
	if f.busy {
		return nil
	}

	switch msg.String() {
	case "tab", "down":
		f.move(1)
	case "shift+tab", "up":
		f.move(-1)
	case "ctrl+n":
		if f.mode == view.Login {
			m.router.SwitchOverlay(view.Signup)
		} else {
			m.router.SwitchOverlay(view.Login)
		}
	case "enter":
		if !f.last() {
			f.move(1)
			return nil
		}
		return f.submit(m.ctx, m.backend)
	default:
		return f.update(msg)
	}
	return nil
}
