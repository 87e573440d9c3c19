package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/pilly/internal/history"
	"github.com/yildizm/pilly/internal/logger"
	"github.com/yildizm/pilly/internal/router"
	"github.com/yildizm/pilly/internal/session"
	"github.com/yildizm/pilly/internal/signal"
	"github.com/yildizm/pilly/internal/view"
)

func newRoutesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List routed paths and the views they open",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s Routes\n", GetEmoji("route"))
			fmt.Fprintln(cmd.OutOrStdout(), termfmt.TreeViewWithOptions(routeItems(), termOptions()))
		},
	}
}

func routeItems() []termfmt.TreeItem {
	paths := view.Paths()
	items := make([]termfmt.TreeItem, 0, len(paths)+1)
	for _, p := range paths {
		state, _ := view.Lookup(p)
		access := "public"
		if view.IsGatedPath(p) {
			access = GetEmoji("lock") + " login required"
		}
		items = append(items, termfmt.TreeItem{
			Label:    p,
			Value:    state.String(),
			Children: []termfmt.TreeItem{{Label: "Access", Value: access}},
		})
	}
	items = append(items, termfmt.TreeItem{
		Label:    view.PathAdmin,
		Value:    view.Admin.String(),
		Children: []termfmt.TreeItem{{Label: "Access", Value: GetEmoji("admin") + " admin role"}},
	})
	return markLast(items)
}

var (
	navStart    string
	navLoggedIn bool
	navJSON     bool
)

func newNavCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nav <step>...",
		Short: "Replay navigation steps through the view router",
		Long: `Replay navigation steps through the view router without a terminal UI and
print the view after each step. Nothing is sent to the server.

Steps:
  /path         header navigation to path (gated paths need --logged-in)
  url:/path     the location changes to path, as if typed by the user
  login|signup  open the auth overlay
  close         close the auth overlay
  detail:<id>   open a post
  edit:<id>     edit a post
  write         write a new post
  back          leave the post view for the list
  open:<id>     jump to a post from the my page screen
  search:<kw>   go-search signal with keyword
  token|logout  store or clear the credential`,
		Example: `  pilly nav /community
  pilly nav --logged-in /community detail:7 back
  pilly nav search:타이레놀 /search`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := replayNav(navStart, navLoggedIn, args)
			if err != nil {
				return err
			}
			if navJSON {
				data, err := json.MarshalIndent(steps, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal steps: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Navigation\n", GetEmoji("route"))
			fmt.Fprintln(cmd.OutOrStdout(), termfmt.TreeViewWithOptions(navItems(steps), termOptions()))
			return nil
		},
	}

	cmd.Flags().StringVar(&navStart, "start", view.PathHome, "start location")
	cmd.Flags().BoolVar(&navLoggedIn, "logged-in", false, "start with a credential token")
	cmd.Flags().BoolVar(&navJSON, "json", false, "print steps as JSON")
	return cmd
}

// navStep is the router's view after one replayed step
type navStep struct {
	Input    string `json:"input"`
	Outcome  string `json:"outcome"`
	State    string `json:"state"`
	Location string `json:"location"`
	PostID   int    `json:"post_id,omitempty"`
	Overlay  string `json:"overlay,omitempty"`
	Notice   string `json:"notice,omitempty"`
}

// navReplay drives a router the way the interactive client does, delivering
// location changes after every step
type navReplay struct {
	h       *history.History
	store   *session.MemoryStore
	bus     *signal.Bus
	r       *router.Router
	notices []string
}

func newNavReplay(start string, loggedIn bool) *navReplay {
	n := &navReplay{
		h:     history.New(start),
		store: session.NewMemoryStore(""),
		bus:   signal.NewBus(),
	}
	if loggedIn {
		_ = n.store.Save("cli-replay", "")
	}
	n.r = router.New(router.Deps{
		Navigator: n.h,
		Auth:      n.store,
		Notifier:  router.NotifierFunc(func(msg string) { n.notices = append(n.notices, msg) }),
		Logger:    logger.NewWithCallback("nav", isVerbose),
	})
	n.r.Attach(n.bus)
	n.r.OnLocationChange(n.h.Current())
	return n
}

func replayNav(start string, loggedIn bool, steps []string) ([]navStep, error) {
	n := newNavReplay(start, loggedIn)
	out := make([]navStep, 0, len(steps))
	for _, s := range steps {
		step, err := n.apply(s)
		if err != nil {
			return nil, err
		}
		out = append(out, step)
	}
	return out, nil
}

func (n *navReplay) apply(step string) (navStep, error) {
	n.notices = nil

	outcome, err := n.do(strings.TrimSpace(step))
	if err != nil {
		return navStep{}, err
	}
	for _, loc := range n.h.Drain() {
		n.r.OnLocationChange(loc)
	}

	c := n.r.Content()
	result := navStep{
		Input:    step,
		Outcome:  outcome,
		State:    c.State.String(),
		Location: n.h.Current().String(),
		Notice:   strings.Join(n.notices, "; "),
	}
	switch c.State {
	case view.CommunityDetail:
		result.PostID = c.PostID
	case view.CommunityWrite:
		result.PostID = c.EditPostID
	}
	if overlay, ok := n.r.AuthOverlay(); ok {
		result.Overlay = overlay.String()
	}
	return result, nil
}

func (n *navReplay) do(step string) (string, error) {
	name, arg, _ := strings.Cut(step, ":")

	switch {
	case strings.HasPrefix(step, "/"):
		return n.r.HandleNavIntent(view.Navigate(step)).String(), nil
	case name == "url" && strings.HasPrefix(arg, "/"):
		n.h.Push(arg, nil)
		return "location", nil
	case step == "login":
		return n.r.HandleNavIntent(view.OpenOverlay(view.Login)).String(), nil
	case step == "signup":
		return n.r.HandleNavIntent(view.OpenOverlay(view.Signup)).String(), nil
	case step == "close":
		n.r.CloseOverlay()
		return "closed", nil
	case step == "back":
		return outcomeOf(n.r.Back(), "back"), nil
	case step == "write":
		return outcomeOf(n.r.SetTransientSelection(view.WriteNew()), "selected"), nil
	case step == "token":
		if err := n.store.Save("cli-replay", ""); err != nil {
			return "", err
		}
		return "stored", nil
	case step == "logout":
		if err := n.store.Clear(); err != nil {
			return "", err
		}
		return "cleared", nil
	case name == "search":
		return outcomeOf(n.bus.GoSearch(arg) > 0 && strings.TrimSpace(arg) != "", "signalled"), nil
	case name == "detail", name == "edit", name == "open":
		id, err := strconv.Atoi(arg)
		if err != nil {
			return "", fmt.Errorf("invalid post id in step %q", step)
		}
		switch name {
		case "detail":
			return outcomeOf(n.r.SetTransientSelection(view.DetailOf(id)), "selected"), nil
		case "edit":
			return outcomeOf(n.r.SetTransientSelection(view.EditOf(id)), "selected"), nil
		}
		n.h.Push(view.PathCommunity, &history.Payload{TargetView: view.CommunityDetail.String(), PostID: id})
		return "location", nil
	}
	return "", fmt.Errorf("unknown step %q", step)
}

func outcomeOf(ok bool, success string) string {
	if ok {
		return success
	}
	return "ignored"
}

func navItems(steps []navStep) []termfmt.TreeItem {
	items := make([]termfmt.TreeItem, 0, len(steps))
	for i, s := range steps {
		children := []termfmt.TreeItem{
			{Label: "Outcome", Value: s.Outcome},
			{Label: "Location", Value: s.Location},
		}
		if s.PostID > 0 {
			children = append(children, termfmt.TreeItem{Label: "Post", Value: strconv.Itoa(s.PostID)})
		}
		if s.Overlay != "" {
			children = append(children, termfmt.TreeItem{Label: "Overlay", Value: s.Overlay})
		}
		if s.Notice != "" {
			children = append(children, termfmt.TreeItem{Label: "Notice", Value: GetEmoji("warning") + " " + s.Notice})
		}
		items = append(items, termfmt.TreeItem{
			Label:    fmt.Sprintf("%d. %s", i+1, s.Input),
			Value:    s.State,
			Children: children,
		})
	}
	return markLast(items)
}
