package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/pilly/internal/api"
)

func newLoginCommand() *cobra.Command {
	var (
		username  string
		password  string
		kakaoCode string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the credential",
		Long: `Log in with a username and password, or exchange a Kakao authorization
code, and store the issued token in the credential file. A running
interactive client picks the new credential up immediately.

The password is read from --password, then PILLY_PASSWORD, then stdin.`,
		Example: `  pilly login --username alice
  pilly login --kakao-code <code>`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyUISettings(cfg)
			log := newLogger(cfg)

			store, _, err := openSession(cfg, log)
			if err != nil {
				return err
			}
			client, err := newClient(cfg, store)
			if err != nil {
				return fmt.Errorf("failed to create API client: %w", err)
			}

			var resp *api.LoginResponse
			if kakaoCode != "" {
				resp, err = client.KakaoLogin(cmd.Context(), kakaoCode)
			} else {
				in := bufio.NewReader(cmd.InOrStdin())
				if username == "" {
					if username, err = prompt(cmd.OutOrStdout(), in, "아이디: "); err != nil {
						return err
					}
				}
				if password == "" {
					password = os.Getenv("PILLY_PASSWORD")
				}
				if password == "" {
					if password, err = prompt(cmd.OutOrStdout(), in, "비밀번호: "); err != nil {
						return err
					}
				}
				resp, err = client.Login(cmd.Context(), username, password)
			}
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			name := resp.Username
			if name == "" {
				name = username
			}
			if name == "" {
				name = resp.Name
			}
			if err := store.Save(resp.AccessToken, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s님, 환영합니다!\n", GetEmoji("success"), name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	cmd.Flags().StringVar(&kakaoCode, "kakao-code", "", "Kakao authorization code")
	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyUISettings(cfg)

			store, _, err := openSession(cfg, newLogger(cfg))
			if err != nil {
				return err
			}
			if !store.HasToken() {
				fmt.Fprintln(cmd.OutOrStdout(), "로그인되어 있지 않습니다.")
				return nil
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s 로그아웃 되었습니다.\n", GetEmoji("door"))
			return nil
		},
	}
}

func newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Long: `Fetch the profile for the stored credential. A credential the server
rejects is cleared, the same way the interactive client treats it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyUISettings(cfg)

			store, sess, err := openSession(cfg, newLogger(cfg))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !store.HasToken() {
				fmt.Fprintln(out, "로그인되어 있지 않습니다.")
				return nil
			}
			client, err := newClient(cfg, store)
			if err != nil {
				return fmt.Errorf("failed to create API client: %w", err)
			}

			sess.RefreshProfile(cmd.Context(), client)
			profile := sess.Profile()
			if profile == nil {
				fmt.Fprintln(out, "세션이 만료되었습니다. 다시 로그인해주세요.")
				return nil
			}

			fmt.Fprintf(out, "%s %s\n", GetEmoji("mypage"), profile.DisplayName())
			fmt.Fprintln(out, termfmt.TreeViewWithOptions(profileItems(profile), termOptions()))
			if cfg.Log.Verbose {
				fmt.Fprintf(out, "\n%s Requests\n", GetEmoji("chart"))
				fmt.Fprintln(out, termfmt.TreeViewWithOptions(requestItems(client.Metrics().Snapshot()), termOptions()))
			}
			return nil
		},
	}
}

func profileItems(p *api.Profile) []termfmt.TreeItem {
	items := []termfmt.TreeItem{{Label: "Username", Value: p.Username}}
	for _, kv := range [][2]string{
		{"Name", p.Name},
		{"Role", p.Role},
		{"Email", p.Email},
		{"Phone", p.Phone},
	} {
		if kv[1] != "" {
			items = append(items, termfmt.TreeItem{Label: kv[0], Value: kv[1]})
		}
	}
	return markLast(items)
}

func prompt(w io.Writer, r *bufio.Reader, label string) (string, error) {
	fmt.Fprint(w, label)
	line, err := r.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
