package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yildizm/pilly/internal/api"
	"github.com/yildizm/pilly/internal/config"
	"github.com/yildizm/pilly/internal/emoji"
	"github.com/yildizm/pilly/internal/logger"
	"github.com/yildizm/pilly/internal/monitor"
	"github.com/yildizm/pilly/internal/session"
	"github.com/yildizm/pilly/internal/ui"
)

var (
	cfgFile   string
	verbose   bool
	noEmoji   bool
	themeName string
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pilly",
		Short: "Terminal client for the Pilly medication community",
		Long: `Pilly lets you look up pills, share combinations and reviews with the
community, and keep track of your search history from the terminal.

Run without a subcommand to open the interactive client.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)
		},
		RunE: runTUI,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "color theme ("+strings.Join(ui.GetAvailableThemes(), ", ")+")")

	rootCmd.AddCommand(newRoutesCommand())
	rootCmd.AddCommand(newNavCommand())
	rootCmd.AddCommand(newLoginCommand())
	rootCmd.AddCommand(newLogoutCommand())
	rootCmd.AddCommand(newWhoamiCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Pilly %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// loadConfig reads the configuration and applies the global flags on top
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		cfg.Log.Verbose = true
	}
	if noEmoji {
		cfg.UI.NoEmoji = true
	}
	if themeName != "" {
		cfg.UI.Theme = themeName
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logger.Logger {
	return logger.NewWithCallback("pilly", func() bool { return cfg.Log.Verbose })
}

// openLogFile points log at the configured file, or discards its output.
// The returned func closes the file.
func openLogFile(log *logger.Logger, path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	// #nosec G304 - path comes from configuration
	f, err := os.OpenFile(config.ExpandPath(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return func() { _ = f.Close() }, nil
}

func openSession(cfg *config.Config, log *logger.Logger) (*session.FileStore, *session.Session, error) {
	store, err := session.NewFileStore(cfg.Session.CredentialFile)
	if err != nil {
		return nil, nil, err
	}
	return store, session.New(store, log.WithComponent("session")), nil
}

func newClient(cfg *config.Config, tokens api.TokenSource) (*api.Client, error) {
	return api.New(&api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Metrics: monitor.NewRequests(),
	}, tokens)
}

func applyUISettings(cfg *config.Config) {
	emoji.SetEmojiDisabled(cfg.UI.NoEmoji)
	ui.SetThemeByName(cfg.UI.Theme)
}

func isVerbose() bool {
	return verbose
}
