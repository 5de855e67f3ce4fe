package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lu-zhengda/mailbox/internal/app"
	"github.com/lu-zhengda/mailbox/internal/config"
	"github.com/lu-zhengda/mailbox/internal/domain"
	"github.com/lu-zhengda/mailbox/internal/logging"
	"github.com/lu-zhengda/mailbox/internal/mime"
	"github.com/lu-zhengda/mailbox/internal/tui"
	"github.com/spf13/cobra"
)

var (
	// version is set via ldflags at build time.
	version = "dev"
	cfgFile string

	// jsonFlag enables JSON output for all commands.
	jsonFlag bool
	// storeFlag overrides the configured store backend.
	storeFlag string
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mailbox",
		Short: "Terminal webmail client",
		Long: "A terminal mailbox with folders, labels, threaded replies and a composer.\n" +
			"Every run starts from the built-in sample mailbox; nothing is saved when it exits.",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if shell, _ := cmd.Flags().GetString("generate-completion"); shell != "" {
				switch shell {
				case "bash":
					return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
				case "zsh":
					return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
				case "fish":
					return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
				default:
					return fmt.Errorf("unsupported shell: %s (use bash, zsh, or fish)", shell)
				}
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logger, logFile, err := logging.OpenFile(cfg.LogFile(), cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			defer logFile.Close()

			sess, closeStore, err := openSession(cmd, cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			logger.Info("starting tui", "store", cfg.Store.Backend, "theme", cfg.UI.Theme)
			return tui.Run(sess, tui.Options{
				Theme:  cfg.UI.Theme,
				Logger: logger,
			})
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("mailbox %s\n", version))
	root.CompletionOptions.DisableDefaultCmd = true
	root.Flags().String("generate-completion", "", "Generate shell completion (bash, zsh, fish)")
	root.Flags().MarkHidden("generate-completion")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	root.PersistentFlags().BoolVar(&jsonFlag, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&storeFlag, "store", "", "store backend (memory or sqlite)")
	root.AddCommand(newListCmd())
	root.AddCommand(newReadCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newLabelsCmd())
	root.AddCommand(newComposeCmd())
	root.AddCommand(newExportCmd())
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads the application configuration from the config file.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if storeFlag != "" {
		cfg.Store.Backend = storeFlag
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// openSession builds a fresh store and a session over it.
func openSession(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (*app.Session, func(), error) {
	s, err := app.OpenStore(cmd.Context(), cfg.Store.Backend, cfg.Store.Fixtures)
	if err != nil {
		return nil, nil, err
	}
	sess := app.NewSession(s, logger, app.Options{
		Self: mime.Identity{
			Name:  cfg.Compose.Sender,
			Email: cfg.Compose.SenderEmail,
		},
		PreviewLength: cfg.UI.PreviewLength,
		Folder:        domain.Folder(cfg.UI.DefaultFolder),
	})
	return sess, func() { s.Close() }, nil
}

// setup is shared by every subcommand: config, a stderr logger and a
// session.
func setup(cmd *cobra.Command) (*app.Session, *config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	sess, closeStore, err := openSession(cmd, cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return sess, cfg, closeStore, nil
}
