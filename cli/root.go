// Package cli implements the deskctl command tree. Commands are thin: they
// construct the session manager and API client from configuration and render
// whatever the services return.
package cli

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-desk-client/api"
	"github.com/jrsteele09/go-desk-client/authapi"
	"github.com/jrsteele09/go-desk-client/credential"
	"github.com/jrsteele09/go-desk-client/internal/config"
	"github.com/jrsteele09/go-desk-client/session"
	"github.com/jrsteele09/go-desk-client/transport"
)

// Shared command dependencies, built once per invocation in preRunE.
var (
	cfg            config.Config
	logger         zerolog.Logger
	sessionManager *session.Manager
	apiClient      *api.Client
)

var rootCmd = &cobra.Command{
	Use:   "deskctl",
	Short: "Command line client for the desk knowledge-base service",
	Long:  "deskctl signs in to a desk server and manages documents, sync logs, roles, users and settings.",
	Run: func(cmd *cobra.Command, args []string) {
		displayAppName(cfg.GetAppName())
		_ = cmd.Help()
	},
	PersistentPreRunE: preRunE,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the command tree. It is the single entry point used by main.
func Execute() error {
	return rootCmd.Execute()
}

func preRunE(cmd *cobra.Command, _ []string) error {
	cfg = config.New()

	level, err := zerolog.ParseLevel(cfg.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	repo := credential.NewFileRepo(cfg.GetCredentialsFile())
	authClient := authapi.New(cfg.GetBaseURL(),
		authapi.WithLogger(logger),
		authapi.WithTimeout(cfg.GetHTTPTimeout()),
	)

	sessionManager, err = session.NewManager(repo, authClient, terminalNavigator{},
		session.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}

	pipeline, err := transport.New(sessionManager, transport.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create request pipeline: %w", err)
	}

	apiClient, err = api.New(cfg.GetBaseURL(), pipeline,
		api.WithLogger(logger),
		api.WithTimeout(cfg.GetHTTPTimeout()),
	)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	return nil
}

// terminalNavigator renders the session's navigation events on the terminal.
type terminalNavigator struct{}

var _ session.Navigator = terminalNavigator{}

func (terminalNavigator) ToHome() {}

func (terminalNavigator) ToSignIn(message string) {
	if message == "" {
		return
	}
	fmt.Println(warningStyle.Render(message))
	fmt.Println(infoStyle.Render("Run 'deskctl login' to sign in again."))
}

func displayAppName(appName string) {
	banner := figure.NewFigure(appName, "cybermedium", true)
	banner.Print()
	fmt.Println()
}
