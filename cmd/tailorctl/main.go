// Package main provides tailorctl, a command line client for the TailorPro
// backend. The session is kept in the configured token store so that it
// survives between invocations.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"tailorpro/app"
	"tailorpro/config"
	"tailorpro/logger"
	"tailorpro/service"

	"github.com/spf13/cobra"
)

const loginHint = "Your session has expired. Run `tailorctl login` to sign in again."

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrNotAuthenticated) {
			fmt.Fprintln(os.Stderr, loginHint)
		}
		os.Exit(1)
	}
}

// cli holds the state shared by all subcommands.
type cli struct {
	configDir string
	logLevel  string
	client    *app.Client
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:           "tailorctl",
		Short:         "Command line client for the TailorPro measurement backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.client == nil {
				return nil
			}
			return c.client.Close()
		},
	}

	cmd.PersistentFlags().StringVarP(&c.configDir, "config", "c", ".", "Directory containing config.yml and .env")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		c.loginCmd(),
		c.logoutCmd(),
		c.registerCmd(),
		c.whoamiCmd(),
		c.typesCmd(),
		c.measurementsCmd(),
	)
	return cmd
}

func (c *cli) setup(ctx context.Context) error {
	logger.Init()
	if err := config.LoadConfig(c.configDir); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.SetLevel(c.logLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.logLevel, err)
	}

	client, err := app.NewClient(ctx, app.ClientOptions{})
	if err != nil {
		return err
	}
	c.client = client
	return nil
}
