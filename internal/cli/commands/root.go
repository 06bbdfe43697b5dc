package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Avinash-006/UniChat/internal/cli/client"
	"github.com/Avinash-006/UniChat/internal/cli/clientconfig"
	"github.com/Avinash-006/UniChat/internal/cli/output"
	"github.com/spf13/cobra"
)

var (
	flagJSON      bool
	flagServerURL string

	cfg       *clientconfig.Config
	apiClient *client.Client
)

var rootCmd = &cobra.Command{
	Use:   "unichat",
	Short: "UniChat CLI for groups, messages and shared files",
	Long: `UniChat CLI talks to a UniChat server from the terminal.

Get started:
  unichat register --username alice --email alice@example.com
  unichat login --username alice
  unichat groups list
  unichat files upload notes.pdf`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = clientconfig.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if flagServerURL != "" {
			cfg.ServerURL = flagServerURL
		}
		apiClient = client.NewClient(cfg.ServerURL)
		output.Out = cmd.OutOrStdout()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "", "Override server URL (default: from config or "+clientconfig.DefaultURL+")")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func requireLogin() error {
	if cfg == nil || !cfg.LoggedIn() {
		return errors.New(`not logged in, run "unichat login" first`)
	}
	return nil
}

// readPassword returns flagValue or, when empty, the first line of stdin.
func readPassword(cmd *cobra.Command, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return "", errors.New("password is required")
	}
	return line, nil
}

func printf(cmd *cobra.Command, format string, a ...interface{}) {
	fmt.Fprintf(cmd.OutOrStdout(), format, a...)
}
