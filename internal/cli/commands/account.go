package commands

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Avinash-006/UniChat/internal/cli/client"
	"github.com/Avinash-006/UniChat/internal/cli/clientconfig"
	"github.com/Avinash-006/UniChat/internal/cli/output"
	"github.com/spf13/cobra"
)

var (
	flagUsername string
	flagEmail    string
	flagPassword string
)

type credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with a username or email",
	Long: `Check your credentials against the server and remember who you are.

  unichat login --username alice
  unichat login --email alice@example.com --password s3cret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagUsername == "" && flagEmail == "" {
			return errors.New("either --username or --email is required")
		}
		password, err := readPassword(cmd, flagPassword)
		if err != nil {
			return err
		}

		var resp client.Response[client.User]
		err = apiClient.Post("/users/login", credentials{Username: flagUsername, Email: flagEmail, Password: password}, &resp)
		if err != nil {
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
				return errors.New("invalid credentials")
			}
			return fmt.Errorf("logging in: %w", err)
		}

		cfg.Username = resp.Data.Username
		cfg.UserID = resp.Data.ID
		if err := clientconfig.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		printf(cmd, "Logged in as %s (%s)\n", resp.Data.Username, resp.Data.Email)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagUsername == "" || flagEmail == "" {
			return errors.New("--username and --email are required")
		}
		password, err := readPassword(cmd, flagPassword)
		if err != nil {
			return err
		}

		var resp client.Response[client.User]
		body := credentials{Username: flagUsername, Email: flagEmail, Password: password}
		if err := apiClient.Post("/users/add", body, &resp); err != nil {
			return fmt.Errorf("registering: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		printf(cmd, "Registered %s with id %d. Run \"unichat login\" to continue.\n", resp.Data.Username, resp.Data.ID)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the logged in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := clientconfig.Clear(); err != nil {
			return fmt.Errorf("clearing config: %w", err)
		}
		printf(cmd, "Logged out.\n")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}

		var resp client.Response[client.User]
		if err := apiClient.Get("/users/view/"+strconv.FormatInt(cfg.UserID, 10), &resp); err != nil {
			return fmt.Errorf("fetching user info: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		output.UserInfo(resp.Data)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVar(&flagUsername, "username", "", "Username")
		c.Flags().StringVar(&flagEmail, "email", "", "Email address")
		c.Flags().StringVar(&flagPassword, "password", "", "Password (read from stdin when omitted)")
	}
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
