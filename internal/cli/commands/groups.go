package commands

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Avinash-006/UniChat/internal/cli/client"
	"github.com/Avinash-006/UniChat/internal/cli/output"
	"github.com/spf13/cobra"
)

const fileMessageType = "file"

var flagGroupPassword string

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Create, join and chat in groups",
}

var groupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the groups you belong to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}

		var resp client.Response[[]client.Group]
		if err := apiClient.Get("/groups/user/"+url.PathEscape(cfg.Username), &resp); err != nil {
			return fmt.Errorf("listing groups: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		output.GroupTable(resp.Data)
		return nil
	},
}

var groupsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a password-protected group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		password, err := readPassword(cmd, flagGroupPassword)
		if err != nil {
			return err
		}

		body := map[string]string{
			"name":            args[0],
			"password":        password,
			"creatorUsername": cfg.Username,
		}
		var resp client.Response[client.Group]
		if err := apiClient.Post("/groups/create", body, &resp); err != nil {
			return fmt.Errorf("creating group: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		printf(cmd, "Created group %q (id %d)\n", resp.Data.Name, resp.Data.ID)
		return nil
	},
}

var groupsJoinCmd = &cobra.Command{
	Use:   "join <group-id>",
	Short: "Join a group with its password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		groupID, err := parseIDArg(args[0], "group")
		if err != nil {
			return err
		}
		password, err := readPassword(cmd, flagGroupPassword)
		if err != nil {
			return err
		}

		body := map[string]string{"username": cfg.Username, "password": password}
		var resp client.Response[client.Group]
		if err := apiClient.Post(fmt.Sprintf("/groups/join/%d", groupID), body, &resp); err != nil {
			return fmt.Errorf("joining group: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		printf(cmd, "Joined %q (%d members)\n", resp.Data.Name, len(resp.Data.Usernames))
		return nil
	},
}

var groupsLeaveCmd = &cobra.Command{
	Use:   "leave <group-id>",
	Short: "Leave a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		groupID, err := parseIDArg(args[0], "group")
		if err != nil {
			return err
		}

		var resp client.Response[client.LeaveResult]
		body := map[string]string{"username": cfg.Username}
		if err := apiClient.Post(fmt.Sprintf("/groups/leave/%d", groupID), body, &resp); err != nil {
			return fmt.Errorf("leaving group: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		printf(cmd, "%s\n", resp.Data.Message)
		return nil
	},
}

var groupsMessagesCmd = &cobra.Command{
	Use:   "messages <group-id>",
	Short: "Show a group's messages, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupID, err := parseIDArg(args[0], "group")
		if err != nil {
			return err
		}

		var resp client.Response[[]client.Message]
		if err := apiClient.Get(fmt.Sprintf("/groups/messages/%d", groupID), &resp); err != nil {
			return fmt.Errorf("fetching messages: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		output.MessageTable(resp.Data)
		return nil
	},
}

var groupsSendCmd = &cobra.Command{
	Use:   "send <group-id> <text...>",
	Short: "Send a text message to a group",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		groupID, err := parseIDArg(args[0], "group")
		if err != nil {
			return err
		}
		return sendMessage(cmd, groupID, strings.Join(args[1:], " "), "text")
	},
}

var groupsShareCmd = &cobra.Command{
	Use:   "share <group-id> <file-id>",
	Short: "Share one of your files with a group",
	Long: `Post a file message to a group. Every member will see the file in
"unichat files shared".`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		groupID, err := parseIDArg(args[0], "group")
		if err != nil {
			return err
		}
		fileID, err := parseIDArg(args[1], "file")
		if err != nil {
			return err
		}
		return sendMessage(cmd, groupID, strconv.FormatInt(fileID, 10), fileMessageType)
	},
}

func sendMessage(cmd *cobra.Command, groupID int64, content, kind string) error {
	body := map[string]string{
		"senderUsername": cfg.Username,
		"content":        content,
		"type":           kind,
	}
	var resp client.Response[client.Message]
	if err := apiClient.Post(fmt.Sprintf("/groups/message/%d", groupID), body, &resp); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}

	if flagJSON {
		output.JSON(resp.Data)
		return nil
	}
	printf(cmd, "Sent message %d\n", resp.Data.ID)
	return nil
}

func parseIDArg(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, s)
	}
	return id, nil
}

func init() {
	groupsCreateCmd.Flags().StringVar(&flagGroupPassword, "password", "", "Group password (read from stdin when omitted)")
	groupsJoinCmd.Flags().StringVar(&flagGroupPassword, "password", "", "Group password (read from stdin when omitted)")

	groupsCmd.AddCommand(groupsListCmd, groupsCreateCmd, groupsJoinCmd, groupsLeaveCmd, groupsMessagesCmd, groupsSendCmd, groupsShareCmd)
	rootCmd.AddCommand(groupsCmd)
}
