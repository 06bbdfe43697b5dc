package commands

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Avinash-006/UniChat/internal/cli/client"
	"github.com/Avinash-006/UniChat/internal/cli/output"
	"github.com/spf13/cobra"
)

var (
	flagOutput string
	flagDirect bool
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Upload, download and organise your files",
}

var filesListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List your files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		return listFiles("/file/viewall/" + url.PathEscape(cfg.Username))
	},
}

var filesSharedCmd = &cobra.Command{
	Use:   "shared",
	Short: "List files shared in your groups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		return listFiles("/groups/shared-files/" + url.PathEscape(cfg.Username))
	},
}

var filesFavouritesCmd = &cobra.Command{
	Use:   "favourites",
	Short: "List your favourite files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		return listFiles("/users/file/favourites/" + url.PathEscape(cfg.Username))
	},
}

func listFiles(path string) error {
	var resp client.Response[[]client.FileSummary]
	if err := apiClient.Get(path, &resp); err != nil {
		return fmt.Errorf("listing files: %w", err)
	}

	if flagJSON {
		output.JSON(resp.Data)
		return nil
	}
	output.FileTable(resp.Data)
	return nil
}

var filesUploadCmd = &cobra.Command{
	Use:   "upload <local-file>",
	Short: "Upload a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}

		info, err := os.Stat(args[0])
		if err != nil {
			return fmt.Errorf("cannot access %s: %w", args[0], err)
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", args[0])
		}

		var resp client.Response[client.File]
		if err := apiClient.Upload(fmt.Sprintf("/file/upload/%d", cfg.UserID), "file", args[0], &resp); err != nil {
			return fmt.Errorf("uploading %s: %w", filepath.Base(args[0]), err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		printf(cmd, "Uploaded %s (id %d, %s)\n", resp.Data.FileName, resp.Data.ID, output.FormatSize(resp.Data.Size))
		return nil
	},
}

var filesDownloadCmd = &cobra.Command{
	Use:   "download <file-id> [local-dir]",
	Short: "Download a file",
	Long: `Download a file by id.

  unichat files download 12            Save into the current directory
  unichat files download 12 ./out      Save into ./out
  unichat files download 12 -o a.pdf   Save to an exact path
  unichat files download 12 --direct   Fetch from object storage via a presigned URL`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runDownload,
}

func runDownload(cmd *cobra.Command, args []string) error {
	fileID, err := parseIDArg(args[0], "file")
	if err != nil {
		return err
	}
	destDir := "."
	if len(args) > 1 {
		destDir = args[1]
	}
	fallback := "file-" + strconv.FormatInt(fileID, 10)

	if flagDirect {
		var dl client.Response[client.DownloadURLResponse]
		if err := apiClient.Get(fmt.Sprintf("/file/download-url/%d", fileID), &dl); err != nil {
			return fmt.Errorf("getting download URL: %w", err)
		}
		direct := &client.Client{HTTPClient: apiClient.HTTPClient}
		dest := flagOutput
		if dest == "" {
			dest = filepath.Join(destDir, fallback)
		}
		if err := direct.DownloadToFile(dl.Data.URL, dest); err != nil {
			return fmt.Errorf("downloading file: %w", err)
		}
		printf(cmd, "Downloaded to %s\n", dest)
		return nil
	}

	path := fmt.Sprintf("/file/download/%d", fileID)
	if flagOutput != "" {
		if err := apiClient.DownloadToFile(path, flagOutput); err != nil {
			return fmt.Errorf("downloading file: %w", err)
		}
		printf(cmd, "Downloaded to %s\n", flagOutput)
		return nil
	}

	dest, err := apiClient.DownloadToDir(path, destDir, fallback)
	if err != nil {
		return fmt.Errorf("downloading file: %w", err)
	}
	printf(cmd, "Downloaded to %s\n", dest)
	return nil
}

var filesRemoveCmd = &cobra.Command{
	Use:   "rm <file-id>",
	Short: "Delete a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fileID, err := parseIDArg(args[0], "file")
		if err != nil {
			return err
		}
		return printOutcome(cmd, func(resp *client.Response[client.Outcome]) error {
			return apiClient.Delete(fmt.Sprintf("/file/delete/%d", fileID), resp)
		})
	},
}

var filesFavouriteCmd = &cobra.Command{
	Use:   "fav <file-id> [true|false]",
	Short: "Mark or unmark a file as favourite",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fileID, err := parseIDArg(args[0], "file")
		if err != nil {
			return err
		}
		favourite := true
		if len(args) > 1 {
			if favourite, err = strconv.ParseBool(args[1]); err != nil {
				return fmt.Errorf("favourite must be true or false, got %q", args[1])
			}
		}
		return printOutcome(cmd, func(resp *client.Response[client.Outcome]) error {
			return apiClient.Put(fmt.Sprintf("/users/file/favourite/%d/%t", fileID, favourite), nil, resp)
		})
	},
}

func printOutcome(cmd *cobra.Command, call func(*client.Response[client.Outcome]) error) error {
	var resp client.Response[client.Outcome]
	if err := call(&resp); err != nil {
		return err
	}
	if flagJSON {
		output.JSON(resp.Data)
		return nil
	}
	if !resp.Data.Done {
		return errors.New(resp.Data.Message)
	}
	printf(cmd, "%s\n", resp.Data.Message)
	return nil
}

func init() {
	filesDownloadCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file path (overrides default naming)")
	filesDownloadCmd.Flags().BoolVar(&flagDirect, "direct", false, "Download straight from object storage using a presigned URL")

	filesCmd.AddCommand(filesListCmd, filesSharedCmd, filesFavouritesCmd, filesUploadCmd, filesDownloadCmd, filesRemoveCmd, filesFavouriteCmd)
	rootCmd.AddCommand(filesCmd)
}
