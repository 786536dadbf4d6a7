package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-file-vault/models"
)

func (a *App) registerCommand() *cobra.Command {
	var req models.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a vault account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, req.Password)
			if err != nil {
				return err
			}
			req.Password = password

			profile, err := a.adapter.Register(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}

			printSuccess(cmd.OutOrStdout(), "registered %s %s", highlight.Sprint(profile.Email), muted.Sprintf("(id %s)", profile.UserID))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.DisplayName, "name", "", "display name")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password (prompted when empty)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func (a *App) loginCommand() *cobra.Command {
	var req models.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, req.Password)
			if err != nil {
				return err
			}
			req.Password = password

			resp, err := a.adapter.Login(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			if err = a.tokens.Save(resp.Token); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "logged in as %s", highlight.Sprint(resp.Profile.Email))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password (prompted when empty)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.tokens.Clear(); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func (a *App) meCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the current account and storage usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}

			profile, err := a.adapter.Me(cmd.Context())
			if err != nil {
				return fmt.Errorf("me: %w", err)
			}
			usage, err := a.adapter.Usage(cmd.Context())
			if err != nil {
				return fmt.Errorf("storage usage: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Email:   %s\n", highlight.Sprint(profile.Email))
			fmt.Fprintf(out, "Name:    %s\n", profile.DisplayName)
			fmt.Fprintf(out, "User ID: %s\n", muted.Sprint(profile.UserID))
			fmt.Fprintf(out, "Storage: %s of %s\n", humanBytes(usage.UsedBytes), humanBytes(usage.QuotaBytes))
			return nil
		},
	}
}

func (a *App) uploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <path>...",
		Short: "Encrypt and store files in the vault",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}

			for _, path := range args {
				file, err := a.uploadOne(cmd, path)
				if err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "uploaded %s %s", highlight.Sprint(file.OriginalFilename), muted.Sprintf("(id %s, %s)", file.ID, humanBytes(file.Size)))
			}
			return nil
		},
	}
}

func (a *App) uploadOne(cmd *cobra.Command, path string) (models.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.File{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	file, err := a.adapter.Upload(cmd.Context(), filepath.Base(path), f)
	if err != nil {
		return models.File{}, fmt.Errorf("upload %s: %w", path, err)
	}
	return file, nil
}

func (a *App) downloadCommand() *cobra.Command {
	var (
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "download <file-id>",
		Short: "Download and decrypt a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}

			decrypted, err := a.adapter.Download(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("download: %w", err)
			}

			target := output
			if target == "" {
				// the stored name comes from the server, never let it escape the cwd
				target = filepath.Base(decrypted.File.OriginalFilename)
			}

			if err = writeFile(target, decrypted.Content, force); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "saved %s %s", highlight.Sprint(target), muted.Sprintf("(%s)", humanBytes(int64(len(decrypted.Content)))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "destination path (defaults to the original file name)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}

func writeFile(path string, content []byte, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if _, err = f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func (a *App) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List stored files",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}

			files, err := a.adapter.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list: %w", err)
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), muted.Sprint("no files"))
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSIZE\tTYPE\tUPLOADED")
			for _, f := range files {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", f.ID, f.OriginalFilename, humanBytes(f.Size), f.MimeType, f.CreatedAt.Local().Format(time.DateTime))
			}
			return tw.Flush()
		},
	}
}

func (a *App) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <file-id>...",
		Aliases: []string{"delete"},
		Short:   "Delete files from the vault",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}

			for _, id := range args {
				if err := a.adapter.Delete(cmd.Context(), id); err != nil {
					return fmt.Errorf("delete %s: %w", id, err)
				}
				printSuccess(cmd.OutOrStdout(), "deleted %s", highlight.Sprint(id))
			}
			return nil
		},
	}
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print client and server versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Client: %s %s\n", a.buildInfo.BuildVersion(), muted.Sprintf("(%s, %s)", a.buildInfo.BuildCommit(), a.buildInfo.BuildDate()))

			version, err := a.adapter.Version(cmd.Context())
			if err != nil {
				return fmt.Errorf("server version: %w", err)
			}
			fmt.Fprintf(out, "Server: %s\n", version)
			return nil
		},
	}
}
