package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"portfolio-backend/internal/auth"
	"portfolio-backend/internal/content"
	"portfolio-backend/internal/portfolio"

	"github.com/spf13/cobra"
)

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List videos, clients and certificates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := a.page.Load(cmd.Context())
			out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			longs, shorts := a.page.Sections()
			printVideos(out, "LONG FORM", longs, report.Videos)
			printVideos(out, "REELS", shorts, report.Videos)

			fmt.Fprintln(out, "CLIENTS")
			if report.Clients != nil {
				fmt.Fprintln(out, "  (failed to load)")
			}
			for _, c := range a.page.Clients() {
				fmt.Fprintf(out, "  %s\t%s\n", c.ID, c.Name)
			}

			if a.v.GetBool("certificates") {
				fmt.Fprintln(out, "CERTIFICATES")
				if report.Certificates != nil {
					fmt.Fprintln(out, "  (failed to load)")
				}
				for _, c := range a.page.Certificates() {
					fmt.Fprintf(out, "  %s\t%s\t%s\n", c.ID, c.Title, c.IssuedAt)
				}
			}
			return out.Flush()
		},
	}
}

func printVideos(out *tabwriter.Writer, heading string, videos []content.Video, loadErr error) {
	fmt.Fprintln(out, heading)
	if loadErr != nil {
		fmt.Fprintln(out, "  (failed to load)")
	}
	for _, v := range videos {
		fmt.Fprintf(out, "  %s\t%s\t%s\n", v.ID, v.Title, v.YouTubeID)
	}
}

func (a *app) videoCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "video", Short: "Add, edit or delete videos"}

	var in content.VideoInput
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a video",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := portfolio.NewVideoCreateForm(a.client, a.page, nil)
			observe(cmd, "video add", form.Status())
			form.Set(in)
			created, err := form.Submit(cmd.Context())
			if err != nil {
				return formError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", created.ID)
			return nil
		},
	}
	videoFlags(add, &in)
	_ = add.MarkFlagRequired("title")
	_ = add.MarkFlagRequired("youtube-id")

	var edit content.VideoInput
	update := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a video; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.page.RefreshVideos(cmd.Context()); err != nil {
				return formError(err)
			}
			current, ok := a.page.FindVideo(args[0])
			if !ok {
				return fmt.Errorf("video %s not found", args[0])
			}

			form := portfolio.NewVideoEditForm(a.client, a.page, nil)
			observe(cmd, "video edit", form.Status())
			form.Edit(current)
			fields := form.Values()
			f := cmd.Flags()
			if f.Changed("title") {
				fields.Title = edit.Title
			}
			if f.Changed("description") {
				fields.Description = edit.Description
			}
			if f.Changed("youtube-id") {
				fields.YouTubeID = edit.YouTubeID
			}
			if f.Changed("category") {
				fields.Category = edit.Category
			}
			if f.Changed("thumbnail") {
				fields.Thumbnail = edit.Thumbnail
			}
			form.Set(fields)

			updated, err := form.Submit(cmd.Context())
			if err != nil {
				return formError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", updated.ID)
			return nil
		},
	}
	videoFlags(update, &edit)

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleter := portfolio.NewVideoDeleter(a.client, a.page, a.confirmer(cmd), nil)
			observe(cmd, "video delete", deleter.Status())
			if err := deleter.Delete(cmd.Context(), args[0]); err != nil {
				return formError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
	remove.Flags().Bool("yes", false, "skip the confirmation prompt")

	cmd.AddCommand(add, update, remove)
	return cmd
}

func videoFlags(cmd *cobra.Command, in *content.VideoInput) {
	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "video title")
	f.StringVar(&in.Description, "description", "", "video description (markdown)")
	f.StringVar(&in.YouTubeID, "youtube-id", "", "YouTube video id, not the full URL")
	f.StringVar(&in.Category, "category", content.CategoryLong, "long or short")
	f.StringVar(&in.Thumbnail, "thumbnail", "", "thumbnail URL override")
}

func (a *app) clientCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "client", Short: "Add or delete clients"}

	var in content.ClientInput
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := portfolio.NewClientCreateForm(a.client, a.page, nil)
			observe(cmd, "client add", form.Status())
			form.Set(in)
			created, err := form.Submit(cmd.Context())
			if err != nil {
				return formError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", created.ID)
			return nil
		},
	}
	add.Flags().StringVar(&in.Name, "name", "", "client or brand name")
	add.Flags().StringVar(&in.Description, "description", "", "short description")
	add.Flags().StringVar(&in.Logo, "logo", "", "logo URL")
	_ = add.MarkFlagRequired("name")

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleter := portfolio.NewClientDeleter(a.client, a.page, a.confirmer(cmd), nil)
			observe(cmd, "client delete", deleter.Status())
			if err := deleter.Delete(cmd.Context(), args[0]); err != nil {
				return formError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
	remove.Flags().Bool("yes", false, "skip the confirmation prompt")

	cmd.AddCommand(add, remove)
	return cmd
}

func (a *app) contactCmd() *cobra.Command {
	var msg content.ContactMessage
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message through the contact form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := portfolio.NewContactForm(a.client, nil)
			observe(cmd, "contact", form.Status())
			form.Set(msg)
			if err := form.Submit(cmd.Context()); err != nil {
				return formError(err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&msg.Name, "name", "", "your name")
	cmd.Flags().StringVar(&msg.Email, "email", "", "your e-mail")
	cmd.Flags().StringVar(&msg.Message, "message", "", "message body")
	return cmd
}

func (a *app) hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Read a password from stdin and print its bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if stdinIsTerminal() {
				fmt.Fprint(cmd.ErrOrStderr(), "password: ")
			}
			password, err := readSecret(a.in)
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

// formError turns form failures into the messages shown to the operator.
func formError(err error) error {
	switch {
	case errors.Is(err, portfolio.ErrMissingFields):
		return errors.New("missing required fields")
	case errors.Is(err, portfolio.ErrNotConfirmed):
		return errors.New("cancelled")
	case errors.Is(err, portfolio.ErrRequestFailed):
		return errors.New("request failed, please try again")
	}
	return err
}
