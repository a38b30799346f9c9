package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"portfolio-backend/internal/portfolio"
	"portfolio-backend/internal/validation"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	v      *viper.Viper
	in     *bufio.Reader
	client *portfolio.APIClient
	page   *portfolio.Page
}

func newRootCmd(in io.Reader) *cobra.Command {
	a := &app{v: viper.New(), in: bufio.NewReader(in)}
	a.v.SetEnvPrefix("PORTFOLIO")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "admin",
		Short:         "Manage portfolio videos and clients",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
			a.client = portfolio.NewAPIClient(a.v.GetString("api-url"), a.v.GetString("admin-key"), validation.New(), log)
			a.page = portfolio.NewPage(a.client, a.v.GetBool("certificates"), log)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("api-url", "http://localhost:8080", "base URL of the portfolio API")
	flags.String("admin-key", "", "admin API key sent as X-Admin-Key")
	flags.Bool("certificates", true, "include certificates when listing")
	for _, name := range []string{"api-url", "admin-key", "certificates"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		a.listCmd(),
		a.videoCmd(),
		a.clientCmd(),
		a.contactCmd(),
		a.hashPasswordCmd(),
	)
	return root
}

// observe prints each status transition of a form.
func observe(cmd *cobra.Command, label string, s *portfolio.StatusTracker) {
	s.Observe(func(st portfolio.Status) {
		if st == portfolio.StatusIdle {
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", label, st)
	})
}

// confirmer asks on stdin unless --yes was given.
func (a *app) confirmer(cmd *cobra.Command) portfolio.Confirmer {
	return portfolio.ConfirmFunc(func(ctx context.Context, prompt string) bool {
		if yes, _ := cmd.Flags().GetBool("yes"); yes {
			return true
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
		answer, err := a.in.ReadString('\n')
		if err != nil && answer == "" {
			return false
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	})
}

func readSecret(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
