package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/ticketboard/internal/auth"
	"github.com/idilsaglam/ticketboard/internal/ui"
)

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the bearer token sent to the ticket feed",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(
		newAuthLoginCmd(a),
		newAuthLogoutCmd(a),
		newAuthStatusCmd(a),
		newAuthWhoAmICmd(a),
	)
	return cmd
}

func newAuthLoginCmd(a *app) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a token (prompted on stdin unless --token is given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				fmt.Fprint(a.stdout, "Paste your token: ")
				line, err := readLine(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read token: %w", err)
				}
				token = line
			}
			if err := auth.SetToken(token, nil); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			ui.OK(a.stdout, "logged in")
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "token to store")
	return cmd
}

func newAuthLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Delete the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ti, _ := auth.GetToken()
			if ti != nil && ti.Source == "env" {
				ui.OK(a.stdout, "token is provided by "+auth.EnvToken+" env var (nothing to delete)")
				return nil
			}
			if err := auth.DeleteToken(); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			ui.OK(a.stdout, "logged out")
			return nil
		},
	}
}

func newAuthStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the token comes from and when it expires",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ti, err := auth.GetToken()
			if err != nil {
				return err
			}
			if ti == nil {
				fmt.Fprintln(a.stdout, ui.Current().Muted.Render("not logged in"))
				fmt.Fprintln(a.stdout, "Run: ticketboard auth login")
				return nil
			}
			fmt.Fprintf(a.stdout, "source: %s\n", ti.Source)
			if ti.ExpiresAt != nil {
				state := ""
				if ti.Expired(time.Now()) {
					state = " " + ui.Current().Error.Render("expired")
				}
				fmt.Fprintf(a.stdout, "expires: %s (%s)%s\n",
					ti.ExpiresAt.UTC().Format(time.RFC3339), humanize.Time(*ti.ExpiresAt), state)
			} else {
				fmt.Fprintln(a.stdout, "expires: (unknown)")
			}
			fmt.Fprintln(a.stdout, "env override: "+auth.EnvToken)
			return nil
		},
	}
}

// whoami decodes a JWT locally (unsigned); opaque tokens print basic info.
func newAuthWhoAmICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the claims of a JWT token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ti, _ := auth.GetToken()
			if ti == nil {
				return usagef("not logged in. Run: ticketboard auth login")
			}
			if payload, ok := auth.Claims(ti.Token); ok {
				fmt.Fprintln(a.stdout, "JWT payload:")
				fmt.Fprintln(a.stdout, payload)
				return nil
			}
			fmt.Fprintln(a.stdout, "Opaque token (cannot introspect locally).")
			fmt.Fprintln(a.stdout, "source:", ti.Source)
			return nil
		},
	}
}

func readLine(r io.Reader) (string, error) {
	if r == nil {
		r = os.Stdin
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
