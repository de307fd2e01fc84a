package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oksasatya/user-order-service/internal/bootstrap"
)

func newTokenCmd(a *app) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for the mutating API routes",
		Long: `Sign a token with AUTH_TOKEN_SECRET. Only needed when AUTH_ENABLED=true.

Example:
  usersctl token --subject ops --ttl 2h
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *a.cfg
			if ttl > 0 {
				cfg.AuthTokenTTL = ttl
			}
			token, exp, err := bootstrap.NewTokenManager(&cfg).GenerateToken(subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", exp.UTC().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "operator", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to AUTH_TOKEN_TTL)")
	return cmd
}
