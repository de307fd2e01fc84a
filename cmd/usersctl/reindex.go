package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oksasatya/user-order-service/internal/bootstrap"
)

func newReindexCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Re-index every user into Elasticsearch",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := a.openService(cmd.Context(), bootstrap.Options{Search: true})
			defer cleanup()
			if err != nil {
				return err
			}
			n, err := svc.Reindex(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d user(s) into %s\n", n, a.cfg.ESUsersIndex)
			return nil
		},
	}
}
