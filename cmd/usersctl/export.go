package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oksasatya/user-order-service/internal/bootstrap"
)

var errGCSNotConfigured = errors.New("GCS_BUCKET is not set or the GCS client failed to initialize")

func newExportCmd(a *app) *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Upload a sanitized JSON snapshot of all users to GCS",
		Long: `Upload every user (passwords blanked, orders included) as one JSON
array to gs://$GCS_BUCKET/<prefix>/users-<timestamp>.json.

Example:
  usersctl export --prefix exports
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := a.openService(cmd.Context(), bootstrap.Options{GCS: true})
			defer cleanup()
			if err != nil {
				return err
			}
			users, err := svc.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			objectPath := fmt.Sprintf("%s/users-%s.json", prefix, a.now().UTC().Format("20060102T150405Z"))
			url, err := a.upload(cmd.Context(), objectPath, users)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d user(s) to %s\n", len(users), url)
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "exports", "object prefix inside the bucket")
	return cmd
}
