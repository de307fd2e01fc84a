package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oksasatya/user-order-service/config"
	"github.com/oksasatya/user-order-service/internal/application"
	"github.com/oksasatya/user-order-service/internal/bootstrap"
	"github.com/oksasatya/user-order-service/internal/container"
	"github.com/oksasatya/user-order-service/internal/router"
	"github.com/oksasatya/user-order-service/pkg/helpers"
)

// app is the state shared by usersctl commands. The hooks are swapped in tests.
type app struct {
	cfg    *config.Config
	logger *logrus.Logger

	openService func(ctx context.Context, opts bootstrap.Options) (*application.Service, func(), error)
	upload      func(ctx context.Context, objectPath string, v any) (string, error)
	now         func() time.Time
}

func newApp() *app {
	a := &app{now: time.Now}
	a.openService = a.defaultOpenService
	a.upload = a.defaultUpload
	return a
}

func (a *app) defaultOpenService(ctx context.Context, opts bootstrap.Options) (*application.Service, func(), error) {
	cleanup, err := bootstrap.Init(ctx, a.cfg, a.logger, opts)
	if err != nil {
		return nil, cleanup, err
	}
	repo, err := router.NewUserRepository(a.cfg)
	if err != nil {
		return nil, cleanup, err
	}
	return router.NewUserService(repo), cleanup, nil
}

func (a *app) defaultUpload(ctx context.Context, objectPath string, v any) (string, error) {
	client := container.GetGCS()
	if client == nil || a.cfg.GCSBucket == "" {
		return "", errGCSNotConfigured
	}
	return helpers.UploadJSON(ctx, client, a.cfg.GCSBucket, objectPath, v)
}

func newRootCmd(a *app) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "usersctl",
		Short: "Operator tooling for the user/order service",
		Long: `Operator tooling for the user/order service.

Commands:
  seed     Insert demo users with orders
  export   Upload a sanitized JSON snapshot of all users to GCS
  token    Print a bearer token for the mutating API routes
  reindex  Re-index every user into Elasticsearch

Configuration is read from the environment (and .env), same as the server.
`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.cfg == nil {
				a.cfg = config.Load()
			}
			if a.logger == nil {
				a.logger = helpers.NewLogger(a.cfg.AppName+"-usersctl", a.cfg.Env, "")
				a.logger.SetOutput(cmd.ErrOrStderr())
			}
			if !verbose {
				a.logger.SetLevel(logrus.WarnLevel)
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log infrastructure setup")

	cmd.AddCommand(
		newSeedCmd(a),
		newExportCmd(a),
		newTokenCmd(a),
		newReindexCmd(a),
	)
	return cmd
}
