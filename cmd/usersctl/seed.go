package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oksasatya/user-order-service/internal/bootstrap"
	"github.com/oksasatya/user-order-service/internal/domain/entity"
	"github.com/oksasatya/user-order-service/internal/domain/repository"
)

func demoUser(id int64, password string) entity.User {
	return entity.User{
		UserID:   id,
		UserName: fmt.Sprintf("demo%d", id),
		Password: password,
		FullName: entity.FullName{FirstName: "Demo", LastName: fmt.Sprintf("User %d", id)},
		Age:      30,
		Email:    fmt.Sprintf("demo%d@example.com", id),
		IsActive: true,
		Hobbies:  []string{"reading"},
		Address:  entity.Address{Street: "1 Demo Street", City: "Sampleville", Country: "Nowhere"},
		Orders: []entity.Order{
			{ProductName: "Notebook", Price: 10, Quantity: 2},
			{ProductName: "Pen", Price: 5, Quantity: 1},
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var (
		startID  int64
		count    int
		password string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo users with orders",
		Long: `Insert demo users through the user service, so passwords are hashed
and lifecycle events fire like for API-created users. Existing ids are skipped.

Example:
  usersctl seed --start-id 1000 --count 5
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if startID < 1 || count < 1 {
				return fmt.Errorf("--start-id and --count must be at least 1")
			}
			svc, cleanup, err := a.openService(cmd.Context(), bootstrap.Options{Rabbit: true, Search: true})
			defer cleanup()
			if err != nil {
				return err
			}

			created := 0
			for i := 0; i < count; i++ {
				u := demoUser(startID+int64(i), password)
				if _, err := svc.CreateUser(cmd.Context(), u); err != nil {
					if errors.Is(err, repository.ErrUserAlreadyExists) {
						fmt.Fprintf(cmd.OutOrStdout(), "skip userId=%d: %v\n", u.UserID, err)
						continue
					}
					return fmt.Errorf("seed userId=%d: %w", u.UserID, err)
				}
				created++
				fmt.Fprintf(cmd.OutOrStdout(), "seeded userId=%d userName=%s email=%s\n", u.UserID, u.UserName, u.Email)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d user(s) created\n", created)
			return nil
		},
	}

	cmd.Flags().Int64Var(&startID, "start-id", 1000, "first userId to insert")
	cmd.Flags().IntVar(&count, "count", 1, "number of demo users")
	cmd.Flags().StringVar(&password, "password", "password123", "plain password for the demo users")
	return cmd
}
