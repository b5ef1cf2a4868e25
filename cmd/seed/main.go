package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skybook/internal/shared/config"
	"skybook/internal/shared/database"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Load demo data into the SkyBook database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(seedCmd(), cleanCmd(), tokenCmd())
	return cmd
}

func seedCmd() *cobra.Command {
	var (
		fixturePath string
		clean       bool
	)

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Create the fixture's users, fleet, flights and passengers",
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := LoadFixture(fixturePath)
			if err != nil {
				return err
			}

			return withSeeder(func(s *Seeder) error {
				ctx := cmd.Context()
				if clean {
					if err := s.Clean(ctx); err != nil {
						return err
					}
					fmt.Println("Database cleaned")
				}

				summary, err := s.Seed(ctx, fixture)
				if err != nil {
					return err
				}
				fmt.Printf("Seeded %d users, %d aircraft (%d seats), %d flights, %d passengers\n",
					summary.Users, summary.Aircraft, summary.Seats, summary.Flights, summary.Passengers)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&fixturePath, "file", "f", "", "Fixture YAML file (defaults to the built-in demo set)")
	cmd.Flags().BoolVar(&clean, "clean", false, "Remove existing rows first")
	return cmd
}

func cleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove every row from every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSeeder(func(s *Seeder) error {
				if err := s.Clean(cmd.Context()); err != nil {
					return err
				}
				fmt.Println("Database cleaned")
				return nil
			})
		},
	}
}

func tokenCmd() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token <email>",
		Short: "Print a bearer token for a seeded account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := config.Load().JWT.Secret
			return withSeeder(func(s *Seeder) error {
				token, user, err := s.Token(cmd.Context(), secret, args[0], ttl)
				if err != nil {
					return err
				}
				fmt.Printf("# %s (%s)\n%s\n", user.Email, user.Role, token)
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}

// withSeeder opens and migrates the configured database. Redis is not
// needed to seed.
func withSeeder(fn func(s *Seeder) error) error {
	cfg := config.Load()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	return fn(NewSeeder(db))
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.OpenSQL(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.Database.Driver, err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := database.MigrateConstraints(db); err != nil {
		return nil, fmt.Errorf("failed to apply constraints: %w", err)
	}
	return db, nil
}
