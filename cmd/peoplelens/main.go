package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/peoplelens/peoplelens-go/api"
	"github.com/peoplelens/peoplelens-go/internal/config"
	"github.com/peoplelens/peoplelens-go/profile"
)

var serviceURL string
var orgToken string
var debug bool

func main() {
	// Local .env is optional; missing files are fine.
	_ = godotenv.Load()

	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "peoplelens",
		Short: "PeopleLens CLI for running profile searches",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.InitLogger()

			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				os.Setenv("PEOPLELENS_DEBUG", "true")
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	cfg := config.Load()
	rootCmd.PersistentFlags().StringVar(&serviceURL, "service-url", cfg.ServiceURL, "Base URL of the PeopleLens API")
	rootCmd.PersistentFlags().StringVar(&orgToken, "org-token", os.Getenv("PEOPLELENS_ORG_TOKEN"), "Org-level API token")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newResultCmd())

	return rootCmd
}

func newClient() *api.Client {
	return api.New(serviceURL, api.WithOrgToken(orgToken))
}

func newSearchCmd() *cobra.Command {
	var fullName, email, company, location string
	var limit int
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a profile search and wait for the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fullName == "" && email == "" && company == "" && location == "" {
				return fmt.Errorf("at least one of --name, --email, --company, --location is required")
			}

			log.Debug().
				Str("full_name", fullName).
				Str("email", email).
				Str("company", company).
				Str("location", location).
				Dur("wait", wait).
				Str("service_url", serviceURL).
				Msg("searching profiles")

			sdk := profile.New(newClient())
			ctx, cancel := context.WithTimeout(cmd.Context(), wait+15*time.Second)
			defer cancel()

			start := time.Now()
			prof, err := sdk.Search(ctx, profile.SearchParams{
				FullName: fullName,
				Email:    email,
				Company:  company,
				Location: location,
				Limit:    limit,
			}, wait)
			elapsed := time.Since(start)

			if err != nil {
				if pending, ok := profile.IsNotFoundYet(err); ok {
					log.Warn().
						Str("request_id", pending.ID).
						Dur("elapsed", elapsed).
						Msg("search still running; re-check with the status command")
					fmt.Println(pending.ID)
					return nil
				}
				log.Error().Err(err).Dur("elapsed", elapsed).Msg("search failed")
				return err
			}

			log.Debug().Dur("elapsed", elapsed).Msg("search completed")

			b, _ := json.MarshalIndent(map[string]interface{}{
				"info":            prof.Info,
				"recommendations": prof.Recommendations,
			}, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}

	cmd.Flags().StringVar(&fullName, "name", "", "Person's full name")
	cmd.Flags().StringVar(&email, "email", "", "Person's email address")
	cmd.Flags().StringVar(&company, "company", "", "Current company")
	cmd.Flags().StringVar(&location, "location", "", "City or region")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results the backend should consider (0 = backend default)")
	cmd.Flags().DurationVar(&wait, "wait", 30*time.Second, "How long to wait for the search to finish")

	return cmd
}

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <request-id>",
		Short: "Check whether a previously started search has finished",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := profile.ValidateRequestID(args[0]); err != nil {
				return err
			}

			c := newClient()
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			req := profile.NewRequest(args[0], c)
			done, err := req.DidFinish(ctx)
			if err != nil {
				log.Error().Err(err).Str("request_id", req.ID).Msg("status check failed")
				return err
			}
			fmt.Println(map[bool]string{true: "finished", false: "pending"}[done])
			return nil
		},
	}
	return cmd
}

func newResultCmd() *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "result <request-id>",
		Short: "Wait for a previously started search and print its payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := profile.ValidateRequestID(args[0]); err != nil {
				return err
			}

			c := newClient()
			sdk := profile.New(c)
			ctx, cancel := context.WithTimeout(cmd.Context(), wait+15*time.Second)
			defer cancel()

			prof, err := sdk.Await(ctx, profile.NewRequest(args[0], c), wait)
			if err != nil {
				log.Error().Err(err).Str("request_id", args[0]).Msg("result fetch failed")
				return err
			}

			b, _ := json.MarshalIndent(map[string]interface{}{
				"info":            prof.Info,
				"recommendations": prof.Recommendations,
			}, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}

	cmd.Flags().DurationVar(&wait, "wait", 30*time.Second, "How long to wait for the search to finish")

	return cmd
}
