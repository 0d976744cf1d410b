package main

import (
	"fmt"
	"time"

	httpadapter "cv-builder/internal/adapter/http"
	"cv-builder/internal/config"
	"cv-builder/internal/domain"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	tokenUser    string
	tokenPremium bool
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for local testing",
	Long:  `Sign an access token with JWT_SECRET so the API can be exercised without the auth service.`,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "User ID (random when empty)")
	tokenCmd.Flags().BoolVar(&tokenPremium, "premium", false, "Mark the user as a premium subscriber")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireAuth(); err != nil {
		return err
	}

	id := uuid.New()
	if tokenUser != "" {
		if id, err = uuid.Parse(tokenUser); err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}
	}

	tok, err := httpadapter.IssueToken(cfg.JWTSecret, cfg.JWTIssuer, domain.Principal{UserID: id, Premium: tokenPremium}, tokenTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
