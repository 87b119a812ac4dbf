package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/container-tracker/internal/auth"
	"github.com/rogerio-castellano/container-tracker/internal/config"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenRole    string
	tokenTTL     time.Duration
	tokenSecret  string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the protected routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := tokenSecret
		if secret == "" {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			secret = cfg.Auth.JWTSecret
		}
		if secret == "" {
			return errors.New("no JWT secret: set AUTH_JWT_SECRET or --secret")
		}

		token, err := auth.GenerateToken([]byte(secret), tokenSubject, tokenRole, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "sub", "operator", "token subject")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "admin", "token role")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	tokenCmd.Flags().StringVar(&tokenSecret, "secret", "", "signing secret (default from config)")
}
