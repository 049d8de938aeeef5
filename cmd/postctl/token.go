package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hoanghai1803/postdesk/internal/auth"
	"github.com/spf13/cobra"
)

func newHashTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-token <token>",
		Short: "Print the bcrypt hash to put in admin.token_hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashToken(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	var (
		secret  string
		issuer  string
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign an admin JWT for servers running in jwt mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				secret = os.Getenv("POSTDESK_JWT_SECRET")
			}
			if secret == "" {
				return errors.New("--secret or POSTDESK_JWT_SECRET is required")
			}

			gate, err := auth.NewJWTGate(secret, issuer)
			if err != nil {
				return err
			}
			token, err := gate.Sign(subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "HS256 secret (defaults to $POSTDESK_JWT_SECRET)")
	cmd.Flags().StringVar(&issuer, "issuer", "postdesk", "token issuer")
	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")

	return cmd
}
