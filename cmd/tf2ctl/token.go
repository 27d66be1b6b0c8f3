// cmd/tf2ctl/token.go
// Implements `tf2ctl token mint`, which signs a short-lived JWT for a
// publisher or watcher using the same HMAC-SHA256 scheme
// internal/server.JWTConfig verifies against, so an operator can hand out
// credentials without running a separate key-management tool.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/smilerobotics/tf2-go/pkg/auth"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint JWTs for daemon authentication",
	}
	cmd.AddCommand(newTokenMintCmd())
	return cmd
}

func newTokenMintCmd() *cobra.Command {
	var (
		secret  string
		issuer  string
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Sign a JWT a publisher or watcher can present as its bearer token",
		Long: `mint signs a JWT with the same HMAC secret and issuer the daemon's
JWTConfig (jwt_secret/jwt_issuer in its config file, or TF2_JWT_SECRET/TF2_JWT_ISSUER) uses
to verify incoming tokens, so the printed value can be passed straight to
--auth-token on "tf2ctl publish" or "tf2ctl watch".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return fmt.Errorf("--secret is required and must match the daemon's jwt_secret")
			}

			signer := auth.NewSigner([]byte(secret), issuer, ttl)
			claims := signer.Claims(subject, nil)
			tok, err := signer.Sign(claims)
			if err != nil {
				return fmt.Errorf("sign: %w", err)
			}
			fmt.Println(tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "HMAC secret shared with the daemon's jwt_secret (required)")
	cmd.Flags().StringVar(&issuer, "issuer", "", "iss claim; must match the daemon's jwt_issuer if it checks one")
	cmd.Flags().StringVar(&subject, "subject", "tf2ctl", "sub claim identifying the publisher or watcher")
	cmd.Flags().DurationVar(&ttl, "ttl", 15*time.Minute, "token lifetime")

	return cmd
}
