package commands

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/contentful-labs/cma-client/pkg/cma"
	"github.com/contentful-labs/cma-client/pkg/cmaclient"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		token   string
		spaceID string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a management token",
		Long: `Verify a Contentful management token and store it in the CLI config.

The token is read from --token, or prompted for interactively when the
flag is not given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				_, _ = fmt.Fprint(os.Stdout, "Management token: ")

				tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
				_, _ = fmt.Fprintln(os.Stdout)

				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				token = string(tokenBytes)
			}

			if token == "" {
				return ErrTokenRequired
			}

			// Verify the token before persisting it
			client, err := cmaclient.New(&cma.Config{
				AccessToken: token,
				Host:        viper.GetString("host"),
			})
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			user, err := client.Users().Me(context.Background())
			if err != nil {
				return fmt.Errorf("token verification failed: %w", err)
			}

			config, path, err := loadCLIConfig()
			if err != nil {
				return err
			}

			config.Token = token
			if spaceID != "" {
				config.Space = spaceID
			}

			if err := saveCLIConfig(config, path); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Logged in as %s %s (%s)\n", user.FirstName, user.LastName, user.Email)

			if spaceID != "" {
				_, _ = fmt.Fprintf(os.Stdout, "Default space set to %s\n", spaceID)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "management token (prompted when omitted)")
	cmd.Flags().StringVarP(&spaceID, "space", "s", "", "default space to store alongside the token")

	return cmd
}
