package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/contentful-labs/cma-client/pkg/cma"
)

// NewAPIKeysCommand creates the api-keys command group
func NewAPIKeysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "api-keys",
		Aliases: []string{"api-key", "keys"},
		Short:   "Manage delivery API keys",
		Long:    "List and manage the delivery and preview API keys of a space",
	}

	cmd.AddCommand(newAPIKeysListCommand())
	cmd.AddCommand(newAPIKeysGetCommand())
	cmd.AddCommand(newAPIKeysCreateCommand())
	cmd.AddCommand(newAPIKeysDeleteCommand())

	return cmd
}

func newAPIKeysListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List API keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			keys, err := client.APIKeys().List(context.Background(), cma.NewQueryParams())
			if err != nil {
				return fmt.Errorf("failed to list API keys: %w", err)
			}

			return renderStructured(keys.Items, func() error {
				if len(keys.Items) == 0 {
					_, _ = fmt.Fprintln(os.Stdout, "No API keys found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Description", "Created")

				for i := range keys.Items {
					key := &keys.Items[i]
					_ = table.Append(sysID(key.Sys), key.Name, key.Description, sysTime(key.Sys.CreatedAt))
				}

				return table.Render()
			})
		},
	}
}

func newAPIKeysGetCommand() *cobra.Command {
	var showPreview bool

	cmd := &cobra.Command{
		Use:   "get KEY_ID",
		Short: "Get API key details",
		Long: `Display an API key, including its delivery access token.

With --preview, the linked preview key is fetched as well and its token
printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			key, err := client.APIKeys().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get API key: %w", err)
			}

			previewToken := ""

			if showPreview && key.PreviewAPIKey != nil {
				previewKey, err := client.APIKeys().GetPreviewKey(ctx, key.PreviewAPIKey.Sys.ID)
				if err != nil {
					return fmt.Errorf("failed to get preview key: %w", err)
				}

				previewToken = previewKey.AccessToken
			}

			return renderStructured(key, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field", "Value")
				_ = table.Append("ID", sysID(key.Sys))
				_ = table.Append("Name", key.Name)
				_ = table.Append("Description", key.Description)
				_ = table.Append("Delivery Token", key.AccessToken)

				if previewToken != "" {
					_ = table.Append("Preview Token", previewToken)
				}

				return table.Render()
			})
		},
	}

	cmd.Flags().BoolVar(&showPreview, "preview", false, "also fetch the linked preview key")

	return cmd
}

func newAPIKeysCreateCommand() *cobra.Command {
	var (
		description  string
		environments []string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an API key",
		Long: `Create a delivery API key. The server also issues a linked preview
key.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &cma.APIKeyCreateRequest{
				Name:        args[0],
				Description: description,
			}

			for _, envID := range environments {
				request.Environments = append(request.Environments, cma.NewLink(cma.KindEnvironment, envID))
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			key, err := client.APIKeys().Create(context.Background(), request)
			if err != nil {
				return fmt.Errorf("failed to create API key: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Created API key '%s' (%s)\n", key.Name, sysID(key.Sys))
			_, _ = fmt.Fprintf(os.Stdout, "Delivery token: %s\n", key.AccessToken)

			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "key description")
	cmd.Flags().StringSliceVar(&environments, "environments", nil, "environments the key may read (default all)")

	return cmd
}

func newAPIKeysDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete KEY_ID",
		Short: "Delete an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete API key '%s'? (y/N): ", args[0])

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					_, _ = fmt.Fprintln(os.Stdout, "Cancelled")

					return nil
				}
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			if err := client.APIKeys().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete API key: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted API key %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}
