package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/contentful-labs/cma-client/pkg/cma"
)

// NewWebhooksCommand creates the webhooks command group
func NewWebhooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "webhooks",
		Aliases: []string{"webhook"},
		Short:   "Manage webhooks",
		Long:    "List and manage the webhook definitions of a space",
	}

	cmd.AddCommand(newWebhooksListCommand())
	cmd.AddCommand(newWebhooksGetCommand())
	cmd.AddCommand(newWebhooksCreateCommand())
	cmd.AddCommand(newWebhooksHealthCommand())
	cmd.AddCommand(newWebhooksDeleteCommand())

	return cmd
}

func newWebhooksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List webhooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			webhooks, err := client.Webhooks().List(context.Background(), cma.NewQueryParams())
			if err != nil {
				return fmt.Errorf("failed to list webhooks: %w", err)
			}

			return renderStructured(webhooks.Items, func() error {
				if len(webhooks.Items) == 0 {
					_, _ = fmt.Fprintln(os.Stdout, "No webhooks found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "URL", "Topics", "Active")

				for i := range webhooks.Items {
					webhook := &webhooks.Items[i]
					_ = table.Append(sysID(webhook.Sys), webhook.Name, webhook.URL,
						strings.Join(webhook.Topics, ", "), strconv.FormatBool(webhook.Active))
				}

				return table.Render()
			})
		},
	}
}

func newWebhooksGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get WEBHOOK_ID",
		Short: "Get webhook details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			webhook, err := client.Webhooks().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get webhook: %w", err)
			}

			return renderStructured(webhook, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field", "Value")
				_ = table.Append("ID", sysID(webhook.Sys))
				_ = table.Append("Name", webhook.Name)
				_ = table.Append("URL", webhook.URL)
				_ = table.Append("Topics", strings.Join(webhook.Topics, ", "))
				_ = table.Append("Active", strconv.FormatBool(webhook.Active))

				return table.Render()
			})
		},
	}
}

func newWebhooksCreateCommand() *cobra.Command {
	var (
		url      string
		topics   []string
		fromFile string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a webhook",
		Long: `Create a webhook definition.

Either pass --url and --topics, or --from-file with a full definition
in JSON or YAML. Topics take the form Type.Action, e.g. Entry.publish,
or * for everything.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &cma.WebhookCreateRequest{
				Name:   args[0],
				URL:    url,
				Topics: topics,
				Active: true,
			}

			if fromFile != "" {
				if err := loadRequestFile(fromFile, request); err != nil {
					return err
				}

				if request.Name == "" {
					request.Name = args[0]
				}
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			webhook, err := client.Webhooks().Create(context.Background(), request)
			if err != nil {
				return fmt.Errorf("failed to create webhook: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Created webhook '%s' (%s)\n", webhook.Name, sysID(webhook.Sys))

			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "target URL")
	cmd.Flags().StringSliceVar(&topics, "topics", nil, "topics to subscribe to")
	cmd.Flags().StringVar(&fromFile, "from-file", "", "webhook definition file")

	return cmd
}

func newWebhooksHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health WEBHOOK_ID",
		Short: "Show webhook call health",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			health, err := client.Webhooks().Health(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get webhook health: %w", err)
			}

			return renderStructured(health, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field", "Value")
				_ = table.Append("Webhook", args[0])
				_ = table.Append("Total Calls", strconv.Itoa(health.Calls.Total))
				_ = table.Append("Healthy Calls", strconv.Itoa(health.Calls.Healthy))

				return table.Render()
			})
		},
	}
}

func newWebhooksDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete WEBHOOK_ID",
		Short: "Delete a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete webhook '%s'? (y/N): ", args[0])

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

			if err := client.Webhooks().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete webhook: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted webhook %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}
