package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/contentful-labs/cma-client/pkg/cma"
)

// NewContentTypesCommand creates the content-types command group
func NewContentTypesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "content-types",
		Aliases: []string{"content-type", "ct"},
		Short:   "Manage content types",
		Long:    "List, inspect, and manage content types in an environment",
	}

	cmd.AddCommand(newContentTypesListCommand())
	cmd.AddCommand(newContentTypesGetCommand())
	cmd.AddCommand(newContentTypesCreateCommand())
	cmd.AddCommand(newContentTypesPublishCommand())
	cmd.AddCommand(newContentTypesUnpublishCommand())
	cmd.AddCommand(newContentTypesDeleteCommand())

	return cmd
}

func newContentTypesListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List content types",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			params := cma.NewQueryParams().WithLimit(limit)

			contentTypes, err := client.ContentTypes().List(context.Background(), params)
			if err != nil {
				return fmt.Errorf("failed to list content types: %w", err)
			}

			return renderStructured(contentTypes.Items, func() error {
				if len(contentTypes.Items) == 0 {
					_, _ = fmt.Fprintln(os.Stdout, "No content types found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Fields", "Display Field", "Updated")

				for i := range contentTypes.Items {
					contentType := &contentTypes.Items[i]
					_ = table.Append(sysID(contentType.Sys), contentType.Name,
						strconv.Itoa(len(contentType.Fields)), contentType.DisplayField,
						sysTime(contentType.Sys.UpdatedAt))
				}

				return table.Render()
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of content types to return")

	return cmd
}

func newContentTypesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CONTENT_TYPE_ID",
		Short: "Get content type details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			contentType, err := client.ContentTypes().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get content type: %w", err)
			}

			return renderStructured(contentType, func() error {
				_, _ = fmt.Fprintf(os.Stdout, "%s (%s), version %s\n\n",
					contentType.Name, sysID(contentType.Sys), sysVersion(contentType.Sys))

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field ID", "Name", "Type", "Required", "Localized")

				for _, field := range contentType.Fields {
					_ = table.Append(field.ID, field.Name, field.Type,
						strconv.FormatBool(field.Required), strconv.FormatBool(field.Localized))
				}

				return table.Render()
			})
		},
	}
}

func newContentTypesCreateCommand() *cobra.Command {
	var (
		contentTypeID string
		fromFile      string
		publish       bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a content type",
		Long: `Create a content type from a definition file.

The file holds a content type body (name, displayField, fields) in JSON
or YAML.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromFile == "" {
				return ErrFieldsFileRequired
			}

			request := &cma.ContentTypeCreateRequest{}
			if err := loadRequestFile(fromFile, request); err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var contentType *cma.ContentType
			if contentTypeID != "" {
				contentType, err = client.ContentTypes().CreateWithID(ctx, contentTypeID, request)
			} else {
				contentType, err = client.ContentTypes().Create(ctx, request)
			}

			if err != nil {
				return fmt.Errorf("failed to create content type: %w", err)
			}

			if publish {
				contentType, err = client.ContentTypes().Publish(ctx, contentType)
				if err != nil {
					return fmt.Errorf("failed to publish content type: %w", err)
				}
			}

			_, _ = fmt.Fprintf(os.Stdout, "Created content type '%s' (%s)\n", contentType.Name, sysID(contentType.Sys))

			return nil
		},
	}

	cmd.Flags().StringVar(&contentTypeID, "id", "", "create with a fixed id instead of a generated one")
	cmd.Flags().StringVar(&fromFile, "from-file", "", "content type definition file (required)")
	cmd.Flags().BoolVar(&publish, "publish", false, "publish the content type after creating it")

	return cmd
}

func newContentTypesPublishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "publish CONTENT_TYPE_ID",
		Short: "Publish a content type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			contentType, err := client.ContentTypes().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get content type: %w", err)
			}

			if _, err := client.ContentTypes().Publish(ctx, contentType); err != nil {
				return fmt.Errorf("failed to publish content type: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Published content type %s\n", args[0])

			return nil
		},
	}
}

func newContentTypesUnpublishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unpublish CONTENT_TYPE_ID",
		Short: "Unpublish a content type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			contentType, err := client.ContentTypes().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get content type: %w", err)
			}

			if _, err := client.ContentTypes().Unpublish(ctx, contentType); err != nil {
				return fmt.Errorf("failed to unpublish content type: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Unpublished content type %s\n", args[0])

			return nil
		},
	}
}

func newContentTypesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete CONTENT_TYPE_ID",
		Short: "Delete a content type",
		Long:  "Delete a content type. Published content types must be unpublished first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete content type '%s'? (y/N): ", args[0])

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

			if err := client.ContentTypes().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete content type: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted content type %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}
