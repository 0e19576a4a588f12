package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/contentful-labs/cma-client/pkg/cma"
)

// NewEntriesCommand creates the entries command group
func NewEntriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entries",
		Aliases: []string{"entry"},
		Short:   "Manage entries",
		Long:    "List, create, and manage entries in an environment",
	}

	cmd.AddCommand(newEntriesListCommand())
	cmd.AddCommand(newEntriesGetCommand())
	cmd.AddCommand(newEntriesCreateCommand())
	cmd.AddCommand(newEntriesPublishCommand())
	cmd.AddCommand(newEntriesUnpublishCommand())
	cmd.AddCommand(newEntriesArchiveCommand())
	cmd.AddCommand(newEntriesUnarchiveCommand())
	cmd.AddCommand(newEntriesDeleteCommand())

	return cmd
}

func newEntriesListCommand() *cobra.Command {
	var (
		contentTypeID string
		query         string
		order         string
		locale        string
		limit         int
		all           bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries",
		Long:  "List entries, optionally filtered by content type or a full-text query",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			params := cma.NewQueryParams().WithLimit(limit)

			if contentTypeID != "" {
				params.WithContentType(contentTypeID)
			}

			if query != "" {
				params.WithQuery(query)
			}

			if order != "" {
				params.WithOrder(order)
			}

			if locale != "" {
				params.WithLocale(locale)
			}

			entries, err := client.Entries().List(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to list entries: %w", err)
			}

			items := entries.Items
			total := entries.Total

			// Walk remaining pages by bumping skip until the listing is
			// exhausted.
			if all {
				for len(items) < total {
					params.WithSkip(len(items))

					page, err := client.Entries().List(ctx, params)
					if err != nil {
						return fmt.Errorf("failed to list entries: %w", err)
					}

					if len(page.Items) == 0 {
						break
					}

					items = append(items, page.Items...)
					total = page.Total
				}
			}

			return renderStructured(items, func() error {
				if len(items) == 0 {
					_, _ = fmt.Fprintln(os.Stdout, "No entries found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Content Type", "Status", "Version", "Updated")

				for i := range items {
					entry := &items[i]

					contentType := NotAvailable
					if entry.Sys != nil && entry.Sys.ContentType != nil {
						contentType = entry.Sys.ContentType.Sys.ID
					}

					_ = table.Append(sysID(entry.Sys), contentType, publicationStatus(entry.Sys),
						sysVersion(entry.Sys), sysTime(entry.Sys.UpdatedAt))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("rendering table: %w", err)
				}

				if !all && total > len(items) {
					_, _ = fmt.Fprintf(os.Stdout, "\nShowing %d of %d entries. Use --all to fetch everything.\n", len(items), total)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&contentTypeID, "content-type", "", "filter by content type id")
	cmd.Flags().StringVarP(&query, "query", "q", "", "full-text search query")
	cmd.Flags().StringVar(&order, "order", "", "sort order, e.g. -sys.updatedAt")
	cmd.Flags().StringVar(&locale, "locale", "", "scope localized fields to one locale")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size")
	cmd.Flags().BoolVar(&all, "all", false, "fetch all pages")

	return cmd
}

func newEntriesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ENTRY_ID",
		Short: "Get entry details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			entry, err := client.Entries().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get entry: %w", err)
			}

			// Table output is not useful for arbitrary localized fields;
			// default to JSON for the full body.
			if viper.GetString("output") == OutputFormatYAML {
				return renderYAML(entry)
			}

			return renderJSON(entry)
		},
	}
}

func newEntriesCreateCommand() *cobra.Command {
	var (
		entryID       string
		contentTypeID string
		fromFile      string
		publish       bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an entry",
		Long: `Create an entry of a given content type.

The fields file holds the localized field map in JSON or YAML, keyed by
field id and then locale:

  {"title": {"en-US": "Hello"}}`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if contentTypeID == "" {
				return ErrContentTypeRequired
			}

			if fromFile == "" {
				return ErrFieldsFileRequired
			}

			request := &cma.EntryCreateRequest{}
			if err := loadRequestFile(fromFile, &request.Fields); err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var entry *cma.Entry
			if entryID != "" {
				entry, err = client.Entries().CreateWithID(ctx, entryID, contentTypeID, request)
			} else {
				entry, err = client.Entries().Create(ctx, contentTypeID, request)
			}

			if err != nil {
				return fmt.Errorf("failed to create entry: %w", err)
			}

			if publish {
				entry, err = client.Entries().Publish(ctx, entry)
				if err != nil {
					return fmt.Errorf("failed to publish entry: %w", err)
				}
			}

			_, _ = fmt.Fprintf(os.Stdout, "Created entry %s (%s)\n", sysID(entry.Sys), publicationStatus(entry.Sys))

			return nil
		},
	}

	cmd.Flags().StringVar(&entryID, "id", "", "create with a fixed id instead of a generated one")
	cmd.Flags().StringVar(&contentTypeID, "content-type", "", "content type id (required)")
	cmd.Flags().StringVar(&fromFile, "from-file", "", "fields file (required)")
	cmd.Flags().BoolVar(&publish, "publish", false, "publish the entry after creating it")

	return cmd
}

// entryLifecycleCommand builds publish/unpublish/archive/unarchive commands,
// which differ only in the client call and wording.
func entryLifecycleCommand(verb, past string, action func(context.Context, cma.Client, *cma.Entry) (*cma.Entry, error)) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " ENTRY_ID",
		Short: past + " an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			entry, err := client.Entries().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get entry: %w", err)
			}

			entry, err = action(ctx, client, entry)
			if err != nil {
				return fmt.Errorf("failed to %s entry: %w", verb, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "%s entry %s (now %s)\n", past, sysID(entry.Sys), publicationStatus(entry.Sys))

			return nil
		},
	}
}

func newEntriesPublishCommand() *cobra.Command {
	return entryLifecycleCommand("publish", "Published",
		func(ctx context.Context, client cma.Client, entry *cma.Entry) (*cma.Entry, error) {
			return client.Entries().Publish(ctx, entry)
		})
}

func newEntriesUnpublishCommand() *cobra.Command {
	return entryLifecycleCommand("unpublish", "Unpublished",
		func(ctx context.Context, client cma.Client, entry *cma.Entry) (*cma.Entry, error) {
			return client.Entries().Unpublish(ctx, entry)
		})
}

func newEntriesArchiveCommand() *cobra.Command {
	return entryLifecycleCommand("archive", "Archived",
		func(ctx context.Context, client cma.Client, entry *cma.Entry) (*cma.Entry, error) {
			return client.Entries().Archive(ctx, entry)
		})
}

func newEntriesUnarchiveCommand() *cobra.Command {
	return entryLifecycleCommand("unarchive", "Unarchived",
		func(ctx context.Context, client cma.Client, entry *cma.Entry) (*cma.Entry, error) {
			return client.Entries().Unarchive(ctx, entry)
		})
}

func newEntriesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ENTRY_ID",
		Short: "Delete an entry",
		Long:  "Delete an entry. Published entries must be unpublished first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete entry '%s'? (y/N): ", args[0])

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

			ctx := context.Background()

			entry, err := client.Entries().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get entry: %w", err)
			}

			if err := client.Entries().Delete(ctx, args[0], entry.Sys.Version); err != nil {
				return fmt.Errorf("failed to delete entry: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted entry %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}
