package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/contentful-labs/cma-client/pkg/cma"
)

// NewAssetsCommand creates the assets command group
func NewAssetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assets",
		Aliases: []string{"asset"},
		Short:   "Manage assets",
		Long:    "List, upload, and manage media assets in an environment",
	}

	cmd.AddCommand(newAssetsListCommand())
	cmd.AddCommand(newAssetsGetCommand())
	cmd.AddCommand(newAssetsCreateCommand())
	cmd.AddCommand(newAssetsUploadCommand())
	cmd.AddCommand(newAssetsProcessCommand())
	cmd.AddCommand(newAssetsPublishCommand())
	cmd.AddCommand(newAssetsUnpublishCommand())
	cmd.AddCommand(newAssetsDeleteCommand())

	return cmd
}

func newAssetsListCommand() *cobra.Command {
	var (
		locale string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			params := cma.NewQueryParams().WithLimit(limit)

			assets, err := client.Assets().List(context.Background(), params)
			if err != nil {
				return fmt.Errorf("failed to list assets: %w", err)
			}

			return renderStructured(assets.Items, func() error {
				if len(assets.Items) == 0 {
					_, _ = fmt.Fprintln(os.Stdout, "No assets found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Title", "Status", "Version", "Updated")

				for i := range assets.Items {
					asset := &assets.Items[i]

					title := NotAvailable
					if asset.Fields != nil {
						title = localized(asset.Fields.Title, locale)
					}

					_ = table.Append(sysID(asset.Sys), title, publicationStatus(asset.Sys),
						sysVersion(asset.Sys), sysTime(asset.Sys.UpdatedAt))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("rendering table: %w", err)
				}

				if assets.Total > len(assets.Items)+assets.Skip {
					_, _ = fmt.Fprintf(os.Stdout, "\nShowing %d of %d assets\n", len(assets.Items), assets.Total)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "en-US", "locale for display values")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size")

	return cmd
}

func newAssetsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ASSET_ID",
		Short: "Get asset details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			asset, err := client.Assets().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get asset: %w", err)
			}

			return renderStructured(asset, func() error {
				return renderJSON(asset)
			})
		},
	}
}

func newAssetsCreateCommand() *cobra.Command {
	var (
		assetID  string
		title    string
		fileURL  string
		fileName string
		mimeType string
		locale   string
		process  bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an asset from a URL",
		Long: `Create an asset whose file is fetched from a public URL.

The file stays unprocessed until 'cma assets process' runs, or pass
--process to trigger processing right away.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fileURL == "" {
				return ErrFileURLRequired
			}

			if fileName == "" {
				fileName = filepath.Base(fileURL)
			}

			request := &cma.AssetCreateRequest{
				Fields: &cma.AssetFields{
					Title: map[string]string{locale: title},
					File: map[string]*cma.File{
						locale: {
							FileName:    fileName,
							ContentType: mimeType,
							UploadURL:   fileURL,
						},
					},
				},
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var asset *cma.Asset
			if assetID != "" {
				asset, err = client.Assets().CreateWithID(ctx, assetID, request)
			} else {
				asset, err = client.Assets().Create(ctx, request)
			}

			if err != nil {
				return fmt.Errorf("failed to create asset: %w", err)
			}

			if process {
				if err := client.Assets().Process(ctx, asset, locale); err != nil {
					return fmt.Errorf("failed to process asset: %w", err)
				}
			}

			_, _ = fmt.Fprintf(os.Stdout, "Created asset %s\n", sysID(asset.Sys))

			return nil
		},
	}

	cmd.Flags().StringVar(&assetID, "id", "", "create with a fixed id instead of a generated one")
	cmd.Flags().StringVar(&title, "title", "", "asset title")
	cmd.Flags().StringVar(&fileURL, "file-url", "", "public URL of the file (required)")
	cmd.Flags().StringVar(&fileName, "file-name", "", "file name (defaults to the URL basename)")
	cmd.Flags().StringVar(&mimeType, "content-type", "application/octet-stream", "MIME type of the file")
	cmd.Flags().StringVar(&locale, "locale", "en-US", "locale for the asset fields")
	cmd.Flags().BoolVar(&process, "process", false, "trigger file processing after creating the asset")

	return cmd
}

func newAssetsUploadCommand() *cobra.Command {
	var (
		title    string
		mimeType string
		locale   string
		process  bool
	)

	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a local file as an asset",
		Long: `Upload a local file to Contentful and create an asset referencing
the upload.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0]) // #nosec G304 -- the path is a user-supplied CLI argument
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			upload, err := client.Uploads().Create(ctx, data)
			if err != nil {
				return fmt.Errorf("failed to upload file: %w", err)
			}

			fileName := filepath.Base(args[0])
			if title == "" {
				title = fileName
			}

			request := &cma.AssetCreateRequest{
				Fields: &cma.AssetFields{
					Title: map[string]string{locale: title},
					File: map[string]*cma.File{
						locale: {
							FileName:    fileName,
							ContentType: mimeType,
							UploadFrom:  cma.NewLink(cma.KindUpload, sysID(upload.Sys)),
						},
					},
				},
			}

			asset, err := client.Assets().Create(ctx, request)
			if err != nil {
				return fmt.Errorf("failed to create asset: %w", err)
			}

			if process {
				if err := client.Assets().Process(ctx, asset, locale); err != nil {
					return fmt.Errorf("failed to process asset: %w", err)
				}
			}

			_, _ = fmt.Fprintf(os.Stdout, "Uploaded %s as asset %s\n", fileName, sysID(asset.Sys))

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "asset title (defaults to the file name)")
	cmd.Flags().StringVar(&mimeType, "content-type", "application/octet-stream", "MIME type of the file")
	cmd.Flags().StringVar(&locale, "locale", "en-US", "locale for the asset fields")
	cmd.Flags().BoolVar(&process, "process", false, "trigger file processing after creating the asset")

	return cmd
}

func newAssetsProcessCommand() *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "process ASSET_ID",
		Short: "Process an asset's file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			asset, err := client.Assets().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get asset: %w", err)
			}

			if err := client.Assets().Process(ctx, asset, locale); err != nil {
				return fmt.Errorf("failed to process asset: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Processing asset %s (%s)\n", args[0], locale)

			return nil
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "en-US", "locale of the file to process")

	return cmd
}

func newAssetsPublishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "publish ASSET_ID",
		Short: "Publish an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			asset, err := client.Assets().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get asset: %w", err)
			}

			asset, err = client.Assets().Publish(ctx, asset)
			if err != nil {
				return fmt.Errorf("failed to publish asset: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Published asset %s (now %s)\n", args[0], publicationStatus(asset.Sys))

			return nil
		},
	}
}

func newAssetsUnpublishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unpublish ASSET_ID",
		Short: "Unpublish an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			asset, err := client.Assets().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get asset: %w", err)
			}

			asset, err = client.Assets().Unpublish(ctx, asset)
			if err != nil {
				return fmt.Errorf("failed to unpublish asset: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Unpublished asset %s (now %s)\n", args[0], publicationStatus(asset.Sys))

			return nil
		},
	}
}

func newAssetsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ASSET_ID",
		Short: "Delete an asset",
		Long:  "Delete an asset. Published assets must be unpublished first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete asset '%s'? (y/N): ", args[0])

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

			asset, err := client.Assets().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get asset: %w", err)
			}

			if err := client.Assets().Delete(ctx, args[0], asset.Sys.Version); err != nil {
				return fmt.Errorf("failed to delete asset: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted asset %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}
