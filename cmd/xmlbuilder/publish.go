package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacobtread/xmlbuilder/pkg/publish"
)

func publishCmd() *cobra.Command {
	var (
		flags  renderFlags
		bucket string
		prefix string
		key    string
	)

	cmd := &cobra.Command{
		Use:   "publish <docfile>...",
		Short: "Render documents and upload them to S3",
		Long: `Render document descriptions and upload the results to S3.

Credentials come from the default AWS configuration chain
(environment, shared config, instance metadata). Each file is
uploaded as <prefix><basename>.xml unless --key overrides it.

Examples:
  xmlbuilder publish people.json --bucket my-bucket
  xmlbuilder publish people.json --bucket my-bucket --prefix feeds/
  xmlbuilder publish people.json --bucket my-bucket --key exports/people.xml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if key != "" && len(args) > 1 {
				return fmt.Errorf("--key only applies to a single file")
			}

			ctx := cmd.Context()
			client, err := publish.NewClient(ctx)
			if err != nil {
				return err
			}
			pub := publish.New(client, bucket, prefix)
			renderConfig := flags.config()

			for _, path := range args {
				root, err := loadDocument(path)
				if err != nil {
					return err
				}

				objectKey := key
				if objectKey == "" {
					objectKey = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".xml"
				}

				if err := pub.PublishDocument(ctx, objectKey, root, renderConfig); err != nil {
					return err
				}
				success("Published s3://%s/%s%s", bucket, prefix, objectKey)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Target S3 bucket")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix inside the bucket")
	cmd.Flags().StringVarP(&key, "key", "k", "", "Explicit object key (single file only)")
	cmd.MarkFlagRequired("bucket")

	return cmd
}
