package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/RichardKnop/ragproxy"
)

var (
	ingestStoreName string
	ingestNoWait    bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [paths...]",
	Short: "Upload local files into the file search store",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestStoreName, "store", "", "store resource name (defaults to the configured store)")
	ingestCmd.Flags().BoolVar(&ingestNoWait, "no-wait", false, "do not wait for ingestion to finish")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rp, err := buildProxy(ctx)
	if err != nil {
		return err
	}

	uploads := make([]ragproxy.Upload, 0, len(args))
	for _, path := range args {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolving path %q: %w", path, err)
		}
		uploads = append(uploads, ragproxy.Upload{
			Path:        abs,
			DisplayName: filepath.Base(abs),
		})
	}

	operations, err := rp.UploadFiles(ctx, uploads, ingestStoreName, !ingestNoWait)
	if err != nil {
		return fmt.Errorf("uploading files: %w", err)
	}

	for _, operation := range operations {
		switch {
		case operation.Error != "":
			cmd.Printf("Failed: %s: %s\n", operation.DisplayName, operation.Error)
		case operation.DocumentName != "":
			cmd.Printf("Uploaded: %s (%s)\n", operation.DisplayName, operation.DocumentName)
		default:
			cmd.Printf("Pending: %s (%s)\n", operation.DisplayName, operation.Name)
		}
	}

	return nil
}
