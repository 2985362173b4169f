package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"collectorsdream/domain/core"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

var (
	exportOut      string
	exportCategory string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the collection to an xlsx workbook",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := openContainer(ctx)
	if err != nil {
		return err
	}
	defer c.Shutdown(ctx)

	if dir := filepath.Dir(exportOut); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	// Written through a pipe so a failed export never leaves a partial file.
	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(c.Collection.ExportItems(ctx, pw, core.CategoryKey(exportCategory)))
	}()
	if err := atomic.WriteFile(exportOut, pr); err != nil {
		pr.CloseWithError(err)
		return fmt.Errorf("failed to write %s: %w", exportOut, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", exportOut)
	return nil
}
