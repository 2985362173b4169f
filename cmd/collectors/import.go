package main

import (
	"fmt"
	"os"

	"collectorsdream/adapters/excel"
	"collectorsdream/domain/core"

	"github.com/spf13/cobra"
)

var importCategory string

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx|file.csv>",
	Short: "Add one item per row of a spreadsheet",
	Long: `Reads the first sheet of an xlsx workbook (or a csv file). The header row
names the fields; with --category, headers matching a field label map onto
that field and number fields are validated. Nothing is stored unless every
row is valid.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	fileType, err := excel.FileTypeFor(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	c, err := openContainer(ctx)
	if err != nil {
		return err
	}
	defer c.Shutdown(ctx)

	items, err := c.Collection.ImportItems(ctx, f, fileType, core.CategoryKey(importCategory))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items from %s\n", len(items), path)
	return nil
}
