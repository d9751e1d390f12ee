package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleanfocus/cleanfocus/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Work with question catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a catalog JSON file for structural problems",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		cat, err := catalog.ParseCatalog(data)
		if err != nil {
			return err
		}

		total := 0
		for module, questions := range cat {
			fmt.Printf("%-30s %d questions\n", module, len(questions))
			total += len(questions)
		}
		fmt.Printf("OK: %d modules, %d questions\n", len(cat), total)
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
}
