package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleanfocus/cleanfocus/internal/assessment"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the available assessment modules",
	Run: func(cmd *cobra.Command, args []string) {
		for _, m := range assessment.Modules() {
			fmt.Println(m)
		}
	},
}
