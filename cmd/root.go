package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cleanfocus/cleanfocus/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "cleanfocus",
	Short: "Timed AI proficiency assessments in the terminal",
	Long: "Clean Focus — single-pass multiple-choice assessments across AI domains,\n" +
		"with instant feedback, per-question review and an AI-written performance analysis.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(appOptions(cmd))
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CLEANFOCUS_DB; \"off\" disables history)")
	rootCmd.Flags().String("catalog", "", "Load questions from a local JSON file")
	rootCmd.Flags().String("catalog-url", "", "Load questions from a URL")
	rootCmd.Flags().Bool("generated", false, "Generate questions with the configured LLM provider")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
}

func appOptions(cmd *cobra.Command) app.Options {
	db, _ := cmd.Flags().GetString("db")
	catalogPath, _ := cmd.Flags().GetString("catalog")
	catalogURL, _ := cmd.Flags().GetString("catalog-url")
	generated, _ := cmd.Flags().GetBool("generated")
	return app.Options{
		DBPath:      db,
		CatalogPath: catalogPath,
		CatalogURL:  catalogURL,
		Generated:   generated,
	}
}
