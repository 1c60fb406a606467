package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kshimauchi/elki"
)

var (
	resultsStore string
	resultsFull  bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "List and inspect persisted clustering results",
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List result blobs in a store",
	RunE: func(cmd *cobra.Command, args []string) error {
		if resultsStore == "" {
			return fmt.Errorf("store URL is required, use --store flag")
		}

		store, err := openStore(cmd.Context(), resultsStore)
		if err != nil {
			return err
		}
		names, err := store.List(cmd.Context(), "")
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var resultsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a persisted partition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if resultsStore == "" {
			return fmt.Errorf("store URL is required, use --store flag")
		}

		store, err := openStore(cmd.Context(), resultsStore)
		if err != nil {
			return err
		}
		result, err := elki.LoadResult(cmd.Context(), store, args[0])
		if err != nil {
			return err
		}

		if resultsFull {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		printSummary(result)
		return nil
	},
}

func init() {
	resultsCmd.PersistentFlags().StringVar(&resultsStore, "store", "", "result store URL (directory, s3:// or minio://)")
	resultsShowCmd.Flags().BoolVar(&resultsFull, "full", false, "print the full partition as JSON")

	resultsCmd.AddCommand(resultsListCmd)
	resultsCmd.AddCommand(resultsShowCmd)
}
