package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	queryK    int
	queryJSON bool
)

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Find the indexed entries nearest to a text",
	Long: `Embed the query text and return the k nearest stored entries,
ranked ascending by distance. Positions refer to insertion order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := newOptimizer(cfg)
		if err != nil {
			return err
		}

		result, err := opt.Query(cmd.Context(), args[0], queryK)
		if err != nil {
			return fmt.Errorf("query failed: %w", err)
		}

		if queryJSON {
			return json.NewEncoder(os.Stdout).Encode(result)
		}

		if len(result.Positions) == 0 {
			fmt.Println("No results (index is empty)")
			return nil
		}
		for i, pos := range result.Positions {
			line := fmt.Sprintf("%d. position=%d distance=%.4f", i+1, pos, result.Distances[i])
			if i < len(result.Texts) && result.Texts[i] != "" {
				line += fmt.Sprintf(" text=%q", result.Texts[i])
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().IntVarP(&queryK, "top", "k", 5, "number of neighbors to return")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "emit results as JSON")
}
