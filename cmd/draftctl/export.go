package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mcdev12/draftroom/internal/engine"
	"github.com/mcdev12/draftroom/internal/models"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <snapshot.json>",
	Short: "Print the results of a saved session snapshot as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}

		var state models.SessionState
		if err := json.Unmarshal(data, &state); err != nil {
			return fmt.Errorf("failed to parse snapshot: %w", err)
		}

		rows := engine.RowsFromState(state)
		return engine.WriteResultsCSV(cmd.OutOrStdout(), rows)
	},
}
