package main

import (
	"fmt"

	"github.com/mcdev12/draftroom/internal/draftorder"
	"github.com/spf13/cobra"
)

var (
	orderRounds       int
	orderParticipants int
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Print the snake draft board for a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if orderParticipants <= 0 || orderRounds <= 0 {
			return fmt.Errorf("participants and rounds must be positive")
		}

		for _, slot := range draftorder.Board(orderRounds, orderParticipants) {
			fmt.Fprintf(cmd.OutOrStdout(), "pick %3d  round %2d  slot %2d\n",
				slot.Overall, slot.Round, slot.Participant)
		}
		return nil
	},
}

func init() {
	orderCmd.Flags().IntVarP(&orderParticipants, "participants", "p", 12, "number of participants")
	orderCmd.Flags().IntVarP(&orderRounds, "rounds", "r", 15, "number of rounds")
}
