package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/internal/models"
)

// ResultRow is one completed pick joined with its item attributes.
type ResultRow struct {
	ParticipantLabel string `json:"participant_label"`
	ItemName         string `json:"item_name"`
	Position         string `json:"position"`
	Team             string `json:"team"`
	Round            int    `json:"round"`
	Overall          int    `json:"overall"`
	Rank             int    `json:"rank"`
	ByeWeek          int    `json:"bye_week"`
}

// ParticipantResult groups a participant's picks in the order they were made.
type ParticipantResult struct {
	Participant models.Participant `json:"participant"`
	Picks       []ResultRow        `json:"picks"`
}

// Results returns, for each participant, their ordered picks joined with
// item attributes. Pure read, no mutation.
func (e *Engine) Results() []ParticipantResult {
	return ResultsFromState(e.Snapshot())
}

// RowsFromState flattens a session snapshot into one row per pick, in
// overall pick order.
func RowsFromState(s models.SessionState) []ResultRow {
	byID := make(map[uuid.UUID]models.Item, len(s.Catalog))
	for _, item := range s.Catalog {
		byID[item.ID] = item
	}

	rows := make([]ResultRow, 0, len(s.Picks))
	for _, pick := range s.Picks {
		item := byID[pick.ItemID]
		label := ""
		if pick.Slot >= 0 && pick.Slot < len(s.Participants) {
			label = s.Participants[pick.Slot].Label
		}
		rows = append(rows, ResultRow{
			ParticipantLabel: label,
			ItemName:         item.Name,
			Position:         string(item.Position),
			Team:             item.Team,
			Round:            pick.Round,
			Overall:          pick.Overall,
			Rank:             item.Rank,
			ByeWeek:          item.ByeWeek,
		})
	}
	return rows
}

// ResultsFromState groups the flattened rows by participant slot.
func ResultsFromState(s models.SessionState) []ParticipantResult {
	rows := RowsFromState(s)
	results := make([]ParticipantResult, len(s.Participants))
	for i, p := range s.Participants {
		results[i] = ParticipantResult{Participant: p}
	}
	for i, pick := range s.Picks {
		if pick.Slot < 0 || pick.Slot >= len(results) {
			continue
		}
		results[pick.Slot].Picks = append(results[pick.Slot].Picks, rows[i])
	}
	return results
}

// WriteResultsCSV writes the export format: one row per pick with
// participant label, player, position, team, round, overall, rank, and bye.
func WriteResultsCSV(w io.Writer, rows []ResultRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"participant", "player", "position", "team", "round", "overall", "rank", "bye"}); err != nil {
		return fmt.Errorf("failed to write results header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.ParticipantLabel,
			r.ItemName,
			r.Position,
			r.Team,
			strconv.Itoa(r.Round),
			strconv.Itoa(r.Overall),
			strconv.Itoa(r.Rank),
			strconv.Itoa(r.ByeWeek),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write result row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
