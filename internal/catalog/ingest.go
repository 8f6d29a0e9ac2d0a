package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mcdev12/draftroom/internal/models"
	"github.com/rs/zerolog/log"
)

// RankUnranked is the rank assigned to rows whose rank field does not parse.
// It sorts after every real rank.
const RankUnranked = 1<<31 - 1

// Required catalog column labels, matched case-insensitively.
const (
	colRank     = "rank"
	colPlayer   = "player"
	colTeam     = "team"
	colPosition = "position"
	colBye      = "bye"
)

// closedPositions is the recognized position set. Anything else is kept
// verbatim as an open fallback.
var closedPositions = map[models.Position]bool{
	models.PositionQB:  true,
	models.PositionRB:  true,
	models.PositionWR:  true,
	models.PositionTE:  true,
	models.PositionK:   true,
	models.PositionDST: true,
}

// IngestReport summarizes a catalog parse.
type IngestReport struct {
	Accepted      int
	Dropped       int
	Unranked      int
	OpenPositions int // rows whose position fell outside the closed set
}

// ParseCSV reads a catalog in tabular form. The header row is required and
// must name every column in colRank..colBye. Rows with a missing player name
// are dropped; rows whose rank or bye week do not parse are kept with
// sentinel values rather than rejected.
func ParseCSV(r io.Reader) ([]models.Item, IngestReport, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, IngestReport{}, fmt.Errorf("failed to read catalog header: %w", err)
	}

	cols, err := mapHeader(header)
	if err != nil {
		return nil, IngestReport{}, err
	}

	var (
		items  []models.Item
		report IngestReport
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Msg("skipping malformed catalog row")
			report.Dropped++
			continue
		}

		name := strings.TrimSpace(record[cols[colPlayer]])
		if name == "" {
			report.Dropped++
			continue
		}

		rank, ok := parseIntField(record[cols[colRank]])
		if !ok {
			rank = RankUnranked
			report.Unranked++
		}
		bye, ok := parseIntField(record[cols[colBye]])
		if !ok {
			bye = 0
		}

		team := strings.TrimSpace(record[cols[colTeam]])
		position := normalizePosition(record[cols[colPosition]])
		if !closedPositions[position] {
			report.OpenPositions++
		}

		items = append(items, models.Item{
			ID:       models.ItemID(name, team, position),
			Name:     name,
			Position: position,
			Team:     team,
			ByeWeek:  bye,
			Rank:     rank,
		})
		report.Accepted++
	}

	if len(items) == 0 {
		return nil, report, ErrEmptyCatalog
	}
	return items, report, nil
}

// mapHeader resolves the column index of every required label.
func mapHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, label := range header {
		cols[strings.ToLower(strings.TrimSpace(label))] = i
	}
	for _, required := range []string{colRank, colPlayer, colTeam, colPosition, colBye} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("catalog header missing required column %q", required)
		}
	}
	return cols, nil
}

// normalizePosition uppercases the value and strips a trailing numeral
// ("WR1" becomes "WR").
func normalizePosition(raw string) models.Position {
	v := strings.ToUpper(strings.TrimSpace(raw))
	for len(v) > 0 && v[len(v)-1] >= '0' && v[len(v)-1] <= '9' {
		v = v[:len(v)-1]
	}
	// Values outside the closed set pass through verbatim as open fallbacks.
	return models.Position(v)
}

func parseIntField(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}
