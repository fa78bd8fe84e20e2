package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"lheq-stats/internal/model"
)

type dialect struct {
	name          string
	driver        string
	timestampType string
	now           string
	placeholder   func(n int) string
}

var (
	sqliteDialect = dialect{
		name:          "sqlite",
		driver:        "sqlite",
		timestampType: "TEXT",
		now:           "CURRENT_TIMESTAMP",
		placeholder:   func(int) string { return "?" },
	}
	postgresDialect = dialect{
		name:          "postgres",
		driver:        "pgx",
		timestampType: "TIMESTAMPTZ",
		now:           "now()",
		placeholder:   func(n int) string { return fmt.Sprintf("$%d", n) },
	}
)

func (d dialect) placeholders(count int) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = d.placeholder(i + 1)
	}
	return strings.Join(parts, ",")
}

var teamColumns = []string{
	"id", "name", "division", "games_played", "wins", "losses", "ties", "overtime_losses",
	"points", "fair_play_points", "total_points", "goals_for", "goals_against",
	"goal_differential", "penalty_minutes", "home_wins", "home_losses", "home_ties",
	"away_wins", "away_losses", "away_ties", "poc_rating", "poc_adjusted", "local_logo",
}

func selectTeamsQuery(d dialect) string {
	return fmt.Sprintf(`SELECT %s FROM teams WHERE dataset = %s ORDER BY source_order`,
		strings.Join(teamColumns, ", "), d.placeholder(1))
}

func insertTeamQuery(d dialect) string {
	columns := append([]string{"dataset", "source_order"}, teamColumns...)
	return fmt.Sprintf(`INSERT INTO teams (%s) VALUES (%s)`,
		strings.Join(columns, ", "), d.placeholders(len(columns)))
}

func loadSQLTeams(ctx context.Context, db *sql.DB, d dialect, dataset model.Dataset) ([]model.TeamRecord, error) {
	rows, err := db.QueryContext(ctx, selectTeamsQuery(d), string(dataset))
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	teams := []model.TeamRecord{}
	for rows.Next() {
		team, err := scanTeamRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}
	return teams, nil
}

func scanTeamRow(rows *sql.Rows) (model.TeamRecord, error) {
	var (
		t                               model.TeamRecord
		id                              string
		overtimeLosses, fairPlay, total sql.NullInt64
		pocRating, pocAdjusted          sql.NullFloat64
		localLogo                       sql.NullString
	)
	err := rows.Scan(
		&id, &t.Name, &t.Division, &t.GamesPlayed, &t.Wins, &t.Losses, &t.Ties, &overtimeLosses,
		&t.Points, &fairPlay, &total, &t.GoalsFor, &t.GoalsAgainst,
		&t.GoalDifferential, &t.PenaltyMinutes, &t.HomeWins, &t.HomeLosses, &t.HomeTies,
		&t.AwayWins, &t.AwayLosses, &t.AwayTies, &pocRating, &pocAdjusted, &localLogo,
	)
	if err != nil {
		return model.TeamRecord{}, err
	}
	t.ID = model.TeamID(id)
	t.OvertimeLosses = nullInt(overtimeLosses)
	t.FairPlayPoints = nullInt(fairPlay)
	t.TotalPoints = nullInt(total)
	t.POCRating = nullFloat(pocRating)
	t.POCAdjusted = nullFloat(pocAdjusted)
	if localLogo.Valid {
		t.LocalLogo = model.StringPtr(localLogo.String)
	}
	return t, nil
}

// replaceSQLTeams swaps the whole data set in one transaction.
func replaceSQLTeams(ctx context.Context, db *sql.DB, d dialect, dataset model.Dataset, teams []model.TeamRecord) error {
	if err := checkDataset(dataset); err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM teams WHERE dataset = %s`, d.placeholder(1)), string(dataset)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear %s teams: %w", dataset, err)
	}
	stmt, err := tx.PrepareContext(ctx, insertTeamQuery(d))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range teams {
		_, err := stmt.ExecContext(ctx,
			string(dataset), i,
			string(t.ID), t.Name, t.Division, t.GamesPlayed, t.Wins, t.Losses, t.Ties, intArg(t.OvertimeLosses),
			t.Points, intArg(t.FairPlayPoints), intArg(t.TotalPoints), t.GoalsFor, t.GoalsAgainst,
			t.GoalDifferential, t.PenaltyMinutes, t.HomeWins, t.HomeLosses, t.HomeTies,
			t.AwayWins, t.AwayLosses, t.AwayTies, floatArg(t.POCRating), floatArg(t.POCAdjusted), stringArg(t.LocalLogo),
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert team %s: %w", t.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace tx: %w", err)
	}
	return nil
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	return model.IntPtr(int(v.Int64))
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return model.FloatPtr(v.Float64)
}

func intArg(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func floatArg(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func stringArg(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
