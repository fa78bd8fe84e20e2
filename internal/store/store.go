package store

import (
	"context"
	"errors"
	"fmt"

	"lheq-stats/internal/model"
)

var ErrUnknownDataset = errors.New("unknown dataset")

// Store supplies team records for both data sets. LoadTeams matches the
// standings data source; ReplaceTeams swaps a whole data set at once.
type Store interface {
	LoadTeams(ctx context.Context, includeTournaments bool) ([]model.TeamRecord, error)
	ReplaceTeams(ctx context.Context, dataset model.Dataset, teams []model.TeamRecord) error
}

func checkDataset(dataset model.Dataset) error {
	if !dataset.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDataset, dataset)
	}
	return nil
}

func cloneTeams(teams []model.TeamRecord) []model.TeamRecord {
	out := make([]model.TeamRecord, 0, len(teams))
	for _, team := range teams {
		out = append(out, team.Clone())
	}
	return out
}
