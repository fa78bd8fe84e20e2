package store

import (
	"context"
	"fmt"

	"lheq-stats/internal/model"
)

var Datasets = []model.Dataset{model.DatasetSeason, model.DatasetAll}

// Copy replaces both data sets of dst with the content of src and returns the
// number of teams written per data set. A data set is only written after both
// have been read.
func Copy(ctx context.Context, src, dst Store) (map[model.Dataset]int, error) {
	loaded := make(map[model.Dataset][]model.TeamRecord, len(Datasets))
	for _, dataset := range Datasets {
		teams, err := src.LoadTeams(ctx, dataset.IncludesTournaments())
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", dataset, err)
		}
		loaded[dataset] = teams
	}

	counts := make(map[model.Dataset]int, len(Datasets))
	for _, dataset := range Datasets {
		if err := dst.ReplaceTeams(ctx, dataset, loaded[dataset]); err != nil {
			return counts, fmt.Errorf("replace %s: %w", dataset, err)
		}
		counts[dataset] = len(loaded[dataset])
	}
	return counts, nil
}
