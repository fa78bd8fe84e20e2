package standings

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"lheq-stats/internal/model"
)

var ErrNoSnapshot = errors.New("no standings loaded")

// DataSource supplies the raw team records for one tournament setting.
type DataSource interface {
	LoadTeams(ctx context.Context, includeTournaments bool) ([]model.TeamRecord, error)
}

// ViewModel owns the current snapshot. Snapshots are replaced, never edited.
type ViewModel struct {
	source    DataSource
	divisions []string
	logger    *logrus.Logger

	mu      sync.RWMutex
	current *Snapshot
	lastErr error
}

func NewViewModel(source DataSource, divisions []string, logger *logrus.Logger) *ViewModel {
	if len(divisions) == 0 {
		divisions = DefaultDivisions
	}
	return &ViewModel{
		source:    source,
		divisions: append([]string(nil), divisions...),
		logger:    logger,
	}
}

func (vm *ViewModel) Divisions() []string {
	return append([]string(nil), vm.divisions...)
}

// Reload fetches the records for includeTournaments and publishes a new
// snapshot. A failed fetch clears the previous snapshot.
func (vm *ViewModel) Reload(ctx context.Context, includeTournaments bool) (*Snapshot, error) {
	snap, err := vm.load(ctx, includeTournaments, "")
	vm.install(snap, err)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Refilter publishes a snapshot of the loaded records with another listing
// filter. It never calls the data source.
func (vm *ViewModel) Refilter(division string) (*Snapshot, error) {
	current := vm.Current()
	if current == nil {
		return nil, ErrNoSnapshot
	}
	snap := current.WithDivision(division)
	vm.install(snap, nil)
	return snap, nil
}

func (vm *ViewModel) Current() *Snapshot {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.current
}

func (vm *ViewModel) Err() error {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.lastErr
}

func (vm *ViewModel) load(ctx context.Context, includeTournaments bool, division string) (*Snapshot, error) {
	records, err := vm.source.LoadTeams(ctx, includeTournaments)
	if err != nil {
		vm.logger.WithError(err).WithField("include_tournaments", includeTournaments).Error("Failed to load teams")
		return nil, &DataSourceError{Op: "load teams", IncludeTournaments: includeTournaments, Err: err}
	}
	records = append([]model.TeamRecord(nil), records...)
	snap := BuildSnapshot(records, includeTournaments, vm.divisions, division)
	vm.logger.WithFields(logrus.Fields{
		"snapshot":            snap.ID,
		"teams":               len(records),
		"include_tournaments": includeTournaments,
	}).Debug("Built standings snapshot")
	return snap, nil
}

func (vm *ViewModel) install(snap *Snapshot, err error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err != nil {
		vm.current = nil
		vm.lastErr = err
		return
	}
	vm.current = snap
	vm.lastErr = nil
}
