package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"lheq-stats/internal/model"
)

// FileStore reads the data sets from the directory the stats generator
// writes to (teams.json and teams_season.json).
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("data dir is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat data dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data dir %s is not a directory", dir)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Path(dataset model.Dataset) string {
	return filepath.Join(s.dir, dataset.FileName())
}

func (s *FileStore) LoadTeams(ctx context.Context, includeTournaments bool) ([]model.TeamRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.Path(model.DatasetFor(includeTournaments))
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	teams, err := DecodeTeams(content)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return teams, nil
}

// ReplaceTeams rewrites the data set file. The new content is written next to
// the old file and renamed over it.
func (s *FileStore) ReplaceTeams(ctx context.Context, dataset model.Dataset, teams []model.TeamRecord) error {
	if err := checkDataset(dataset); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if teams == nil {
		teams = []model.TeamRecord{}
	}
	content, err := json.MarshalIndent(teams, "", "  ")
	if err != nil {
		return fmt.Errorf("encode teams: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(dataset)
	tmp, err := os.CreateTemp(s.dir, "."+dataset.FileName()+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// DecodeTeams parses a data set document: a JSON array of team records.
func DecodeTeams(content []byte) ([]model.TeamRecord, error) {
	var teams []model.TeamRecord
	if err := json.Unmarshal(content, &teams); err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []model.TeamRecord{}
	}
	return teams, nil
}
