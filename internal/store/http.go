package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"lheq-stats/internal/model"
)

const (
	DefaultHTTPTimeout = 10 * time.Second
	DefaultCacheTTL    = 5 * time.Minute
)

// HTTPError is returned when the remote data set answers with a non-200 status.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream status %d for %s", e.StatusCode, e.URL)
}

type cachedTeams struct {
	teams     []model.TeamRecord
	fetchedAt time.Time
}

// HTTPStore reads the published data set files from a static site. It is
// read-only.
type HTTPStore struct {
	baseURL    string
	httpClient *http.Client
	ttl        time.Duration
	logger     *logrus.Logger
	now        func() time.Time

	cacheMu sync.RWMutex
	cache   map[model.Dataset]cachedTeams
}

type HTTPOptions struct {
	Timeout  time.Duration
	CacheTTL time.Duration
	Client   *http.Client
}

func NewHTTPStore(baseURL string, opts HTTPOptions, logger *logrus.Logger) (*HTTPStore, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("data url is required")
	}
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultHTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPStore{
		baseURL:    baseURL,
		httpClient: client,
		ttl:        opts.CacheTTL,
		logger:     logger,
		now:        time.Now,
		cache:      make(map[model.Dataset]cachedTeams),
	}, nil
}

func (s *HTTPStore) URL(dataset model.Dataset) string {
	return s.baseURL + "/" + dataset.FileName()
}

func (s *HTTPStore) LoadTeams(ctx context.Context, includeTournaments bool) ([]model.TeamRecord, error) {
	dataset := model.DatasetFor(includeTournaments)

	if s.ttl > 0 {
		s.cacheMu.RLock()
		cached, ok := s.cache[dataset]
		s.cacheMu.RUnlock()
		if ok && s.now().Sub(cached.fetchedAt) < s.ttl {
			return cloneTeams(cached.teams), nil
		}
	}

	teams, err := s.fetch(ctx, s.URL(dataset))
	if err != nil {
		return nil, err
	}

	if s.ttl > 0 {
		s.cacheMu.Lock()
		s.cache[dataset] = cachedTeams{teams: teams, fetchedAt: s.now()}
		s.cacheMu.Unlock()
	}
	return cloneTeams(teams), nil
}

func (s *HTTPStore) ReplaceTeams(ctx context.Context, dataset model.Dataset, teams []model.TeamRecord) error {
	return fmt.Errorf("replace %s: http store is read-only", dataset)
}

// Invalidate drops the cached data sets.
func (s *HTTPStore) Invalidate() {
	s.cacheMu.Lock()
	s.cache = make(map[model.Dataset]cachedTeams)
	s.cacheMu.Unlock()
}

func (s *HTTPStore) fetch(ctx context.Context, url string) ([]model.TeamRecord, error) {
	s.logger.WithField("url", url).Debug("Fetching teams")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.WithError(err).WithField("url", url).Error("HTTP request failed")
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"url":         url,
		}).Error("Teams request failed")
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	teams, err := DecodeTeams(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return teams, nil
}
