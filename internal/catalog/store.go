package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"slate/internal/config"
	"slate/internal/logging"
)

// ErrNotFound is returned when a title identifier is not in the catalog.
var ErrNotFound = errors.New("title not found")

// Store holds the immutable title and opportunity records for the process
// lifetime. All lookups are read-only after Open.
type Store struct {
	titles []Title
	byID   map[string]int
	opps   map[string][]Opportunity
}

// Open loads the catalog data files referenced by the configuration.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("catalog store requires config")
	}
	logger = logging.NewComponentLogger(logger, "catalog")

	titles, err := loadTitles(cfg.Catalog.TitlesPath)
	if err != nil {
		return nil, err
	}
	opportunities, err := loadOpportunities(cfg.Catalog.OpportunitiesPath)
	if err != nil {
		return nil, err
	}

	store := &Store{
		titles: titles,
		byID:   make(map[string]int, len(titles)),
		opps:   make(map[string][]Opportunity, len(opportunities)),
	}
	for i, title := range titles {
		if _, dup := store.byID[title.ID]; dup {
			return nil, fmt.Errorf("duplicate title id %q in %s", title.ID, cfg.Catalog.TitlesPath)
		}
		store.byID[title.ID] = i
	}
	for _, opp := range opportunities {
		store.opps[opp.TitleID] = append(store.opps[opp.TitleID], opp)
	}

	logger.Info("catalog loaded",
		logging.Int("title_count", len(titles)),
		logging.Int("opportunity_count", len(opportunities)))
	return store, nil
}

func loadTitles(path string) ([]Title, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read titles file: %w", err)
	}
	var titles []Title
	if err := json.Unmarshal(data, &titles); err != nil {
		return nil, fmt.Errorf("parse titles file: %w", err)
	}
	for _, title := range titles {
		if title.ID == "" {
			return nil, fmt.Errorf("title %q missing title_id in %s", title.Name, path)
		}
	}
	return titles, nil
}

func loadOpportunities(path string) ([]Opportunity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read opportunities file: %w", err)
	}
	var opportunities []Opportunity
	if err := json.Unmarshal(data, &opportunities); err != nil {
		return nil, fmt.Errorf("parse opportunities file: %w", err)
	}
	return opportunities, nil
}

// Get returns the title for the given identifier.
func (s *Store) Get(id string) (Title, error) {
	index, ok := s.byID[id]
	if !ok {
		return Title{}, fmt.Errorf("title %q: %w", id, ErrNotFound)
	}
	return s.titles[index], nil
}

// All returns every title in load order. Callers must not mutate the result.
func (s *Store) All() []Title {
	return s.titles
}

// Len reports the number of titles in the catalog.
func (s *Store) Len() int {
	return len(s.titles)
}

// OpportunitiesFor returns the opportunities associated to a title. The result
// is never nil so callers can hand it straight to serialization.
func (s *Store) OpportunitiesFor(titleID string) []Opportunity {
	opps := s.opps[titleID]
	if opps == nil {
		return []Opportunity{}
	}
	return opps
}

// HasOpportunities reports whether any opportunity references the title.
func (s *Store) HasOpportunities(titleID string) bool {
	return len(s.opps[titleID]) > 0
}
