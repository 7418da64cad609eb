package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"insertion-route-service/internal/adapters/distance"
	"insertion-route-service/internal/domain"
)

const (
	CustomerFile = "customer.json"
	DistanceFile = "distance.json"
	OutputFile   = "output.json"
)

// Store writes the intermediate and final JSON files of a run into one directory.
type Store struct {
	Dir string
}

func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("filestore: dir must be non-empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create %q: %w", dir, err)
	}
	return &Store{Dir: dir}, nil
}

func (s *Store) Path(name string) string { return filepath.Join(s.Dir, name) }

// WriteCustomers writes the customer table as a JSON array of records.
func (s *Store) WriteCustomers(customers []domain.Customer) error {
	return s.writeJSON(CustomerFile, customers)
}

// WriteDistances writes the matrix as rows of {from, to, length} entries.
func (s *Store) WriteDistances(m domain.DistanceMatrix) error {
	return s.writeJSON(DistanceFile, distance.Rows(m))
}

// WriteSolution writes one record per route followed by the summary record.
func (s *Store) WriteSolution(sol *domain.Solution) error {
	return s.writeJSON(OutputFile, sol.Records())
}

func (s *Store) ReadCustomers() ([]domain.Customer, error) {
	var out []domain.Customer
	if err := s.readJSON(CustomerFile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) ReadDistances() (domain.DistanceMatrix, error) {
	var rows [][]distance.Entry
	if err := s.readJSON(DistanceFile, &rows); err != nil {
		return nil, err
	}
	m, err := distance.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", DistanceFile, err)
	}
	return m, nil
}

// WriteFile marshals v as indented JSON to path, creating parent directories.
// The temp file is renamed into place so readers never see a partial file.
func WriteFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("write %s: encode: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (s *Store) writeJSON(name string, v any) error {
	return WriteFile(s.Path(name), v)
}

func (s *Store) readJSON(name string, v any) error {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("read %s: decode: %w", name, err)
	}
	return nil
}
