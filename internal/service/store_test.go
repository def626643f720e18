package service

import (
	"encoding/json"

	"clozedrill/internal/repository"
)

// fakeStore is an in-memory DocumentStore for service tests. Documents are
// held as JSON so encode/decode behaves like the real repository.
type fakeStore struct {
	docs    map[string]string
	corrupt map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		docs:    make(map[string]string),
		corrupt: make(map[string]bool),
	}
}

func (s *fakeStore) Get(key string, out interface{}) (repository.LoadStatus, error) {
	if s.corrupt[key] {
		return repository.LoadCorrupt, nil
	}
	raw, ok := s.docs[key]
	if !ok {
		return repository.LoadEmpty, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return repository.LoadCorrupt, nil
	}
	return repository.LoadOK, nil
}

func (s *fakeStore) Set(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.docs[key] = string(raw)
	return nil
}
