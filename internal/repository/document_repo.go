// Package repository contains the data access layer
package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"clozedrill/internal/database"
)

// LoadStatus reports how a stored document came back. Missing and corrupt
// documents are expected outcomes, not failures: callers fall back to a
// fresh default value and carry on.
type LoadStatus int

const (
	// LoadOK means the document was found and decoded into the target
	LoadOK LoadStatus = iota
	// LoadEmpty means no document is stored under the key
	LoadEmpty
	// LoadCorrupt means a document was found but could not be decoded
	LoadCorrupt
)

// DocumentRepository stores JSON documents keyed by name. Each learner
// concern (attempt log, level progress) lives under its own key and is
// read and written independently.
type DocumentRepository struct {
	db *database.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *database.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Get loads the document stored under key into out. A missing row reports
// LoadEmpty and a row that fails to decode reports LoadCorrupt; in both
// cases out is left untouched and the error is nil.
func (r *DocumentRepository) Get(key string, out interface{}) (LoadStatus, error) {
	var raw string
	err := r.db.QueryRow("SELECT doc_value FROM documents WHERE doc_key = ?", key).Scan(&raw)
	if err == sql.ErrNoRows {
		return LoadEmpty, nil
	}
	if err != nil {
		return LoadEmpty, fmt.Errorf("failed to load document %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return LoadCorrupt, nil
	}
	return LoadOK, nil
}

// Set stores v as the document under key, replacing any previous value
func (r *DocumentRepository) Set(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", key, err)
	}

	_, err = r.db.Exec(r.db.Dialect.UpsertDocument(), key, string(raw))
	if err != nil {
		return fmt.Errorf("failed to store document %s: %w", key, err)
	}
	return nil
}

// Delete removes the document stored under key, if any
func (r *DocumentRepository) Delete(key string) error {
	_, err := r.db.Exec("DELETE FROM documents WHERE doc_key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", key, err)
	}
	return nil
}
