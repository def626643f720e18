// Package content loads exercise documents from the content directory. The
// documents are read-only JSON files; loading failures surface as LoadError
// so handlers can show a placeholder instead of half-rendered content.
package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"clozedrill/internal/models"
)

// LoadError wraps a failure to read or decode a content document
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("could not load content document %s: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader reads content documents from a directory
type Loader struct {
	dir string
}

// NewLoader creates a loader rooted at the given content directory
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// ClozeTests loads the open-cloze test collection
func (l *Loader) ClozeTests() (*models.ClozeDocument, error) {
	var doc models.ClozeDocument
	if err := l.read("tests.json", &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// WordFormation loads the word-formation exercise collection
func (l *Loader) WordFormation() (*models.WordFormationDocument, error) {
	var doc models.WordFormationDocument
	if err := l.read("word-formation.json", &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Category loads a category drill document by name
func (l *Loader) Category(name string) (*models.CategoryDocument, error) {
	if !validName(name) {
		return nil, &LoadError{Name: name, Err: fmt.Errorf("invalid category name")}
	}
	var doc models.CategoryDocument
	if err := l.read(filepath.Join("categories", name+".json"), &doc); err != nil {
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = name
	}
	return &doc, nil
}

// Level loads the test document for one difficulty tier
func (l *Loader) Level(level models.Level) (*models.LevelDocument, error) {
	var doc models.LevelDocument
	if err := l.read(filepath.Join("levels", string(level)+".json"), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// IntroQuiz loads the one-time entry quiz
func (l *Loader) IntroQuiz() (*models.IntroQuizDocument, error) {
	var doc models.IntroQuizDocument
	if err := l.read("intro-quiz.json", &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (l *Loader) read(name string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(l.dir, name))
	if err != nil {
		return &LoadError{Name: name, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &LoadError{Name: name, Err: err}
	}
	return nil
}

// validName permits simple lowercase slugs only, keeping category lookups
// from escaping the content directory.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		ok := r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !ok {
			return false
		}
	}
	return !strings.HasPrefix(name, "-")
}
