package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

// LoadLanguages reads the language registry. The file holds an array of
// language codes or of {"code", "name"} objects. A missing file is reported
// as a wrapped domain.ErrMissingResource.
func LoadLanguages(path string) ([]domain.Language, error) {
	var raw []json.RawMessage
	found, err := readJSON(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("jsonfile.LoadLanguages: %w", err)
	}
	if !found {
		return nil, domain.MissingResourceError("language registry", path)
	}

	langs := make([]domain.Language, 0, len(raw))
	for i, item := range raw {
		item = bytes.TrimSpace(item)
		var lang domain.Language
		if len(item) > 0 && item[0] == '"' {
			if err := json.Unmarshal(item, &lang.Code); err != nil {
				return nil, fmt.Errorf("jsonfile.LoadLanguages: item %d: %w", i, err)
			}
		} else if err := json.Unmarshal(item, &lang); err != nil {
			return nil, fmt.Errorf("jsonfile.LoadLanguages: item %d: %w", i, err)
		}
		lang.Code = strings.TrimSpace(lang.Code)
		if lang.Code != "" {
			langs = append(langs, lang)
		}
	}
	return langs, nil
}

// LoadQuestions reads the question bank: either a bare array of questions or
// an object with a "questions" array. Questions without an id get the
// text-derived id of Question.Key. A missing file is reported as a wrapped
// domain.ErrMissingResource.
func LoadQuestions(path string) ([]domain.Question, error) {
	var raw json.RawMessage
	found, err := readJSON(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("jsonfile.LoadQuestions: %w", err)
	}
	if !found {
		return nil, domain.MissingResourceError("question bank", path)
	}

	raw = bytes.TrimSpace(raw)
	var questions []domain.Question
	if len(raw) > 0 && raw[0] == '{' {
		var wrapper struct {
			Questions []domain.Question `json:"questions"`
		}
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, fmt.Errorf("jsonfile.LoadQuestions: %w", err)
		}
		questions = wrapper.Questions
	} else if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("jsonfile.LoadQuestions: %w", err)
	}

	for i := range questions {
		questions[i].ID = domain.ItemID(questions[i].Key())
	}
	return questions, nil
}

// LoadDocuments reads every file under dir whose extension is in exts,
// sorted by relative path. A missing directory is reported as a wrapped
// domain.ErrMissingResource.
func LoadDocuments(dir string, exts []string) ([]domain.Document, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, domain.MissingResourceError("source directory", dir)
	}

	var docs []domain.Document
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		docs = append(docs, domain.Document{Path: filepath.ToSlash(rel), Text: string(data)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("jsonfile.LoadDocuments: %w", err)
	}

	slices.SortFunc(docs, func(a, b domain.Document) int {
		return strings.Compare(a.Path, b.Path)
	})
	return docs, nil
}
