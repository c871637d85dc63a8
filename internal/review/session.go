package review

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/backmassage/reviewtool/internal/naming"
)

// ErrEmptySourceDir is returned when a session names no source folder.
var ErrEmptySourceDir = errors.New("session has no source_dir")

// Item is one image in a review session, in display order.
type Item struct {
	File   string       `yaml:"file"` // relative to the session's source folder
	Label  string       `yaml:"label"`
	Status Status       `yaml:"status"`
	Reason RejectReason `yaml:"reason,omitempty"`
}

// Session is the operator-edited record of a review.
type Session struct {
	BookID    string `yaml:"book_id,omitempty"`
	Reviewer  string `yaml:"reviewer,omitempty"`
	SourceDir string `yaml:"source_dir"`
	Items     []Item `yaml:"items"`
}

// ReviewItem is an Item resolved against the session's source folder.
type ReviewItem struct {
	SourcePath string
	FileName   string
	Ext        string
	Label      string
	Verdict    Verdict
}

// Review resolves the session's items, keeping their order. A Reason on a
// non-rejected item is dropped.
func (s *Session) Review() []ReviewItem {
	out := make([]ReviewItem, 0, len(s.Items))
	for _, it := range s.Items {
		v := Verdict{Status: it.Status}
		if it.Status == Rejected {
			v.Reason = it.Reason
		}
		path := it.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.SourceDir, it.File)
		}
		out = append(out, ReviewItem{
			SourcePath: path,
			FileName:   filepath.Base(path),
			Ext:        filepath.Ext(path),
			Label:      it.Label,
			Verdict:    v,
		})
	}
	return out
}

// Counts returns how many items carry each status.
func (s *Session) Counts() (pending, accepted, rejected int) {
	for _, it := range s.Items {
		switch it.Status {
		case Accepted:
			accepted++
		case Rejected:
			rejected++
		default:
			pending++
		}
	}
	return pending, accepted, rejected
}

// Load reads a session file. A relative source_dir is resolved against the
// directory containing the file.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", path, err)
	}
	if strings.TrimSpace(s.SourceDir) == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptySourceDir)
	}
	if !filepath.IsAbs(s.SourceDir) {
		s.SourceDir = filepath.Join(filepath.Dir(path), s.SourceDir)
	}
	return &s, nil
}

// Save writes s to path as YAML.
func Save(path string, s *Session) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Scaffold creates a session with one pending item per file. When suggest
// is set, labels are prefilled with sequential page numbers starting at 1.
func Scaffold(sourceDir string, files []string, suggest bool) *Session {
	s := &Session{SourceDir: sourceDir, Items: make([]Item, 0, len(files))}
	sg := naming.NewSuggester(1, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(sourceDir, f)
		if err != nil {
			rel = filepath.Base(f)
		}
		it := Item{File: filepath.ToSlash(rel)}
		if suggest {
			it.Label = sg.Next()
		}
		s.Items = append(s.Items, it)
	}
	return s
}
