// seehuhn.de/go/ink - a freehand ink engine
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package store keeps named ink documents in a directory.
//
// Each document is stored as two files: NAME.ink.json holds the sections
// and strokes in the format of [Encode], and NAME.png holds a flat image
// snapshot for previews and for hosts which only need the picture.
package store

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"seehuhn.de/go/ink/document"
	"seehuhn.de/go/ink/export"
	"seehuhn.de/go/ink/internal/logging"
)

const (
	strokeExt   = ".ink.json"
	snapshotExt = ".png"
	maxNameLen  = 200
)

var (
	// ErrNotFound is returned when no document of the given name exists.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidName is returned for names which cannot be used as file
	// names.
	ErrInvalidName = errors.New("invalid document name")

	// ErrVersion is returned for files written by a newer format version.
	ErrVersion = errors.New("unsupported format version")
)

// Store is a directory of named documents.
type Store struct {
	dir string
}

// Info describes a stored document.
type Info struct {
	Name     string
	ID       string
	Modified time.Time
	Snapshot bool // a PNG snapshot exists
}

// Open returns the store in dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory of the store.
func (s *Store) Dir() string {
	return s.dir
}

// ValidName reports whether name can be used for a stored document.
func ValidName(name string) bool {
	if name == "" || len(name) > maxNameLen || name[0] == '.' {
		return false
	}
	if strings.TrimSpace(name) != name {
		return false
	}
	return !strings.ContainsFunc(name, func(r rune) bool {
		return r == '/' || r == '\\' || r == ':' || unicode.IsControl(r)
	})
}

func (s *Store) paths(name string) (strokes, snapshot string, err error) {
	if !ValidName(name) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	base := filepath.Join(s.dir, name)
	return base + strokeExt, base + snapshotExt, nil
}

// Save stores doc under name. If snapshot is not nil, it is written as
// the flat image of the document. A document saved under an existing
// name keeps its id. Save returns the id.
func (s *Store) Save(name string, doc *document.Document, snapshot image.Image) (string, error) {
	strokePath, snapPath, err := s.paths(name)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	if _, old, err := s.load(strokePath); err == nil && old != "" {
		id = old
	}

	err = writeAtomic(strokePath, func(f *os.File) error {
		return Encode(f, id, doc)
	})
	if err != nil {
		return "", fmt.Errorf("save %q: %w", name, err)
	}
	if snapshot != nil {
		err = writeAtomic(snapPath, func(f *os.File) error {
			return export.EncodePNG(f, snapshot)
		})
		if err != nil {
			return "", fmt.Errorf("save %q snapshot: %w", name, err)
		}
	}
	logging.Logger().Info("document saved", "name", name, "id", id, "strokes", doc.Len())
	return id, nil
}

// Load reads the document stored under name.
func (s *Store) Load(name string) (*document.Document, error) {
	strokePath, _, err := s.paths(name)
	if err != nil {
		return nil, err
	}
	doc, _, err := s.load(strokePath)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	return doc, nil
}

func (s *Store) load(path string) (doc *document.Document, id string, err error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", ErrNotFound
	} else if err != nil {
		return nil, "", err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Decode(f)
}

// SnapshotPath returns the file name of the image snapshot of name.
func (s *Store) SnapshotPath(name string) (string, error) {
	_, snap, err := s.paths(name)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(snap); errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("snapshot %q: %w", name, ErrNotFound)
	} else if err != nil {
		return "", err
	}
	return snap, nil
}

// List returns the stored documents, most recently modified first.
// Unreadable files are skipped.
func (s *Store) List() ([]Info, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list store: %w", err)
	}
	var res []Info
	for _, e := range entries {
		fname := e.Name()
		name, ok := strings.CutSuffix(fname, strokeExt)
		if !ok || e.IsDir() || !ValidName(name) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		_, id, err := s.load(filepath.Join(s.dir, fname))
		if err != nil {
			logging.Logger().Warn("skipping unreadable document", "name", name, "error", err)
			continue
		}
		_, serr := os.Stat(filepath.Join(s.dir, name+snapshotExt))
		res = append(res, Info{
			Name:     name,
			ID:       id,
			Modified: fi.ModTime(),
			Snapshot: serr == nil,
		})
	}
	slices.SortFunc(res, func(a, b Info) int {
		if c := b.Modified.Compare(a.Modified); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return res, nil
}

// Delete removes the document stored under name, together with its
// snapshot.
func (s *Store) Delete(name string) error {
	strokePath, snapPath, err := s.paths(name)
	if err != nil {
		return err
	}
	err = os.Remove(strokePath)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %q: %w", name, ErrNotFound)
	} else if err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	if err := os.Remove(snapPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %q snapshot: %w", name, err)
	}
	logging.Logger().Info("document deleted", "name", name)
	return nil
}

// writeAtomic writes a file through a temporary file in the same
// directory, so that readers never see a partial file.
func writeAtomic(name string, write func(*os.File) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(name), ".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(f.Name())
		}
	}()

	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	return os.Rename(f.Name(), name)
}
