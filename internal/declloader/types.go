// ============================================================================
// throwables - Scarpet Exception Taxonomy
// ============================================================================
//
// Package:     declloader
// Description: YAML exception declaration files
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package declloader

import (
	"strings"

	mdwerrors "github.com/msto63/throwables/pkg/core/errors"
	"github.com/msto63/throwables/pkg/core/version"
	"github.com/msto63/throwables/pkg/taxonomy"
)

// File is one declaration file:
//
//	schema: 1
//	exceptions:
//	  - id: quota_error
//	    description: Player exceeded a quota
//	  - id: disk_quota_error
//	    parent: quota_error
type File struct {
	Schema     int     `yaml:"schema,omitempty"`
	Exceptions []Entry `yaml:"exceptions"`

	// Internal tracking (not from YAML)
	SourceFile string `yaml:"-"`
}

// Entry declares one exception type
type Entry struct {
	ID          string `yaml:"id"`
	Parent      string `yaml:"parent,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Defaults fills the schema and attaches parentless entries to rootBranch
func (f *File) Defaults(rootBranch string) {
	if f.Schema == 0 {
		f.Schema = 1
	}
	for i := range f.Exceptions {
		f.Exceptions[i].ID = strings.TrimSpace(f.Exceptions[i].ID)
		f.Exceptions[i].Parent = strings.TrimSpace(f.Exceptions[i].Parent)
		if f.Exceptions[i].Parent == "" {
			f.Exceptions[i].Parent = rootBranch
		}
	}
}

// Validate checks the file shape. Whether ids and parents resolve is left
// to the registry.
func (f *File) Validate() error {
	if !version.SupportsSchema(f.Schema) {
		return invalid(ErrUnsupportedSchema, "schema", f.Schema)
	}

	seen := make(map[string]bool, len(f.Exceptions))
	for i, e := range f.Exceptions {
		if e.ID == "" {
			return invalid(ErrMissingID, "index", i)
		}
		if seen[e.ID] {
			return invalid(ErrDuplicateEntry, "id", e.ID)
		}
		seen[e.ID] = true
	}
	return nil
}

// Declarations converts the entries for taxonomy registration
func (f *File) Declarations() []taxonomy.Declaration {
	decls := make([]taxonomy.Declaration, len(f.Exceptions))
	for i, e := range f.Exceptions {
		decls[i] = taxonomy.Declaration{ID: e.ID, Parent: e.Parent}
	}
	return decls
}

func invalid(err error, key string, value interface{}) error {
	return mdwerrors.Wrap(err, "invalid declaration file").
		WithCode(mdwerrors.CodeInvalidDeclaration).
		WithDetail(key, value)
}
