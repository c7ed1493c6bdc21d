// ============================================================================
// throwables - Scarpet Exception Taxonomy
// ============================================================================
//
// Package:     taxonomy
// Description: Package documentation
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

/*
Package taxonomy implements the exception type hierarchy used by scarpet
throw/catch handling.

Every exception type has a unique string id and at most one parent. The
hierarchy is a single-rooted tree: the built-in backbone is

	exception
	├── value_exception
	│   ├── unknown_item, unknown_block, unknown_biome, unknown_sound,
	│   └── unknown_particle, unknown_poi, unknown_dimension,
	│       unknown_structure, unknown_criterion
	├── io_exception
	│   ├── nbt_read_error
	│   └── json_read_error
	└── user_exception

Scripts extend the tree at runtime with Register, conventionally below
user_exception. Types are never removed.

A handler declared for filter F catches a thrown type T when T is F or a
transitive subtype of F:

	reg, _ := taxonomy.New()
	ok, err := reg.IsRelevantFor(taxonomy.UnknownBlock, taxonomy.ValueException) // true, nil

Each registry keeps, per type, the set of all types it catches (itself
included) as a bitset over interned type indices, so a match is two map
lookups and a bit test. Registration copies the affected sets into a new
immutable snapshot and publishes it with an atomic pointer swap; readers
never lock and never see a half-registered type.

Referencing an unregistered type, registering an id twice or registering
below an unknown parent fails with an error matching
ErrUnknownExceptionType. Such errors are programming or script errors and
are meant to propagate.
*/
package taxonomy
