// Package scarpet is the interpreter-facing side of the exception taxonomy:
// raising typed exceptions, picking the handler that catches them and
// declaring script-defined types.
//
// The interpreter owns one *taxonomy.Registry and passes it to every call.
package scarpet
