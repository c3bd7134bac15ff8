// Package alfa resolves a directory written by the MG-ALFA modeling tool into
// a navigable object model.
//
// This package contains:
//   - Locate, which turns a file or directory path into exactly one model file
//   - Model, which enumerates the artifacts that live next to a model file
//     (table files, run identifiers, the advisory lock marker)
//   - Run, the record of one projection run: its metadata sidecar, its log
//     files and its lazily loaded output table
//   - AssetInput, the asset input descriptor consumed when building inputs
//
// File naming is driven entirely by Conventions so that alternate layouts can
// be supported by substitution. Nothing in this package writes to disk.
package alfa
