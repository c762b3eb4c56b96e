// SPDX-License-Identifier: EPL-2.0

// Package stl stores record meshes as binary STL files and reads them back.
//
// Files are written and parsed with github.com/hschendel/stl. Write puts
// the data in a temporary file next to the destination and renames it into
// place, so a failed save never leaves a partial file behind. Read merges
// triangle corners with identical coordinates back into shared vertices,
// which restores the indexed form mesh.Mesh uses.
//
//	m, err := mesh.Build(w, profile, 33.3, res, nil)
//	if err != nil {
//	    return err
//	}
//	if err := stl.Write(stl.FileName(time.Now()), m); err != nil {
//	    return err
//	}
//
// Coordinates are stored in millimeters as float32.
package stl
