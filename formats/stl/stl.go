// SPDX-License-Identifier: EPL-2.0

package stl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	hstl "github.com/hschendel/stl"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ik5/grooverider/mesh"
)

const solidName = "grooverider record"

// FileName returns the default output name for a mesh built at t.
func FileName(t time.Time) string {
	return "record_" + t.Format("20060102_150405") + ".stl"
}

func toVec3(v r3.Vec) hstl.Vec3 {
	return hstl.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

func solid(m *mesh.Mesh) (*hstl.Solid, error) {
	if m == nil || len(m.Faces) == 0 {
		return nil, ErrEmptyMesh
	}

	s := &hstl.Solid{
		Name:      solidName,
		Triangles: make([]hstl.Triangle, len(m.Faces)),
	}
	for i, f := range m.Faces {
		for _, v := range f {
			if v < 0 || v >= len(m.Vertices) {
				return nil, fmt.Errorf("%w: face %d uses %d of %d",
					mesh.ErrIndexOutOfRange, i, v, len(m.Vertices))
			}
		}

		s.Triangles[i] = hstl.Triangle{
			Normal: toVec3(m.Normal(f)),
			Vertices: [3]hstl.Vec3{
				toVec3(m.Vertices[f[0]]),
				toVec3(m.Vertices[f[1]]),
				toVec3(m.Vertices[f[2]]),
			},
		}
	}
	return s, nil
}

// Encode writes m to w as binary STL.
func Encode(w io.Writer, m *mesh.Mesh) error {
	s, err := solid(m)
	if err != nil {
		return err
	}
	return writeSolid(w, s)
}

func writeSolid(w io.Writer, s *hstl.Solid) error {
	bw := bufio.NewWriterSize(w, 64*1024)
	if err := s.WriteAll(bw); err != nil {
		return fmt.Errorf("encoding STL: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("encoding STL: %w", err)
	}
	return nil
}

// Write stores m at path. The file appears only once it is complete; on
// failure the destination is left as it was.
func Write(path string, m *mesh.Mesh) error {
	if err := write(path, m); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func write(path string, m *mesh.Mesh) (err error) {
	s, err := solid(m)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".grooverider-*.stl")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = writeSolid(tmp, s); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Decode parses an ASCII or binary STL stream. The format is sniffed from
// the header, so r must be able to seek back.
func Decode(r io.ReadSeeker) (*mesh.Mesh, error) {
	s, err := hstl.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decoding STL: %w", err)
	}
	return fromSolid(s)
}

// Read parses the STL file at path.
func Read(path string) (*mesh.Mesh, error) {
	s, err := hstl.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	m, err := fromSolid(s)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return m, nil
}

func fromSolid(s *hstl.Solid) (*mesh.Mesh, error) {
	if len(s.Triangles) == 0 {
		return nil, ErrEmptyMesh
	}

	m := &mesh.Mesh{Faces: make([]mesh.Face, len(s.Triangles))}
	seen := make(map[hstl.Vec3]int, len(s.Triangles)/2)

	for i, t := range s.Triangles {
		for c, v := range t.Vertices {
			idx, ok := seen[v]
			if !ok {
				idx = len(m.Vertices)
				seen[v] = idx
				m.Vertices = append(m.Vertices, r3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])})
			}
			m.Faces[i][c] = idx
		}
	}
	return m, nil
}
