package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/orrery/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// ParseOBJ reads vertex positions and faces from OBJ text. Texture and
// normal references in face records are ignored. Polygons are split into
// triangle fans; corners that do not resolve to a vertex are dropped, and
// faces left with fewer than three corners are skipped.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	mesh := NewMesh("obj")
	sc := bufio.NewScanner(r)
	lineNo := 0

	var corners []int
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var xyz [3]float64
			for i := range 3 {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				xyz[i] = v
			}
			mesh.Vertices = append(mesh.Vertices, math3d.V3(xyz[0], xyz[1], xyz[2]))

		case "f":
			corners = corners[:0]
			for _, ref := range fields[1:] {
				if idx, ok := resolveIndex(ref, len(mesh.Vertices)); ok {
					corners = append(corners, idx)
				}
			}
			for i := 1; i+1 < len(corners); i++ {
				mesh.Faces = append(mesh.Faces, [3]int{corners[0], corners[i], corners[i+1]})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}
	if len(mesh.Faces) == 0 {
		return nil, ErrNoGeometry
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// resolveIndex turns a face corner like "7", "7/2" or "-1//3" into a
// zero-based vertex index. Negative indices count back from the last
// vertex defined so far.
func resolveIndex(ref string, count int) (int, bool) {
	head, _, _ := strings.Cut(ref, "/")
	n, err := strconv.Atoi(head)
	if err != nil || n == 0 {
		return 0, false
	}
	if n < 0 {
		n = count + n
	} else {
		n--
	}
	if n < 0 || n >= count {
		return 0, false
	}
	return n, true
}
