package model

import (
	"errors"
	"fmt"
	"io"

	glm "github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// package errors
var (
	ErrNoMesh     = errors.New("gltf document contains no meshes")
	ErrNoPosition = errors.New("gltf primitive has no POSITION attribute")
	ErrAccessor   = errors.New("gltf primitive references a missing accessor")
	ErrIndex      = errors.New("gltf index points past the primitive's vertices")
)

// ImportGLTF reads a glTF or GLB document from r and merges the triangles
// of every mesh primitive into one Mesh. Primitives that are not plain
// triangle lists are skipped. Buffers have to be embedded,
// either in the GLB binary chunk or as data URIs.
func ImportGLTF(r io.Reader) (*Mesh, error) {
	var doc gltf.Document
	if err := gltf.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return meshFromDocument(&doc)
}

// OpenGLTF loads a glTF file from disk, external buffers are resolved
// relative to the file.
func OpenGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, err
	}
	return meshFromDocument(doc)
}

func meshFromDocument(doc *gltf.Document) (*Mesh, error) {
	if len(doc.Meshes) == 0 {
		return nil, ErrNoMesh
	}

	var (
		vertices []Vertex
		indices  []uint32
	)
	for _, mesh := range doc.Meshes {
		for i, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}

			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, i, ErrNoPosition)
			}
			if posIdx < 0 || int(posIdx) >= len(doc.Accessors) {
				return nil, fmt.Errorf("mesh %q primitive %d: POSITION %d: %w", mesh.Name, i, posIdx, ErrAccessor)
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, i, err)
			}

			base := uint32(len(vertices))
			for _, p := range positions {
				vertices = append(vertices, Vertex{
					Pos:   glm.Vec3{p[0], p[1], p[2]},
					Color: DefaultColor,
				})
			}

			if prim.Indices == nil {
				// trailing vertices that do not make a triangle are dropped
				for v := 0; v+2 < len(positions); v += 3 {
					indices = append(indices, base+uint32(v), base+uint32(v+1), base+uint32(v+2))
				}
				continue
			}
			if *prim.Indices < 0 || int(*prim.Indices) >= len(doc.Accessors) {
				return nil, fmt.Errorf("mesh %q primitive %d: indices %d: %w", mesh.Name, i, *prim.Indices, ErrAccessor)
			}
			primIndices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, i, err)
			}
			for _, idx := range primIndices[:len(primIndices)-len(primIndices)%3] {
				if int(idx) >= len(positions) {
					return nil, fmt.Errorf("mesh %q primitive %d: index %d: %w", mesh.Name, i, idx, ErrIndex)
				}
				indices = append(indices, base+idx)
			}
		}
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("no triangles: %w", ErrNoMesh)
	}
	return NewMesh(vertices, indices), nil
}
