// Package model holds meshes loaded from asset files.
package model

import (
	"sync"

	glm "github.com/go-gl/mathgl/mgl32"
)

// Object represents the engine supported model
type Object interface {

	// SetPosition sets the object's current position in space.
	// Has to be thread-safe
	SetPosition(glm.Mat4)

	// Position gets the object's current position in space.
	// Has to be thread-safe
	Position() glm.Mat4

	// SetRotation sets the object's rotation matrix.
	// Has to be thread-safe
	SetRotation(glm.Mat4)

	// Rotation gets the object's rotation matrix.
	// Has to be thread-safe
	Rotation() glm.Mat4

	// Vertices returns the vertices of every primitive, back to back
	Vertices() []Vertex

	// Indices index into Vertices, three per triangle
	Indices() []uint32
}

// Vertex is a model vertex
type Vertex struct {
	Pos   glm.Vec3
	Color glm.Vec4
}

// DefaultColor is given to vertices without color data
var DefaultColor = glm.Vec4{1.0, 1.0, 0.0, 1.0}

// Mesh is an Object held in memory
type Mesh struct {
	mutex    sync.RWMutex
	position glm.Mat4
	rotation glm.Mat4

	vertices []Vertex
	indices  []uint32
}

// NewMesh creates a Mesh placed at the origin
func NewMesh(vertices []Vertex, indices []uint32) *Mesh {
	return &Mesh{
		position: glm.Ident4(),
		rotation: glm.Ident4(),
		vertices: vertices,
		indices:  indices,
	}
}

// SetPosition implements interface
func (m *Mesh) SetPosition(pos glm.Mat4) {
	m.mutex.Lock()
	m.position = pos
	m.mutex.Unlock()
}

// Position implements interface
func (m *Mesh) Position() glm.Mat4 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.position
}

// SetRotation implements interface
func (m *Mesh) SetRotation(rot glm.Mat4) {
	m.mutex.Lock()
	m.rotation = rot
	m.mutex.Unlock()
}

// Rotation implements interface
func (m *Mesh) Rotation() glm.Mat4 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.rotation
}

// Vertices implements interface
func (m *Mesh) Vertices() []Vertex {
	return m.vertices
}

// Indices implements interface
func (m *Mesh) Indices() []uint32 {
	return m.indices
}

// Model returns the model matrix, rotation applied before translation
func (m *Mesh) Model() glm.Mat4 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.position.Mul4(m.rotation)
}
