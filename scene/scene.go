// Package scene holds the entities of the running application.
package scene

import (
	"fmt"

	glm "github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/arche/ecs"
	"github.com/mlange-42/arche/generic"
)

// Position is the location of an entity in world space
type Position struct {
	Value glm.Vec3
}

// Velocity is applied to Position on every Step, in units per second
type Velocity struct {
	Value glm.Vec3
}

// Name identifies an entity for humans
type Name string

// New creates an empty scene
func New() *Scene {
	s := &Scene{
		world: ecs.NewWorld(),
	}
	s.spawner = generic.NewMap3[Name, Position, Velocity](&s.world)
	s.positions = generic.NewMap[Position](&s.world)
	s.velocities = generic.NewMap[Velocity](&s.world)
	s.names = generic.NewMap[Name](&s.world)
	s.moving = generic.NewFilter2[Position, Velocity]()
	s.named = generic.NewFilter2[Name, Position]()
	return s
}

// Scene wraps the entity registry. It is not safe for concurrent use.
type Scene struct {
	world ecs.World

	spawner    generic.Map3[Name, Position, Velocity]
	positions  generic.Map[Position]
	velocities generic.Map[Velocity]
	names      generic.Map[Name]

	moving *generic.Filter2[Position, Velocity]
	named  *generic.Filter2[Name, Position]
}

// Spawn creates an entity at pos that is not moving
func (s *Scene) Spawn(name string, pos glm.Vec3) ecs.Entity {
	n := Name(name)
	return s.spawner.NewWith(&n, &Position{Value: pos}, &Velocity{})
}

// Alive reports whether e exists in the scene
func (s *Scene) Alive(e ecs.Entity) bool {
	return s.world.Alive(e)
}

// Position returns where e is
func (s *Scene) Position(e ecs.Entity) (glm.Vec3, bool) {
	if !s.world.Alive(e) || !s.positions.Has(e) {
		return glm.Vec3{}, false
	}
	return s.positions.Get(e).Value, true
}

// SetPosition moves e to pos
func (s *Scene) SetPosition(e ecs.Entity, pos glm.Vec3) bool {
	if !s.world.Alive(e) || !s.positions.Has(e) {
		return false
	}
	s.positions.Get(e).Value = pos
	return true
}

// SetVelocity sets the velocity of e
func (s *Scene) SetVelocity(e ecs.Entity, vel glm.Vec3) bool {
	if !s.world.Alive(e) || !s.velocities.Has(e) {
		return false
	}
	s.velocities.Get(e).Value = vel
	return true
}

// Name returns the name of e
func (s *Scene) Name(e ecs.Entity) string {
	if !s.world.Alive(e) || !s.names.Has(e) {
		return ""
	}
	return string(*s.names.Get(e))
}

// Remove deletes e, removing a dead entity is a no-op
func (s *Scene) Remove(e ecs.Entity) {
	if s.world.Alive(e) {
		s.world.RemoveEntity(e)
	}
}

// Each calls fn for every named entity with a position
func (s *Scene) Each(fn func(e ecs.Entity, name string, pos glm.Vec3)) {
	query := s.named.Query(&s.world)
	for query.Next() {
		name, pos := query.Get()
		fn(query.Entity(), string(*name), pos.Value)
	}
}

// Len returns the number of named entities
func (s *Scene) Len() int {
	var n int
	s.Each(func(ecs.Entity, string, glm.Vec3) { n++ })
	return n
}

// Step advances every moving entity by dt seconds
func (s *Scene) Step(dt float32) {
	query := s.moving.Query(&s.world)
	for query.Next() {
		pos, vel := query.Get()
		pos.Value = pos.Value.Add(vel.Value.Mul(dt))
	}
}

// Populate adds the example entity of the starter application
func Populate(s *Scene) ecs.Entity {
	return s.Spawn("example", glm.Vec3{0, 1, 2})
}

// Describe formats a position the way the starter prints it
func Describe(pos glm.Vec3) string {
	return fmt.Sprintf("Entity position: (%g, %g, %g)", pos.X(), pos.Y(), pos.Z())
}
