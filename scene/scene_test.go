package scene_test

import (
	"testing"

	glm "github.com/go-gl/mathgl/mgl32"
	"github.com/libreskies/libreskies/scene"
	"github.com/mlange-42/arche/ecs"
	"github.com/stretchr/testify/require"
)

func TestPopulate(t *testing.T) {
	s := scene.New()
	e := scene.Populate(s)

	pos, ok := s.Position(e)
	require.True(t, ok)
	require.Equal(t, glm.Vec3{0, 1, 2}, pos)
	require.Equal(t, "example", s.Name(e))
	require.Equal(t, "Entity position: (0, 1, 2)", scene.Describe(pos))
	require.Equal(t, 1, s.Len())
}

func TestStep(t *testing.T) {
	s := scene.New()
	moving := s.Spawn("moving", glm.Vec3{0, 0, 0})
	still := s.Spawn("still", glm.Vec3{1, 1, 1})
	require.True(t, s.SetVelocity(moving, glm.Vec3{2, 0, -4}))

	s.Step(0.5)

	pos, _ := s.Position(moving)
	require.True(t, pos.ApproxEqual(glm.Vec3{1, 0, -2}))
	pos, _ = s.Position(still)
	require.Equal(t, glm.Vec3{1, 1, 1}, pos)
}

func TestRemove(t *testing.T) {
	s := scene.New()
	e := s.Spawn("gone", glm.Vec3{})
	s.Remove(e)
	s.Remove(e)

	require.False(t, s.Alive(e))
	_, ok := s.Position(e)
	require.False(t, ok)
	require.False(t, s.SetPosition(e, glm.Vec3{1, 2, 3}))
	require.Empty(t, s.Name(e))
	require.Zero(t, s.Len())
}

func TestEach(t *testing.T) {
	s := scene.New()
	a := s.Spawn("a", glm.Vec3{1, 0, 0})
	b := s.Spawn("b", glm.Vec3{0, 1, 0})
	require.True(t, s.SetPosition(b, glm.Vec3{0, 5, 0}))

	seen := map[ecs.Entity]glm.Vec3{}
	s.Each(func(e ecs.Entity, name string, pos glm.Vec3) {
		seen[e] = pos
	})
	require.Equal(t, map[ecs.Entity]glm.Vec3{
		a: {1, 0, 0},
		b: {0, 5, 0},
	}, seen)
}
