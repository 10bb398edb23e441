package model_test

import (
	"sync"
	"testing"

	glm "github.com/go-gl/mathgl/mgl32"
	"github.com/libreskies/libreskies/model"
	"github.com/stretchr/testify/require"
)

func TestMeshTransforms(t *testing.T) {
	var obj model.Object = model.NewMesh(nil, nil)
	require.Equal(t, glm.Ident4(), obj.Position())
	require.Equal(t, glm.Ident4(), obj.Rotation())

	pos := glm.Translate3D(1, 2, 3)
	rot := glm.HomogRotate3DZ(0.5)
	obj.SetPosition(pos)
	obj.SetRotation(rot)

	require.Equal(t, pos, obj.Position())
	require.Equal(t, rot, obj.Rotation())
	require.True(t, obj.(*model.Mesh).Model().ApproxEqual(pos.Mul4(rot)))
}

func TestMeshConcurrentAccess(t *testing.T) {
	mesh := model.NewMesh(nil, nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mesh.SetPosition(glm.Translate3D(float32(i), 0, 0))
			_ = mesh.Position()
		}(i)
	}
	wg.Wait()
}
