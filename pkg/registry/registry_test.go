package registry

import (
	"testing"

	gametypes "github.com/calexi/crossfire/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlayer(id string) *gametypes.Player {
	return gametypes.NewPlayer(id, gametypes.Vector3{X: 0, Y: 2, Z: 0}, 100)
}

func TestRegistry_AddGetRemove(t *testing.T) {
	reg := NewRegistry()

	_, ok := reg.Get("alpha")
	assert.False(t, ok)
	assert.False(t, reg.Remove("alpha"))

	reg.Add(testPlayer("alpha"))
	assert.Equal(t, 1, reg.Len())

	player, ok := reg.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "alpha", player.ID)
	assert.Equal(t, 100, player.Health)
	assert.True(t, player.Alive)

	assert.True(t, reg.Remove("alpha"))
	assert.Equal(t, 0, reg.Len())
	_, ok = reg.Get("alpha")
	assert.False(t, ok)
}

func TestRegistry_GetReturnsCopy(t *testing.T) {
	reg := NewRegistry()
	reg.Add(testPlayer("alpha"))

	player, _ := reg.Get("alpha")
	player.Health = 1

	unchanged, _ := reg.Get("alpha")
	assert.Equal(t, 100, unchanged.Health)
}

func TestRegistry_Mutate(t *testing.T) {
	reg := NewRegistry()
	reg.Add(testPlayer("alpha"))

	ok := reg.Mutate("alpha", func(p *gametypes.Player) {
		p.Score++
		p.Health = 60
	})
	require.True(t, ok)

	player, _ := reg.Get("alpha")
	assert.Equal(t, 1, player.Score)
	assert.Equal(t, 60, player.Health)

	called := false
	ok = reg.Mutate("ghost", func(p *gametypes.Player) {
		called = true
	})
	assert.False(t, ok)
	assert.False(t, called)
}

func TestRegistry_Snapshot(t *testing.T) {
	reg := NewRegistry()
	reg.Add(testPlayer("alpha"))
	reg.Add(testPlayer("bravo"))

	snapshot := reg.Snapshot()
	require.Len(t, snapshot, 2)

	// snapshot entries are copies
	snapshot["alpha"].Health = 1
	player, _ := reg.Get("alpha")
	assert.Equal(t, 100, player.Health)
}
