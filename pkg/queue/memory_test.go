package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryQueue_FIFO(t *testing.T) {
	q := NewInMemoryQueue(10)

	require.NoError(t, q.Enqueue("one"))
	require.NoError(t, q.Enqueue("two"))
	require.NoError(t, q.Enqueue("three"))
	assert.Equal(t, 3, q.Size())

	items, err := q.ReadAllMessages()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"one", "two", "three"}, items)
	assert.Equal(t, 0, q.Size())

	items, err = q.ReadAllMessages()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestInMemoryQueue_Full(t *testing.T) {
	q := NewInMemoryQueue(1)

	require.NoError(t, q.Enqueue("one"))
	assert.Error(t, q.Enqueue("two"))
}

func TestInMemoryQueue_Clear(t *testing.T) {
	q := NewInMemoryQueue(10)

	require.NoError(t, q.Enqueue("one"))
	q.Clear()
	assert.Equal(t, 0, q.Size())
}
