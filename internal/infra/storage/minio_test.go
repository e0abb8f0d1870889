package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectKeyFormat(t *testing.T) {
	at := time.UnixMilli(1700000000000)

	key := objectKey("U1", "leaf.jpg", at)
	assert.Equal(t, "U1/1700000000000_leaf.jpg", key)

	// same owner, same filename, later instant: no collision
	later := objectKey("U1", "leaf.jpg", at.Add(time.Millisecond))
	assert.NotEqual(t, key, later)

	// directory components in the client-supplied name are stripped
	assert.Equal(t, "U1/1700000000000_leaf.jpg", objectKey("U1", "photos/leaf.jpg", at))
}
