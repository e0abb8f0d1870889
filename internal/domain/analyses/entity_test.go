package analyses

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	a := &Analysis{Prediction: "Common_Rust"}
	assert.Equal(t, "Common Rust", a.DisplayName())

	a.Prediction = "Gray_Leaf_Spot"
	assert.Equal(t, "Gray Leaf Spot", a.DisplayName())

	a.Prediction = "Healthy"
	assert.Equal(t, "Healthy", a.DisplayName())
}

func TestHealthy(t *testing.T) {
	assert.True(t, (&Analysis{Prediction: "Healthy"}).Healthy())
	assert.False(t, (&Analysis{Prediction: "Blight"}).Healthy())
}
