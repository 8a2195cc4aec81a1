package redis

import (
	"testing"

	options "github.com/kart-io/datanikah/pkg/options/redis"
	"github.com/stretchr/testify/assert"
)

func TestNew_NilOptions(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestClient_Key(t *testing.T) {
	c := &Client{opts: options.NewOptions()}

	assert.Equal(t, "datanikah:stats:2024", c.Key("stats", "2024"))
	assert.Equal(t, "datanikah:", c.Key())
	assert.Equal(t, "redis", c.Name())
	assert.NoError(t, c.Close())
}
