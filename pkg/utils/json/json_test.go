package json

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bucket struct {
	Label string    `json:"label"`
	Count int       `json:"count"`
	At    time.Time `json:"at"`
}

func TestRoundTripMatchesStdTags(t *testing.T) {
	in := []bucket{{Label: "19-25", Count: 4, At: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)}}

	data, err := Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"label":"19-25"`)

	var out []bucket
	require.NoError(t, Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
