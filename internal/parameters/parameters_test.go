package parameters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigString(t *testing.T) {
	params := NewFromConfigString("preset=forager, avoid=2,capsules,food_weight=-35.5,turn=250ms,seed=7,")
	assert.Len(t, params, 6)
	assert.Equal(t, "avoid=2,capsules,food_weight=-35.5,preset=forager,seed=7,turn=250ms", params.String())

	preset, err := PopParamOr(params, "preset", "raider")
	require.NoError(t, err)
	assert.Equal(t, "forager", preset)

	avoid, err := PopParamOr(params, "avoid", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, avoid)

	capsules, err := PopParamOr(params, "capsules", false)
	require.NoError(t, err)
	assert.True(t, capsules)

	weight, err := PopParamOr(params, "food_weight", float32(-20))
	require.NoError(t, err)
	assert.Equal(t, float32(-35.5), weight)

	turn, err := PopParamOr(params, "turn", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, turn)

	require.Error(t, CheckAllUsed(params))
	seed, err := PopParamOr(params, "seed", uint64(0))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), seed)
	assert.NoError(t, CheckAllUsed(params))

	// Missing keys return the default.
	missing, err := GetParamOr(params, "missing", 3.5)
	require.NoError(t, err)
	assert.Equal(t, 3.5, missing)
}

func TestParseErrors(t *testing.T) {
	params := NewFromConfigString("avoid=far,capsules=maybe,turn=soon,seed=-1")
	_, err := GetParamOr(params, "avoid", 0)
	assert.Error(t, err)
	_, err = GetParamOr(params, "capsules", false)
	assert.Error(t, err)
	_, err = GetParamOr(params, "turn", time.Second)
	assert.Error(t, err)
	_, err = GetParamOr(params, "seed", uint64(0))
	assert.Error(t, err)

	// Failed pops keep the parameter.
	_, err = PopParamOr(params, "avoid", 0)
	assert.Error(t, err)
	assert.Contains(t, params, "avoid")
	err = CheckAllUsed(params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"avoid", "capsules", "seed", "turn"`)
}
