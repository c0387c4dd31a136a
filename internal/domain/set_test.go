package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_MarshalsAsSortedArray(t *testing.T) {
	s := NewSet("stone", "dirt", "gold")

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["dirt","gold","stone"]`, string(data))
}

func TestSet_UnmarshalDeduplicates(t *testing.T) {
	var s Set[int]
	require.NoError(t, json.Unmarshal([]byte(`[3,1,3,2,1]`), &s))

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []int{1, 2, 3}, s.Values())
}

func TestSet_UnmarshalNull(t *testing.T) {
	var s Set[string]
	require.NoError(t, json.Unmarshal([]byte(`null`), &s))

	assert.Equal(t, 0, s.Len())
	assert.True(t, s.Add("dirt"))
}

func TestSet_AddReportsNewMembers(t *testing.T) {
	var s Set[string]

	assert.True(t, s.Add("dirt"))
	assert.False(t, s.Add("dirt"))
	assert.True(t, s.Has("dirt"))
}

func TestSet_CloneIsIndependent(t *testing.T) {
	s := NewSet(1)
	c := s.Clone()
	c.Add(2)

	assert.False(t, s.Has(2))
	assert.True(t, c.Has(2))
	assert.False(t, s.Equal(c))
}

func TestPlayerSnapshot_CloneIsDeep(t *testing.T) {
	s := PlayerSnapshot{
		CurrentTool:          "dirt_pickaxe",
		AutoDiggers:          map[string]int{"helper_mole": 1},
		OreInventory:         map[string]int{"dirt": 4},
		DiscoveredOres:       NewSet("dirt"),
		DiscoveredBiomes:     NewSet(1),
		UnlockedAchievements: NewSet[string](),
	}

	c := s.Clone()
	c.AutoDiggers["helper_mole"] = 5
	c.OreInventory["gold"] = 1
	c.DiscoveredOres.Add("gold")
	c.UnlockedAchievements.Add("clicks_10")

	assert.Equal(t, 1, s.AutoDiggers["helper_mole"])
	assert.NotContains(t, s.OreInventory, "gold")
	assert.False(t, s.DiscoveredOres.Has("gold"))
	assert.Equal(t, 0, s.UnlockedAchievements.Len())
	assert.False(t, s.Equal(c))
}

func TestPlayerSnapshot_EqualIgnoresZeroCounts(t *testing.T) {
	a := PlayerSnapshot{AutoDiggers: map[string]int{"helper_mole": 0}}
	b := PlayerSnapshot{}

	assert.True(t, a.Equal(b))
}

func TestIsRejection(t *testing.T) {
	assert.True(t, IsRejection(ErrInsufficientFunds))
	assert.True(t, IsRejection(ErrInvalidTransition))
	assert.True(t, IsRejection(ErrInvalidQuantity))
	assert.False(t, IsRejection(ErrInvalidOre))
	assert.False(t, IsRejection(ErrUnknownTool))
	assert.False(t, IsRejection(nil))
}
