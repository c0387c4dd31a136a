package catalog

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TheDigger_Go/internal/domain"
)

type fixedRandom float64

func (f fixedRandom) Float64() float64 { return float64(f) }

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.Ores(), 18)
	assert.Len(t, c.Tools(), 10)
	assert.Len(t, c.Producers(), 10)
	assert.Len(t, c.Biomes(), 14)

	assert.Equal(t, "dirt_pickaxe", c.StarterTool().ID)
	assert.Equal(t, "dirt", c.StarterOre())
	assert.Equal(t, 1, c.StarterBiome().ID)
}

func TestBiomeForDepth(t *testing.T) {
	c := MustDefault()

	tests := []struct {
		name  string
		depth float64
		want  int
	}{
		{"surface", 0, 1},
		{"just before boundary", 199.999, 1},
		{"on boundary", 200, 2},
		{"mid range", 5000, 4},
		{"last bounded edge", 14999999999, 13},
		{"unbounded last biome", 15000000000, 14},
		{"far past every range", 1e30, 14},
		{"negative depth", -5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.BiomeForDepth(tt.depth).ID)
		})
	}
}

func TestProducerCost(t *testing.T) {
	c := MustDefault()
	mole, ok := c.Producer("helper_mole")
	require.True(t, ok)

	assert.Equal(t, 100.0, c.ProducerCost(mole, 0))
	assert.Equal(t, 125.0, c.ProducerCost(mole, 1))
	assert.Equal(t, 156.0, c.ProducerCost(mole, 2))
	assert.Equal(t, 931.0, c.ProducerCost(mole, 10))
	assert.Equal(t, 100.0+125.0+156.0, c.BatchProducerCost(mole, 0, 3))
}

func TestToolOrdering(t *testing.T) {
	c := MustDefault()

	assert.Equal(t, 0, c.ToolIndex("dirt_pickaxe"))
	assert.Equal(t, 9, c.ToolIndex("obsidian_pickaxe"))
	assert.Equal(t, -1, c.ToolIndex("laser"))

	next, ok := c.NextTool("dirt_pickaxe")
	require.True(t, ok)
	assert.Equal(t, "sandstone_pickaxe", next.ID)

	_, ok = c.NextTool("obsidian_pickaxe")
	assert.False(t, ok)
}

func TestWeightedRandomOre_Edges(t *testing.T) {
	c := MustDefault()
	ids := []string{"dirt", "sandstone"}

	got, err := c.WeightedRandomOre(fixedRandom(0), ids)
	require.NoError(t, err)
	assert.Equal(t, "dirt", got)

	got, err = c.WeightedRandomOre(fixedRandom(0.999999), ids)
	require.NoError(t, err)
	assert.Equal(t, "sandstone", got)

	_, err = c.WeightedRandomOre(fixedRandom(0.5), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidOre)

	_, err = c.WeightedRandomOre(fixedRandom(0.5), []string{"dirt", "unobtainium"})
	assert.ErrorIs(t, err, domain.ErrInvalidOre)
}

func TestWeightedRandomOre_Distribution(t *testing.T) {
	c := MustDefault()
	rng := rand.New(rand.NewPCG(42, 7))
	ids := []string{"dirt", "sandstone"}

	const draws = 100000
	dirt := 0
	for i := 0; i < draws; i++ {
		got, err := c.WeightedRandomOre(rng, ids)
		require.NoError(t, err)
		if got == "dirt" {
			dirt++
		}
	}

	// 0.95 / (0.95 + 0.7)
	assert.InDelta(t, 0.5758, float64(dirt)/draws, 0.01)
}

func TestNew_RejectsBrokenCatalogs(t *testing.T) {
	ores := []Ore{{ID: "dirt", Name: "Dirt", Value: 1, SpawnChance: 1}}
	tools := []Tool{{ID: "pick", Name: "Pick", Multiplier: 1, OreID: "dirt"}}
	hundred := 100.0
	fifty := 50.0

	tests := []struct {
		name     string
		ores     []Ore
		tools    []Tool
		biomes   []Biome
		errorMsg string
	}{
		{
			name:     "duplicate ore",
			ores:     append(ores, ores[0]),
			tools:    tools,
			biomes:   []Biome{{ID: 1, Name: "Top", Ores: []string{"dirt"}}},
			errorMsg: "duplicate ore",
		},
		{
			name:     "tool references unknown ore",
			ores:     ores,
			tools:    []Tool{{ID: "pick", Multiplier: 1, OreID: "gold"}},
			biomes:   []Biome{{ID: 1, Name: "Top", Ores: []string{"dirt"}}},
			errorMsg: "unknown ore",
		},
		{
			name:     "first biome not at zero",
			ores:     ores,
			tools:    tools,
			biomes:   []Biome{{ID: 1, Name: "Top", MinDepth: 10, Ores: []string{"dirt"}}},
			errorMsg: "start at depth 0",
		},
		{
			name:  "gap between biomes",
			ores:  ores,
			tools: tools,
			biomes: []Biome{
				{ID: 1, Name: "Top", MaxDepth: &fifty, Ores: []string{"dirt"}},
				{ID: 2, Name: "Low", MinDepth: 100, Ores: []string{"dirt"}},
			},
			errorMsg: "previous biome ends",
		},
		{
			name:     "last biome bounded",
			ores:     ores,
			tools:    tools,
			biomes:   []Biome{{ID: 1, Name: "Top", MaxDepth: &hundred, Ores: []string{"dirt"}}},
			errorMsg: "must omit max_depth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.ores, tt.tools, nil, tt.biomes)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestParse_SchemaViolation(t *testing.T) {
	raw := []byte(`
ores:
  - {id: dirt, name: Dirt, rarity: basic, value: 2, spawn_chance: 0}
tools:
  - {id: pick, name: Pick, cost: 0, multiplier: 1, ore: dirt}
auto_diggers: []
biomes:
  - {id: 1, name: Top, min_depth: 0, ores: [dirt]}
`)

	_, err := Parse(raw)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation")
}

func TestParse_MinimalCatalog(t *testing.T) {
	raw := []byte(`
ores:
  - {id: dirt, name: Dirt, rarity: basic, value: 2, spawn_chance: 1}
tools:
  - {id: pick, name: Pick, cost: 0, multiplier: 1, ore: dirt}
auto_diggers: []
biomes:
  - {id: 1, name: Top, min_depth: 0, ores: [dirt]}
`)

	c, err := Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, "pick", c.StarterTool().ID)
	assert.Equal(t, 1, c.BiomeForDepth(1e9).ID)
}
