package catalog

import (
	"fmt"
	"math"

	"github.com/osse101/TheDigger_Go/internal/domain"
)

// Rarity is an ore tier, used for display only.
type Rarity string

// Ore is a mineable resource.
type Ore struct {
	ID          string  `yaml:"id" json:"id"`
	Name        string  `yaml:"name" json:"name"`
	Rarity      Rarity  `yaml:"rarity" json:"rarity"`
	Value       float64 `yaml:"value" json:"value"`
	SpawnChance float64 `yaml:"spawn_chance" json:"spawnChance"`
}

// Tool is a pickaxe. Multiplier scales the money earned per ore.
type Tool struct {
	ID         string  `yaml:"id" json:"id"`
	Name       string  `yaml:"name" json:"name"`
	Cost       float64 `yaml:"cost" json:"cost"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
	OreID      string  `yaml:"ore" json:"oreId"`
}

// Producer is an auto-digger that adds depth over time.
type Producer struct {
	ID             string  `yaml:"id" json:"id"`
	Name           string  `yaml:"name" json:"name"`
	BaseCost       float64 `yaml:"base_cost" json:"baseCost"`
	DepthPerSecond float64 `yaml:"depth_per_second" json:"depthPerSecond"`
}

// Biome is a depth band covering [MinDepth, MaxDepth). A nil MaxDepth means
// the band is unbounded.
type Biome struct {
	ID       int      `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	MinDepth float64  `yaml:"min_depth" json:"minDepth"`
	MaxDepth *float64 `yaml:"max_depth,omitempty" json:"maxDepth,omitempty"`
	Ores     []string `yaml:"ores" json:"ores"`
}

// Contains reports whether depth falls inside the biome's half-open range.
func (b Biome) Contains(depth float64) bool {
	if depth < b.MinDepth {
		return false
	}
	return b.MaxDepth == nil || depth < *b.MaxDepth
}

// RandomSource is satisfied by *rand.Rand from math/rand and math/rand/v2.
type RandomSource interface {
	Float64() float64
}

// Catalog is the immutable economy data. Build one with New or a loader and
// share it by pointer; nothing mutates it after construction.
type Catalog struct {
	ores      []Ore
	tools     []Tool
	producers []Producer
	biomes    []Biome

	oreIndex      map[string]int
	toolIndex     map[string]int
	producerIndex map[string]int
	biomeIndex    map[int]int
}

// New validates cross references and builds the lookup indexes.
func New(ores []Ore, tools []Tool, producers []Producer, biomes []Biome) (*Catalog, error) {
	c := &Catalog{
		ores:          append([]Ore(nil), ores...),
		tools:         append([]Tool(nil), tools...),
		producers:     append([]Producer(nil), producers...),
		biomes:        append([]Biome(nil), biomes...),
		oreIndex:      make(map[string]int, len(ores)),
		toolIndex:     make(map[string]int, len(tools)),
		producerIndex: make(map[string]int, len(producers)),
		biomeIndex:    make(map[int]int, len(biomes)),
	}

	for i, o := range c.ores {
		if _, dup := c.oreIndex[o.ID]; dup {
			return nil, fmt.Errorf(ErrMsgDuplicateID, "ore", o.ID)
		}
		c.oreIndex[o.ID] = i
	}
	for i, t := range c.tools {
		if _, dup := c.toolIndex[t.ID]; dup {
			return nil, fmt.Errorf(ErrMsgDuplicateID, "tool", t.ID)
		}
		if _, ok := c.oreIndex[t.OreID]; !ok {
			return nil, fmt.Errorf(ErrMsgUnknownOreRef, "tool", t.ID, t.OreID)
		}
		c.toolIndex[t.ID] = i
	}
	for i, p := range c.producers {
		if _, dup := c.producerIndex[p.ID]; dup {
			return nil, fmt.Errorf(ErrMsgDuplicateID, "auto-digger", p.ID)
		}
		c.producerIndex[p.ID] = i
	}
	if err := c.indexBiomes(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Catalog) indexBiomes() error {
	for i, b := range c.biomes {
		if _, dup := c.biomeIndex[b.ID]; dup {
			return fmt.Errorf(ErrMsgDuplicateID, "biome", fmt.Sprint(b.ID))
		}
		for _, ore := range b.Ores {
			if _, ok := c.oreIndex[ore]; !ok {
				return fmt.Errorf(ErrMsgUnknownOreRef, "biome", b.Name, ore)
			}
		}

		last := i == len(c.biomes)-1
		switch {
		case i == 0 && b.MinDepth != 0:
			return fmt.Errorf(ErrMsgBiomeStart, b.MinDepth)
		case i > 0 && *c.biomes[i-1].MaxDepth != b.MinDepth:
			return fmt.Errorf(ErrMsgBiomeGap, b.ID, b.MinDepth, *c.biomes[i-1].MaxDepth)
		case last && b.MaxDepth != nil:
			return fmt.Errorf(ErrMsgLastBiomeBounded, b.ID)
		case !last && b.MaxDepth == nil:
			return fmt.Errorf(ErrMsgBiomeUnbounded, b.ID)
		case !last && *b.MaxDepth <= b.MinDepth:
			return fmt.Errorf(ErrMsgBiomeBounds, b.ID, *b.MaxDepth, b.MinDepth)
		}

		c.biomeIndex[b.ID] = i
	}
	return nil
}

// Ores returns every ore in catalog order.
func (c *Catalog) Ores() []Ore { return append([]Ore(nil), c.ores...) }

// Tools returns every tool in purchase order.
func (c *Catalog) Tools() []Tool { return append([]Tool(nil), c.tools...) }

// Producers returns every auto-digger in purchase order.
func (c *Catalog) Producers() []Producer { return append([]Producer(nil), c.producers...) }

// Biomes returns every biome in ascending depth order.
func (c *Catalog) Biomes() []Biome { return append([]Biome(nil), c.biomes...) }

func (c *Catalog) Ore(id string) (Ore, bool) {
	i, ok := c.oreIndex[id]
	if !ok {
		return Ore{}, false
	}
	return c.ores[i], true
}

func (c *Catalog) Tool(id string) (Tool, bool) {
	i, ok := c.toolIndex[id]
	if !ok {
		return Tool{}, false
	}
	return c.tools[i], true
}

// ToolIndex returns the purchase-order position of a tool, or -1.
func (c *Catalog) ToolIndex(id string) int {
	if i, ok := c.toolIndex[id]; ok {
		return i
	}
	return -1
}

// NextTool returns the tool after id in purchase order.
func (c *Catalog) NextTool(id string) (Tool, bool) {
	i := c.ToolIndex(id)
	if i < 0 || i+1 >= len(c.tools) {
		return Tool{}, false
	}
	return c.tools[i+1], true
}

func (c *Catalog) Producer(id string) (Producer, bool) {
	i, ok := c.producerIndex[id]
	if !ok {
		return Producer{}, false
	}
	return c.producers[i], true
}

// ProducerIndex returns the purchase-order position of an auto-digger, or -1.
func (c *Catalog) ProducerIndex(id string) int {
	if i, ok := c.producerIndex[id]; ok {
		return i
	}
	return -1
}

func (c *Catalog) Biome(id int) (Biome, bool) {
	i, ok := c.biomeIndex[id]
	if !ok {
		return Biome{}, false
	}
	return c.biomes[i], true
}

// StarterTool is the tool every new snapshot holds.
func (c *Catalog) StarterTool() Tool { return c.tools[0] }

// StarterOre is the ore every new snapshot has discovered.
func (c *Catalog) StarterOre() string { return c.StarterTool().OreID }

// StarterBiome is the shallowest biome.
func (c *Catalog) StarterBiome() Biome { return c.biomes[0] }

// BiomeForDepth returns the biome whose range contains depth. Depths past
// every bounded range land in the last biome; negative depths land in the
// first.
func (c *Catalog) BiomeForDepth(depth float64) Biome {
	for _, b := range c.biomes {
		if b.Contains(depth) {
			return b
		}
	}
	if depth < c.biomes[0].MinDepth {
		return c.biomes[0]
	}
	return c.biomes[len(c.biomes)-1]
}

// ProducerCost prices the next unit of p when owned units are already held.
func (c *Catalog) ProducerCost(p Producer, owned int) float64 {
	return math.Floor(p.BaseCost * math.Pow(ProducerCostGrowth, float64(owned)))
}

// BatchProducerCost prices quantity units bought one after another starting
// from owned.
func (c *Catalog) BatchProducerCost(p Producer, owned, quantity int) float64 {
	total := 0.0
	for i := 0; i < quantity; i++ {
		total += c.ProducerCost(p, owned+i)
	}
	return total
}

// WeightedRandomOre picks one of oreIDs with probability proportional to its
// spawn chance. The last candidate absorbs any floating-point remainder.
func (c *Catalog) WeightedRandomOre(rng RandomSource, oreIDs []string) (string, error) {
	if len(oreIDs) == 0 {
		return "", fmt.Errorf(ErrMsgNoCandidates, domain.ErrInvalidOre)
	}

	weights := make([]float64, len(oreIDs))
	total := 0.0
	for i, id := range oreIDs {
		ore, ok := c.Ore(id)
		if !ok {
			return "", fmt.Errorf(ErrMsgUnknownCandidate, id, domain.ErrInvalidOre)
		}
		weights[i] = ore.SpawnChance
		total += ore.SpawnChance
	}

	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return oreIDs[i], nil
		}
	}
	return oreIDs[len(oreIDs)-1], nil
}
