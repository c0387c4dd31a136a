package achievement

import (
	"embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/osse101/TheDigger_Go/internal/catalog"
)

//go:embed data/achievements.yaml
var dataFS embed.FS

type bookFile struct {
	Achievements []Achievement `yaml:"achievements"`
}

// Load builds the embedded achievement book against cat.
func Load(cat *catalog.Catalog) (*Book, error) {
	raw, err := dataFS.ReadFile("data/achievements.yaml")
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadBook, "embedded", err)
	}
	return Parse(cat, raw)
}

// LoadFile builds a book from an operator-supplied YAML file.
func LoadFile(cat *catalog.Catalog, path string) (*Book, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadBook, path, err)
	}
	return Parse(cat, raw)
}

// Parse decodes raw YAML and checks every reference against cat.
func Parse(cat *catalog.Catalog, raw []byte) (*Book, error) {
	var file bookFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf(ErrMsgParseBook, err)
	}
	return New(cat, file.Achievements)
}

// New validates achievements and binds them to cat.
func New(cat *catalog.Catalog, achievements []Achievement) (*Book, error) {
	if len(achievements) == 0 {
		return nil, errors.New(ErrMsgEmptyBook)
	}

	b := &Book{
		catalog:      cat,
		achievements: append([]Achievement(nil), achievements...),
		index:        make(map[string]int, len(achievements)),
	}
	for i, a := range b.achievements {
		if a.ID == "" {
			return nil, fmt.Errorf(ErrMsgMissingField, fmt.Sprintf("#%d", i), "id")
		}
		if a.Name == "" {
			return nil, fmt.Errorf(ErrMsgMissingField, a.ID, "name")
		}
		if _, dup := b.index[a.ID]; dup {
			return nil, fmt.Errorf(ErrMsgDuplicateID, a.ID)
		}
		if err := checkRequirement(cat, a); err != nil {
			return nil, err
		}
		b.index[a.ID] = i
	}
	return b, nil
}

func checkRequirement(cat *catalog.Catalog, a Achievement) error {
	req := a.Requirement
	switch req.Kind {
	case KindDepth, KindMoney, KindClicks, KindTotalOres, KindDistinctOres, KindProducerCount:
		if req.Value <= 0 {
			return fmt.Errorf(ErrMsgNonPositiveValue, a.ID)
		}
	case KindSpecificOre:
		if _, ok := cat.Ore(req.Target); !ok {
			return fmt.Errorf(ErrMsgUnknownTarget, a.ID, "ore", req.Target)
		}
		if req.Value <= 0 {
			return fmt.Errorf(ErrMsgNonPositiveValue, a.ID)
		}
	case KindTool:
		if _, ok := cat.Tool(req.Target); !ok {
			return fmt.Errorf(ErrMsgUnknownTarget, a.ID, "tool", req.Target)
		}
	case KindProducer:
		if _, ok := cat.Producer(req.Target); !ok {
			return fmt.Errorf(ErrMsgUnknownTarget, a.ID, "auto-digger", req.Target)
		}
	case KindBiome:
		if _, ok := cat.Biome(int(req.Value)); !ok {
			return fmt.Errorf(ErrMsgUnknownTarget, a.ID, "biome", fmt.Sprint(req.Value))
		}
	case KindSpecial:
	default:
		return fmt.Errorf(ErrMsgUnknownKind, a.ID, req.Kind)
	}
	return nil
}
