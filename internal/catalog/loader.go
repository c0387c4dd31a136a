package catalog

import (
	"embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/osse101/TheDigger_Go/internal/validation"
)

//go:embed data
var dataFS embed.FS

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

type catalogFile struct {
	Ores        []Ore      `yaml:"ores"`
	Tools       []Tool     `yaml:"tools"`
	AutoDiggers []Producer `yaml:"auto_diggers"`
	Biomes      []Biome    `yaml:"biomes"`
}

// Default returns the catalog shipped with the binary. It is parsed once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		raw, err := dataFS.ReadFile("data/catalog.yaml")
		if err != nil {
			defaultErr = fmt.Errorf(ErrMsgReadCatalog, "embedded", err)
			return
		}
		defaultCatalog, defaultErr = Parse(raw)
	})
	return defaultCatalog, defaultErr
}

// MustDefault is Default for callers that cannot continue without a catalog.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFile reads a catalog override from disk.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadCatalog, path, err)
	}
	return Parse(raw)
}

// Parse checks raw YAML against the catalog schema and builds a Catalog.
func Parse(raw []byte) (*Catalog, error) {
	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf(ErrMsgParseCatalog, err)
	}

	schema, err := dataFS.ReadFile("data/" + SchemaName)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgRegisterSchema, err)
	}
	v := validation.NewSchemaValidator()
	if err := v.AddSchema(SchemaName, schema); err != nil {
		return nil, fmt.Errorf(ErrMsgRegisterSchema, err)
	}
	if err := v.Validate(SchemaName, doc); err != nil {
		return nil, fmt.Errorf(ErrMsgSchemaValidation, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf(ErrMsgParseCatalog, err)
	}
	return New(file.Ores, file.Tools, file.AutoDiggers, file.Biomes)
}
