// Package seeds holds the static seed catalog used to name and price seed
// types before (or without) on-chain configuration.
package seeds

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"math/big"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/validation"
)

// CatalogSchemaName is the registered name of the catalog JSON schema
const CatalogSchemaName = "seeds.catalog.schema.json"

//go:embed catalog.schema.json
var catalogSchema []byte

//go:embed default_catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Version string      `yaml:"version"`
	Seeds   []seedEntry `yaml:"seeds"`
}

type seedEntry struct {
	Type         uint16 `yaml:"type"`
	Name         string `yaml:"name"`
	GrowSeconds  uint32 `yaml:"grow_seconds"`
	SeedTokenID  uint64 `yaml:"seed_token_id"`
	CropTokenID  uint64 `yaml:"crop_token_id"`
	BuyPriceWei  string `yaml:"buy_price_wei"`
	SellPriceWei string `yaml:"sell_price_wei"`
	Active       *bool  `yaml:"active"`
}

// Catalog is an immutable, ordered set of seed configurations
type Catalog struct {
	seeds map[domain.SeedType]domain.SeedConfig
	order []domain.SeedType
}

// Default returns the built-in catalog (Carrot, Mint, Sage)
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("seeds: built-in catalog is invalid: %v", err))
	}
	return c
}

// Load reads and validates a YAML catalog file. An empty path yields the
// built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("seed catalog %s: %w", path, err)
	}
	return c, nil
}

// LoadOrDefault is Load, except that a missing file yields the built-in
// catalog. The bool reports whether the file was found.
func LoadOrDefault(path string) (*Catalog, bool, error) {
	c, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}

// Parse validates YAML catalog data against the embedded schema and builds a Catalog
func Parse(data []byte) (*Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	v := validation.NewSchemaValidator()
	if err := v.Register(CatalogSchemaName, catalogSchema); err != nil {
		return nil, err
	}
	if err := v.ValidateDocument(doc, CatalogSchemaName); err != nil {
		return nil, err
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	configs := make([]domain.SeedConfig, 0, len(file.Seeds))
	for _, e := range file.Seeds {
		cfg, err := e.toConfig()
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return New(configs...)
}

// New builds a catalog from explicit configurations. Duplicate types are rejected.
func New(configs ...domain.SeedConfig) (*Catalog, error) {
	c := &Catalog{seeds: make(map[domain.SeedType]domain.SeedConfig, len(configs))}
	for _, cfg := range configs {
		if _, dup := c.seeds[cfg.Type]; dup {
			return nil, fmt.Errorf("%w: duplicate seed type %d", domain.ErrInvalidInput, cfg.Type)
		}
		cfg.Name = DisplayName(cfg.Name)
		c.seeds[cfg.Type] = cfg
		c.order = append(c.order, cfg.Type)
	}
	sort.Slice(c.order, func(i, j int) bool { return c.order[i] < c.order[j] })
	return c, nil
}

func (e seedEntry) toConfig() (domain.SeedConfig, error) {
	buy, err := parseWei(e.BuyPriceWei)
	if err != nil {
		return domain.SeedConfig{}, fmt.Errorf("seed %d buy_price_wei: %w", e.Type, err)
	}
	sell, err := parseWei(e.SellPriceWei)
	if err != nil {
		return domain.SeedConfig{}, fmt.Errorf("seed %d sell_price_wei: %w", e.Type, err)
	}
	active := true
	if e.Active != nil {
		active = *e.Active
	}
	return domain.SeedConfig{
		Type:         domain.SeedType(e.Type),
		Name:         e.Name,
		GrowDuration: e.GrowSeconds,
		SeedTokenID:  e.SeedTokenID,
		CropTokenID:  e.CropTokenID,
		BuyPriceWei:  buy,
		SellPriceWei: sell,
		Active:       active,
	}, nil
}

func parseWei(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidInput, s)
	}
	return v, nil
}

// Get returns the configuration for a seed type
func (c *Catalog) Get(t domain.SeedType) (domain.SeedConfig, bool) {
	cfg, ok := c.seeds[t]
	return cfg, ok
}

// Types returns every seed type in ascending order
func (c *Catalog) Types() []domain.SeedType {
	out := make([]domain.SeedType, len(c.order))
	copy(out, c.order)
	return out
}

// All returns every configuration in ascending type order
func (c *Catalog) All() []domain.SeedConfig {
	out := make([]domain.SeedConfig, 0, len(c.order))
	for _, t := range c.order {
		out = append(out, c.seeds[t])
	}
	return out
}

// Name returns the display name for a seed type. Unknown types render as "Seed #N".
func (c *Catalog) Name(t domain.SeedType) string {
	if cfg, ok := c.seeds[t]; ok && cfg.Name != "" {
		return cfg.Name
	}
	return fmt.Sprintf("Seed #%d", t)
}

// DisplayName normalises a seed name for display ("sweet basil" -> "Sweet Basil")
func DisplayName(name string) string {
	// Casers keep state, so one is built per call
	return cases.Title(language.English).String(strings.TrimSpace(name))
}
