package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"realpix-media/utils"
)

// PriceUnit tells how a unit price scales. Per-image services multiply by a
// freely chosen quantity; per-item services are effectively 0/1 toggles.
type PriceUnit string

const (
	UnitPerItem  PriceUnit = "perItem"
	UnitPerImage PriceUnit = "perImage"
)

// SizeBracket is one property-size category. Exactly one bracket is active
// per selection. An Unpriced bracket ("5500plus") is quote-on-request: the
// calculator must never consult a price table for it.
type SizeBracket struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Unpriced bool   `json:"unpriced,omitempty"`
}

// Bundle is a pre-priced package of services at a given size bracket.
// Inheritance is structural: ParentID references the bundle this one extends,
// and IncludedServiceIDs lists only the services this bundle adds directly.
// The Features list is display prose and carries no semantics.
type Bundle struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	ParentID           string           `json:"parentId,omitempty"`
	Features           []string         `json:"features"`
	IncludedServiceIDs []string         `json:"includedServiceIds"`
	Prices             map[string]int64 `json:"-"` // bracket id -> cents
}

// Service is an individually purchasable service or add-on. Prices are
// normalized to integer cents at catalog load; a service has either a
// per-bracket table, a flat price, or both (the table wins).
type Service struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Images      []string         `json:"images,omitempty"`
	Category    string           `json:"category,omitempty"`
	Addon       bool             `json:"addon,omitempty"`
	Unit        PriceUnit        `json:"unit"`
	FlatPrice   int64            `json:"-"` // cents; 0 means no flat price
	Prices      map[string]int64 `json:"-"` // bracket id -> cents
	hasFlat     bool
}

// PriceFor resolves the unit price in cents for a size bracket.
func (s *Service) PriceFor(bracketID string) (int64, bool) {
	if p, ok := s.Prices[bracketID]; ok {
		return p, true
	}
	if s.hasFlat {
		return s.FlatPrice, true
	}
	return 0, false
}

// Catalog is the read-only session catalog: brackets, bundles and a single
// service index built once at load time.
type Catalog struct {
	Currency string
	Brackets []SizeBracket
	Bundles  []Bundle
	Services []Service

	bracketIndex map[string]*SizeBracket
	bundleIndex  map[string]*Bundle
	serviceIndex map[string]*Service
}

// Raw JSON shapes. Price values are deliberately loose (numbers, "$679",
// "129/image") and normalized exactly once, here.
type rawCatalog struct {
	Currency string        `json:"currency"`
	Brackets []SizeBracket `json:"sizeBrackets"`
	Bundles  []rawBundle   `json:"bundles"`
	Services []rawService  `json:"services"`
	Addons   []rawService  `json:"addons"`
}

type rawBundle struct {
	ID                 string                 `json:"id"`
	Title              string                 `json:"title"`
	ParentID           string                 `json:"parentId"`
	Features           []string               `json:"features"`
	IncludedServiceIDs []string               `json:"includedServiceIds"`
	Prices             map[string]interface{} `json:"prices"`
}

type rawService struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Images      []string               `json:"images"`
	Category    string                 `json:"category"`
	PerUnit     bool                   `json:"perUnit"`
	Price       interface{}            `json:"price"`
	Prices      map[string]interface{} `json:"prices"`
}

var (
	catalogMu       sync.RWMutex
	catalogInstance *Catalog
)

// Load reads and normalizes the catalog config, builds the indexes, and
// installs the result as the session singleton.
func Load(configPath string) (*Catalog, error) {
	if !filepath.IsAbs(configPath) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath = filepath.Join(wd, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog config: %w", err)
	}

	cat, err := Parse(data)
	if err != nil {
		return nil, err
	}

	catalogMu.Lock()
	catalogInstance = cat
	catalogMu.Unlock()

	log.Printf("✅ Catalog: loaded %d bundles, %d services, %d brackets from %s",
		len(cat.Bundles), len(cat.Services), len(cat.Brackets), configPath)
	return cat, nil
}

// Get returns the session catalog, or nil before Load.
func Get() *Catalog {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	return catalogInstance
}

// Parse builds a Catalog from raw JSON. Split out from Load so the catalog
// sync service can validate spreadsheet-derived configs before installing.
func Parse(data []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog config: %w", err)
	}

	cat := &Catalog{
		Currency:     raw.Currency,
		Brackets:     raw.Brackets,
		bracketIndex: make(map[string]*SizeBracket),
		bundleIndex:  make(map[string]*Bundle),
		serviceIndex: make(map[string]*Service),
	}

	for _, rb := range raw.Bundles {
		b := Bundle{
			ID:                 rb.ID,
			Title:              rb.Title,
			ParentID:           rb.ParentID,
			Features:           rb.Features,
			IncludedServiceIDs: rb.IncludedServiceIDs,
			Prices:             make(map[string]int64, len(rb.Prices)),
		}
		for bracketID, v := range rb.Prices {
			cents, err := utils.ParsePriceCents(v)
			if err != nil {
				return nil, fmt.Errorf("bundle %s bracket %s: %w", rb.ID, bracketID, err)
			}
			b.Prices[bracketID] = cents
		}
		cat.Bundles = append(cat.Bundles, b)
	}

	for _, rs := range raw.Services {
		svc, err := normalizeService(rs, false)
		if err != nil {
			return nil, err
		}
		cat.Services = append(cat.Services, *svc)
	}
	for _, rs := range raw.Addons {
		svc, err := normalizeService(rs, true)
		if err != nil {
			return nil, err
		}
		cat.Services = append(cat.Services, *svc)
	}

	for i := range cat.Brackets {
		cat.bracketIndex[cat.Brackets[i].ID] = &cat.Brackets[i]
	}
	for i := range cat.Bundles {
		cat.bundleIndex[cat.Bundles[i].ID] = &cat.Bundles[i]
	}
	for i := range cat.Services {
		cat.serviceIndex[cat.Services[i].ID] = &cat.Services[i]
	}

	if err := cat.validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog config: %w", err)
	}
	return cat, nil
}

func normalizeService(rs rawService, addon bool) (*Service, error) {
	svc := &Service{
		ID:          rs.ID,
		Title:       rs.Title,
		Description: rs.Description,
		Images:      rs.Images,
		Category:    rs.Category,
		Addon:       addon,
		Unit:        UnitPerItem,
		Prices:      make(map[string]int64, len(rs.Prices)),
	}

	if rs.PerUnit {
		svc.Unit = UnitPerImage
	}

	if rs.Price != nil {
		cents, err := utils.ParsePriceCents(rs.Price)
		if err != nil {
			return nil, fmt.Errorf("service %s flat price: %w", rs.ID, err)
		}
		svc.FlatPrice = cents
		svc.hasFlat = true
		// "39/image" style strings also imply per-image pricing.
		if s, ok := rs.Price.(string); ok && utils.IsPerUnitSuffix(s) {
			svc.Unit = UnitPerImage
		}
	}

	for bracketID, v := range rs.Prices {
		cents, err := utils.ParsePriceCents(v)
		if err != nil {
			return nil, fmt.Errorf("service %s bracket %s: %w", rs.ID, bracketID, err)
		}
		svc.Prices[bracketID] = cents
	}

	return svc, nil
}

func (c *Catalog) validate() error {
	if c.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if len(c.Brackets) == 0 {
		return fmt.Errorf("size brackets are required")
	}
	if len(c.Bundles) == 0 {
		return fmt.Errorf("bundles are required")
	}

	// Every bundle must be priced for every priceable bracket, positively.
	for _, b := range c.Bundles {
		for _, br := range c.Brackets {
			if br.Unpriced {
				continue
			}
			p, ok := b.Prices[br.ID]
			if !ok {
				return fmt.Errorf("bundle %s has no price for bracket %s", b.ID, br.ID)
			}
			if p <= 0 {
				return fmt.Errorf("bundle %s has non-positive price for bracket %s", b.ID, br.ID)
			}
		}
		if b.ParentID != "" {
			if _, ok := c.bundleIndex[b.ParentID]; !ok {
				return fmt.Errorf("bundle %s references unknown parent %s", b.ID, b.ParentID)
			}
		}
	}
	return nil
}

// Bracket looks up a size bracket by id.
func (c *Catalog) Bracket(id string) *SizeBracket {
	return c.bracketIndex[id]
}

// Bundle looks up a bundle by id.
func (c *Catalog) Bundle(id string) *Bundle {
	return c.bundleIndex[id]
}

// Service looks up any priced service or add-on by id.
func (c *Catalog) Service(id string) *Service {
	return c.serviceIndex[id]
}
