package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
)

// ErrStaleResponse marks a lookup whose result arrived after a newer request
// for the same key was issued; callers drop it instead of showing stale data.
var ErrStaleResponse = errors.New("superseded by a newer request")

// RequestGuard tracks the latest request issued per key. Screens fire lookups
// without cancelling in-flight ones on navigation, so a late response must be
// detected and dropped rather than committed over newer state.
type RequestGuard struct {
	mu  sync.Mutex
	seq map[string]uint64
}

func NewRequestGuard() *RequestGuard {
	return &RequestGuard{seq: make(map[string]uint64)}
}

// Begin marks a new in-flight request for key and returns its ticket.
func (g *RequestGuard) Begin(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq[key]++
	return g.seq[key]
}

// Current reports whether ticket still names the latest request for key.
func (g *RequestGuard) Current(key string, ticket uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq[key] == ticket
}

// Product is a food-facts record for one barcode. Knowledge panel keys and
// shapes are not guaranteed by the upstream API, so they stay raw and go
// through heuristic lookups.
type Product struct {
	Barcode         string                     `json:"code"`
	Name            string                     `json:"product_name"`
	NovaGroup       *int                       `json:"nova_group,omitempty"`
	NutriscoreGrade string                     `json:"nutriscore_grade,omitempty"`
	KnowledgePanels map[string]json.RawMessage `json:"knowledge_panels,omitempty"`
}

// PanelSummary pulls a display string out of the knowledge panels for a topic
// (e.g. "nutriscore", "nova"). Lookups run from most to least specific: exact
// key, key prefix, then a scan of panel titles. Keys are walked in sorted
// order so ambiguous products resolve the same way every time.
func (p *Product) PanelSummary(topic string) (string, bool) {
	if len(p.KnowledgePanels) == 0 {
		return "", false
	}

	if raw, ok := p.KnowledgePanels[topic]; ok {
		if title := panelTitle(raw); title != "" {
			return title, true
		}
	}

	keys := make([]string, 0, len(p.KnowledgePanels))
	for k := range p.KnowledgePanels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if strings.HasPrefix(k, topic) {
			if title := panelTitle(p.KnowledgePanels[k]); title != "" {
				return title, true
			}
		}
	}
	needle := strings.ToLower(topic)
	for _, k := range keys {
		title := panelTitle(p.KnowledgePanels[k])
		if title != "" && strings.Contains(strings.ToLower(title), needle) {
			return title, true
		}
	}
	return "", false
}

func panelTitle(raw json.RawMessage) string {
	var panel struct {
		TitleElement struct {
			Title    string `json:"title"`
			Subtitle string `json:"subtitle"`
		} `json:"title_element"`
	}
	if err := json.Unmarshal(raw, &panel); err != nil {
		return ""
	}
	if panel.TitleElement.Subtitle != "" {
		return panel.TitleElement.Title + " — " + panel.TitleElement.Subtitle
	}
	return panel.TitleElement.Title
}

type FoodFactsService struct {
	client *http.Client
	cache  *lru.Cache[string, *Product]
	guard  *RequestGuard
}

func NewFoodFactsService() *FoodFactsService {
	cache, _ := lru.New[string, *Product](512)
	return &FoodFactsService{
		client: &http.Client{Timeout: 10 * time.Second},
		cache:  cache,
		guard:  NewRequestGuard(),
	}
}

// Lookup fetches a product by barcode. If a newer lookup for the same barcode
// started while this one was in flight, the stale result is dropped: not
// cached and not returned as current.
func (s *FoodFactsService) Lookup(barcode string) (*Product, error) {
	if p, ok := s.cache.Get(barcode); ok {
		return p, nil
	}

	ticket := s.guard.Begin(barcode)
	p, err := s.fetch(barcode)
	if err != nil {
		return nil, err
	}
	if !s.guard.Current(barcode, ticket) {
		log.Debug().Str("barcode", barcode).Msg("dropping stale food-facts response")
		return nil, ErrStaleResponse
	}
	s.cache.Add(barcode, p)
	return p, nil
}

func (s *FoodFactsService) fetch(barcode string) (*Product, error) {
	base := os.Getenv("FOODFACTS_BASE_URL")
	if base == "" {
		base = "https://world.openfoodfacts.org"
	}
	u := fmt.Sprintf("%s/api/v2/product/%s.json", base, barcode)

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to call food facts API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read food facts response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("food facts API error %d: %s", resp.StatusCode, string(body))
	}

	var wrapper struct {
		Status  int      `json:"status"`
		Product *Product `json:"product"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse food facts JSON: %w", err)
	}
	if wrapper.Status != 1 || wrapper.Product == nil {
		return nil, fmt.Errorf("product %s not found", barcode)
	}
	wrapper.Product.Barcode = barcode
	return wrapper.Product, nil
}
