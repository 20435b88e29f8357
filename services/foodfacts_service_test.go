package services

import (
	"encoding/json"
	"testing"
)

func productWithPanels(t *testing.T, panels string) *Product {
	t.Helper()
	var kp map[string]json.RawMessage
	if err := json.Unmarshal([]byte(panels), &kp); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return &Product{Barcode: "123", KnowledgePanels: kp}
}

func TestPanelSummary_ExactKey(t *testing.T) {
	p := productWithPanels(t, `{
		"nutriscore": {"title_element": {"title": "Nutri-Score C"}},
		"nutriscore_details": {"title_element": {"title": "wrong one"}}
	}`)
	got, ok := p.PanelSummary("nutriscore")
	if !ok || got != "Nutri-Score C" {
		t.Fatalf("expected exact key hit, got %q (%v)", got, ok)
	}
}

func TestPanelSummary_PrefixFallback(t *testing.T) {
	p := productWithPanels(t, `{
		"nova_group_4": {"title_element": {"title": "Ultra-processed", "subtitle": "NOVA 4"}}
	}`)
	got, ok := p.PanelSummary("nova")
	if !ok || got != "Ultra-processed — NOVA 4" {
		t.Fatalf("expected prefix hit, got %q (%v)", got, ok)
	}
}

func TestPanelSummary_TitleScanFallback(t *testing.T) {
	p := productWithPanels(t, `{
		"health_card": {"title_element": {"title": "Nutri-Score unknown"}}
	}`)
	got, ok := p.PanelSummary("nutri-score")
	if !ok || got != "Nutri-Score unknown" {
		t.Fatalf("expected title-scan hit, got %q (%v)", got, ok)
	}
}

func TestPanelSummary_NoMatch(t *testing.T) {
	p := productWithPanels(t, `{
		"packaging": {"title_element": {"title": "Recyclable"}}
	}`)
	if got, ok := p.PanelSummary("nutriscore"); ok {
		t.Fatalf("expected no match, got %q", got)
	}
}

func TestPanelSummary_MalformedPanelSkipped(t *testing.T) {
	p := productWithPanels(t, `{
		"nutriscore": "not an object",
		"nutriscore_grade": {"title_element": {"title": "Grade B"}}
	}`)
	got, ok := p.PanelSummary("nutriscore")
	if !ok || got != "Grade B" {
		t.Fatalf("expected fallthrough past malformed panel, got %q (%v)", got, ok)
	}
}

func TestRequestGuard_StaleTicketDetected(t *testing.T) {
	g := NewRequestGuard()

	first := g.Begin("3017620422003")
	second := g.Begin("3017620422003")

	if g.Current("3017620422003", first) {
		t.Fatal("expected first ticket to be stale after a newer request")
	}
	if !g.Current("3017620422003", second) {
		t.Fatal("expected the latest ticket to be current")
	}
}

func TestRequestGuard_KeysAreIndependent(t *testing.T) {
	g := NewRequestGuard()

	a := g.Begin("barcode-a")
	_ = g.Begin("barcode-b")

	if !g.Current("barcode-a", a) {
		t.Fatal("a request for another key must not invalidate this one")
	}
}
