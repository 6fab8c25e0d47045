package crawler

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/stealth"
)

// Title-overlap guard: a page whose titles are at least this fraction
// already-seen counts as a duplicate page; two in a row end the loop.
const (
	duplicateTitleRatio    = 0.8
	duplicatePageTolerance = 2
)

// dupPageGuard tracks consecutive mostly-duplicate pages. A fresh page
// resets the streak; Observe reports whether the walk should stop.
type dupPageGuard struct {
	consecutive int
}

func (g *dupPageGuard) Observe(seenRatio float64) bool {
	if seenRatio >= duplicateTitleRatio {
		g.consecutive++
		return g.consecutive >= duplicatePageTolerance
	}
	g.consecutive = 0
	return false
}

// HTMLStrategy discovers lots by walking consecutive listing pages and
// extracting lot cards through fallback selectors.
type HTMLStrategy struct {
	SiteName string
	// PageURL renders the listing URL for a 1-based page number, e.g.
	// "https://site.example/lotes?pagina=%d".
	PageURL string
	// CardSelectors are tried in order until one yields elements.
	CardSelectors []string
	// TerminalSelectors mark "no more results" UI states.
	TerminalSelectors []string
	// LinkPrefix is prepended to relative lot links.
	LinkPrefix string
}

// DefaultCardSelectors cover the listing-card markup variants seen
// across the crawled auction sites.
var DefaultCardSelectors = []string{
	".lote-card",
	".card-lote",
	".lot-card",
	".leilao-item",
	".result-card",
	"[data-lote]",
	"[data-testid*='lote']",
	".listing-item",
	"article",
	".card",
}

// DefaultTerminalSelectors match empty-state markers.
var DefaultTerminalSelectors = []string{
	".sem-resultados",
	".no-results",
	".empty-state",
	"[data-testid='empty']",
}

// Name implements Strategy.
func (s *HTMLStrategy) Name() string {
	return s.SiteName
}

// Discover walks listing pages until a termination condition fires:
// a page with zero lot cards, a terminal UI marker, a short page, or
// two consecutive pages of mostly already-seen titles.
func (s *HTMLStrategy) Discover(rt *Runtime) error {
	page, err := stealth.Page(rt.Browser)
	if err != nil {
		return fmt.Errorf("failed to open stealth page: %w", err)
	}
	defer page.Close()

	cardSelectors := s.CardSelectors
	if len(cardSelectors) == 0 {
		cardSelectors = DefaultCardSelectors
	}
	terminalSelectors := s.TerminalSelectors
	if len(terminalSelectors) == 0 {
		terminalSelectors = DefaultTerminalSelectors
	}

	var dupGuard dupPageGuard

	for pageNum := 1; pageNum <= rt.Config.MaxPages; pageNum++ {
		rt.Pace()

		url := fmt.Sprintf(s.PageURL, pageNum)
		fmt.Printf("📍 %s: page %d: %s\n", s.SiteName, pageNum, url)

		start := time.Now()
		err := rt.WithRetries("navigate", func() error {
			pctx := page.Timeout(rt.Config.PageTimeout)
			if err := pctx.Navigate(url); err != nil {
				return err
			}
			return pctx.WaitLoad()
		})
		rt.Metrics.ObserveRequest(time.Since(start))
		if err != nil {
			// A dead page is skipped, not fatal for the run.
			continue
		}
		rt.Metrics.IncPage("html")

		if hasAnyElement(page, terminalSelectors) {
			fmt.Printf("🛑 %s: terminal marker on page %d\n", s.SiteName, pageNum)
			break
		}

		raws := s.extractCards(page, cardSelectors)
		if len(raws) == 0 {
			break
		}

		titles := make([]string, 0, len(raws))
		for _, raw := range raws {
			if t, ok := raw["titulo"].(string); ok {
				titles = append(titles, t)
			}
		}
		if dupGuard.Observe(rt.Collector.SeenTitleRatio(titles)) {
			fmt.Printf("🛑 %s: pagination loop detected on page %d\n", s.SiteName, pageNum)
			break
		}

		for _, raw := range raws {
			rt.Emit(raw)
		}

		if len(raws) < rt.Config.PageSize {
			break
		}
	}

	return nil
}

// extractCards tries each selector until one yields elements, then
// parses every card on the page.
func (s *HTMLStrategy) extractCards(page *rod.Page, selectors []string) []map[string]any {
	var raws []map[string]any
	for _, selector := range selectors {
		elements, err := page.Elements(selector)
		if err != nil || len(elements) == 0 {
			continue
		}
		for _, element := range elements {
			if raw := s.parseCard(element); raw != nil {
				raws = append(raws, raw)
			}
		}
		break
	}
	return raws
}

var (
	priceRe   = regexp.MustCompile(`R\$\s*([0-9][0-9.,]*)`)
	mileageRe = regexp.MustCompile(`([0-9][0-9.,]*)\s*[Kk][Mm]\b`)
	yearRe    = regexp.MustCompile(`\b((?:19[5-9]\d|20\d{2})(?:/(?:19[5-9]\d|20\d{2}))?)\b`)
	dateRe    = regexp.MustCompile(`\b(\d{2}/\d{2}/\d{4}(?:\s+\d{2}:\d{2})?)\b`)
	idFromURL = regexp.MustCompile(`(?:lote|lot|item|id)[/=-]([A-Za-z0-9-]+)`)
)

// parseCard extracts a raw payload from one lot card element.
func (s *HTMLStrategy) parseCard(element *rod.Element) map[string]any {
	text, err := element.Text()
	if err != nil || strings.TrimSpace(text) == "" {
		return nil
	}

	raw := map[string]any{}

	// Title: heading selectors first, then the first substantial line.
	for _, sel := range []string{".lote-titulo", ".card-title", ".titulo", "h2", "h3", ".title"} {
		titleEl, err := element.Element(sel)
		if err != nil || titleEl == nil {
			continue
		}
		if title, err := titleEl.Text(); err == nil && strings.TrimSpace(title) != "" {
			raw["titulo"] = strings.TrimSpace(title)
			break
		}
	}
	if raw["titulo"] == nil {
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if len(line) > 10 && !strings.Contains(line, "R$") {
				raw["titulo"] = line
				break
			}
		}
	}

	// Link and external id.
	if linkEl, err := element.Element("a"); err == nil && linkEl != nil {
		if href, err := linkEl.Attribute("href"); err == nil && href != nil && *href != "" {
			link := *href
			if strings.HasPrefix(link, "/") {
				link = s.LinkPrefix + link
			}
			raw["link"] = link
			if m := idFromURL.FindStringSubmatch(link); len(m) > 1 {
				raw["id"] = m[1]
			}
		}
	}
	if raw["id"] == nil {
		if id, err := element.Attribute("data-lote"); err == nil && id != nil && *id != "" {
			raw["id"] = *id
		}
	}

	if m := priceRe.FindStringSubmatch(text); len(m) > 1 {
		raw["lance"] = m[1]
	}
	if m := mileageRe.FindStringSubmatch(text); len(m) > 1 {
		raw["km"] = m[1]
	}
	if m := yearRe.FindStringSubmatch(text); len(m) > 1 {
		raw["ano"] = m[1]
	}
	if m := dateRe.FindStringSubmatch(text); len(m) > 1 {
		raw["dataLeilao"] = m[1]
	}
	if strings.Contains(strings.ToUpper(text), "FINANCI") || strings.Contains(strings.ToUpper(text), "PARCEL") {
		raw["parcelado"] = true
	}

	if imgEl, err := element.Element("img"); err == nil && imgEl != nil {
		if src, err := imgEl.Attribute("src"); err == nil && src != nil &&
			strings.HasPrefix(*src, "http") && !strings.Contains(*src, "placeholder") {
			raw["foto"] = *src
		}
	}

	return raw
}

func hasAnyElement(page *rod.Page, selectors []string) bool {
	for _, sel := range selectors {
		elements, err := page.Elements(sel)
		if err == nil && len(elements) > 0 {
			return true
		}
	}
	return false
}
