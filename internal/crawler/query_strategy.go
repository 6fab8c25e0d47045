package crawler

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/stealth"

	"github.com/ybycrew/leilaoapp-sub000/internal/textutil"
)

// JSONFetcher fetches one query-endpoint URL and decodes the response.
// Production uses the browser-backed fetcher so sites requiring full
// page execution still answer; tests substitute a fake.
type JSONFetcher interface {
	FetchJSON(url string) (map[string]any, error)
}

// QueryStrategy discovers lots through a site's internal search
// endpoint. The first unfiltered page requests facet counts, then the
// query is replayed once per facet value to reach result sets beyond
// the site's page-count ceiling.
type QueryStrategy struct {
	SiteName string
	// Endpoint is the search endpoint base URL; paging and filter
	// parameters are appended.
	Endpoint string
	// FacetParams are the filter parameters replayed per facet value,
	// e.g. "subcategoria" or "financiavel".
	FacetParams []string

	// NewFetcher overrides the browser-backed fetcher in tests.
	NewFetcher func(rt *Runtime) JSONFetcher
}

// Name implements Strategy.
func (s *QueryStrategy) Name() string {
	return s.SiteName
}

// Discover runs the unfiltered pass first, collects facet values from
// it, then replays the query per facet value. Every filter combination
// is tracked in a visited set keyed by its canonical signature so no
// combination is processed twice.
func (s *QueryStrategy) Discover(rt *Runtime) error {
	var fetcher JSONFetcher
	if s.NewFetcher != nil {
		fetcher = s.NewFetcher(rt)
	} else {
		f, err := newRodJSONFetcher(rt)
		if err != nil {
			return err
		}
		defer f.Close()
		fetcher = f
	}

	visited := make(map[string]struct{})

	facets, err := s.crawlCombination(rt, fetcher, visited, nil)
	if err != nil {
		// The unfiltered pass failing entirely means the endpoint is
		// unreachable; replay would fail the same way.
		return err
	}

	for _, param := range s.FacetParams {
		for _, value := range facets[param] {
			filter := map[string]string{param: value}
			if _, err := s.crawlCombination(rt, fetcher, visited, filter); err != nil {
				// One bad filter combination does not end the run.
				rt.Metrics.IncError("facet-replay")
				fmt.Printf("⚠️  %s: filter %s failed: %v\n", s.SiteName, FilterSignature(filter), err)
			}
		}
	}

	return nil
}

// crawlCombination pages through one filter combination until a page
// comes back empty or short. Facet values seen on the first page are
// returned so the caller can schedule replays.
func (s *QueryStrategy) crawlCombination(rt *Runtime, fetcher JSONFetcher, visited map[string]struct{}, filter map[string]string) (map[string][]string, error) {
	signature := FilterSignature(filter)
	if _, seen := visited[signature]; seen {
		return nil, nil
	}
	visited[signature] = struct{}{}

	facets := make(map[string][]string)

	for pageNum := 1; pageNum <= rt.Config.MaxPages; pageNum++ {
		rt.Pace()

		wantFacets := pageNum == 1 && len(filter) == 0
		reqURL := s.buildURL(pageNum, rt.Config.PageSize, filter, wantFacets)

		var doc map[string]any
		start := time.Now()
		err := rt.WithRetries("query", func() error {
			var ferr error
			doc, ferr = fetcher.FetchJSON(reqURL)
			return ferr
		})
		rt.Metrics.ObserveRequest(time.Since(start))
		if err != nil {
			if pageNum == 1 && len(filter) == 0 {
				return nil, fmt.Errorf("query endpoint unreachable: %w", err)
			}
			// Skip the broken page, keep the combination going.
			continue
		}
		rt.Metrics.IncPage("query")

		items := pickItems(doc)
		if wantFacets {
			mergeFacets(facets, pickFacets(doc))
		}
		if len(items) == 0 {
			break
		}

		for _, item := range items {
			rt.Emit(item)
		}

		if len(items) < rt.Config.PageSize {
			break
		}
	}

	return facets, nil
}

func (s *QueryStrategy) buildURL(pageNum, pageSize int, filter map[string]string, withFacets bool) string {
	values := url.Values{}
	values.Set("pagina", strconv.Itoa(pageNum))
	values.Set("tamanho", strconv.Itoa(pageSize))
	if withFacets {
		values.Set("agregacoes", "true")
	}
	for k, v := range filter {
		values.Set(k, v)
	}

	sep := "?"
	if strings.Contains(s.Endpoint, "?") {
		sep = "&"
	}
	return s.Endpoint + sep + values.Encode()
}

// FilterSignature renders a filter combination's canonical signature:
// sorted key=value pairs joined with '&'. The unfiltered combination
// signs as the empty string.
func FilterSignature(filter map[string]string) string {
	if len(filter) == 0 {
		return ""
	}
	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+filter[k])
	}
	return strings.Join(parts, "&")
}

// pickItems pulls the result array out of a tolerant set of envelope
// field names.
func pickItems(doc map[string]any) []map[string]any {
	v, ok := textutil.PickField(doc, "items", "itens", "lotes", "resultados", "data", "hits")
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []map[string]any
	for _, item := range arr {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// pickFacets pulls facet values from the aggregation envelope. Values
// may arrive as plain strings or as {value, count} objects.
func pickFacets(doc map[string]any) map[string][]string {
	agg := textutil.PickMap(doc, "facets", "agregacoes", "aggregations", "filtros")
	if agg == nil {
		return nil
	}
	out := make(map[string][]string)
	for field, v := range agg {
		arr, ok := v.([]any)
		if !ok {
			continue
		}
		for _, entry := range arr {
			switch t := entry.(type) {
			case string:
				if t != "" {
					out[field] = append(out[field], t)
				}
			case map[string]any:
				if val := textutil.PickString(t, "value", "valor", "key", "nome"); val != "" {
					out[field] = append(out[field], val)
				}
			}
		}
	}
	return out
}

func mergeFacets(dst, src map[string][]string) {
	for field, values := range src {
		dst[field] = append(dst[field], values...)
	}
}

// rodJSONFetcher drives the query endpoint through the browser context
// so sites that gate their APIs behind full page execution still
// respond.
type rodJSONFetcher struct {
	page    *rod.Page
	timeout time.Duration
}

func newRodJSONFetcher(rt *Runtime) (*rodJSONFetcher, error) {
	page, err := stealth.Page(rt.Browser)
	if err != nil {
		return nil, fmt.Errorf("failed to open stealth page: %w", err)
	}
	return &rodJSONFetcher{page: page, timeout: rt.Config.PageTimeout}, nil
}

// FetchJSON navigates to the URL and decodes the page body as JSON.
func (f *rodJSONFetcher) FetchJSON(reqURL string) (map[string]any, error) {
	pctx := f.page.Timeout(f.timeout)
	if err := pctx.Navigate(reqURL); err != nil {
		return nil, fmt.Errorf("navigation failed: %w", err)
	}
	if err := pctx.WaitLoad(); err != nil {
		return nil, fmt.Errorf("page load failed: %w", err)
	}

	body, err := pctx.Eval("() => document.body.innerText")
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(body.Value.Str()), &doc); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}
	return doc, nil
}

func (f *rodJSONFetcher) Close() {
	f.page.Close()
}
