package listview

import (
	"sync"
	"time"

	"voltworks/pkg/debounce"
)

// Controller holds the live view state of one table in one UI session: the
// committed search term (debounced, trailing edge), the categorical filters,
// and the current page. Any change to the search term or a filter resets the
// page to 1.
type Controller[T Searchable] struct {
	mu         sync.Mutex
	search     string
	filters    map[string]string
	page       int
	pageSize   int
	extractors map[string]Extractor[T]
	debouncer  *debounce.Debouncer[string]
}

func NewController[T Searchable](pageSize int, searchDelay time.Duration, extractors map[string]Extractor[T]) *Controller[T] {
	c := &Controller[T]{
		filters:    make(map[string]string),
		page:       1,
		pageSize:   pageSize,
		extractors: extractors,
	}
	c.debouncer = debounce.New(searchDelay, c.commitSearch)
	return c
}

func (c *Controller[T]) commitSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if term == c.search {
		return
	}
	c.search = term
	c.page = 1
}

// SetSearch feeds a keystroke-fresh term into the debouncer. The committed
// term only changes once input has paused for the configured delay.
func (c *Controller[T]) SetSearch(term string) {
	c.debouncer.Set(term)
}

func (c *Controller[T]) SetFilter(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.filters[name] == value {
		return
	}
	c.filters[name] = value
	c.page = 1
}

func (c *Controller[T]) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if page < 1 {
		page = 1
	}
	c.page = page
}

// Query snapshots the committed view state.
func (c *Controller[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()

	filters := make(map[string]string, len(c.filters))
	for k, v := range c.filters {
		filters[k] = v
	}
	return Query{
		Search:   c.search,
		Filters:  filters,
		Page:     c.page,
		PageSize: c.pageSize,
	}
}

// Render runs the pipeline over the collection with the committed state and
// records the page the pipeline actually settled on.
func (c *Controller[T]) Render(items []T) Page[T] {
	result := Apply(items, c.Query(), c.extractors)

	c.mu.Lock()
	c.page = result.Page
	c.mu.Unlock()

	return result
}

// Close cancels any pending search commit. No state changes occur afterwards
// from previously typed input.
func (c *Controller[T]) Close() {
	c.debouncer.Stop()
}
