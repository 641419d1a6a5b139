package crawl

// entry is a queued page together with its distance from the start page.
type entry struct {
	URL   string
	Depth int
}

// Queue is a BFS queue with URL deduplication.
type Queue struct {
	items   []entry
	visited map[string]bool
	idx     int
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		visited: make(map[string]bool),
	}
}

// Add enqueues url at depth if it hasn't been seen before. It reports
// whether url was new.
func (q *Queue) Add(url string, depth int) bool {
	if q.visited[url] {
		return false
	}
	q.visited[url] = true
	q.items = append(q.items, entry{URL: url, Depth: depth})
	return true
}

// HasNext returns true if there are unprocessed URLs.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed entry and advances the pointer.
func (q *Queue) Next() entry {
	e := q.items[q.idx]
	q.idx++
	return e
}

// Seen returns the number of unique URLs added.
func (q *Queue) Seen() int {
	return len(q.visited)
}
