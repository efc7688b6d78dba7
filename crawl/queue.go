// Package crawl — landing page queue.
// Keeps the landing pages found during the first scan, in discovery order,
// without duplicates.
package crawl

// Queue is a FIFO of URLs that ignores URLs it has already seen.
type Queue struct {
	items []string
	seen  map[string]bool
	idx   int // current read position
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		seen: make(map[string]bool),
	}
}

// Add enqueues a URL if it hasn't been seen before and reports whether it was added.
func (q *Queue) Add(url string) bool {
	if q.seen[url] {
		return false
	}
	q.seen[url] = true
	q.items = append(q.items, url)
	return true
}

// HasNext returns true if there are unprocessed URLs.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed URL and advances the pointer.
func (q *Queue) Next() string {
	url := q.items[q.idx]
	q.idx++
	return url
}

// Len returns the number of distinct URLs ever added.
func (q *Queue) Len() int {
	return len(q.items)
}
