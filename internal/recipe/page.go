package recipe

// DefaultResultsPerPage matches the page size of the web client.
const DefaultResultsPerPage = 10

// Search is the state of the most recent query.
type Search struct {
	Query   string
	Results []Summary
	Page    int // zero-based
	PerPage int
}

// PageCount returns how many pages n results span at size per page.
func PageCount(n, size int) int {
	if n <= 0 {
		return 0
	}
	if size <= 0 {
		size = DefaultResultsPerPage
	}
	return (n + size - 1) / size
}

// ClampPage bounds k to the pages available for n results.
func ClampPage(k, n, size int) int {
	pages := PageCount(n, size)
	if pages == 0 || k < 0 {
		return 0
	}
	if k >= pages {
		return pages - 1
	}
	return k
}

// Page returns results[k*size:(k+1)*size] clipped to the slice bounds.
// Out-of-range pages yield an empty slice.
func Page(results []Summary, k, size int) []Summary {
	if size <= 0 {
		size = DefaultResultsPerPage
	}
	if k < 0 || k >= PageCount(len(results), size) {
		return []Summary{}
	}
	start := k * size
	end := start + size
	if end > len(results) {
		end = len(results)
	}
	out := make([]Summary, end-start)
	copy(out, results[start:end])
	return out
}

// PageCount returns the number of pages in s.
func (s Search) PageCount() int {
	return PageCount(len(s.Results), s.PerPage)
}

// HasPrev reports whether a previous page exists.
func (s Search) HasPrev() bool {
	return s.Page > 0 && s.PageCount() > 1
}

// HasNext reports whether a following page exists.
func (s Search) HasNext() bool {
	return s.Page < s.PageCount()-1
}
