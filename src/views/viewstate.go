package views

// ViewState is the dashboard's filter and paging state. It is never mutated in place;
// every reducer returns a new value.
type ViewState struct {
	active  View
	filters map[View]Filter
	pages   map[View]int
}

func NewViewState() ViewState {
	return ViewState{active: ViewOpenMoves}
}

func (s ViewState) Active() View { return s.active }

// Filter returns a copy of the view's filter.
func (s ViewState) Filter(v View) Filter {
	out := Filter{}
	for k, val := range s.filters[v] {
		out[k] = val
	}
	return out
}

// Page returns the view's 1-based page index.
func (s ViewState) Page(v View) int {
	if n, ok := s.pages[v]; ok && n > 0 {
		return n
	}
	return 1
}

// WithView switches the active view and sends it back to its first page.
func (s ViewState) WithView(v View) ViewState {
	next := s.clone()
	next.active = v
	next.pages[v] = 1
	return next
}

// WithFilter sets one predicate value; an empty value clears it. The view returns to page 1.
func (s ViewState) WithFilter(v View, field, value string) ViewState {
	next := s.clone()
	flt := next.Filter(v)
	if value == "" {
		delete(flt, field)
	} else {
		flt[field] = value
	}
	next.filters[v] = flt
	next.pages[v] = 1
	return next
}

// ClearFilters empties the view's filter and returns it to page 1.
func (s ViewState) ClearFilters(v View) ViewState {
	next := s.clone()
	next.filters[v] = Filter{}
	next.pages[v] = 1
	return next
}

func (s ViewState) WithPage(v View, n int) ViewState {
	next := s.clone()
	if n < 1 {
		n = 1
	}
	next.pages[v] = n
	return next
}

func (s ViewState) clone() ViewState {
	next := ViewState{
		active:  s.active,
		filters: make(map[View]Filter, len(s.filters)),
		pages:   make(map[View]int, len(s.pages)),
	}
	for v, f := range s.filters {
		next.filters[v] = f
	}
	for v, n := range s.pages {
		next.pages[v] = n
	}
	return next
}
