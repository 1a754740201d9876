package tui

// pager tracks pagination and fetch generations for a list panel.
//
// Every fetch is tagged with a generation; a response carrying a stale
// generation is discarded, so the newest request always wins no matter the
// order responses arrive in.
type pager struct {
	page       int
	totalPages int
	gen        int
}

func newPager() pager {
	return pager{page: 1, totalPages: 1}
}

// begin marks the start of a fetch and returns its generation tag.
func (p *pager) begin() int {
	p.gen++
	return p.gen
}

// stale reports whether a response tagged gen has been superseded.
func (p *pager) stale(gen int) bool {
	return gen != p.gen
}

// setTotal records the page count from a response. If the current page no
// longer exists (the data set shrank), the pager snaps back to page 1.
func (p *pager) setTotal(total int) {
	if total < 1 {
		total = 1
	}
	p.totalPages = total
	if p.page > total {
		p.page = 1
	}
}

// next advances one page if possible and reports whether it moved.
func (p *pager) next() bool {
	if p.page < p.totalPages {
		p.page++
		return true
	}
	return false
}

// prev steps back one page if possible and reports whether it moved.
func (p *pager) prev() bool {
	if p.page > 1 {
		p.page--
		return true
	}
	return false
}

// resetPage returns to page 1. Called whenever a search or filter changes.
func (p *pager) resetPage() {
	p.page = 1
}
