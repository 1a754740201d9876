package tui

import "testing"

func TestPagerNavigation(t *testing.T) {
	p := newPager()
	if p.page != 1 || p.totalPages != 1 {
		t.Fatalf("new pager = page %d/%d, want 1/1", p.page, p.totalPages)
	}
	if p.next() {
		t.Error("next on a single page should not move")
	}
	p.setTotal(3)
	if !p.next() || p.page != 2 {
		t.Errorf("after next: page %d, want 2", p.page)
	}
	if !p.next() || p.page != 3 {
		t.Errorf("after next: page %d, want 3", p.page)
	}
	if p.next() {
		t.Error("next past the last page should not move")
	}
	if !p.prev() || p.page != 2 {
		t.Errorf("after prev: page %d, want 2", p.page)
	}
}

func TestPagerSetTotalClamp(t *testing.T) {
	p := newPager()
	p.setTotal(5)
	p.page = 5

	// Data set shrank underneath us: snap back to page 1.
	p.setTotal(2)
	if p.page != 1 {
		t.Errorf("page = %d, want 1 after shrink", p.page)
	}

	p.setTotal(0)
	if p.totalPages != 1 {
		t.Errorf("totalPages = %d, want 1 for non-positive input", p.totalPages)
	}
}

func TestPagerResetPage(t *testing.T) {
	p := newPager()
	p.setTotal(4)
	p.page = 3
	p.resetPage()
	if p.page != 1 {
		t.Errorf("page = %d, want 1 after reset", p.page)
	}
}

func TestPagerStaleGenerations(t *testing.T) {
	p := newPager()
	first := p.begin()
	second := p.begin()
	if !p.stale(first) {
		t.Error("superseded generation should be stale")
	}
	if p.stale(second) {
		t.Error("latest generation should not be stale")
	}
}
