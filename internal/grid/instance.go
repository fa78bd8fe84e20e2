package grid

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
)

var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrNotOrderable  = errors.New("column is not orderable")
	ErrDestroyed     = errors.New("grid instance destroyed")
)

// Instance is the interactive state attached to one table.
type Instance struct {
	mu        sync.RWMutex
	table     *Table
	sort      SortKey
	page      int
	destroyed bool
}

func newInstance(table *Table) *Instance {
	inst := &Instance{table: table, sort: table.DefaultSort, page: 1}
	if inst.sort.Dir == "" {
		inst.sort.Dir = Desc
	}
	return inst
}

func (i *Instance) Table() *Table {
	return i.table
}

func (i *Instance) Destroyed() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.destroyed
}

func (i *Instance) destroy() {
	i.mu.Lock()
	i.destroyed = true
	i.mu.Unlock()
}

func (i *Instance) Sort(column string, dir Direction) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.destroyed {
		return ErrDestroyed
	}
	idx := i.table.ColumnIndex(column)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}
	if !i.table.Columns[idx].Orderable {
		return fmt.Errorf("%w: %s", ErrNotOrderable, column)
	}
	if dir != Asc {
		dir = Desc
	}
	i.sort = SortKey{Column: column, Dir: dir}
	i.page = 1
	return nil
}

func (i *Instance) SortKey() SortKey {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.sort
}

func (i *Instance) SetPage(page int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if page < 1 {
		page = 1
	}
	i.page = page
}

type Page struct {
	Number   int
	Total    int
	Pages    []int
	HasPrev  bool
	HasNext  bool
	PrevPage int
	NextPage int
}

func (i *Instance) Page() Page {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.pageLocked()
}

func (i *Instance) pageLocked() Page {
	total := 1
	if i.table.PageSize > 0 {
		total = int(math.Ceil(float64(len(i.table.Rows)) / float64(i.table.PageSize)))
		if total < 1 {
			total = 1
		}
	}
	page := i.page
	if page > total {
		page = total
	}
	p := Page{Number: page, Total: total}
	p.Pages = make([]int, 0, total)
	for n := 1; n <= total; n++ {
		p.Pages = append(p.Pages, n)
	}
	p.HasPrev = page > 1
	p.HasNext = page < total
	if p.HasPrev {
		p.PrevPage = page - 1
	}
	if p.HasNext {
		p.NextPage = page + 1
	}
	return p
}

// Rows returns the table rows in the current sort order, limited to the
// current page when paging is enabled.
func (i *Instance) Rows() []Row {
	i.mu.RLock()
	defer i.mu.RUnlock()

	rows := append([]Row(nil), i.table.Rows...)
	idx := i.table.ColumnIndex(i.sort.Column)
	if idx >= 0 {
		numeric := i.table.Columns[idx].Numeric
		desc := i.sort.Dir == Desc
		sort.SliceStable(rows, func(a, b int) bool {
			c := compareCells(rows[a].Cells[idx], rows[b].Cells[idx], numeric)
			if desc {
				return c > 0
			}
			return c < 0
		})
	}
	if i.table.PageSize <= 0 {
		return rows
	}
	page := i.pageLocked()
	start := (page.Number - 1) * i.table.PageSize
	end := start + i.table.PageSize
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

func compareCells(a, b Cell, numeric bool) int {
	if numeric {
		switch {
		case a.Order < b.Order:
			return -1
		case a.Order > b.Order:
			return 1
		}
		return 0
	}
	return strings.Compare(strings.ToLower(a.Text), strings.ToLower(b.Text))
}
