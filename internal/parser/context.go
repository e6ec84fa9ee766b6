package parser

import "github.com/mj1618/a11y-snapshot/internal/model"

// context resolves the structural context p gives element k, or nil.
func (r *run) context(k key, p *provider) *model.Context {
	if p == nil {
		return nil
	}
	switch p.kind {
	case providerSuperview:
		return r.superviewContext(k, p.node)
	case providerContainer:
		return r.containerContext(k, p.node)
	case providerDataTable:
		return r.dataTableContext(k, p.node)
	}
	return nil
}

func (r *run) superviewContext(k, sv key) *model.Context {
	if !r.idx.class(k).kind.IsView() {
		return nil
	}
	class := r.idx.class(sv)

	if class.kind == model.KindTabBar {
		items := r.idx.view(sv).TabItems
		buttons := r.tabBarButtons(sv)
		// Some tab bars carry several copies of their button set, so any
		// whole multiple of the item count is accepted.
		if len(items) == 0 || len(buttons)%len(items) != 0 {
			fault("tab bar %q has %d buttons for %d items", r.idx.view(sv).ID, len(buttons), len(items))
		}
		i := indexOf(buttons, k)
		if i == -1 {
			fault("element %q is not a button of tab bar %q", r.idx.view(k).ID, r.idx.view(sv).ID)
		}
		i %= len(items)
		return &model.Context{Kind: model.ContextTabBarItem, Index: i + 1, Count: len(items), Item: items[i]}
	}

	if class.tabBarTrait {
		order := r.tabOrder(sv)
		i := indexOf(order, k)
		if i == -1 {
			fault("element %q not found in the traversal of tab bar %q", r.idx.view(k).ID, r.idx.view(sv).ID)
		}
		return &model.Context{Kind: model.ContextTab, Index: i + 1, Count: len(order)}
	}
	return nil
}

func (r *run) containerContext(k, c key) *model.Context {
	v := r.idx.view(c)
	i, count := -1, 0
	for _, el := range v.Elements {
		if el == nil {
			continue
		}
		if i == -1 && r.idx.keys[el] == k {
			i = count
		}
		count++
	}
	if i == -1 {
		fault("element %q is not listed by its container %q", r.idx.view(k).ID, v.ID)
	}
	class := r.idx.class(c)

	switch {
	case class.kind == model.KindSegmentedControl:
		return &model.Context{Kind: model.ContextSeries, Index: i + 1, Count: count}
	case class.tabBarTrait:
		return &model.Context{Kind: model.ContextTab, Index: i + 1, Count: count}
	case v.ContainerType == model.ContainerList:
		return boundaryContext(i, count, model.ContextListStart, model.ContextListEnd)
	case v.ContainerType == model.ContainerLandmark:
		return boundaryContext(i, count, model.ContextLandmarkStart, model.ContextLandmarkEnd)
	}
	return nil
}

// boundaryContext marks the first and last element of a list or landmark.
func boundaryContext(i, count int, start, end model.ContextKind) *model.Context {
	switch i {
	case 0:
		return &model.Context{Kind: start}
	case count - 1:
		return &model.Context{Kind: end}
	}
	return nil
}

func (r *run) dataTableContext(k, table key) *model.Context {
	cell := r.idx.view(k).Cell
	if cell == nil {
		return nil
	}
	t := r.idx.view(table).Table
	row, column := cell.Row, cell.Column

	// Known divergence: the screen reader appears to use the cell's actual
	// position here, so a cell whose column is NotFound is never first in
	// its row even when nothing precedes it.
	isFirstInRow := column != model.NotFound && row != model.NotFound
	for c := 0; isFirstInRow && c < column; c++ {
		if r.cellAt(table, row, c) != noKey {
			isFirstInRow = false
		}
	}

	var rowHeaders []string
	if isFirstInRow {
		for _, h := range r.headers(t.RowHeaders[row]) {
			if h == k {
				continue
			}
			hc := r.cellRange(h)
			if r.cellAt(table, hc.Row, hc.Column) != h {
				continue
			}
			rowHeaders = append(rowHeaders, r.formatHeader(h))
		}
	}

	var columnHeaders []string
	for _, h := range r.headers(t.ColumnHeaders[column]) {
		if h == k {
			continue
		}
		hc := r.cellRange(h)
		if row != model.NotFound && hc.Row == row-1 && hc.Column == column && isFirstInRow {
			continue
		}
		columnHeaders = append(columnHeaders, r.formatHeader(h))
	}

	return &model.Context{
		Kind:          model.ContextDataTableCell,
		Row:           row,
		Column:        column,
		RowSpan:       cell.Rows(),
		ColumnSpan:    cell.Columns(),
		IsFirstInRow:  isFirstInRow,
		RowHeaders:    rowHeaders,
		ColumnHeaders: columnHeaders,
	}
}

// headers resolves header ids to keys, dropping ids that match no node.
func (r *run) headers(ids []string) []key {
	var out []key
	for _, id := range ids {
		if k := r.idx.lookup(id); k != noKey {
			out = append(out, k)
		} else {
			r.opts.Logger.Debug("table header not found", "id", id)
		}
	}
	return out
}

// cellRange is where k sits in a table; nodes that are not cells sit nowhere.
func (r *run) cellRange(k key) model.CellRange {
	if c := r.idx.view(k).Cell; c != nil {
		return *c
	}
	return model.CellRange{Row: model.NotFound, Column: model.NotFound}
}

// formatHeader renders a header the way it is prepended to a cell.
func (r *run) formatHeader(k key) string {
	v := r.idx.view(k)
	switch {
	case v.Label != "" && v.Value != "":
		return v.Label + ": " + v.Value + ". "
	case v.Label != "":
		return v.Label + ". "
	case v.Value != "":
		return v.Value + ". "
	}
	return ""
}

// cellAt returns the cell of table covering row and column, or noKey.
func (r *run) cellAt(table key, row, column int) key {
	for _, c := range r.tableCells(table) {
		if r.idx.view(c).Cell.Covers(row, column) {
			return c
		}
	}
	return noKey
}

// tableCells lists the cells below a data table in depth-first order,
// excluding those of nested tables.
func (r *run) tableCells(table key) []key {
	if cells, ok := r.cells[table]; ok {
		return cells
	}
	var cells []key
	var walk func(v *model.View)
	walk = func(v *model.View) {
		for _, children := range [][]*model.View{v.Elements, v.Subviews} {
			for _, child := range children {
				if child == nil {
					continue
				}
				ck := r.idx.keys[child]
				if child.Cell != nil {
					cells = append(cells, ck)
				}
				if !r.idx.class(ck).dataTable {
					walk(child)
				}
			}
		}
	}
	walk(r.idx.view(table))
	r.cells[table] = cells
	return cells
}

// tabBarButtons lists the tab bar button views below a tab bar in
// depth-first order.
func (r *run) tabBarButtons(tabBar key) []key {
	var buttons []key
	var walk func(v *model.View)
	walk = func(v *model.View) {
		for _, sub := range v.Subviews {
			if sub == nil {
				continue
			}
			if sub.EffectiveKind() == model.KindTabBarButton {
				buttons = append(buttons, r.idx.keys[sub])
			}
			walk(sub)
		}
	}
	walk(r.idx.view(tabBar))
	return buttons
}

// tabOrder is the traversal order of every element below a view carrying
// the tab bar trait, computed once per view and parse.
func (r *run) tabOrder(v key) []key {
	if order, ok := r.tabOrders[v]; ok {
		return order
	}
	elements := r.sorted(r.build(v, nil), false)
	order := make([]key, len(elements))
	for i, el := range elements {
		order[i] = el.key
	}
	r.tabOrders[v] = order
	r.opts.Logger.Debug("computed tab order", "view", r.idx.view(v).ID, "elements", len(order))
	return order
}

func indexOf(keys []key, k key) int {
	for i, candidate := range keys {
		if candidate == k {
			return i
		}
	}
	return -1
}
