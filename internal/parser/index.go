package parser

import "github.com/mj1618/a11y-snapshot/internal/model"

// key is the identity of one input node within a parse. Every node
// reachable from the root gets exactly one key, and all identity checks
// (is this header the cell itself, is this button in that tab bar) compare
// keys.
type key int

const noKey key = -1

// nodeClass is the closed classification of a node, computed once during
// indexing and consulted wherever behavior depends on what a node is.
type nodeClass struct {
	kind        model.Kind
	tabBarTrait bool
	// dataTable is set for data table containers that describe their table.
	dataTable       bool
	providesContext bool
	// container is set for meaningful containers shown in the hierarchy.
	container *model.Container
}

// index assigns keys and classes to every node reachable from the root.
type index struct {
	root    key
	views   []*model.View
	classes []nodeClass
	keys    map[*model.View]key
	byID    map[string]key
	// owner maps a node listed in an explicit elements list to the node
	// whose list it appears in.
	owner map[key]key
}

func newIndex(root *model.View, origin model.Point) *index {
	idx := &index{
		keys:  make(map[*model.View]key),
		byID:  make(map[string]key),
		owner: make(map[key]key),
	}
	placed := make(map[key]bool)
	idx.root = idx.add(root, placed)
	placed[idx.root] = true

	idx.classes = make([]nodeClass, len(idx.views))
	for i, v := range idx.views {
		k := key(i)
		kind := v.EffectiveKind()
		// A kind-less node that only appears in an elements list and holds
		// no children of its own is a standalone accessibility element.
		if v.Kind == "" && !placed[k] && v.Elements == nil && len(v.Subviews) == 0 {
			kind = model.KindElement
		}
		idx.classes[i] = classify(v, kind, origin)
	}
	return idx
}

// add assigns keys depth first. placed collects the nodes that appear as a
// subview somewhere.
func (idx *index) add(v *model.View, placed map[key]bool) key {
	if k, ok := idx.keys[v]; ok {
		return k
	}
	k := key(len(idx.views))
	idx.keys[v] = k
	idx.views = append(idx.views, v)
	if v.ID != "" {
		if _, dup := idx.byID[v.ID]; !dup {
			idx.byID[v.ID] = k
		}
	}
	for _, el := range v.Elements {
		if el == nil {
			continue
		}
		ek := idx.add(el, placed)
		if _, claimed := idx.owner[ek]; !claimed {
			idx.owner[ek] = k
		}
	}
	for _, sub := range v.Subviews {
		if sub != nil {
			placed[idx.add(sub, placed)] = true
		}
	}
	return k
}

func (idx *index) view(k key) *model.View {
	return idx.views[k]
}

func (idx *index) class(k key) nodeClass {
	return idx.classes[k]
}

func (idx *index) lookup(id string) key {
	if k, ok := idx.byID[id]; ok {
		return k
	}
	return noKey
}

// classify decides once what a node of the given kind is for the purposes
// of traversal. origin is the root's screen position, used to place container frames.
func classify(v *model.View, kind model.Kind, origin model.Point) nodeClass {
	c := nodeClass{
		kind:        kind,
		tabBarTrait: v.Traits.Contains(model.TraitTabBar),
		dataTable:   v.ContainerType == model.ContainerDataTable && v.Table != nil,
	}
	c.providesContext = c.kind == model.KindSegmentedControl ||
		c.kind == model.KindTabBar ||
		c.tabBarTrait ||
		v.ContainerType == model.ContainerList ||
		v.ContainerType == model.ContainerLandmark ||
		c.dataTable
	if c.kind.IsView() {
		c.container = containerInfo(v, origin)
	}
	return c
}

// containerInfo describes v when it is a container worth showing in the
// hierarchy, or returns nil.
func containerInfo(v *model.View, origin model.Point) *model.Container {
	info := &model.Container{
		Label:      v.Label,
		Value:      v.Value,
		Identifier: v.Identifier,
		Traits:     v.Traits,
		Frame:      v.Frame.Offset(-origin.X, -origin.Y),
	}
	switch {
	case v.Traits.Contains(model.TraitTabBar):
		info.Kind = model.ContainerKindTabBar
	case v.ContainerType == model.ContainerList:
		info.Kind = model.ContainerKindList
	case v.ContainerType == model.ContainerLandmark:
		info.Kind = model.ContainerKindLandmark
	case v.ContainerType == model.ContainerDataTable:
		info.Kind = model.ContainerKindDataTable
		if v.Table != nil {
			info.Rows = v.Table.Rows
			info.Columns = v.Table.Columns
		}
	case v.ContainerType == model.ContainerSemanticGroup &&
		(v.Label != "" || v.Value != "" || v.Identifier != ""):
		info.Kind = model.ContainerKindSemanticGroup
	default:
		return nil
	}
	return info
}

// run is the state of one parse call. It is never shared.
type run struct {
	opts   Options
	idx    *index
	origin model.Point
	desc   describer
	// tabOrders memoizes the traversal order below views carrying the tab
	// bar trait, keyed by the view.
	tabOrders map[key][]key
	// cells memoizes the table cells below each data table.
	cells map[key][]key
}

func newRun(root *model.View, o Options) *run {
	origin := root.Frame.Origin()
	return &run{
		opts:      o,
		idx:       newIndex(root, origin),
		origin:    origin,
		desc:      describer{bundle: o.Bundle, verbosity: o.Verbosity},
		tabOrders: make(map[key][]key),
		cells:     make(map[key][]key),
	}
}
