package parser

import (
	"sort"

	"github.com/mj1618/a11y-snapshot/internal/model"
)

type providerKind int

const (
	// providerSuperview: the element was reached by plain subview descent.
	providerSuperview providerKind = iota + 1
	// providerContainer: the element was listed by an explicit elements list.
	providerContainer
	// providerDataTable: the element belongs to a data table.
	providerDataTable
)

// provider is the ancestor that gives descendant elements their context.
type provider struct {
	kind providerKind
	node key
}

// node is one entry of the intermediate tree: a leaf element or a group
// whose members are visited contiguously.
type node struct {
	leaf     bool
	element  key
	provider *provider

	children []*node
	// explicitlyOrdered groups keep their children in input order.
	explicitlyOrdered bool
	// frameOverride, when set, positions the group among its siblings
	// instead of the union of its children.
	frameOverride key
	// owner is the node the group was built from.
	owner key
}

func elementNode(k key, p *provider) *node {
	return &node{leaf: true, element: k, provider: p, frameOverride: noKey, owner: noKey}
}

// hidden reports whether k and its whole subtree are invisible to the
// screen reader.
func (r *run) hidden(k key) bool {
	v := r.idx.view(k)
	if v.ElementsHidden {
		return true
	}
	if !r.idx.class(k).kind.IsView() {
		return false
	}
	return v.Hidden || v.EffectiveAlpha() <= 0 || v.Frame.IsZeroSize()
}

// build returns the nodes k contributes. p is the context provider
// established by the nearest providing ancestor, if any; once set it is
// passed through unchanged.
func (r *run) build(k key, p *provider) []*node {
	if r.hidden(k) {
		return nil
	}
	v := r.idx.view(k)
	class := r.idx.class(k)

	if v.IsElement {
		return []*node{elementNode(k, p)}
	}

	if v.Elements != nil {
		inherited := p
		if inherited == nil && class.providesContext {
			inherited = r.asContainer(k)
		}
		var children []*node
		for _, el := range v.Elements {
			if el == nil {
				continue
			}
			children = append(children, r.build(r.idx.keys[el], inherited)...)
		}
		if len(children) == 0 {
			return nil
		}
		g := &node{
			children:          children,
			explicitlyOrdered: true,
			frameOverride:     noKey,
			owner:             k,
		}
		if r.overridesElementFrame(p) {
			g.frameOverride = k
		}
		return []*node{g}
	}

	if !class.kind.IsView() {
		return nil
	}

	subviews := v.Subviews
	for i := len(v.Subviews) - 1; i >= 0; i-- {
		if sub := v.Subviews[i]; sub != nil && sub.Modal {
			subviews = v.Subviews[i : i+1]
			break
		}
	}

	inherited := p
	if inherited == nil && class.providesContext {
		inherited = r.asSuperview(k)
	}
	var children []*node
	for _, sub := range subviews {
		if sub == nil {
			continue
		}
		children = append(children, r.build(r.idx.keys[sub], inherited)...)
	}
	if len(children) == 0 {
		return nil
	}
	if v.GroupsChildren || class.container != nil {
		return []*node{{children: children, frameOverride: noKey, owner: k}}
	}
	return children
}

// asSuperview is the provider k acts as for views below it.
func (r *run) asSuperview(k key) *provider {
	if r.idx.class(k).dataTable {
		return &provider{kind: providerDataTable, node: k}
	}
	return &provider{kind: providerSuperview, node: k}
}

// asContainer is the provider k acts as for the elements it lists.
func (r *run) asContainer(k key) *provider {
	if r.idx.class(k).dataTable {
		return &provider{kind: providerDataTable, node: k}
	}
	return &provider{kind: providerContainer, node: k}
}

// overridesElementFrame reports whether a group under p is positioned by
// its own frame. Views inside a tab-bar-trait view are placed where the
// containing group sits, not where its first element sits.
func (r *run) overridesElementFrame(p *provider) bool {
	return p != nil && p.kind == providerSuperview && r.idx.class(p.node).tabBarTrait
}

// hierarchy maps the intermediate tree onto output nodes. Groups that are
// meaningful containers become container nodes; other groups are
// flattened into their parent.
func (r *run) hierarchy(nodes []*node, traversal map[key]int, markers []model.Marker) []model.HierarchyNode {
	var out []model.HierarchyNode
	for _, n := range nodes {
		out = append(out, r.mapNode(n, traversal, markers)...)
	}
	return out
}

func (r *run) mapNode(n *node, traversal map[key]int, markers []model.Marker) []model.HierarchyNode {
	if n.leaf {
		i, ok := traversal[n.element]
		if !ok {
			return nil
		}
		return []model.HierarchyNode{{Marker: &markers[i]}}
	}

	var children []model.HierarchyNode
	for _, c := range n.children {
		children = append(children, r.mapNode(c, traversal, markers)...)
	}
	sortHierarchy(children)

	if n.owner != noKey {
		if info := r.idx.class(n.owner).container; info != nil {
			c := *info
			return []model.HierarchyNode{{Container: &c, Children: children}}
		}
	}
	return children
}

// sortHierarchy orders siblings by the first traversal index they contain.
func sortHierarchy(nodes []model.HierarchyNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].SortIndex() < nodes[j].SortIndex()
	})
}
