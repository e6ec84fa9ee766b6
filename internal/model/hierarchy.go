package model

import (
	"math"
	"sort"
)

// ContainerKind is the kind of a meaningful accessibility container.
type ContainerKind string

const (
	ContainerKindSemanticGroup ContainerKind = "semantic_group"
	ContainerKindList          ContainerKind = "list"
	ContainerKindLandmark      ContainerKind = "landmark"
	ContainerKindDataTable     ContainerKind = "data_table"
	ContainerKindTabBar        ContainerKind = "tab_bar"
)

// Container describes a container that groups markers in a hierarchy.
type Container struct {
	Kind       ContainerKind `yaml:"kind"                 json:"kind"`
	Label      string        `yaml:"label,omitempty"      json:"label,omitempty"`
	Value      string        `yaml:"value,omitempty"      json:"value,omitempty"`
	Identifier string        `yaml:"identifier,omitempty" json:"identifier,omitempty"`
	Traits     Traits        `yaml:"traits,omitempty"     json:"traits,omitempty"`
	Rows       int           `yaml:"rows,omitempty"       json:"rows,omitempty"`
	Columns    int           `yaml:"columns,omitempty"    json:"columns,omitempty"`
	Frame      Rect          `yaml:"frame"                json:"frame"`
}

// HierarchyNode is either a marker (leaf) or a container with children.
type HierarchyNode struct {
	Marker    *Marker         `yaml:"marker,omitempty"    json:"marker,omitempty"`
	Container *Container      `yaml:"container,omitempty" json:"container,omitempty"`
	Children  []HierarchyNode `yaml:"children,omitempty"  json:"children,omitempty"`
}

// SortIndex is the traversal index of a marker, or the smallest index
// among a container's descendants.
func (n HierarchyNode) SortIndex() int {
	if n.Marker != nil {
		return n.Marker.Index
	}
	min := math.MaxInt
	for _, child := range n.Children {
		if idx := child.SortIndex(); idx < min {
			min = idx
		}
	}
	return min
}

// Walk visits n and its descendants depth-first.
func (n HierarchyNode) Walk(fn func(HierarchyNode)) {
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// FlattenHierarchy returns every marker in the hierarchy in traversal order.
func FlattenHierarchy(nodes []HierarchyNode) []Marker {
	var result []Marker
	for _, n := range nodes {
		n.Walk(func(node HierarchyNode) {
			if node.Marker != nil {
				result = append(result, *node.Marker)
			}
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Index < result[j].Index
	})
	return result
}

// FlattenContainers returns every container in depth-first order.
func FlattenContainers(nodes []HierarchyNode) []Container {
	var result []Container
	for _, n := range nodes {
		n.Walk(func(node HierarchyNode) {
			if node.Container != nil {
				result = append(result, *node.Container)
			}
		})
	}
	return result
}
