// Package menu holds the hierarchical model the navigation layer browses:
// categories, action items, and config-backed toggles. The structure is
// immutable for the life of a session; only toggle values move, and those are
// written through to the config store.
package menu

// ActionID names an activatable menu action.
type ActionID string

// Kind discriminates the node union.
type Kind int

const (
	KindCategory Kind = iota
	KindItem
	KindToggle
)

// Node is one entry in the menu tree.
type Node struct {
	ID    string
	Label string
	Kind  Kind

	// Category fields.
	Children   []*Node
	Expandable bool

	// Item fields.
	Action ActionID

	// Toggle fields.
	ConfigKey string
	Value     bool

	Destructive    bool
	DisabledReason string
}

// Disabled reports whether the node is a placeholder ("coming soon") entry.
func (n *Node) Disabled() bool {
	return n.DisabledReason != ""
}

// ConfigStore is the narrow view of the external key/value store the tree
// needs: reconcile toggle values at load, write them back on change.
type ConfigStore interface {
	GetBool(key string, fallback bool) bool
	SetBool(key string, value bool) error
}

// Tree owns the root category and the store used for toggle write-through.
type Tree struct {
	root  *Node
	store ConfigStore
}

// NewTree builds a tree over root and reconciles every toggle with the store.
// The node's compiled-in Value acts as the default for keys the store does
// not hold yet.
func NewTree(root *Node, store ConfigStore) *Tree {
	t := &Tree{root: root, store: store}
	t.reconcile(root)
	return t
}

func (t *Tree) reconcile(n *Node) {
	if n == nil {
		return
	}
	if n.Kind == KindToggle && t.store != nil {
		n.Value = t.store.GetBool(n.ConfigKey, n.Value)
	}
	for _, child := range n.Children {
		t.reconcile(child)
	}
}

// Root returns the root category.
func (t *Tree) Root() *Node {
	return t.root
}

// NodeAt resolves a path of child indices from the root. A nil path is the
// root itself; any out-of-range step returns nil.
func (t *Tree) NodeAt(path []int) *Node {
	n := t.root
	for _, idx := range path {
		if n == nil || idx < 0 || idx >= len(n.Children) {
			return nil
		}
		n = n.Children[idx]
	}
	return n
}

// ChildrenOf returns the ordered children of the category at path, or nil if
// the path does not resolve to a category.
func (t *Tree) ChildrenOf(path []int) []*Node {
	n := t.NodeAt(path)
	if n == nil || n.Kind != KindCategory {
		return nil
	}
	return n.Children
}

// SetToggle flips the toggle at path to value, writing through to the store
// first. The in-memory value only changes after a successful write, so the
// displayed state always reflects the last confirmed store contents.
func (t *Tree) SetToggle(path []int, value bool) bool {
	n := t.NodeAt(path)
	if n == nil || n.Kind != KindToggle {
		return false
	}
	if t.store != nil {
		if err := t.store.SetBool(n.ConfigKey, value); err != nil {
			return false
		}
	}
	n.Value = value
	return true
}
