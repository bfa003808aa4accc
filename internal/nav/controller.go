package nav

import (
	"shellmate/internal/input"
	"shellmate/internal/logging/events"
	"shellmate/internal/menu"
)

// State is the controller's top-level mode.
type State int

const (
	StateIdle State = iota
	StateConfirmPending
	StateExiting
)

// Row is one visible line of the current view: a direct child of the browsed
// category, or an indented child of an inline-expanded subcategory.
type Row struct {
	Path  []int // relative to the current view's category
	Node  *menu.Node
	Depth int
}

// Controller walks a menu.Tree in response to key events. Every session
// starts fresh at the root; nothing persists across invocations.
type Controller struct {
	tree *menu.Tree

	// steps is the breadcrumb: one entry per Enter into a category. An entry
	// holds the relative path taken from the then-current view, which is two
	// indices when the target was an inline-expanded child.
	steps [][]int

	selected     int
	expanded     map[string]struct{}
	state        State
	pending      *Effect
	pendingLabel string

	filterQuery  string
	filterActive bool
}

// New builds a controller positioned at the tree root.
func New(tree *menu.Tree) *Controller {
	return &Controller{
		tree:     tree,
		expanded: map[string]struct{}{},
	}
}

// State returns the current mode.
func (c *Controller) State() State {
	return c.state
}

// Selected returns the index into the visible rows.
func (c *Controller) Selected() int {
	return c.selected
}

// PendingLabel is the label of the destructive item awaiting confirmation.
func (c *Controller) PendingLabel() string {
	return c.pendingLabel
}

// Filter returns the current query and whether filter entry mode is active.
func (c *Controller) Filter() (query string, active bool) {
	return c.filterQuery, c.filterActive
}

// Depth returns the current nesting depth below the session root.
func (c *Controller) Depth() int {
	return len(c.steps)
}

// viewPath is the absolute path of the category currently browsed.
func (c *Controller) viewPath() []int {
	var path []int
	for _, step := range c.steps {
		path = append(path, step...)
	}
	return path
}

// BreadcrumbLabels returns the root label followed by each entered category.
func (c *Controller) BreadcrumbLabels() []string {
	labels := []string{c.tree.Root().Label}
	var path []int
	for _, step := range c.steps {
		path = append(path, step...)
		if n := c.tree.NodeAt(path); n != nil {
			labels = append(labels, n.Label)
		}
	}
	return labels
}

// VisibleRows flattens the current view: direct children, plus the indented
// children of any inline-expanded category, narrowed by the active filter.
func (c *Controller) VisibleRows() []Row {
	children := c.tree.ChildrenOf(c.viewPath())
	rows := make([]Row, 0, len(children))
	for i, child := range children {
		rows = append(rows, Row{Path: []int{i}, Node: child})
		if child.Kind == menu.KindCategory && child.Expandable {
			if _, open := c.expanded[child.ID]; open {
				for j, sub := range child.Children {
					rows = append(rows, Row{Path: []int{i, j}, Node: sub, Depth: 1})
				}
			}
		}
	}
	return filterRows(rows, c.filterQuery)
}

// Expanded reports whether the given category is inline-expanded.
func (c *Controller) Expanded(id string) bool {
	_, ok := c.expanded[id]
	return ok
}

// Handle consumes one key event and returns the effect to apply, if any.
func (c *Controller) Handle(ev input.Event) Effect {
	switch c.state {
	case StateExiting:
		return Effect{}
	case StateConfirmPending:
		return c.handleConfirm(ev)
	default:
		if c.filterActive {
			if eff, handled := c.handleFilterEntry(ev); handled {
				return eff
			}
		}
		return c.handleIdle(ev)
	}
}

// handleConfirm resolves the pending destructive effect. Only y/Enter apply
// it; n/Escape discard it; every other key leaves it held.
func (c *Controller) handleConfirm(ev input.Event) Effect {
	accept := ev.Kind == input.Enter || (ev.Kind == input.Char && (ev.Rune == 'y' || ev.Rune == 'Y'))
	decline := ev.Kind == input.Escape || (ev.Kind == input.Char && (ev.Rune == 'n' || ev.Rune == 'N'))
	switch {
	case accept:
		held := *c.pending
		c.clearPending()
		events.Nav.Confirm(string(held.Action), true)
		return held
	case decline:
		action := menu.ActionID("")
		if c.pending != nil {
			action = c.pending.Action
		}
		c.clearPending()
		events.Nav.Confirm(string(action), false)
		return Effect{}
	default:
		return Effect{}
	}
}

func (c *Controller) clearPending() {
	c.pending = nil
	c.pendingLabel = ""
	c.state = StateIdle
}

// handleFilterEntry routes keys while the user is typing a filter query.
// Letters become query text, so the q/b shortcuts are suspended here.
func (c *Controller) handleFilterEntry(ev input.Event) (Effect, bool) {
	switch ev.Kind {
	case input.Char:
		c.appendFilter(ev.Rune)
		return Effect{}, true
	case input.Number:
		c.appendFilter(rune('0' + ev.Digit))
		return Effect{}, true
	case input.Space:
		c.appendFilter(' ')
		return Effect{}, true
	case input.Backspace:
		c.backspaceFilter()
		return Effect{}, true
	case input.Enter:
		// Keep the narrowed view, leave entry mode.
		c.filterActive = false
		return Effect{}, true
	case input.Escape:
		c.resetFilter()
		return Effect{}, true
	default:
		// Arrows and the rest fall through to normal handling.
		return Effect{}, false
	}
}

func (c *Controller) appendFilter(r rune) {
	c.filterQuery += string(r)
	c.selected = 0
	events.Filter.Changed(c.filterQuery, len(c.VisibleRows()))
}

func (c *Controller) backspaceFilter() {
	runes := []rune(c.filterQuery)
	if len(runes) == 0 {
		return
	}
	c.filterQuery = string(runes[:len(runes)-1])
	c.selected = 0
	events.Filter.Changed(c.filterQuery, len(c.VisibleRows()))
}

func (c *Controller) resetFilter() {
	if c.filterQuery == "" && !c.filterActive {
		return
	}
	c.filterQuery = ""
	c.filterActive = false
	c.selected = 0
	events.Filter.Cleared()
}

func (c *Controller) handleIdle(ev input.Event) Effect {
	switch ev.Kind {
	case input.Up:
		c.move(-1)
	case input.Down:
		c.move(+1)
	case input.Home:
		c.selected = 0
		events.Nav.Cursor(c.Depth(), c.selected)
	case input.End:
		if n := len(c.VisibleRows()); n > 0 {
			c.selected = n - 1
		}
		events.Nav.Cursor(c.Depth(), c.selected)
	case input.Enter:
		return c.activateSelected()
	case input.Space:
		return c.spaceSelected()
	case input.Escape:
		return c.back()
	case input.Char:
		switch ev.Rune {
		case 'q', 'Q':
			c.state = StateExiting
			events.Nav.Effect(EffectExit.String(), "")
			return Effect{Kind: EffectExit}
		case 'b', 'B':
			return c.back()
		case '/':
			c.filterActive = true
		}
	case input.Number:
		return c.numberShortcut(ev.Digit)
	}
	// Timeout, Unknown, and anything unmapped leave the state untouched.
	return Effect{}
}

// move applies wraparound cursor movement over the visible rows. The
// selected index is always in range for a non-empty view; it never clamps.
func (c *Controller) move(delta int) {
	n := len(c.VisibleRows())
	if n == 0 {
		c.selected = 0
		return
	}
	c.selected = ((c.selected+delta)%n + n) % n
	events.Nav.Cursor(c.Depth(), c.selected)
}

func (c *Controller) currentRow() (Row, bool) {
	rows := c.VisibleRows()
	if len(rows) == 0 {
		return Row{}, false
	}
	if c.selected < 0 || c.selected >= len(rows) {
		c.selected = 0
	}
	return rows[c.selected], true
}

// numberShortcut treats digit n as "select visible item n and activate it".
func (c *Controller) numberShortcut(n int) Effect {
	rows := c.VisibleRows()
	if n < 1 || n > 9 || n > len(rows) {
		return Effect{}
	}
	c.selected = n - 1
	return c.activateRow(rows[n-1])
}

func (c *Controller) activateSelected() Effect {
	row, ok := c.currentRow()
	if !ok {
		return Effect{}
	}
	return c.activateRow(row)
}

func (c *Controller) activateRow(row Row) Effect {
	node := row.Node
	if node.Disabled() {
		return Effect{Kind: EffectNotice, Notice: node.Label + ": " + node.DisabledReason}
	}
	switch node.Kind {
	case menu.KindCategory:
		if node.Expandable {
			return c.toggleExpand(node)
		}
		c.push(row.Path)
		return Effect{}
	case menu.KindToggle:
		return c.toggleEffect(row)
	default:
		eff := Effect{
			Kind:        EffectActivate,
			Action:      node.Action,
			NodeID:      node.ID,
			Destructive: node.Destructive,
		}
		if Guard(eff) == GateHold {
			held := eff
			c.pending = &held
			c.pendingLabel = node.Label
			c.state = StateConfirmPending
			events.Nav.Effect(EffectRequestConfirmation.String(), node.ID)
			return Effect{Kind: EffectRequestConfirmation, Action: node.Action, NodeID: node.ID}
		}
		events.Nav.Effect(EffectActivate.String(), node.ID)
		return eff
	}
}

// spaceSelected toggles a Toggle or expands/collapses an expandable
// category; Space has no meaning on anything else.
func (c *Controller) spaceSelected() Effect {
	row, ok := c.currentRow()
	if !ok {
		return Effect{}
	}
	node := row.Node
	if node.Disabled() {
		return Effect{Kind: EffectNotice, Notice: node.Label + ": " + node.DisabledReason}
	}
	switch {
	case node.Kind == menu.KindToggle:
		return c.toggleEffect(row)
	case node.Kind == menu.KindCategory && node.Expandable:
		return c.toggleExpand(node)
	default:
		return Effect{}
	}
}

func (c *Controller) toggleEffect(row Row) Effect {
	node := row.Node
	abs := append(c.viewPath(), row.Path...)
	events.Nav.Effect(EffectToggleSet.String(), node.ConfigKey)
	return Effect{
		Kind:      EffectToggleSet,
		Path:      abs,
		ConfigKey: node.ConfigKey,
		Value:     !node.Value,
		NodeID:    node.ID,
	}
}

func (c *Controller) toggleExpand(node *menu.Node) Effect {
	if _, open := c.expanded[node.ID]; open {
		delete(c.expanded, node.ID)
		c.clampSelected()
		events.Nav.Effect(EffectCollapse.String(), node.ID)
		return Effect{Kind: EffectCollapse, NodeID: node.ID}
	}
	c.expanded[node.ID] = struct{}{}
	events.Nav.Effect(EffectExpand.String(), node.ID)
	return Effect{Kind: EffectExpand, NodeID: node.ID}
}

// push descends into a category and resets the selection for the new view.
func (c *Controller) push(step []int) {
	copied := append([]int(nil), step...)
	c.steps = append(c.steps, copied)
	c.selected = 0
	c.resetFilter()
	if n := c.tree.NodeAt(c.viewPath()); n != nil {
		events.Nav.Push(n.ID)
	}
}

// back pops one breadcrumb level. At the root it is a no-op: only q exits.
// An active filter is cleared first, consuming the keypress.
func (c *Controller) back() Effect {
	if c.filterQuery != "" || c.filterActive {
		c.resetFilter()
		return Effect{}
	}
	if len(c.steps) == 0 {
		return Effect{}
	}
	left := c.tree.NodeAt(c.viewPath())
	step := c.steps[len(c.steps)-1]
	c.steps = c.steps[:len(c.steps)-1]

	// Reselect the category we just came out of.
	c.selected = 0
	for i, row := range c.VisibleRows() {
		if pathsEqual(row.Path, step) {
			c.selected = i
			break
		}
	}
	if left != nil {
		events.Nav.Pop(left.ID)
	}
	return Effect{Kind: EffectNavigateBack}
}

func (c *Controller) clampSelected() {
	n := len(c.VisibleRows())
	if n == 0 {
		c.selected = 0
		return
	}
	if c.selected >= n {
		c.selected = n - 1
	}
	if c.selected < 0 {
		c.selected = 0
	}
}

func pathsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
