package nav

import (
	"errors"
	"testing"

	"shellmate/internal/input"
	"shellmate/internal/menu"
)

type fakeStore struct {
	values map[string]bool
	writes int
	fail   bool
}

func (f *fakeStore) GetBool(key string, fallback bool) bool {
	if v, ok := f.values[key]; ok {
		return v
	}
	return fallback
}

func (f *fakeStore) SetBool(key string, value bool) error {
	f.writes++
	if f.fail {
		return errors.New("write failed")
	}
	f.values[key] = value
	return nil
}

func newController(t *testing.T, menuType string) (*Controller, *menu.Tree, *fakeStore) {
	t.Helper()
	root, err := menu.Builtin(menuType)
	if err != nil {
		t.Fatalf("builtin menu: %v", err)
	}
	st := &fakeStore{values: map[string]bool{}}
	tree := menu.NewTree(root, st)
	return New(tree), tree, st
}

func key(k input.Kind) input.Event { return input.Event{Kind: k} }
func ch(r rune) input.Event        { return input.Event{Kind: input.Char, Rune: r} }
func num(d int) input.Event        { return input.Event{Kind: input.Number, Digit: d} }

func TestWraparoundRoundTrip(t *testing.T) {
	c, _, _ := newController(t, "")
	n := len(c.VisibleRows())
	if n == 0 {
		t.Fatalf("root view is empty")
	}
	for _, start := range []int{0, 1, n - 1} {
		c.selected = start
		for i := 0; i < n; i++ {
			c.Handle(key(input.Down))
		}
		if c.Selected() != start {
			t.Fatalf("down x%d from %d landed on %d, want %d", n, start, c.Selected(), start)
		}
		for i := 0; i < n; i++ {
			c.Handle(key(input.Up))
		}
		if c.Selected() != start {
			t.Fatalf("up x%d from %d landed on %d, want %d", n, start, c.Selected(), start)
		}
	}
}

func TestWraparoundCrossesBothEnds(t *testing.T) {
	c, _, _ := newController(t, "")
	n := len(c.VisibleRows())
	c.Handle(key(input.Up))
	if c.Selected() != n-1 {
		t.Fatalf("up from first selected %d, want last (%d)", c.Selected(), n-1)
	}
	c.Handle(key(input.Down))
	if c.Selected() != 0 {
		t.Fatalf("down from last selected %d, want 0", c.Selected())
	}
}

func TestEnterCategoryPushesBreadcrumb(t *testing.T) {
	c, _, _ := newController(t, "")
	c.Handle(key(input.Enter)) // row 0: Settings
	if c.Depth() != 1 {
		t.Fatalf("depth %d after entering category, want 1", c.Depth())
	}
	if c.Selected() != 0 {
		t.Fatalf("selection %d on new view, want 0", c.Selected())
	}
	labels := c.BreadcrumbLabels()
	if len(labels) != 2 || labels[1] != "Settings" {
		t.Fatalf("breadcrumb %v, want [shellmate Settings]", labels)
	}
}

func TestEscapeAtRootIsNoOp(t *testing.T) {
	c, _, _ := newController(t, "")
	eff := c.Handle(key(input.Escape))
	if eff.Kind == EffectExit {
		t.Fatalf("escape at root must not exit")
	}
	if c.State() != StateIdle || c.Depth() != 0 {
		t.Fatalf("escape at root changed state")
	}
}

func TestBackRestoresSelection(t *testing.T) {
	c, _, _ := newController(t, "")
	c.Handle(key(input.Down))
	c.Handle(key(input.Down)) // row 2: Tools
	c.Handle(key(input.Enter))
	if c.Depth() != 1 {
		t.Fatalf("expected to be inside Tools")
	}
	c.Handle(ch('b'))
	if c.Depth() != 0 {
		t.Fatalf("b did not navigate back")
	}
	if c.Selected() != 2 {
		t.Fatalf("selection %d after back, want 2 (Tools)", c.Selected())
	}
}

func TestQuitFromDeepNesting(t *testing.T) {
	c, _, _ := newController(t, "")
	c.Handle(key(input.Enter)) // Settings
	rows := c.VisibleRows()
	idx := -1
	for i, row := range rows {
		if row.Node.ID == "settings:prompt" {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatalf("prompt category not visible")
	}
	c.selected = idx
	c.Handle(key(input.Space)) // expand inline
	c.Handle(key(input.Down))  // onto the first expanded child
	eff := c.Handle(ch('q'))
	if eff.Kind != EffectExit {
		t.Fatalf("q emitted %v, want Exit", eff.Kind)
	}
	if c.State() != StateExiting {
		t.Fatalf("state %v after q, want Exiting", c.State())
	}
}

func TestDestructiveRequiresConfirmation(t *testing.T) {
	c, _, _ := newController(t, "tools")
	// Row 1 is "Restore config", destructive.
	c.Handle(key(input.Down))
	eff := c.Handle(key(input.Enter))
	if eff.Kind != EffectRequestConfirmation {
		t.Fatalf("destructive enter emitted %v, want RequestConfirmation", eff.Kind)
	}
	if c.State() != StateConfirmPending {
		t.Fatalf("state %v, want ConfirmPending", c.State())
	}

	// Unrelated keys never apply the held effect.
	for _, ev := range []input.Event{key(input.Down), key(input.Space), ch('x'), num(3), key(input.Timeout)} {
		eff := c.Handle(ev)
		if eff.Kind == EffectActivate {
			t.Fatalf("held effect applied by %v", ev.Kind)
		}
		if c.State() != StateConfirmPending {
			t.Fatalf("pending state lost on %v", ev.Kind)
		}
	}

	eff = c.Handle(ch('y'))
	if eff.Kind != EffectActivate || eff.Action != menu.ActionRestoreConfig {
		t.Fatalf("y produced %v (%s), want Activate restore", eff.Kind, eff.Action)
	}
	if c.State() != StateIdle {
		t.Fatalf("state %v after accept, want Idle", c.State())
	}
}

func TestConfirmationDecline(t *testing.T) {
	c, _, _ := newController(t, "tools")
	c.Handle(key(input.Down))
	c.Handle(key(input.Enter))
	eff := c.Handle(ch('n'))
	if eff.Kind != EffectNone {
		t.Fatalf("decline emitted %v, want none", eff.Kind)
	}
	if c.State() != StateIdle || c.PendingLabel() != "" {
		t.Fatalf("pending not cleared on decline")
	}

	// Escape declines too.
	c.Handle(key(input.Down))
	c.Handle(key(input.Enter))
	if c.State() != StateConfirmPending {
		t.Fatalf("expected pending before escape")
	}
	c.Handle(key(input.Escape))
	if c.State() != StateIdle {
		t.Fatalf("escape did not decline")
	}
}

func TestToggleEmitsSetAndDoubleToggleRestores(t *testing.T) {
	c, tree, st := newController(t, "settings")
	eff := c.Handle(key(input.Space)) // row 0: Animations, default false
	if eff.Kind != EffectToggleSet || eff.ConfigKey != "ui.animations" || eff.Value != true {
		t.Fatalf("first toggle effect %+v", eff)
	}
	if !tree.SetToggle(eff.Path, eff.Value) {
		t.Fatalf("apply first toggle")
	}

	eff = c.Handle(key(input.Space))
	if eff.Value != false {
		t.Fatalf("second toggle should negate back to false")
	}
	if !tree.SetToggle(eff.Path, eff.Value) {
		t.Fatalf("apply second toggle")
	}

	if st.writes != 2 {
		t.Fatalf("expected exactly two store writes, got %d", st.writes)
	}
	if tree.NodeAt(eff.Path).Value != false {
		t.Fatalf("double toggle did not restore original value")
	}
}

func TestNumberShortcutActivates(t *testing.T) {
	c, _, _ := newController(t, "")
	eff := c.Handle(num(3)) // third visible item: Tools category
	if eff.Kind != EffectNone && eff.Kind != EffectNavigateBack {
		t.Fatalf("number on category emitted %v", eff.Kind)
	}
	if c.Depth() != 1 {
		t.Fatalf("number shortcut did not enter category")
	}
	labels := c.BreadcrumbLabels()
	if labels[len(labels)-1] != "Tools" {
		t.Fatalf("number 3 entered %q, want Tools", labels[len(labels)-1])
	}

	// Destructive via number shortcut still gates.
	eff = c.Handle(num(2)) // Restore config
	if eff.Kind != EffectRequestConfirmation {
		t.Fatalf("destructive number shortcut emitted %v", eff.Kind)
	}
}

func TestNumberShortcutOutOfRangeIgnored(t *testing.T) {
	c, _, _ := newController(t, "tools")
	before := c.Selected()
	eff := c.Handle(num(9))
	if eff.Kind != EffectNone || c.Selected() != before {
		t.Fatalf("out-of-range number changed state")
	}
	if eff := c.Handle(num(0)); eff.Kind != EffectNone {
		t.Fatalf("zero is not a shortcut")
	}
}

func TestInlineExpandCollapse(t *testing.T) {
	c, _, _ := newController(t, "settings")
	base := len(c.VisibleRows())
	idx := -1
	for i, row := range c.VisibleRows() {
		if row.Node.ID == "settings:prompt" {
			idx = i
		}
	}
	c.selected = idx

	eff := c.Handle(key(input.Space))
	if eff.Kind != EffectExpand {
		t.Fatalf("expand emitted %v", eff.Kind)
	}
	rows := c.VisibleRows()
	if len(rows) != base+2 {
		t.Fatalf("expanded view has %d rows, want %d", len(rows), base+2)
	}
	if rows[idx+1].Depth != 1 || rows[idx+1].Node.ConfigKey != "prompt.git_segment" {
		t.Fatalf("expanded children not inline under the category")
	}

	eff = c.Handle(key(input.Enter)) // Enter also toggles expandable categories
	if eff.Kind != EffectCollapse {
		t.Fatalf("collapse emitted %v", eff.Kind)
	}
	if len(c.VisibleRows()) != base {
		t.Fatalf("collapse did not restore the view")
	}
	if c.Selected() >= base {
		t.Fatalf("selection %d out of range after collapse", c.Selected())
	}
}

func TestEnterExpandedChildCategoryAndBack(t *testing.T) {
	c, _, _ := newController(t, "")
	c.Handle(key(input.Enter)) // Settings
	var idx int
	for i, row := range c.VisibleRows() {
		if row.Node.ID == "settings:prompt" {
			idx = i
		}
	}
	c.selected = idx
	c.Handle(key(input.Space)) // expand
	c.Handle(key(input.Down))  // first child (depth 1): a toggle
	row, _ := c.currentRow()
	if row.Depth != 1 {
		t.Fatalf("expected a depth-1 row, got %+v", row)
	}
	eff := c.Handle(key(input.Space))
	if eff.Kind != EffectToggleSet || eff.ConfigKey != "prompt.git_segment" {
		t.Fatalf("toggle on expanded child emitted %+v", eff)
	}
	if len(eff.Path) != 3 {
		t.Fatalf("absolute path %v, want 3 components", eff.Path)
	}
}

func TestDisabledEntryYieldsNotice(t *testing.T) {
	c, _, _ := newController(t, "")
	var idx int
	for i, row := range c.VisibleRows() {
		if row.Node.ID == "assistant" {
			idx = i
		}
	}
	c.selected = idx
	eff := c.Handle(key(input.Enter))
	if eff.Kind != EffectNotice || eff.Notice == "" {
		t.Fatalf("disabled entry emitted %+v, want notice", eff)
	}
	if c.Depth() != 0 {
		t.Fatalf("disabled category must not be entered")
	}
}

func TestTimeoutAndUnknownAreNoOps(t *testing.T) {
	c, _, _ := newController(t, "")
	c.Handle(key(input.Down))
	before := c.Selected()
	for _, ev := range []input.Event{key(input.Timeout), {Kind: input.Unknown, Raw: []byte{0x1}}, key(input.Delete), key(input.Left), key(input.Right)} {
		eff := c.Handle(ev)
		if eff.Kind != EffectNone {
			t.Fatalf("%v emitted %v, want none", ev.Kind, eff.Kind)
		}
		if c.Selected() != before || c.Depth() != 0 || c.State() != StateIdle {
			t.Fatalf("%v disturbed navigation state", ev.Kind)
		}
	}
}

func TestFilterModeNarrowsAndSuspendsShortcuts(t *testing.T) {
	c, _, _ := newController(t, "settings")
	c.Handle(ch('/'))
	if _, active := c.Filter(); !active {
		t.Fatalf("slash did not enter filter mode")
	}

	// 'q' is filter text here, not quit.
	eff := c.Handle(ch('q'))
	if eff.Kind == EffectExit || c.State() == StateExiting {
		t.Fatalf("q exited while filtering")
	}
	c.Handle(key(input.Backspace))

	for _, r := range "anim" {
		c.Handle(ch(r))
	}
	rows := c.VisibleRows()
	if len(rows) != 1 || rows[0].Node.ConfigKey != "ui.animations" {
		t.Fatalf("filter 'anim' matched %d rows", len(rows))
	}

	// Enter keeps the narrowed view and leaves entry mode.
	c.Handle(key(input.Enter))
	if q, active := c.Filter(); active || q != "anim" {
		t.Fatalf("enter should keep query and leave entry mode (q=%q active=%v)", q, active)
	}

	// Escape clears the narrowing instead of popping a level.
	c.Handle(key(input.Escape))
	if q, _ := c.Filter(); q != "" {
		t.Fatalf("escape did not clear filter")
	}
	if len(c.VisibleRows()) <= 1 {
		t.Fatalf("view still narrowed after clearing filter")
	}
}

func TestGateDecisions(t *testing.T) {
	if Guard(Effect{Kind: EffectActivate, Destructive: true}) != GateHold {
		t.Fatalf("destructive effect must be held")
	}
	if Guard(Effect{Kind: EffectActivate}) != GatePass {
		t.Fatalf("plain effect must pass")
	}
	if Guard(Effect{Kind: EffectToggleSet}) != GatePass {
		t.Fatalf("toggles never require confirmation")
	}
}
