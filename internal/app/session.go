package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"shellmate/internal/input"
	"shellmate/internal/logging/events"
	"shellmate/internal/menu"
	"shellmate/internal/metrics"
	"shellmate/internal/nav"
	"shellmate/internal/render"
	"shellmate/internal/store"
	"shellmate/internal/terminfo"
)

const (
	footerRefresh = time.Second
	bannerTTL     = 3 * time.Second
)

// session holds the per-invocation state of the render loop. Everything here
// is discarded on exit; the next invocation starts at the root again.
type session struct {
	cfg  Config
	tree *menu.Tree
	st   *store.FileStore
	ctrl *nav.Controller
	caps terminfo.Capabilities
	out  *termenv.Output

	footer     metrics.Provider
	footerText string
	footerAt   time.Time

	banner      string
	bannerErr   bool
	bannerUntil time.Time
}

func newSession(cfg Config, tree *menu.Tree, st *store.FileStore, caps terminfo.Capabilities, out *termenv.Output) *session {
	return &session{
		cfg:    cfg,
		tree:   tree,
		st:     st,
		ctrl:   nav.New(tree),
		caps:   caps,
		out:    out,
		footer: metrics.NewSystemProvider(),
	}
}

// loop is the cooperative read-decode-transition-render cycle. The only
// blocking point is the bounded byte read inside the decoder.
func (s *session) loop(dec *input.Decoder) error {
	s.refreshFooter(time.Now())
	s.draw()
	for {
		ev, err := dec.Next()
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		events.Key.Event(ev.Kind.String(), ev.Describe())

		redraw := false
		if ev.Kind == input.Timeout {
			redraw = s.tick(time.Now())
		} else {
			eff := s.ctrl.Handle(ev)
			if eff.Kind == nav.EffectExit {
				return nil
			}
			s.apply(eff)
			redraw = true
		}

		if resized := currentSize(s.caps); resized != s.caps {
			s.caps = resized
			redraw = true
		}
		if redraw {
			s.draw()
		}
	}
}

// apply executes an effect against the tree, the store, and the banner. A
// failed config write surfaces as a transient error banner and leaves both
// the navigation state and the displayed toggle value untouched.
func (s *session) apply(eff nav.Effect) {
	switch eff.Kind {
	case nav.EffectToggleSet:
		if !s.tree.SetToggle(eff.Path, eff.Value) {
			s.setBanner(fmt.Sprintf("Could not save %s", eff.ConfigKey), true)
			return
		}
		if s.cfg.Verbose {
			state := "off"
			if eff.Value {
				state = "on"
			}
			s.setBanner(fmt.Sprintf("%s %s", eff.ConfigKey, state), false)
		}
	case nav.EffectActivate:
		notice, err := s.runAction(eff.Action)
		if err != nil {
			s.setBanner(err.Error(), true)
			return
		}
		if notice != "" {
			s.setBanner(notice, false)
		}
	case nav.EffectNotice:
		s.setBanner(eff.Notice, false)
	}
}

func (s *session) setBanner(text string, isErr bool) {
	s.banner = text
	s.bannerErr = isErr
	s.bannerUntil = time.Now().Add(bannerTTL)
}

// tick handles a poll timeout: footer refresh at most once a second, banner
// expiry. Returns whether anything visible changed.
func (s *session) tick(now time.Time) bool {
	changed := false
	if s.banner != "" && now.After(s.bannerUntil) {
		s.banner = ""
		changed = true
	}
	if s.refreshFooter(now) {
		changed = true
	}
	return changed
}

func (s *session) refreshFooter(now time.Time) bool {
	if !s.footerAt.IsZero() && now.Sub(s.footerAt) < footerRefresh {
		return false
	}
	s.footerAt = now
	text := s.footer.FooterText()
	if text == "" {
		text = metrics.Placeholder
	}
	if text == s.footerText {
		return false
	}
	s.footerText = text
	return true
}

func (s *session) draw() {
	view := render.View{
		Breadcrumb:   s.ctrl.BreadcrumbLabels(),
		Selected:     s.ctrl.Selected(),
		FooterText:   s.footerText,
		ConfirmLabel: s.ctrl.PendingLabel(),
	}
	if s.banner != "" && time.Now().Before(s.bannerUntil) {
		view.Banner = s.banner
		view.BannerError = s.bannerErr
	}
	view.FilterQuery, view.FilterActive = s.ctrl.Filter()

	for _, row := range s.ctrl.VisibleRows() {
		view.Rows = append(view.Rows, renderRow(row, s.ctrl))
	}

	frame := render.Frame(s.caps, view)
	s.out.ClearScreen()
	s.out.WriteString(strings.Join(frame, "\r\n"))
}

func renderRow(row nav.Row, ctrl *nav.Controller) render.Row {
	out := render.Row{
		Label:          row.Node.Label,
		Depth:          row.Depth,
		DisabledReason: row.Node.DisabledReason,
	}
	switch row.Node.Kind {
	case menu.KindCategory:
		out.Kind = render.RowCategory
		out.Expandable = row.Node.Expandable
		out.Expanded = ctrl.Expanded(row.Node.ID)
	case menu.KindToggle:
		out.Kind = render.RowToggle
		out.ToggleOn = row.Node.Value
	default:
		out.Kind = render.RowItem
	}
	return out
}
