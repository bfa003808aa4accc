// Package events groups trace emitters by subsystem so call sites stay
// one-liners and event names stay consistent.
package events

import "shellmate/internal/logging"

type AppTracer struct{}

type KeyTracer struct{}

type NavTracer struct{}

type StoreTracer struct{}

type FilterTracer struct{}

var (
	App    = AppTracer{}
	Key    = KeyTracer{}
	Nav    = NavTracer{}
	Store  = StoreTracer{}
	Filter = FilterTracer{}
)

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Exit(code int) {
	logging.Trace("app.exit", map[string]interface{}{"code": code})
}

func (AppTracer) RawMode(entered bool) {
	logging.Trace("app.raw-mode", map[string]interface{}{"entered": entered})
}

func (KeyTracer) Event(kind string, detail string) {
	payload := map[string]interface{}{"kind": kind}
	if detail != "" {
		payload["detail"] = detail
	}
	logging.Trace("key.event", payload)
}

func (KeyTracer) Unknown(raw []byte) {
	logging.Trace("key.unknown", map[string]interface{}{"bytes": raw})
}

func (NavTracer) Cursor(depth, index int) {
	logging.Trace("nav.cursor", map[string]interface{}{"depth": depth, "index": index})
}

func (NavTracer) Push(id string) {
	logging.Trace("nav.push", map[string]interface{}{"category": id})
}

func (NavTracer) Pop(id string) {
	logging.Trace("nav.pop", map[string]interface{}{"category": id})
}

func (NavTracer) Effect(kind string, target string) {
	payload := map[string]interface{}{"kind": kind}
	if target != "" {
		payload["target"] = target
	}
	logging.Trace("nav.effect", payload)
}

func (NavTracer) Confirm(action string, accepted bool) {
	logging.Trace("nav.confirm", map[string]interface{}{"action": action, "accepted": accepted})
}

func (StoreTracer) Load(path string, keys int) {
	logging.Trace("store.load", map[string]interface{}{"path": path, "keys": keys})
}

func (StoreTracer) Write(key string, value interface{}, ok bool) {
	logging.Trace("store.write", map[string]interface{}{"key": key, "value": value, "ok": ok})
}

func (FilterTracer) Changed(query string, matches int) {
	logging.Trace("filter.change", map[string]interface{}{"query": query, "matches": matches})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}
