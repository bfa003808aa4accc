package main

import (
	"testing"

	"shellmate/internal/app"
	"shellmate/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			MenuType:     "settings",
			StorePath:    "/tmp/store.json",
			EscTimeoutMS: 40,
			Verbose:      true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"config":       "/tmp/store.json",
			"escTimeoutMs": "40",
			"verbose":      "true",
		},
		Args: []string{"menu", "settings"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["escTimeoutMs"] != "40" {
		t.Fatalf("flags missing escTimeoutMs: %v", flagsValue)
	}
	argv, ok := payload["argv"].([]string)
	if !ok || len(argv) != 2 || argv[0] != "menu" {
		t.Fatalf("argv not propagated: %v", payload["argv"])
	}
	if _, ok := payload["tty"]; !ok {
		t.Fatalf("payload missing tty details")
	}
}
