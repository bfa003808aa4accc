package metrics

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestFooterTextFromFixtures(t *testing.T) {
	p := &SystemProvider{
		loadavgPath: writeFixture(t, "loadavg", "0.42 0.37 0.30 1/234 5678\n"),
		meminfoPath: writeFixture(t, "meminfo", "MemTotal:       1000 kB\nMemFree:         200 kB\nMemAvailable:    400 kB\n"),
	}
	got := p.FooterText()
	want := "load 0.42 · mem 60%"
	if got != want {
		t.Fatalf("footer %q, want %q", got, want)
	}
}

func TestFooterDegradesToPlaceholder(t *testing.T) {
	p := &SystemProvider{loadavgPath: "/nonexistent", meminfoPath: "/nonexistent"}
	if got := p.FooterText(); got != Placeholder {
		t.Fatalf("footer %q, want placeholder", got)
	}
}

func TestFooterPartialReadings(t *testing.T) {
	p := &SystemProvider{
		loadavgPath: writeFixture(t, "loadavg", "1.00 0.50 0.25 1/1 1\n"),
		meminfoPath: "/nonexistent",
	}
	if got := p.FooterText(); got != "load 1.00" {
		t.Fatalf("footer %q, want load only", got)
	}
}

func TestImplausibleMeminfoRejected(t *testing.T) {
	p := &SystemProvider{
		loadavgPath: "/nonexistent",
		meminfoPath: writeFixture(t, "meminfo", "MemTotal: 100 kB\nMemAvailable: 900 kB\n"),
	}
	if got := p.FooterText(); got != Placeholder {
		t.Fatalf("footer %q, want placeholder for implausible values", got)
	}
}
