package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		expect string
	}{
		{"normal short name", "Alice", "Alice"},
		{"exactly 16 chars", "1234567890123456", "1234567890123456"},
		{"long name truncated", "ThisIsAVeryLongUsername", "ThisIsAVeryLongU"},
		{"control chars stripped", "he\x00ll\x1bo", "hello"},
		{"ansi escape partial", "he\x1b[31mllo", "he[31mllo"},
		{"empty input", "", ""},
		{"pure control chars", "\x00\x01\x02\x1b", ""},
		{"multi-byte runes stop at rune boundary", "日本語のテスト", "日本語のテ"},
		{"tabs stripped", "hello\tworld", "helloworld"},
		{"newlines stripped", "hello\nworld", "helloworld"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sanitizeName(tc.input)
			if got != tc.expect {
				t.Errorf("sanitizeName(%q) = %q, want %q", tc.input, got, tc.expect)
			}
		})
	}
}

func TestSessionSeed(t *testing.T) {
	if a, b := sessionSeed(42, 1), sessionSeed(42, 2); a == b {
		t.Errorf("sessions share seed %d", a)
	}
	if got, want := sessionSeed(42, 1), sessionSeed(42, 1); got != want {
		t.Errorf("configured seed not reproducible: %d != %d", got, want)
	}
}

func TestLoadOrCreateHostKeyPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host_key")
	first := loadOrCreateHostKey(path)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("host key not written: %v", err)
	}
	second := loadOrCreateHostKey(path)
	if string(first.PublicKey().Marshal()) != string(second.PublicKey().Marshal()) {
		t.Error("reloaded host key differs from the generated one")
	}
}
