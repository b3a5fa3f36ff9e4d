// cavegen-server starts an SSH server where every connection gets its own
// interactive cave level viewer. Build:
//
//	go build -o cavegen-server ./cmd/server
//
// Usage:
//
//	./cavegen-server [--port 2222] [--key server_host_key] [--config cavegen.yaml]
//
// Connect from any terminal:
//
//	ssh -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"

	"ctf-cavegen/internal/config"
	"ctf-cavegen/internal/generate"
	"ctf-cavegen/internal/preview"
	"ctf-cavegen/internal/render"
	"ctf-cavegen/internal/sshtty"
)

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	cfgFile := flag.String("config", "", "Optional YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg, err := config.LoadWithEnv(*cfgFile, logger)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	theme, ok := render.ThemeByName(cfg.Theme)
	if !ok {
		log.Fatalf("config: unknown theme %q", cfg.Theme)
	}

	signer := loadOrCreateHostKey(*keyFile)
	h := &handler{
		cfg:    cfg,
		theme:  theme,
		gen:    generate.NewGenerator(cfg.Generation, logger),
		logger: logger,
	}

	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: h.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Accept any authentication; the viewer exposes no private data.
		HostSigners: []gossh.Signer{signer},
	}

	log.Printf("cavegen SSH server listening on :%d", *port)
	log.Printf("Connect with:  ssh -p %d -o StrictHostKeyChecking=no localhost", *port)
	log.Fatal(srv.ListenAndServe())
}

// ─── sessions ───────────────────────────────────────────────────────────────

// handler serves one independent preview per SSH session. The generator is
// read-only after construction, so sessions share it; each session seeds
// its own RNG.
type handler struct {
	cfg    config.Config
	theme  render.Theme
	gen    *generate.Generator
	logger *slog.Logger

	sessions atomic.Int64
}

// handleSession is the gliderlabs SSH handler for one connection.
// It blocks for the duration of the connection so the SSH session stays open.
func (h *handler) handleSession(s gossh.Session) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "The viewer requires a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}

	// Create a tcell screen backed by this SSH session.
	// TERM must be set in the process environment before NewTerminfoScreenFromTty.
	tty := sshtty.New(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", sshtty.TermFor(pty, s.Environ()))
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		return
	}
	defer screen.Fini()

	id := h.sessions.Add(1)
	seed := sessionSeed(h.cfg.Seed, id)
	user := sanitizeName(s.User())
	h.logger.Info("session started", "session", id, "user", user, "seed", seed)
	preview.Run(screen, h.gen, h.cfg.Width, h.cfg.Height, seed, h.theme)
	h.logger.Info("session ended", "session", id, "user", user)
}

// sessionSeed gives each session its own starting seed. A configured seed
// makes sessions reproducible by connection order.
func sessionSeed(base, session int64) int64 {
	if base == 0 {
		base = time.Now().UnixNano()
	}
	return base + session*1_000_003
}

// termMu protects os.Setenv("TERM") around screen creation.
var termMu sync.Mutex

// maxNameBytes bounds user names written to the log.
const maxNameBytes = 16

// sanitizeName strips control characters from an SSH user name and
// truncates it to maxNameBytes without splitting a rune.
func sanitizeName(name string) string {
	out := make([]rune, 0, len(name))
	n := 0
	for _, r := range name {
		if unicode.IsControl(r) {
			continue
		}
		size := len(string(r))
		if n+size > maxNameBytes {
			break
		}
		out = append(out, r)
		n += size
	}
	return string(out)
}

// ─── host key ───────────────────────────────────────────────────────────────

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string) gossh.Signer {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Printf("Loaded host key from %s", path)
			return signer
		}
	}

	log.Printf("Generating new ed25519 host key → %s", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Fatalf("generate host key: %v", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		log.Fatalf("create signer: %v", err)
	}
	// Persist for next run (non-fatal if it fails).
	if pemBlock, err := xssh.MarshalPrivateKey(key, "cavegen server"); err == nil {
		_ = os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0600)
	}
	return signer
}
