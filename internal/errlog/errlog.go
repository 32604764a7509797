// Package errlog keeps a short, persisted list of diagnostic messages that
// operators can read back through the CLI or the admin API.
package errlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/example/tarest/internal/logger"
)

const DefaultCapacity = 50

type Kind int

const (
	Info Kind = iota
	Error
)

func (k Kind) String() string {
	if k == Error {
		return "error"
	}
	return "info"
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "info":
		*k = Info
	case "error":
		*k = Error
	default:
		return fmt.Errorf("errlog: unknown kind %q", b)
	}
	return nil
}

type Entry struct {
	At   time.Time `json:"at"`
	From string    `json:"from"`
	Kind Kind      `json:"kind"`
	Text string    `json:"text"`
}

// List is a bounded, oldest-first ring of entries. Safe for concurrent use.
type List struct {
	// AllowInfo keeps Info entries; otherwise only errors are recorded.
	AllowInfo bool
	// Path of the JSON file the list is persisted to. Empty disables persistence.
	Path     string
	Capacity int
	Now      func() time.Time

	mu        sync.Mutex
	entries   []Entry
	observers []func(Entry)
}

func New(path string, allowInfo bool) *List {
	return &List{Path: path, AllowInfo: allowInfo, Capacity: DefaultCapacity}
}

// Observe registers fn to be called after every recorded entry.
func (l *List) Observe(fn func(Entry)) {
	l.mu.Lock()
	l.observers = append(l.observers, fn)
	l.mu.Unlock()
}

// Add records text. It is logged in any case; Info entries are kept only
// when AllowInfo is set. A nil List only logs.
func (l *List) Add(from string, kind Kind, text string) {
	log := logger.Named("errlog")
	ev := log.Info()
	if kind == Error {
		ev = log.Error()
	}
	ev.Str("from", from).Msg(text)

	if l == nil || (kind == Info && !l.AllowInfo) {
		return
	}

	l.mu.Lock()
	e := Entry{At: l.now(), From: from, Kind: kind, Text: text}
	l.entries = append(l.entries, e)
	if c := l.capacity(); len(l.entries) > c {
		l.entries = append(l.entries[:0:0], l.entries[len(l.entries)-c:]...)
	}
	err := l.saveLocked()
	obs := append([]func(Entry){}, l.observers...)
	l.mu.Unlock()

	if err != nil {
		log.Warn().Err(err).Str("path", l.Path).Msg("persist error list")
	}
	for _, fn := range obs {
		fn(e)
	}
}

// Errorf is shorthand for Add(from, Error, fmt.Sprintf(format, args...)).
func (l *List) Errorf(from, format string, args ...any) {
	l.Add(from, Error, fmt.Sprintf(format, args...))
}

// Entries returns a copy, newest first.
func (l *List) Entries() []Entry {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[len(out)-1-i] = e
	}
	return out
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Load replaces the in-memory entries with the persisted file. A missing
// file leaves the list empty.
func (l *List) Load() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Path == "" {
		return nil
	}
	b, err := os.ReadFile(l.Path)
	if errors.Is(err, fs.ErrNotExist) {
		l.entries = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("errlog: read %s: %w", l.Path, err)
	}
	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return fmt.Errorf("errlog: decode %s: %w", l.Path, err)
	}
	if c := l.capacity(); len(entries) > c {
		entries = entries[len(entries)-c:]
	}
	l.entries = entries
	return nil
}

func (l *List) saveLocked() error {
	if l.Path == "" {
		return nil
	}
	b, err := json.Marshal(l.entries)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(l.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := l.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, l.Path)
}

func (l *List) capacity() int {
	if l.Capacity <= 0 {
		return DefaultCapacity
	}
	return l.Capacity
}

func (l *List) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}
