package v1

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// pendingExport a saved workbook waiting to be fetched
type pendingExport struct {
	path     string
	filename string
	deadline time.Time
}

// downloadRegistry maps single-use tokens to exported workbooks. Expired
// entries are swept on every access and their files removed.
type downloadRegistry struct {
	mu      sync.Mutex
	pending map[string]pendingExport
	clock   func() time.Time
}

func newDownloadRegistry() *downloadRegistry {
	return &downloadRegistry{
		pending: map[string]pendingExport{},
		clock:   time.Now,
	}
}

// register stores path under a fresh token valid for ttl.
func (r *downloadRegistry) register(path, filename string, ttl time.Duration) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")

	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.clock()
	r.sweep(now)
	r.pending[token] = pendingExport{path: path, filename: filename, deadline: now.Add(ttl)}
	return token
}

// claim hands out the export for token at most once.
func (r *downloadRegistry) claim(token string) (pendingExport, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep(r.clock())

	exp, ok := r.pending[token]
	delete(r.pending, token)
	return exp, ok
}

// size number of unclaimed, unexpired exports
func (r *downloadRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep(r.clock())
	return len(r.pending)
}

// sweep requires r.mu
func (r *downloadRegistry) sweep(now time.Time) {
	for token, exp := range r.pending {
		if !now.After(exp.deadline) {
			continue
		}
		delete(r.pending, token)
		_ = os.Remove(exp.path)
	}
}
