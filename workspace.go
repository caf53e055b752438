package pagedesk

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eringen/pagedesk/editor"
)

// Workspace is the authoring state of one admin session: a single
// controller whose requests are serialized by mu.
type Workspace struct {
	mu       sync.Mutex
	ctrl     *editor.Controller
	loggedIn bool
	lastUsed time.Time
}

// Do runs fn on the workspace controller. loggedIn is what the controller
// sees through its Session port for the duration of the call.
func (ws *Workspace) Do(loggedIn bool, fn func(c *editor.Controller) error) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.loggedIn = loggedIn
	ws.lastUsed = time.Now()
	return fn(ws.ctrl)
}

// Workspaces tracks the authoring workspace of every admin session and
// drops the ones idle for longer than ttl.
type Workspaces struct {
	mu    sync.Mutex
	byID  map[string]*Workspace
	ttl   time.Duration
	build func(editor.Session) *editor.Controller
	done  chan struct{}
	once  sync.Once
}

// NewWorkspaces creates a registry whose controllers are built by build.
func NewWorkspaces(ttl time.Duration, build func(editor.Session) *editor.Controller) *Workspaces {
	w := &Workspaces{
		byID:  make(map[string]*Workspace),
		ttl:   ttl,
		build: build,
		done:  make(chan struct{}),
	}
	go w.cleanup()
	return w
}

func (w *Workspaces) newWorkspace() *Workspace {
	ws := &Workspace{lastUsed: time.Now()}
	ws.ctrl = w.build(editor.SessionFunc(func() bool { return ws.loggedIn }))
	return ws
}

// Open returns the workspace registered under id. Unknown or empty ids get
// a fresh workspace under a new id.
func (w *Workspaces) Open(id string) (string, *Workspace) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if ws, ok := w.byID[id]; ok && id != "" {
		return id, ws
	}
	id = uuid.NewString()
	ws := w.newWorkspace()
	w.byID[id] = ws
	return id, ws
}

// Transient returns a workspace that is not registered, for requests
// without an admin session.
func (w *Workspaces) Transient() *Workspace {
	return w.newWorkspace()
}

// Drop forgets the workspace registered under id.
func (w *Workspaces) Drop(id string) {
	w.mu.Lock()
	delete(w.byID, id)
	w.mu.Unlock()
}

// Len reports the number of registered workspaces.
func (w *Workspaces) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.byID)
}

// Close stops the cleanup goroutine.
func (w *Workspaces) Close() {
	w.once.Do(func() { close(w.done) })
}

func (w *Workspaces) cleanup() {
	ticker := time.NewTicker(w.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-w.done:
			return
		case now := <-ticker.C:
			w.sweep(now)
		}
	}
}

func (w *Workspaces) sweep(now time.Time) {
	cutoff := now.Add(-w.ttl)
	w.mu.Lock()
	defer w.mu.Unlock()
	for id, ws := range w.byID {
		if !ws.mu.TryLock() {
			continue
		}
		idle := ws.lastUsed.Before(cutoff)
		ws.mu.Unlock()
		if idle {
			delete(w.byID, id)
		}
	}
}
