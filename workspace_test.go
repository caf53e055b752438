package pagedesk

import (
	"testing"
	"time"

	"github.com/eringen/pagedesk/editor"
	"github.com/eringen/pagedesk/page"
)

func newTestWorkspaces(t *testing.T, ttl time.Duration) *Workspaces {
	t.Helper()
	s := setupTestStore(t)
	w := NewWorkspaces(ttl, func(sess editor.Session) *editor.Controller {
		return editor.NewController(s, sess, nil)
	})
	t.Cleanup(w.Close)
	return w
}

func TestWorkspacesOpenReusesID(t *testing.T) {
	w := newTestWorkspaces(t, time.Hour)

	id, ws := w.Open("")
	if id == "" {
		t.Fatal("expected a generated id")
	}
	again, ws2 := w.Open(id)
	if again != id || ws2 != ws {
		t.Errorf("expected the same workspace for id %s", id)
	}
	other, _ := w.Open("unknown")
	if other == id || other == "unknown" {
		t.Errorf("unknown id should get a fresh id, got %s", other)
	}
	if w.Len() != 2 {
		t.Errorf("Len = %d, want 2", w.Len())
	}
	w.Drop(id)
	if w.Len() != 1 {
		t.Errorf("Len after drop = %d, want 1", w.Len())
	}
}

func TestWorkspaceSessionFollowsRequest(t *testing.T) {
	w := newTestWorkspaces(t, time.Hour)
	ws := w.Transient()

	err := ws.Do(false, func(c *editor.Controller) error {
		v, err := c.Start()
		if !v.Denied {
			t.Error("expected denied view for logged out request")
		}
		return err
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	err = ws.Do(true, func(c *editor.Controller) error {
		v, err := c.Start()
		if v.Denied || v.Type != page.TypePost {
			t.Errorf("unexpected view %+v", v)
		}
		return err
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if w.Len() != 0 {
		t.Error("transient workspaces must not be registered")
	}
}

func TestWorkspacesSweepDropsIdle(t *testing.T) {
	w := newTestWorkspaces(t, time.Hour)
	idle, _ := w.Open("")
	busy, ws := w.Open("")
	ws.Do(true, func(*editor.Controller) error { return nil })

	w.sweep(time.Now().Add(30 * time.Minute))
	if w.Len() != 2 {
		t.Fatalf("nothing should be idle yet, Len = %d", w.Len())
	}

	w.mu.Lock()
	w.byID[idle].lastUsed = time.Now().Add(-2 * time.Hour)
	w.mu.Unlock()
	w.sweep(time.Now())

	if _, got := w.Open(busy); got != ws {
		t.Error("busy workspace should survive the sweep")
	}
	if id, _ := w.Open(idle); id == idle {
		t.Error("idle workspace should have been dropped")
	}
}
