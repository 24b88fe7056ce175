package session

import (
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"faq-agent/config"
)

// fakeClock is a manually-advanced clock for sweep tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testStoreConfig() *config.Config {
	return &config.Config{
		HistoryLength:    5,
		SessionIdleLimit: 24 * time.Hour,
		SweepInterval:    5 * time.Minute,
	}
}

func newTestStore(t *testing.T, clock Clock) *MemoryStore {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	return NewMemoryStore(testStoreConfig(), clock, logger)
}

func TestHistoryBounded(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := newTestStore(t, clock)
	ctx := store.GetOrCreate(1)

	for i := 0; i < 10; i++ {
		ctx.RecordTurn(fmt.Sprintf("вопрос %d", i))
	}

	history := ctx.History()
	if len(history) != 5 {
		t.Fatalf("history length = %d, want 5", len(history))
	}
	if history[0] != "вопрос 5" || history[4] != "вопрос 9" {
		t.Errorf("history = %v, want the five most recent questions in order", history)
	}
}

func TestLastQuestion(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := newTestStore(t, clock)
	ctx := store.GetOrCreate(1)

	if _, ok := ctx.LastQuestion(); ok {
		t.Error("LastQuestion() on fresh session reported a question")
	}
	ctx.RecordTurn("первый")
	ctx.RecordTurn("второй")
	if q, ok := ctx.LastQuestion(); !ok || q != "второй" {
		t.Errorf("LastQuestion() = (%q, %v), want (второй, true)", q, ok)
	}
}

func TestAttributionOverwrite(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := newTestStore(t, clock)
	ctx := store.GetOrCreate(1)

	ctx.Attribute(3, "старый вопрос")
	ctx.Attribute(3, "новый вопрос")
	if q, ok := ctx.AttributedQuestion(3); !ok || q != "новый вопрос" {
		t.Errorf("AttributedQuestion(3) = (%q, %v), want the latest question", q, ok)
	}
	if _, ok := ctx.AttributedQuestion(7); ok {
		t.Error("AttributedQuestion(7) reported a question never attributed")
	}
}

func TestGetOrCreateReusesSession(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := newTestStore(t, clock)

	first := store.GetOrCreate(42)
	first.RecordTurn("вопрос")
	second := store.GetOrCreate(42)
	if first != second {
		t.Error("GetOrCreate() returned a new session for an existing user")
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := newTestStore(t, clock)

	store.GetOrCreate(1)
	survivor := store.GetOrCreate(2)

	// User 2 comes back just before the idle limit; user 1 stays silent.
	clock.Advance(23 * time.Hour)
	store.Touch(2)

	clock.Advance(1*time.Hour + time.Minute)
	removed := store.Sweep()
	if removed != 1 {
		t.Fatalf("Sweep() removed %d sessions, want 1", removed)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d after sweep, want 1", store.Len())
	}
	if store.GetOrCreate(2) != survivor {
		t.Error("sweep evicted the active session instead of the idle one")
	}
}

func TestSweepKeepsActiveSessionExactlyAtLimit(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := newTestStore(t, clock)

	store.GetOrCreate(1)
	clock.Advance(24 * time.Hour)
	// Idle for exactly the limit, not longer: survives.
	if removed := store.Sweep(); removed != 0 {
		t.Errorf("Sweep() removed %d sessions at the exact idle limit, want 0", removed)
	}
}

func TestGetOrCreateRunsOpportunisticSweep(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := newTestStore(t, clock)

	store.GetOrCreate(1)
	// A full day later a different user shows up; user 1's idle session
	// must be gone without anyone calling Sweep directly.
	clock.Advance(25 * time.Hour)
	store.GetOrCreate(2)
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after opportunistic sweep", store.Len())
	}
}
