package session

import (
	"sync"
	"time"
)

// Context is the per-user conversational memory: a bounded FIFO of the
// most recent raw questions, the last-activity timestamp used by the
// idle sweep, and the answer→question attribution map that reconstructs
// "what was asked" when feedback arrives later.
//
// Each Context carries its own lock so fast double-sends from one user
// cannot corrupt the history; turns from different users touch disjoint
// contexts and need no coordination.
type Context struct {
	mu           sync.Mutex
	history      []string
	capacity     int
	lastActivity time.Time
	attribution  map[int]string
}

func newContext(capacity int, now time.Time) *Context {
	if capacity <= 0 {
		capacity = 5
	}
	return &Context{
		history:      make([]string, 0, capacity),
		capacity:     capacity,
		lastActivity: now,
		attribution:  make(map[int]string),
	}
}

// RecordTurn appends a question to the history, silently evicting the
// oldest entry once the capacity is reached.
func (c *Context) RecordTurn(question string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.history) == c.capacity {
		copy(c.history, c.history[1:])
		c.history = c.history[:c.capacity-1]
	}
	c.history = append(c.history, question)
}

// History returns a copy of the recorded questions, oldest first.
func (c *Context) History() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.history))
	copy(out, c.history)
	return out
}

// LastQuestion returns the most recent recorded question.
func (c *Context) LastQuestion() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.history) == 0 {
		return "", false
	}
	return c.history[len(c.history)-1], true
}

// Attribute remembers which question produced the answer at entryIndex.
// Repeated hits on the same entry overwrite the earlier question.
func (c *Context) Attribute(entryIndex int, question string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attribution[entryIndex] = question
}

// AttributedQuestion returns the question recorded for entryIndex.
func (c *Context) AttributedQuestion(entryIndex int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	q, ok := c.attribution[entryIndex]
	return q, ok
}

func (c *Context) touch(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastActivity = now
}

// LastActivity returns the timestamp of the user's most recent turn.
func (c *Context) LastActivity() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActivity
}
