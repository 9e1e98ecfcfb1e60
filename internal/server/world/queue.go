package world

import "time"

// idleQueue holds chunks waiting for deferred generation, oldest first.
type idleQueue struct {
	chunks []*Chunk
}

func (q *idleQueue) push(c *Chunk) { q.chunks = append(q.chunks, c) }

func (q *idleQueue) pop() *Chunk {
	c := q.chunks[0]
	q.chunks[0] = nil
	q.chunks = q.chunks[1:]
	return c
}

func (q *idleQueue) len() int { return len(q.chunks) }

func (q *idleQueue) reset() { q.chunks = nil }

// RunIdle generates queued chunks until the queue is empty or budget is spent.
// The budget is only checked between chunks: a started generation always
// completes, and at least one chunk is generated per call if any is waiting.
// Chunks disposed while queued are dropped without generating. A budget <= 0
// selects Config.IdleBudget. RunIdle returns the number of chunks generated.
func (w *World) RunIdle(budget time.Duration) int {
	if budget <= 0 {
		budget = w.cfg.IdleBudget
	}
	start := time.Now()
	ran := 0
	for w.queue.len() > 0 {
		c := w.queue.pop()
		if c.state != StatePending {
			continue
		}
		w.generateChunk(c)
		ran++
		if time.Since(start) >= budget {
			break
		}
	}
	if ran > 0 {
		w.log.Debug("idle generation", "chunks", ran, "queued", w.queue.len(), "elapsed", time.Since(start))
	}
	return ran
}

// Queued returns the number of chunks waiting for deferred generation,
// including entries for chunks disposed since they were queued.
func (w *World) Queued() int { return w.queue.len() }
