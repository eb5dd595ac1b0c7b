package audit

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/5w1tchy/library-admin/internal/models"
	"github.com/5w1tchy/library-admin/internal/store"
)

const (
	batchSize  = 100
	flushEvery = 250 * time.Millisecond
	writeTO    = 2 * time.Second
)

// Queue writes entries to the store in batches from background workers.
// Record never blocks; entries are dropped when the buffer is full.
type Queue struct {
	st   store.AuditStore
	ch   chan models.AuditEntry
	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
	now  func() time.Time
}

// NewQueue starts workers reading from a buffer of size buf.
// Suggested: buf=1024, workers=1
func NewQueue(st store.AuditStore, buf, workers int) *Queue {
	if buf <= 0 {
		buf = 1024
	}
	if workers <= 0 {
		workers = 1
	}
	q := &Queue{
		st:   st,
		ch:   make(chan models.AuditEntry, buf),
		done: make(chan struct{}),
		now:  func() time.Time { return time.Now().UTC() },
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

func (q *Queue) Record(ctx context.Context, action, details string) {
	e := models.AuditEntry{
		Action:    action,
		User:      UserFrom(ctx),
		Details:   details,
		CreatedAt: q.now(),
	}
	select {
	case <-q.done:
		return
	default:
	}
	select {
	case q.ch <- e:
	default:
		log.Printf("[audit] buffer full, dropped %s", action)
	}
}

// Shutdown stops the workers after flushing what is buffered.
func (q *Queue) Shutdown() {
	q.once.Do(func() { close(q.done) })
	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	tk := time.NewTicker(flushEvery)
	defer tk.Stop()

	batch := make([]models.AuditEntry, 0, batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), writeTO)
		if err := q.st.AppendAudit(ctx, batch); err != nil {
			log.Printf("[audit] write %d entries failed: %v", len(batch), err)
		}
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case <-q.done:
			// drain quickly then flush
			for {
				select {
				case e := <-q.ch:
					batch = append(batch, e)
					if len(batch) >= batchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		case e := <-q.ch:
			batch = append(batch, e)
			if len(batch) >= batchSize {
				flush()
			}
		case <-tk.C:
			flush()
		}
	}
}
