// Package refresh emits wall-clock wakeups so the derived views recompute
// at the moments they would otherwise go stale: the next dose time and the
// next midnight. The engine keeps a min-heap of pending wakeups and sleeps
// until the earliest one.
package refresh

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var ErrInvalidWakeupTime = errors.New("refresh: invalid wakeup time")

// Reasons attached to emitted events.
const (
	ReasonNextDose = "next-dose"
	ReasonMidnight = "midnight"
)

type Event struct {
	Reason string
	At     time.Time
}

type queueItem struct {
	event Event
}

type wakeupQueue []queueItem

func (q wakeupQueue) Len() int { return len(q) }

func (q wakeupQueue) Less(i, j int) bool {
	return q[i].event.At.Before(q[j].event.At)
}

func (q wakeupQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *wakeupQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *wakeupQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

type Engine struct {
	mu      sync.Mutex
	queue   wakeupQueue
	out     chan Event
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(wakeupQueue, 0),
		out:    make(chan Event, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan Event {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Schedule queues one wakeup. Duplicate wakeup times are harmless; the
// views recompute idempotently.
func (e *Engine) Schedule(ev Event) error {
	if ev.At.IsZero() {
		return ErrInvalidWakeupTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return errors.New("refresh: engine stopped")
	}

	heap.Push(&e.queue, queueItem{event: ev})
	e.signalWakeup()
	return nil
}

// Rearm drops all pending wakeups and queues the given ones. The update
// loop calls this after every mutation so stale dose times don't fire.
// A rejected batch leaves the pending wakeups untouched.
func (e *Engine) Rearm(events []Event) error {
	for _, ev := range events {
		if ev.At.IsZero() {
			return ErrInvalidWakeupTime
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return errors.New("refresh: engine stopped")
	}
	e.queue = e.queue[:0]
	for _, ev := range events {
		heap.Push(&e.queue, queueItem{event: ev})
	}
	e.signalWakeup()
	return nil
}

// Dropped counts events lost to a full output channel.
func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.At)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now())
			for _, ev := range due {
				select {
				case e.out <- ev:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Event, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return Event{}, false
	}
	return e.queue[0].event, true
}

func (e *Engine) popDue(now time.Time) []Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Event, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].event
		if next.At.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		out = append(out, item.event)
	}
	return out
}

// NextMidnight is the first instant of the following calendar day.
func NextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
