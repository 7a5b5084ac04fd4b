// Package leaderfollowers implements the Leader-Followers worker pool:
// a fixed roster of goroutines sharing one FIFO task queue, with
// dispatch serialised by round-robin leader rotation rather than a
// free-for-all over the queue.
package leaderfollowers

import (
	"sync"

	"github.com/Aharonba/mstnet/internal/logger"
)

var log = logger.WithComponent("leaderfollowers")

// Task is one unit of work submitted to the pool. Pool.Submit hands it
// to the leader without blocking on its completion.
type Task func()

// Pool is a fixed roster of N worker identities 0..N-1 sharing one
// queue. The worker whose identity equals leaderIndex mod N is the
// leader and is the only one permitted to dequeue at any instant;
// after dequeuing it advances leaderIndex before releasing the lock,
// promoting the next worker before it starts executing the task.
type Pool struct {
	mu          sync.Mutex
	cond        *sync.Cond
	queue       []Task
	leaderIndex int
	n           int
	shutdown    bool
	wg          sync.WaitGroup
}

// New starts n worker goroutines and returns the running pool.
func New(n int) *Pool {
	p := &Pool{n: n}
	p.cond = sync.NewCond(&p.mu)
	p.wg.Add(n)
	for id := 0; id < n; id++ {
		go p.worker(id)
	}
	log.Info("leader-followers pool started with %d workers", n)
	return p
}

// Submit appends task to the shared queue and wakes exactly one
// waiter, per spec: a notification wakes a single worker, which then
// checks whether it is currently the leader before acting on it.
func (p *Pool) Submit(task Task) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shutdown {
		log.Warn("task submitted after shutdown; dropping")
		return
	}
	p.queue = append(p.queue, task)
	p.cond.Signal()
}

// worker is both leader and follower across its lifetime: it wakes
// whenever the queue is non-empty or the pool is shutting down, and
// only acts when its identity currently matches leaderIndex mod n. A
// worker woken while it is not the leader re-checks immediately rather
// than sleeping again, mirroring the predicate-wait loop of the
// original implementation.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for !p.shutdown && len(p.queue) == 0 {
			p.cond.Wait()
		}

		if p.shutdown && len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}

		if p.leaderIndex%p.n != id {
			p.mu.Unlock()
			continue
		}

		task := p.queue[0]
		p.queue = p.queue[1:]
		p.leaderIndex = (p.leaderIndex + 1) % p.n
		p.cond.Broadcast()
		p.mu.Unlock()

		log.Debug("worker %d dispatching as leader", id)
		task()
	}
}

// Shutdown sets the shutdown flag, wakes every waiter, and blocks until
// all workers have exited. Per spec.md §9 this pool uses drain-then-exit
// semantics: a worker only exits once the queue is empty, so every task
// submitted before Shutdown is called is guaranteed to run.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	p.shutdown = true
	p.cond.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()
	log.Info("leader-followers pool shut down")
}
