// Package pipeline implements the staged pipeline (Pipelined Active
// Object): a fixed sequence of stages, each owning a private queue and
// a dedicated goroutine, with a task flowing through every stage in
// order before its final send. Per spec.md §9, stage queues are
// implemented as channels rather than shared mutex/condvar queues —
// the idiomatic Go replacement for the source's raw-pointer queue
// chain.
package pipeline

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Aharonba/mstnet/internal/logger"
	"github.com/Aharonba/mstnet/internal/mst"
	"github.com/Aharonba/mstnet/internal/protocol"
	"github.com/Aharonba/mstnet/internal/treemetrics"
)

var log = logger.WithComponent("pipeline")

// Sender is the minimal surface the final stage needs to deliver a
// reply; net.Conn satisfies it without the pipeline importing net.
type Sender interface {
	Write(p []byte) (int, error)
}

// Envelope is the Triple the spec describes: a stable reference to the
// computed MSTResult, an accumulating reply message, and the
// destination to write the final framed reply to. It belongs to
// exactly one stage's queue, or to the stage currently processing it,
// at any instant.
type Envelope struct {
	Algorithm mst.Algorithm
	Result    treemetrics.Result
	Message   string
	Conn      Sender
	ClientID  string
}

// StageFn transforms an envelope in place.
type StageFn func(*Envelope)

// stage is one link in the chain: it owns an inbound channel and a
// reference to the next stage's inbound channel, or nil if it is last.
type stage struct {
	in   chan *Envelope
	next chan *Envelope
	fn   StageFn
}

// Pipeline is the fixed sequence of stages configured for SolveMST
// replies. Submitting at stage 0 and draining at the last stage are
// the only two points of contact a caller needs.
type Pipeline struct {
	stages []*stage
	wg     sync.WaitGroup
}

// New builds a pipeline from fns, one goroutine per stage, each with
// its own buffered queue. The final stage's fn is expected to perform
// the terminal send; Pipeline itself never touches a completed
// envelope again once the last stage has run.
func New(fns ...StageFn) *Pipeline {
	p := &Pipeline{}
	p.stages = make([]*stage, len(fns))
	for i, fn := range fns {
		p.stages[i] = &stage{in: make(chan *Envelope, 64), fn: fn}
	}
	for i := 0; i < len(p.stages)-1; i++ {
		p.stages[i].next = p.stages[i+1].in
	}

	p.wg.Add(len(p.stages))
	for _, s := range p.stages {
		go p.run(s)
	}
	log.Info("pipeline started with %d stages", len(fns))
	return p
}

// run drains s.in until it is closed. Closing a stage's inbound channel
// only happens once every envelope already queued ahead of it has been
// pushed through, so a stage never exits with work still pending in
// front of it: this is the drain-then-exit shutdown spec.md §4.6 asks
// for, expressed as channel-close propagation instead of a shared
// shutdown flag.
func (p *Pipeline) run(s *stage) {
	defer p.wg.Done()
	for env := range s.in {
		s.fn(env)
		if s.next != nil {
			s.next <- env
		}
	}
	if s.next != nil {
		close(s.next)
	}
}

// Submit enqueues env at stage 0.
func (p *Pipeline) Submit(env *Envelope) {
	p.stages[0].in <- env
}

// Shutdown closes the stage-0 queue. Every envelope submitted before
// the call drains through all five stages before the corresponding
// goroutines exit; Shutdown blocks until they do.
func (p *Pipeline) Shutdown() {
	close(p.stages[0].in)
	p.wg.Wait()
	log.Info("pipeline shut down")
}

// Stages returns the five MST-reply stage functions in order: total
// weight, longest path, average distance, the shortest-path listing,
// and the terminal framed send.
func Stages() []StageFn {
	return []StageFn{
		stageTotalWeight,
		stageLongestPath,
		stageAverageDistance,
		stageShortestPaths,
		stageSend,
	}
}

func stageTotalWeight(env *Envelope) {
	env.Message += formatTotalWeight(env.Result.TotalWeight)
}

func stageLongestPath(env *Envelope) {
	env.Message += formatLongestPath(env.Result.LongestDistance)
}

func stageAverageDistance(env *Envelope) {
	env.Message += formatAverageDistance(env.Result.AverageDistance)
}

func stageShortestPaths(env *Envelope) {
	env.Message += formatShortestPaths(env.Result)
}

func stageSend(env *Envelope) {
	body := protocol.EdgeLines(env.Result.Edges) +
		"\nFinal pipeline data:\n" +
		"MST created using " + string(env.Algorithm) + " algorithm.\n" +
		env.Message
	if _, err := env.Conn.Write(protocol.Frame(body)); err != nil {
		log.Warn("failed to send pipeline reply to client %s: %v", env.ClientID, err)
	}
}

func formatTotalWeight(w int) string {
	return fmt.Sprintf("Total weight of MST: %d\n", w)
}

func formatLongestPath(d int) string {
	return fmt.Sprintf("Longest path in MST: %d\n", d)
}

func formatAverageDistance(avg float64) string {
	return fmt.Sprintf("Average distance in MST: %.6f\n", avg)
}

func formatShortestPaths(r treemetrics.Result) string {
	lines := "Shortest paths in MST:\n"
	vertices := append([]int(nil), r.Vertices...)
	sort.Ints(vertices)
	for _, i := range vertices {
		for _, j := range vertices {
			d := r.Distance(i, j)
			if d == treemetrics.Unreachable {
				lines += fmt.Sprintf("From %d to %d: max\n", i, j)
				continue
			}
			lines += fmt.Sprintf("From %d to %d: %d\n", i, j, d)
		}
	}
	return lines
}
