// Package mstserver wires the Graph Store, MST solvers, tree metrics,
// and the two concurrency cores behind one TCP listener: the Network
// Listener and Connection Handler components of spec.md §4.7-4.8.
package mstserver

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Aharonba/mstnet/internal/adminhttp"
	"github.com/Aharonba/mstnet/internal/config"
	"github.com/Aharonba/mstnet/internal/errmetrics"
	"github.com/Aharonba/mstnet/internal/graphstore"
	"github.com/Aharonba/mstnet/internal/leaderfollowers"
	"github.com/Aharonba/mstnet/internal/logger"
	"github.com/Aharonba/mstnet/internal/mst"
	"github.com/Aharonba/mstnet/internal/pipeline"
	"github.com/Aharonba/mstnet/internal/protocol"
	"github.com/Aharonba/mstnet/internal/treemetrics"
)

var log = logger.WithComponent("mstserver")

// Server owns the listener, the per-client graph registry, both
// concurrency cores, and the admin HTTP surface.
type Server struct {
	cfg      config.Config
	listener net.Listener
	graphs   *graphstore.Registry
	lfPool   *leaderfollowers.Pool
	pipe     *pipeline.Pipeline
	admin    *adminhttp.Server
	errs     *errmetrics.Metrics

	// connGroup joins every accepted connection's goroutine; shutdown
	// waits on it instead of a raw sync.WaitGroup so a panic inside a
	// handler surfaces through Wait() rather than vanishing silently.
	connGroup errgroup.Group
	quitting  bool
}

// NewServer builds a server around cfg, starting both concurrency
// cores immediately; Start only needs to bind the socket and begin
// accepting.
func NewServer(cfg config.Config) *Server {
	errs := errmetrics.New()
	graphs := graphstore.NewRegistry()
	return &Server{
		cfg:    cfg,
		graphs: graphs,
		lfPool: leaderfollowers.New(cfg.LFWorkers),
		pipe:   pipeline.New(pipeline.Stages()...),
		errs:   errs,
		admin:  adminhttp.New(cfg.AdminAddr, errs, graphs),
	}
}

// Start binds the listening socket, starts the admin HTTP surface, and
// blocks accepting connections until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Error("failed to listen on %s: %v", addr, err)
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.listener = listener
	log.Info("mstnet server listening on %s (mode=%s)", addr, s.cfg.DefaultMode)

	if err := s.admin.Start(); err != nil {
		log.Warn("admin HTTP server failed to start: %v", err)
	}

	go s.acceptConnections(ctx)

	<-ctx.Done()
	log.Info("shutdown signal received, draining connections")
	return s.shutdown()
}

func (s *Server) acceptConnections(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			conn, err := s.listener.Accept()
			if err != nil {
				if s.quitting {
					return
				}
				log.Warn("accept failed: %v", err)
				s.errs.Record("listener", "accept", err)
				continue
			}
			s.connGroup.Go(func() error {
				s.handleConnection(conn)
				return nil
			})
		}
	}
}

func (s *Server) shutdown() error {
	s.quitting = true
	if s.listener != nil {
		s.listener.Close()
	}
	s.connGroup.Wait()

	s.lfPool.Shutdown()
	s.pipe.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.admin.Stop(ctx); err != nil {
		log.Warn("error stopping admin HTTP server: %v", err)
	}

	log.Info("mstnet server shutdown complete")
	return nil
}

// handleConnection is the Connection Handler: one per accepted socket,
// reading one command per iteration and dispatching it, never waiting
// for a SolveMST reply to be sent before reading again.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	clientID := uuid.NewString()
	log.Debug("client %s connected from %s", clientID, conn.RemoteAddr())
	defer func() {
		s.graphs.Delete(clientID)
		log.Debug("client %s disconnected", clientID)
	}()

	buf := make([]byte, protocol.MaxCommandBytes)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return
		}

		req, err := protocol.Parse(buf[:n])
		if err != nil {
			log.Debug("client %s sent unrecognised command: %v", clientID, err)
			continue
		}

		s.dispatch(clientID, conn, req)
	}
}

func (s *Server) dispatch(clientID string, conn net.Conn, req protocol.Request) {
	switch req.Kind {
	case protocol.KindNewGraph:
		s.graphs.Reset(clientID, req.N)
		log.Debug("client %s: NewGraph %d", clientID, req.N)

	case protocol.KindAddEdge:
		g := s.graphs.Get(clientID)
		if g == nil {
			log.Warn("client %s sent AddEdge with no graph", clientID)
			return
		}
		g.AddEdge(req.I, req.J, req.W)
		log.Debug("client %s: AddEdge %d %d %d", clientID, req.I, req.J, req.W)

	case protocol.KindRemoveEdge:
		g := s.graphs.Get(clientID)
		if g == nil {
			log.Warn("client %s sent RemoveEdge with no graph", clientID)
			return
		}
		g.RemoveEdge(req.I, req.J)
		log.Debug("client %s: RemoveEdge %d %d", clientID, req.I, req.J)

	case protocol.KindSolveMST:
		s.solve(clientID, conn, req.Algorithm)
	}
}

func (s *Server) solve(clientID string, conn net.Conn, algoName string) {
	g := s.graphs.Get(clientID)
	if g == nil {
		log.Warn("client %s sent SolveMST with no graph", clientID)
		return
	}

	algo, err := mst.ParseAlgorithm(algoName)
	if err != nil {
		s.errs.Record("handler", "unsupported-algorithm", err)
		if _, werr := conn.Write(protocol.UnsupportedAlgorithmReply); werr != nil {
			log.Warn("failed to send error reply to client %s: %v", clientID, werr)
		}
		return
	}

	edges, err := algo.Solve(g.Edges(), g.VertexCount)
	if err != nil {
		s.errs.Record("handler", "solve", err)
		return
	}
	result := treemetrics.Compute(edges, g.VertexCount)

	switch s.cfg.DefaultMode {
	case config.ModePipeline:
		s.pipe.Submit(&pipeline.Envelope{
			Algorithm: algo,
			Result:    result,
			Conn:      conn,
			ClientID:  clientID,
		})
	default:
		s.lfPool.Submit(func() {
			if _, err := conn.Write(protocol.Frame(protocol.LFBody(edges))); err != nil {
				log.Warn("failed to send LF reply to client %s: %v", clientID, err)
			}
		})
	}
}
