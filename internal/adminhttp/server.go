// Package adminhttp serves operational endpoints (/health, /stats,
// /clients) on a port separate from the TCP MST service, using gin the
// way flxj-graphlib's workflow service does for its own admin surface.
package adminhttp

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aharonba/mstnet/internal/errmetrics"
	"github.com/Aharonba/mstnet/internal/logger"
)

var log = logger.WithComponent("adminhttp")

// ClientLister reports the connection ids currently holding a graph, so
// /clients can show live occupancy without adminhttp depending on
// graphstore directly.
type ClientLister interface {
	ClientIDs() []string
}

// Server is the admin HTTP surface, independent of the MST TCP
// listener's lifecycle.
type Server struct {
	addr       string
	metrics    *errmetrics.Metrics
	clients    ClientLister
	httpServer *http.Server
	wg         sync.WaitGroup
	startTime  time.Time
}

// New builds an admin server bound to addr, reporting metrics and the
// live client roster.
func New(addr string, metrics *errmetrics.Metrics, clients ClientLister) *Server {
	return &Server{
		addr:      addr,
		metrics:   metrics,
		clients:   clients,
		startTime: time.Now(),
	}
}

// Start begins serving in the background; it returns once the listener
// is ready, not once the server stops.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", s.handleHealth)
	router.GET("/stats", s.handleStats)
	router.GET("/clients", s.handleClients)

	s.httpServer = &http.Server{
		Addr:         s.addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	log.Info("starting admin HTTP server on %s", s.addr)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Error("admin HTTP server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts the admin server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	log.Info("shutting down admin HTTP server")
	err := s.httpServer.Shutdown(ctx)
	s.wg.Wait()
	return err
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"uptime": time.Since(s.startTime).String(),
	})
}

func (s *Server) handleStats(c *gin.Context) {
	stats := s.metrics.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"total_errors":     stats.TotalErrors,
		"errors_by_kind":   stats.ErrorsByKind,
		"errors_by_source": stats.ErrorsBySource,
		"error_rate":       stats.ErrorRate,
		"last_error":       stats.LastErrorMsg,
		"uptime":           stats.Uptime.String(),
		"client_count":     len(s.clients.ClientIDs()),
	})
}

func (s *Server) handleClients(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"clients": s.clients.ClientIDs()})
}
