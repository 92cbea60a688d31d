// Package metrics expone contadores Prometheus y un servidor HTTP lateral
// con /metrics y /health, separado del API principal.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Almacen-api/pkg/logger"
)

var (
	// SuppliesCreated suministros registrados con éxito.
	SuppliesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "almacen_supplies_created_total",
		Help: "Suministros registrados con éxito.",
	})

	// SalesCreated ventas registradas con éxito.
	SalesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "almacen_sales_created_total",
		Help: "Ventas registradas con éxito.",
	})

	// SalesRejected ventas rechazadas por stock insuficiente.
	SalesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "almacen_sales_rejected_total",
		Help: "Ventas rechazadas por stock insuficiente.",
	})

	// ReversalsApplied suministros o ventas revertidos.
	ReversalsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "almacen_reversals_applied_total",
		Help: "Reversiones aplicadas, por tipo de documento.",
	}, []string{"kind"})
)

// Server servidor lateral de métricas.
type Server struct {
	srv *http.Server
	log *logger.Logger
}

// NewServer construye el servidor de métricas en addr.
func NewServer(addr string, log *logger.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log.Component("metrics"),
	}
}

// Start arranca el servidor en una goroutine propia.
func (s *Server) Start() {
	go func() {
		s.log.Info().Str("addr", s.srv.Addr).Msg("Servidor de métricas escuchando")
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error().Err(err).Msg("Servidor de métricas detenido con error")
		}
	}()
}

// Shutdown detiene el servidor respetando el contexto.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
