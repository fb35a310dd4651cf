package api

import (
	"github.com/gin-gonic/gin"

	"cyclesync/internal/config"
	"cyclesync/ports"
)

// Server wraps the gin.Engine exposing the pipeline endpoints and the
// persistence contract's CRUD surface.
type Server struct {
	router *gin.Engine
}

// Repositories bundles the three persistence-contract repositories the
// store handler needs.
type Repositories struct {
	Cycles       ports.CycleRepository
	Predictions  ports.PredictionRepository
	Observations ports.ObservationRepository
}

// NewServer constructs a Server with all routes and middleware wired.
func NewServer(cfg *config.Config, repos Repositories) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{router: gin.Default()}
	s.router.Use(CORS(cfg.Secret))

	reconcile := NewReconcileHandler()
	csvImport := NewCSVImportHandler()
	insights := NewInsightsHandler()
	store := NewStoreHandler(repos.Cycles, repos.Predictions, repos.Observations)

	v1 := s.router.Group("/api/v1", RequireSharedSecret(cfg.Secret))
	v1.POST("/reconcile", reconcile.Reconcile)
	v1.POST("/csv/import", csvImport.Import)
	v1.POST("/quality/insights", insights.Insights)

	v1.GET("/cycles", store.ListCycles)
	v1.POST("/cycles", store.UpsertCycle)
	v1.DELETE("/cycles/:id", store.DeleteCycle)

	v1.GET("/observations", store.ListObservations)
	v1.POST("/observations", store.UpsertObservation)
	v1.DELETE("/observations/:id", store.DeleteObservation)

	v1.GET("/predictions", store.ListPredictions)
	v1.POST("/predictions", store.UpsertPrediction)
	v1.DELETE("/predictions/:id", store.DeletePrediction)

	return s
}

// Start runs the HTTP server on addr.
func (s *Server) Start(addr string) error {
	logger.Info("starting cyclesync API on http://%s", addr)
	return s.router.Run(addr)
}
