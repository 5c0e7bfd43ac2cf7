// ABOUTME: JSON HTTP API over the activation service
// ABOUTME: Routes, viewer resolution from headers and error-to-status mapping
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/logging"
	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/store"
)

// Viewer identity headers. They select what a caller may see; they are not authentication.
const (
	HeaderStakeholderID = "X-Stakeholder-ID"
	HeaderAdmin         = "X-Admin"
)

type Server struct {
	svc    *activation.Service
	logger *zap.Logger
	router *gin.Engine
}

func NewServer(svc *activation.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{svc: svc, logger: logger}
	s.router = s.setupRouter()
	return s
}

// Handler exposes the router, mostly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down web server: %w", err)
	}
	return <-errCh
}

func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(logging.GinLogger(s.logger))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := router.Group("/api")
	{
		api.GET("/activations", s.listActivations)
		api.POST("/activations", s.createActivation)
		api.GET("/activations/:id", s.getDashboard)
		api.PATCH("/activations/:id", s.updateActivation)
		api.DELETE("/activations/:id", s.deleteActivation)
		api.POST("/activations/:id/advance", s.advancePhase)
		api.POST("/activations/:id/interactions", s.recordInteractions)
		api.POST("/activations/:id/reconcile-spend", s.reconcileSpend)
		api.GET("/activations/:id/metrics", s.getMetrics)
		api.GET("/activations/:id/activity", s.getActivity)

		api.GET("/activations/:id/venues", s.listVenues)
		api.POST("/activations/:id/venues", s.createVenue)
		api.POST("/venues/:id/advance", s.advanceVenue)
		api.POST("/venues/:id/walkthrough", s.scheduleWalkthrough)

		api.GET("/activations/:id/budget", s.getBudget)
		api.POST("/activations/:id/budget", s.addBudgetItem)
		api.POST("/budget-items/:id/transition", s.transitionBudgetItem)

		api.GET("/activations/:id/products", s.listProducts)
		api.POST("/activations/:id/products", s.addProduct)
		api.POST("/products/:id/advance", s.advanceProduct)
		api.POST("/products/:id/reconcile", s.reconcileProduct)

		api.GET("/activations/:id/stakeholders", s.listStakeholders)
		api.POST("/activations/:id/stakeholders", s.addStakeholder)
		api.PUT("/stakeholders/:id/permissions", s.updatePermissions)

		api.GET("/activations/:id/documents", s.listDocuments)
		api.POST("/activations/:id/documents", s.addDocument)
		api.POST("/documents/:id/request-signature", s.requestSignature)
		api.POST("/documents/:id/sign", s.signDocument)

		api.GET("/activations/:id/personnel", s.listPersonnel)
		api.POST("/activations/:id/personnel", s.addPersonnel)
		api.POST("/personnel/:id/clock", s.clockPersonnel)
		api.POST("/personnel/:id/verify", s.verifyPersonnel)

		api.GET("/activations/:id/leads", s.listLeads)
		api.POST("/activations/:id/leads", s.captureLead)

		api.GET("/activations/:id/issues", s.listIssues)
		api.POST("/activations/:id/issues", s.reportIssue)
		api.POST("/issues/:id/escalate", s.escalateIssue)
		api.POST("/issues/:id/resolve", s.resolveIssue)

		api.GET("/activations/:id/run-of-show", s.listRunOfShow)
		api.POST("/activations/:id/run-of-show", s.addRunOfShowItem)
		api.POST("/run-of-show/:id/complete", s.completeRunOfShowItem)

		api.GET("/activations/:id/checklist", s.getChecklist)
		api.POST("/activations/:id/checklist", s.addChecklistItem)
		api.POST("/checklist/:id/complete", s.completeChecklistItem)

		api.GET("/activations/:id/reports", s.listReports)
		api.POST("/activations/:id/reports", s.generateReport)
	}

	return router
}

// pathID parses the :id route parameter, writing a 400 when it is malformed.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func isAdmin(c *gin.Context) bool {
	admin, _ := strconv.ParseBool(c.GetHeader(HeaderAdmin))
	return admin
}

// stakeholderHeader parses the optional stakeholder id header.
func stakeholderHeader(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.GetHeader(HeaderStakeholderID)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + HeaderStakeholderID})
		return nil, false
	}
	return &id, true
}

// callerViewer resolves the caller without tying them to one activation.
func (s *Server) callerViewer(c *gin.Context) (models.Viewer, bool) {
	stakeholderID, ok := stakeholderHeader(c)
	if !ok {
		return models.Viewer{}, false
	}
	v := models.Viewer{IsAdmin: isAdmin(c)}
	if stakeholderID == nil {
		return v, true
	}
	sh, err := s.svc.GetStakeholder(c.Request.Context(), *stakeholderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = fmt.Errorf("%w: %w", models.ErrForbidden, err)
		}
		s.fail(c, err)
		return models.Viewer{}, false
	}
	v.Stakeholder = sh
	return v, true
}

// viewer resolves the caller for an activation from the identity headers.
func (s *Server) viewer(c *gin.Context, activationID uuid.UUID) (models.Viewer, bool) {
	stakeholderID, ok := stakeholderHeader(c)
	if !ok {
		return models.Viewer{}, false
	}

	v, err := s.svc.ResolveViewer(c.Request.Context(), activationID, stakeholderID, isAdmin(c))
	if err != nil {
		// An unknown stakeholder id is an identity problem, not a missing resource.
		if errors.Is(err, store.ErrNotFound) {
			err = fmt.Errorf("%w: %w", models.ErrForbidden, err)
		}
		s.fail(c, err)
		return models.Viewer{}, false
	}
	return v, true
}

// fail maps service errors onto HTTP statuses.
func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrForbidden), errors.Is(err, models.ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidTransition), errors.Is(err, models.ErrQuantityMismatch), errors.Is(err, store.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrConsentRequired),
		errors.Is(err, models.ErrSignatureRequired), errors.Is(err, store.ErrDanglingReference):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// respond writes v as JSON, or the mapped error.
func (s *Server) respond(c *gin.Context, status int, v any, err error) {
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(status, v)
}
