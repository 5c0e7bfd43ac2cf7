// ABOUTME: Activation routes for the JSON API
// ABOUTME: Lifecycle, dashboard, metrics, activity, schedule and report endpoints
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/models"
)

func (s *Server) listActivations(c *gin.Context) {
	viewer, ok := s.callerViewer(c)
	if !ok {
		return
	}
	activations, err := s.svc.ListActivationsFor(c.Request.Context(), viewer)
	s.respond(c, http.StatusOK, gin.H{"activations": activations}, err)
}

func (s *Server) createActivation(c *gin.Context) {
	var a models.Activation
	if !bind(c, &a) {
		return
	}
	created, err := s.svc.CreateActivation(c.Request.Context(), a)
	s.respond(c, http.StatusCreated, created, err)
}

func (s *Server) getDashboard(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	viewer, ok := s.viewer(c, id)
	if !ok {
		return
	}
	d, err := s.svc.DashboardFor(c.Request.Context(), id, viewer)
	s.respond(c, http.StatusOK, d, err)
}

func (s *Server) updateActivation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch activation.ActivationPatch
	if !bind(c, &patch) {
		return
	}
	a, err := s.svc.UpdateActivation(c.Request.Context(), id, patch)
	s.respond(c, http.StatusOK, a, err)
}

func (s *Server) deleteActivation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.svc.DeleteActivation(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) advancePhase(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := s.svc.AdvancePhase(c.Request.Context(), id)
	s.respond(c, http.StatusOK, a, err)
}

type interactionsRequest struct {
	Count int `json:"count"`
}

func (s *Server) recordInteractions(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req interactionsRequest
	if !bind(c, &req) {
		return
	}
	a, err := s.svc.RecordInteractions(c.Request.Context(), id, req.Count)
	s.respond(c, http.StatusOK, a, err)
}

func (s *Server) reconcileSpend(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := s.svc.ReconcileBudgetSpent(c.Request.Context(), id)
	s.respond(c, http.StatusOK, a, err)
}

func (s *Server) getMetrics(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	viewer, ok := s.viewer(c, id)
	if !ok {
		return
	}
	m, err := s.svc.MetricsFor(c.Request.Context(), id, viewer)
	s.respond(c, http.StatusOK, m, err)
}

func (s *Server) getActivity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := s.svc.GetActivation(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	entries, err := s.svc.Activity(c.Request.Context(), id)
	s.respond(c, http.StatusOK, gin.H{"activity": entries}, err)
}

func (s *Server) listRunOfShow(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	items, err := s.svc.ListRunOfShow(c.Request.Context(), id)
	s.respond(c, http.StatusOK, gin.H{"items": items}, err)
}

func (s *Server) addRunOfShowItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var item models.RunOfShowItem
	if !bind(c, &item) {
		return
	}
	item.ActivationID = id
	created, err := s.svc.AddRunOfShowItem(c.Request.Context(), item)
	s.respond(c, http.StatusCreated, created, err)
}

type completeRequest struct {
	Completed bool   `json:"completed"`
	By        string `json:"by"`
}

func (s *Server) completeRunOfShowItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req completeRequest
	if !bind(c, &req) {
		return
	}
	item, err := s.svc.SetRunOfShowCompleted(c.Request.Context(), id, req.Completed)
	s.respond(c, http.StatusOK, item, err)
}

func (s *Server) getChecklist(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	progress, err := s.svc.ChecklistProgress(c.Request.Context(), id)
	s.respond(c, http.StatusOK, progress, err)
}

func (s *Server) addChecklistItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var item models.ChecklistItem
	if !bind(c, &item) {
		return
	}
	item.ActivationID = id
	created, err := s.svc.AddChecklistItem(c.Request.Context(), item)
	s.respond(c, http.StatusCreated, created, err)
}

func (s *Server) completeChecklistItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req completeRequest
	if !bind(c, &req) {
		return
	}
	item, err := s.svc.SetChecklistCompleted(c.Request.Context(), id, req.Completed, req.By)
	s.respond(c, http.StatusOK, item, err)
}

func (s *Server) listReports(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	viewer, ok := s.viewer(c, id)
	if !ok {
		return
	}
	reports, err := s.svc.ReportsFor(c.Request.Context(), id, viewer)
	s.respond(c, http.StatusOK, gin.H{"reports": reports}, err)
}

type reportRequest struct {
	GeneratedBy string `json:"generated_by"`
	Notes       string `json:"notes"`
}

func (s *Server) generateReport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reportRequest
	if !bind(c, &req) {
		return
	}
	r, err := s.svc.GenerateReport(c.Request.Context(), id, req.GeneratedBy, req.Notes)
	s.respond(c, http.StatusCreated, r, err)
}
