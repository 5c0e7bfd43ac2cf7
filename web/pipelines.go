// ABOUTME: Venue, budget and product pipeline routes
// ABOUTME: Budget reads are gated on the viewer's CanViewBudget flag
package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/models"
)

func (s *Server) listVenues(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	venues, err := s.svc.ListVenues(c.Request.Context(), id)
	s.respond(c, http.StatusOK, gin.H{"venues": venues}, err)
}

func (s *Server) createVenue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var v models.Venue
	if !bind(c, &v) {
		return
	}
	v.ActivationID = id
	created, err := s.svc.CreateVenue(c.Request.Context(), v)
	s.respond(c, http.StatusCreated, created, err)
}

func (s *Server) advanceVenue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	v, err := s.svc.AdvanceVenue(c.Request.Context(), id)
	s.respond(c, http.StatusOK, v, err)
}

type walkthroughRequest struct {
	Date  *time.Time `json:"date"`
	Notes string     `json:"notes"`
}

func (s *Server) scheduleWalkthrough(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req walkthroughRequest
	if !bind(c, &req) {
		return
	}
	v, err := s.svc.ScheduleWalkthrough(c.Request.Context(), id, req.Date, req.Notes)
	s.respond(c, http.StatusOK, v, err)
}

func (s *Server) getBudget(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	viewer, ok := s.viewer(c, id)
	if !ok {
		return
	}
	summary, err := s.svc.BudgetFor(c.Request.Context(), id, viewer)
	if err != nil {
		s.fail(c, err)
		return
	}
	items, err := s.svc.ListBudgetItems(c.Request.Context(), id)
	s.respond(c, http.StatusOK, gin.H{"summary": summary, "items": items}, err)
}

func (s *Server) addBudgetItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var item models.BudgetItem
	if !bind(c, &item) {
		return
	}
	item.ActivationID = id
	created, err := s.svc.AddBudgetItem(c.Request.Context(), item)
	s.respond(c, http.StatusCreated, created, err)
}

type transitionRequest struct {
	Status models.BudgetStatus `json:"status" binding:"required"`
	activation.BudgetTransition
}

func (s *Server) transitionBudgetItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req transitionRequest
	if !bind(c, &req) {
		return
	}
	item, err := s.svc.TransitionBudgetItem(c.Request.Context(), id, req.Status, req.BudgetTransition)
	s.respond(c, http.StatusOK, item, err)
}

func (s *Server) listProducts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	products, err := s.svc.ListProducts(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	summary, err := s.svc.InventorySummary(c.Request.Context(), id)
	s.respond(c, http.StatusOK, gin.H{"products": products, "summary": summary}, err)
}

func (s *Server) addProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var p models.Product
	if !bind(c, &p) {
		return
	}
	p.ActivationID = id
	created, err := s.svc.AddProduct(c.Request.Context(), p)
	s.respond(c, http.StatusCreated, created, err)
}

func (s *Server) advanceProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := s.svc.AdvanceProduct(c.Request.Context(), id)
	s.respond(c, http.StatusOK, p, err)
}

func (s *Server) reconcileProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req activation.Reconciliation
	if !bind(c, &req) {
		return
	}
	p, err := s.svc.ReconcileProduct(c.Request.Context(), id, req)
	s.respond(c, http.StatusOK, p, err)
}
