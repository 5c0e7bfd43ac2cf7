// ABOUTME: Stakeholder, document, personnel, lead and issue routes
// ABOUTME: Document and lead reads are filtered by the caller's viewer identity
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/models"
)

func (s *Server) listStakeholders(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	stakeholders, err := s.svc.ListStakeholders(c.Request.Context(), id)
	s.respond(c, http.StatusOK, gin.H{"stakeholders": stakeholders}, err)
}

func (s *Server) addStakeholder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var sh models.Stakeholder
	if !bind(c, &sh) {
		return
	}
	sh.ActivationID = id
	created, err := s.svc.AddStakeholder(c.Request.Context(), sh)
	s.respond(c, http.StatusCreated, created, err)
}

func (s *Server) updatePermissions(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var p models.Permissions
	if !bind(c, &p) {
		return
	}
	sh, err := s.svc.UpdateStakeholderPermissions(c.Request.Context(), id, p)
	s.respond(c, http.StatusOK, sh, err)
}

func (s *Server) listDocuments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	viewer, ok := s.viewer(c, id)
	if !ok {
		return
	}
	docs, err := s.svc.DocumentsFor(c.Request.Context(), id, viewer)
	s.respond(c, http.StatusOK, gin.H{"documents": docs}, err)
}

func (s *Server) addDocument(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var doc models.Document
	if !bind(c, &doc) {
		return
	}
	doc.ActivationID = id
	created, err := s.svc.AddDocument(c.Request.Context(), doc)
	s.respond(c, http.StatusCreated, created, err)
}

type signatureRequest struct {
	SignerName  string `json:"signer_name"`
	SignerEmail string `json:"signer_email"`
}

func (s *Server) requestSignature(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req signatureRequest
	if !bind(c, &req) {
		return
	}
	doc, err := s.svc.RequestSignature(c.Request.Context(), id, req.SignerName, req.SignerEmail)
	s.respond(c, http.StatusOK, doc, err)
}

func (s *Server) signDocument(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req activation.SignatureRequest
	if !bind(c, &req) {
		return
	}
	req.Viewer = models.Viewer{IsAdmin: isAdmin(c)}
	doc, err := s.svc.SignDocument(c.Request.Context(), id, req)
	s.respond(c, http.StatusOK, doc, err)
}

func (s *Server) listPersonnel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	staff, err := s.svc.ListPersonnel(c.Request.Context(), id)
	s.respond(c, http.StatusOK, gin.H{"personnel": staff}, err)
}

func (s *Server) addPersonnel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var p models.Personnel
	if !bind(c, &p) {
		return
	}
	p.ActivationID = id
	created, err := s.svc.AddPersonnel(c.Request.Context(), p)
	s.respond(c, http.StatusCreated, created, err)
}

type clockRequest struct {
	Action models.ClockAction `json:"action" binding:"required"`
}

func (s *Server) clockPersonnel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req clockRequest
	if !bind(c, &req) {
		return
	}
	p, err := s.svc.ClockPersonnel(c.Request.Context(), id, req.Action)
	s.respond(c, http.StatusOK, p, err)
}

type verifyRequest struct {
	Score int `json:"score"`
}

func (s *Server) verifyPersonnel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req verifyRequest
	if !bind(c, &req) {
		return
	}
	p, err := s.svc.VerifyProductKnowledge(c.Request.Context(), id, req.Score)
	s.respond(c, http.StatusOK, p, err)
}

func (s *Server) listLeads(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	viewer, ok := s.viewer(c, id)
	if !ok {
		return
	}
	leads, err := s.svc.LeadsFor(c.Request.Context(), id, viewer)
	s.respond(c, http.StatusOK, gin.H{"leads": leads}, err)
}

func (s *Server) captureLead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var lead models.Lead
	if !bind(c, &lead) {
		return
	}
	lead.ActivationID = id
	created, err := s.svc.CaptureLead(c.Request.Context(), lead)
	s.respond(c, http.StatusCreated, created, err)
}

func (s *Server) listIssues(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	issues, err := s.svc.ListIssues(c.Request.Context(), id)
	s.respond(c, http.StatusOK, gin.H{"issues": issues}, err)
}

func (s *Server) reportIssue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var issue models.Issue
	if !bind(c, &issue) {
		return
	}
	issue.ActivationID = id
	created, err := s.svc.ReportIssue(c.Request.Context(), issue)
	s.respond(c, http.StatusCreated, created, err)
}

func (s *Server) escalateIssue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	issue, err := s.svc.EscalateIssue(c.Request.Context(), id)
	s.respond(c, http.StatusOK, issue, err)
}

type resolveRequest struct {
	Resolution string `json:"resolution"`
}

func (s *Server) resolveIssue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req resolveRequest
	if !bind(c, &req) {
		return
	}
	issue, err := s.svc.ResolveIssue(c.Request.Context(), id, req.Resolution)
	s.respond(c, http.StatusOK, issue, err)
}
