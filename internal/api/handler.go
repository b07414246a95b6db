package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/samandr77/microservices/compliance/internal/entity"
)

type Service interface {
	Dashboard(ctx context.Context, filter entity.PermitFilter) (entity.Dashboard, error)
	Milestones(ctx context.Context) ([]entity.Milestone, error)

	ListPermits(ctx context.Context, filter entity.PermitFilter) ([]entity.Permit, error)
	Permit(ctx context.Context, id string) (entity.Permit, error)
	CreatePermit(ctx context.Context, draft entity.PermitDraft) (entity.Permit, error)
	UpdatePermit(ctx context.Context, p entity.Permit) (entity.Permit, error)
	DeletePermit(ctx context.Context, id string, confirmed bool) error
	ExportPermitsCSV(ctx context.Context, filter entity.PermitFilter) (entity.ExportedFile, error)
	PermitDocument(ctx context.Context, id string) (entity.DownloadedFile, error)
	AnalyzeDocument(ctx context.Context, file entity.UploadedFile) (entity.PermitDraft, error)

	ListConditions(ctx context.Context, status string) ([]entity.Condition, error)
	Condition(ctx context.Context, id string) (entity.Condition, error)
	CreateCondition(ctx context.Context, draft entity.ConditionDraft) (entity.Condition, error)
	UpdateCondition(ctx context.Context, c entity.Condition) (entity.Condition, error)
	DeleteCondition(ctx context.Context, id string) error

	ListEvidence(ctx context.Context) ([]entity.Evidence, error)
	UploadEvidence(ctx context.Context, conditionID string, file entity.UploadedFile, tags []string) (entity.Evidence, error)
	EvidenceFile(ctx context.Context, id string) (entity.DownloadedFile, error)
	UpdateEvidence(ctx context.Context, id, fileName string, tags []string) (entity.Evidence, error)
	DeleteEvidence(ctx context.Context, id string) error

	Report(ctx context.Context, kind entity.ReportKind) (entity.Report, error)
	ReportCSV(ctx context.Context, kind entity.ReportKind) (entity.ExportedFile, error)

	Profile(ctx context.Context) (entity.UserProfile, error)
	UpdateProfile(ctx context.Context, p entity.UserProfile) (entity.UserProfile, error)
	AlertSettings(ctx context.Context) (entity.AlertSettings, error)
	UpdateAlertSettings(ctx context.Context, a entity.AlertSettings) (entity.AlertSettings, error)

	Ask(ctx context.Context, session, message string) (entity.ChatReply, error)
	Transcript(ctx context.Context, session string) entity.Transcript
	ResetConversation(ctx context.Context, session string) error
	Suggestions(ctx context.Context) []string

	Activity(ctx context.Context) []entity.ActivityEntry
}

// @title Compliance API
// @version 1.0
// @description Permit, condition and evidence tracking with an AI assistant.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type Handler struct {
	s              Service
	uploadMaxBytes int64
}

func NewHandler(s Service, uploadMaxBytes int64) *Handler {
	return &Handler{
		s:              s,
		uploadMaxBytes: uploadMaxBytes,
	}
}

// Health godoc
// @Summary      Health check
// @Tags         health
// @Success      200 {string} string "Service is up"
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, err := w.Write([]byte("Service is up\n"))
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, "Service is down")
	}
}

func permitFilter(r *http.Request) entity.PermitFilter {
	q := r.URL.Query()

	return entity.PermitFilter{
		Status:  q.Get("status"),
		Owner:   q.Get("owner"),
		Project: q.Get("project"),
	}
}

// Dashboard godoc
// @Summary      Dashboard
// @Description  KPIs over all records and the permits matching the filter
// @Tags         dashboard
// @Produce      json
// @Param        status  query string false "Permit status or All"
// @Param        owner   query string false "Owner or All"
// @Param        project query string false "Project or All"
// @Success      200 {object} entity.Dashboard
// @Failure      500 {object} ResponseError
// @Security     BearerAuth
// @Router       /dashboard [get]
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	d, err := h.s.Dashboard(ctx, permitFilter(r))
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to build the dashboard")
		return
	}

	SendJSON(ctx, w, http.StatusOK, d)
}

// Milestones godoc
// @Summary      Permit milestones
// @Tags         permits
// @Produce      json
// @Success      200 {array} entity.Milestone
// @Security     BearerAuth
// @Router       /milestones [get]
func (h *Handler) Milestones(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	milestones, err := h.s.Milestones(ctx)
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to get milestones")
		return
	}

	SendJSON(ctx, w, http.StatusOK, milestones)
}

// ListPermits godoc
// @Summary      Permits
// @Tags         permits
// @Produce      json
// @Param        status  query string false "Permit status or All"
// @Param        owner   query string false "Owner or All"
// @Param        project query string false "Project or All"
// @Success      200 {array} entity.Permit
// @Security     BearerAuth
// @Router       /permits [get]
func (h *Handler) ListPermits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	permits, err := h.s.ListPermits(ctx, permitFilter(r))
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to get permits")
		return
	}

	SendJSON(ctx, w, http.StatusOK, permits)
}

// GetPermit godoc
// @Summary      Permit by id
// @Tags         permits
// @Produce      json
// @Param        id path string true "Permit id"
// @Success      200 {object} entity.Permit
// @Failure      404 {object} ResponseError
// @Security     BearerAuth
// @Router       /permits/{id} [get]
func (h *Handler) GetPermit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := h.s.Permit(ctx, chi.URLParam(r, "id"))
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to get permit")
		return
	}

	SendJSON(ctx, w, http.StatusOK, p)
}

// CreatePermit godoc
// @Summary      Create a permit
// @Description  Unset fields get their defaults, name and project are required
// @Tags         permits
// @Accept       json
// @Produce      json
// @Param        request body entity.PermitDraft true "Permit draft"
// @Success      201 {object} entity.Permit
// @Failure      400 {object} ResponseError
// @Security     BearerAuth
// @Router       /permits [post]
func (h *Handler) CreatePermit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var draft entity.PermitDraft

	err := json.NewDecoder(r.Body).Decode(&draft)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect request body")
		return
	}

	p, err := h.s.CreatePermit(ctx, draft)
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to create permit")
		return
	}

	SendJSON(ctx, w, http.StatusCreated, p)
}

// UpdatePermit godoc
// @Summary      Replace a permit
// @Tags         permits
// @Accept       json
// @Produce      json
// @Param        id      path string        true "Permit id"
// @Param        request body entity.Permit true "Permit"
// @Success      200 {object} entity.Permit
// @Failure      400 {object} ResponseError
// @Failure      404 {object} ResponseError
// @Security     BearerAuth
// @Router       /permits/{id} [put]
func (h *Handler) UpdatePermit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var p entity.Permit

	err := json.NewDecoder(r.Body).Decode(&p)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect request body")
		return
	}

	p.ID = chi.URLParam(r, "id")

	p, err = h.s.UpdatePermit(ctx, p)
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to update permit")
		return
	}

	SendJSON(ctx, w, http.StatusOK, p)
}

// DeletePermit godoc
// @Summary      Delete a permit with its conditions
// @Tags         permits
// @Param        id      path  string true "Permit id"
// @Param        confirm query bool   true "Must be true"
// @Success      204
// @Failure      400 {object} ResponseError "Not confirmed"
// @Failure      404 {object} ResponseError
// @Security     BearerAuth
// @Router       /permits/{id} [delete]
func (h *Handler) DeletePermit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

	err := h.s.DeletePermit(ctx, chi.URLParam(r, "id"), confirmed)
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to delete permit")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportPermits godoc
// @Summary      Export permits as CSV
// @Tags         permits
// @Produce      text/csv
// @Param        status  query string false "Permit status or All"
// @Param        owner   query string false "Owner or All"
// @Param        project query string false "Project or All"
// @Success      200 {file} binary
// @Security     BearerAuth
// @Router       /permits/export [get]
func (h *Handler) ExportPermits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, err := h.s.ExportPermitsCSV(ctx, permitFilter(r))
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to export permits")
		return
	}

	sendFile(w, r, f.Name, f.ContentType, f.Data)
}

// PermitDocument godoc
// @Summary      Permit document
// @Description  The attached document, or a generated text record when none is attached
// @Tags         permits
// @Produce      octet-stream
// @Param        id path string true "Permit id"
// @Success      200 {file} binary
// @Failure      404 {object} ResponseError
// @Security     BearerAuth
// @Router       /permits/{id}/document [get]
func (h *Handler) PermitDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, err := h.s.PermitDocument(ctx, chi.URLParam(r, "id"))
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to get permit document")
		return
	}

	sendFile(w, r, f.Name, f.ContentType, f.Data)
}

// AnalyzeDocument godoc
// @Summary      Analyze a permit document
// @Description  Stores the document and returns a prefilled permit draft
// @Tags         permits
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Permit document (.pdf .doc .docx)"
// @Success      200 {object} entity.PermitDraft
// @Failure      400 {object} ResponseError
// @Failure      413 {object} ResponseError
// @Security     BearerAuth
// @Router       /permits/analyze [post]
func (h *Handler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	file, err := h.readUpload(w, r)
	if err != nil {
		sendUploadErr(ctx, w, err)
		return
	}

	draft, err := h.s.AnalyzeDocument(ctx, file)
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to analyze document")
		return
	}

	SendJSON(ctx, w, http.StatusOK, draft)
}

// ListConditions godoc
// @Summary      Conditions
// @Tags         conditions
// @Produce      json
// @Param        status query string false "Condition status or all"
// @Success      200 {array} entity.Condition
// @Security     BearerAuth
// @Router       /conditions [get]
func (h *Handler) ListConditions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conditions, err := h.s.ListConditions(ctx, r.URL.Query().Get("status"))
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to get conditions")
		return
	}

	SendJSON(ctx, w, http.StatusOK, conditions)
}

// GetCondition godoc
// @Summary      Condition by id
// @Tags         conditions
// @Produce      json
// @Param        id path string true "Condition id"
// @Success      200 {object} entity.Condition
// @Failure      404 {object} ResponseError
// @Security     BearerAuth
// @Router       /conditions/{id} [get]
func (h *Handler) GetCondition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c, err := h.s.Condition(ctx, chi.URLParam(r, "id"))
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to get condition")
		return
	}

	SendJSON(ctx, w, http.StatusOK, c)
}

// CreateCondition godoc
// @Summary      Create a condition
// @Description  Unset fields get their defaults, description is required
// @Tags         conditions
// @Accept       json
// @Produce      json
// @Param        request body entity.ConditionDraft true "Condition draft"
// @Success      201 {object} entity.Condition
// @Failure      400 {object} ResponseError
// @Security     BearerAuth
// @Router       /conditions [post]
func (h *Handler) CreateCondition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var draft entity.ConditionDraft

	err := json.NewDecoder(r.Body).Decode(&draft)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect request body")
		return
	}

	c, err := h.s.CreateCondition(ctx, draft)
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to create condition")
		return
	}

	SendJSON(ctx, w, http.StatusCreated, c)
}

// UpdateCondition godoc
// @Summary      Replace a condition
// @Description  evidenceUploaded is ignored, only uploads change it
// @Tags         conditions
// @Accept       json
// @Produce      json
// @Param        id      path string           true "Condition id"
// @Param        request body entity.Condition true "Condition"
// @Success      200 {object} entity.Condition
// @Failure      400 {object} ResponseError
// @Failure      404 {object} ResponseError
// @Security     BearerAuth
// @Router       /conditions/{id} [put]
func (h *Handler) UpdateCondition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var c entity.Condition

	err := json.NewDecoder(r.Body).Decode(&c)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect request body")
		return
	}

	c.ID = chi.URLParam(r, "id")

	c, err = h.s.UpdateCondition(ctx, c)
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to update condition")
		return
	}

	SendJSON(ctx, w, http.StatusOK, c)
}

// DeleteCondition godoc
// @Summary      Delete a condition
// @Tags         conditions
// @Param        id path string true "Condition id"
// @Success      204
// @Failure      404 {object} ResponseError
// @Security     BearerAuth
// @Router       /conditions/{id} [delete]
func (h *Handler) DeleteCondition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.s.DeleteCondition(ctx, chi.URLParam(r, "id"))
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to delete condition")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadEvidence godoc
// @Summary      Upload evidence for a condition
// @Description  Marks the condition compliant with low risk
// @Tags         evidence
// @Accept       multipart/form-data
// @Produce      json
// @Param        id   path     string true  "Condition id"
// @Param        file formData file   true  "Evidence (.pdf .png .jpg .jpeg .doc .docx)"
// @Param        tags formData string false "Comma separated tags"
// @Success      201 {object} entity.Evidence
// @Failure      400 {object} ResponseError
// @Failure      404 {object} ResponseError
// @Failure      413 {object} ResponseError
// @Security     BearerAuth
// @Router       /conditions/{id}/evidence [post]
func (h *Handler) UploadEvidence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	file, err := h.readUpload(w, r)
	if err != nil {
		sendUploadErr(ctx, w, err)
		return
	}

	e, err := h.s.UploadEvidence(ctx, chi.URLParam(r, "id"), file, splitTags(r.FormValue("tags")))
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to upload evidence")
		return
	}

	SendJSON(ctx, w, http.StatusCreated, e)
}

// ListEvidence godoc
// @Summary      Evidence
// @Tags         evidence
// @Produce      json
// @Success      200 {array} entity.Evidence
// @Security     BearerAuth
// @Router       /evidence [get]
func (h *Handler) ListEvidence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	evidence, err := h.s.ListEvidence(ctx)
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to get evidence")
		return
	}

	SendJSON(ctx, w, http.StatusOK, evidence)
}

// EvidenceFile godoc
// @Summary      Download an evidence file
// @Tags         evidence
// @Produce      octet-stream
// @Param        id path string true "Evidence id"
// @Success      200 {file} binary
// @Failure      404 {object} ResponseError
// @Security     BearerAuth
// @Router       /evidence/{id}/file [get]
func (h *Handler) EvidenceFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, err := h.s.EvidenceFile(ctx, chi.URLParam(r, "id"))
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to get evidence file")
		return
	}

	sendFile(w, r, f.Name, f.ContentType, f.Data)
}

type UpdateEvidenceRequest struct {
	FileName string   `json:"fileName"`
	Tags     []string `json:"tags"`
}

// UpdateEvidence godoc
// @Summary      Rename or retag evidence
// @Tags         evidence
// @Accept       json
// @Produce      json
// @Param        id      path string                true "Evidence id"
// @Param        request body UpdateEvidenceRequest true "New name and tags"
// @Success      200 {object} entity.Evidence
// @Failure      400 {object} ResponseError
// @Failure      404 {object} ResponseError
// @Security     BearerAuth
// @Router       /evidence/{id} [put]
func (h *Handler) UpdateEvidence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpdateEvidenceRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect request body")
		return
	}

	e, err := h.s.UpdateEvidence(ctx, chi.URLParam(r, "id"), req.FileName, req.Tags)
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to update evidence")
		return
	}

	SendJSON(ctx, w, http.StatusOK, e)
}

// DeleteEvidence godoc
// @Summary      Delete evidence
// @Description  The condition keeps its evidence flag
// @Tags         evidence
// @Param        id path string true "Evidence id"
// @Success      204
// @Failure      404 {object} ResponseError
// @Security     BearerAuth
// @Router       /evidence/{id} [delete]
func (h *Handler) DeleteEvidence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.s.DeleteEvidence(ctx, chi.URLParam(r, "id"))
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to delete evidence")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Report godoc
// @Summary      Report
// @Tags         reports
// @Produce      json
// @Param        kind path string true "weekly, monthly or gap"
// @Success      200 {object} entity.Report
// @Failure      400 {object} ResponseError
// @Security     BearerAuth
// @Router       /reports/{kind} [get]
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := h.s.Report(ctx, entity.ReportKind(chi.URLParam(r, "kind")))
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to build report")
		return
	}

	SendJSON(ctx, w, http.StatusOK, report)
}

// ExportReport godoc
// @Summary      Export a report as CSV
// @Tags         reports
// @Produce      text/csv
// @Param        kind path string true "weekly, monthly or gap"
// @Success      200 {file} binary
// @Failure      400 {object} ResponseError
// @Security     BearerAuth
// @Router       /reports/{kind}/export [get]
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, err := h.s.ReportCSV(ctx, entity.ReportKind(chi.URLParam(r, "kind")))
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to export report")
		return
	}

	sendFile(w, r, f.Name, f.ContentType, f.Data)
}

// GetProfile godoc
// @Summary      User profile
// @Tags         settings
// @Produce      json
// @Success      200 {object} entity.UserProfile
// @Security     BearerAuth
// @Router       /profile [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := h.s.Profile(ctx)
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to get profile")
		return
	}

	SendJSON(ctx, w, http.StatusOK, p)
}

// UpdateProfile godoc
// @Summary      Update the user profile
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body entity.UserProfile true "Profile"
// @Success      200 {object} entity.UserProfile
// @Failure      400 {object} ResponseError
// @Security     BearerAuth
// @Router       /profile [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var p entity.UserProfile

	err := json.NewDecoder(r.Body).Decode(&p)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect request body")
		return
	}

	p, err = h.s.UpdateProfile(ctx, p)
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to update profile")
		return
	}

	SendJSON(ctx, w, http.StatusOK, p)
}

// GetAlerts godoc
// @Summary      Alert settings
// @Tags         settings
// @Produce      json
// @Success      200 {object} entity.AlertSettings
// @Security     BearerAuth
// @Router       /alerts [get]
func (h *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	a, err := h.s.AlertSettings(ctx)
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to get alert settings")
		return
	}

	SendJSON(ctx, w, http.StatusOK, a)
}

// UpdateAlerts godoc
// @Summary      Update alert settings
// @Description  Toggles do not change while alerts stay disabled
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body entity.AlertSettings true "Alert settings"
// @Success      200 {object} entity.AlertSettings
// @Security     BearerAuth
// @Router       /alerts [put]
func (h *Handler) UpdateAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var a entity.AlertSettings

	err := json.NewDecoder(r.Body).Decode(&a)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect request body")
		return
	}

	a, err = h.s.UpdateAlertSettings(ctx, a)
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to update alert settings")
		return
	}

	SendJSON(ctx, w, http.StatusOK, a)
}

// Suggestions godoc
// @Summary      Suggested assistant prompts
// @Tags         assistant
// @Produce      json
// @Success      200 {array} string
// @Security     BearerAuth
// @Router       /assistant/suggestions [get]
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	SendJSON(ctx, w, http.StatusOK, h.s.Suggestions(ctx))
}

// Transcript godoc
// @Summary      Assistant conversation
// @Tags         assistant
// @Produce      json
// @Param        X-Session-Id header string false "Conversation id"
// @Success      200 {object} entity.Transcript
// @Security     BearerAuth
// @Router       /assistant/messages [get]
func (h *Handler) Transcript(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	SendJSON(ctx, w, http.StatusOK, h.s.Transcript(ctx, entity.SessionFromContext(ctx)))
}

type AskRequest struct {
	Message string `json:"message"`
}

// Ask godoc
// @Summary      Ask the assistant
// @Description  Provider failures are answered with an apology, not an error
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        X-Session-Id header string     false "Conversation id"
// @Param        request      body   AskRequest true  "Message"
// @Success      200 {object} entity.ChatReply
// @Failure      400 {object} ResponseError "Empty message"
// @Failure      409 {object} ResponseError "A request is already in flight"
// @Security     BearerAuth
// @Router       /assistant/messages [post]
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AskRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect request body")
		return
	}

	reply, err := h.s.Ask(ctx, entity.SessionFromContext(ctx), req.Message)
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to ask the assistant")
		return
	}

	SendJSON(ctx, w, http.StatusOK, reply)
}

// ResetConversation godoc
// @Summary      Start the conversation over
// @Tags         assistant
// @Param        X-Session-Id header string false "Conversation id"
// @Success      204
// @Failure      409 {object} ResponseError "A request is in flight"
// @Security     BearerAuth
// @Router       /assistant/messages [delete]
func (h *Handler) ResetConversation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.s.ResetConversation(ctx, entity.SessionFromContext(ctx))
	if err != nil {
		SendServiceErr(ctx, w, err, "Failed to reset the conversation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SystemLogs godoc
// @Summary      Recent activity
// @Tags         system
// @Produce      json
// @Success      200 {array} entity.ActivityEntry
// @Security     BearerAuth
// @Router       /system/logs [get]
func (h *Handler) SystemLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	SendJSON(ctx, w, http.StatusOK, h.s.Activity(ctx))
}

var errFileTooLarge = errors.New("file too large")

// readUpload reads the "file" part of a multipart request.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (entity.UploadedFile, error) {
	if h.uploadMaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxBytes)
	}

	err := r.ParseMultipartForm(h.uploadMaxBytes)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return entity.UploadedFile{}, errors.Join(errFileTooLarge, err)
		}

		return entity.UploadedFile{}, errors.Join(entity.ErrIncorrectRequestBody, err)
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		return entity.UploadedFile{}, errors.Join(entity.ErrIncorrectRequestBody, err)
	}
	defer f.Close()

	data := make([]byte, header.Size)

	_, err = io.ReadFull(f, data)
	if err != nil {
		return entity.UploadedFile{}, errors.Join(entity.ErrIncorrectRequestBody, err)
	}

	return entity.UploadedFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func sendUploadErr(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, errFileTooLarge) {
		SendErr(ctx, w, http.StatusRequestEntityTooLarge, err, "File is too large")
		return
	}

	SendServiceErr(ctx, w, err, "Failed to read upload")
}

func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	return strings.Split(s, ",")
}
