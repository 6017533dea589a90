package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"specanalyzer/internal/service"
)

// TemplateHandler handles template endpoints
type TemplateHandler struct {
	templateSvc *service.TemplateService
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templateSvc *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateSvc: templateSvc}
}

// List handles GET /v1/templates
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templateSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"templates": templates})
}

// Get handles GET /v1/templates/{templateName}
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	templateName := mux.Vars(r)["templateName"]

	t, err := h.templateSvc.Get(r.Context(), templateName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if t == nil {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}

	writeJSON(w, http.StatusOK, t)
}
