package api

import (
	"net/http"

	"github.com/erazemk/imeiwatch/internal/service"
)

// ReportsHandler handles the public and admin report endpoints.
type ReportsHandler struct {
	Reports *service.Service
}

type submitReportRequest struct {
	IMEI         string `json:"imei"`
	Status       string `json:"status"`
	IsPublic     any    `json:"is_public"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Color        string `json:"color"`
	Description  string `json:"description"`
	LostDate     string `json:"lost_date"`
	Location     string `json:"location"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	PoliceReport string `json:"police_report"`
}

type submitReportResponse struct {
	OK  bool   `json:"ok"`
	Ref string `json:"ref"`
}

type updateReportRequest struct {
	Status   string `json:"status"`
	IsPublic any    `json:"is_public"`
}

// Submit handles POST /api/report.
func (h *ReportsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitReportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ref, err := h.Reports.Submit(r.Context(), service.SubmitInput{
		IMEI:         req.IMEI,
		Status:       req.Status,
		IsPublic:     req.IsPublic,
		Brand:        req.Brand,
		Model:        req.Model,
		Color:        req.Color,
		Description:  req.Description,
		LostDate:     req.LostDate,
		Location:     req.Location,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		PoliceReport: req.PoliceReport,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, submitReportResponse{OK: true, Ref: ref})
}

// Check handles GET /api/check?imei=.
func (h *ReportsHandler) Check(w http.ResponseWriter, r *http.Request) {
	result, err := h.Reports.Check(r.Context(), r.URL.Query().Get("imei"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, result)
}

// List handles GET /api/reports (admin).
func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Reports.List(r.Context(), SessionToken(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, reports)
}

// Update handles PATCH /api/reports/{ref} (admin).
func (h *ReportsHandler) Update(w http.ResponseWriter, r *http.Request) {
	token := SessionToken(r.Context())

	// Unauthenticated callers get 401 whatever the body holds.
	if err := h.Reports.RequireAdmin(r.Context(), token); err != nil {
		writeServiceError(w, err)
		return
	}

	var req updateReportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.Reports.Update(r.Context(), token, r.PathValue("ref"), service.UpdateInput{
		Status:   req.Status,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	jsonOK(w, http.StatusOK)
}
