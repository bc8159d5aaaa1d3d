package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/claimsketch-com/claimsketchgo/internal/services/claims"
	"github.com/claimsketch-com/claimsketchgo/internal/services/report"
	"github.com/claimsketch-com/claimsketchgo/internal/sketch"
)

// getReportPDF renders and downloads the inspection report
func (rt *Router) getReportPDF(w http.ResponseWriter, req *http.Request) {
	id, ok := rt.requireInspection(w, req)
	if !ok {
		return
	}
	insp, err := rt.store.GetInspection(req.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Inspection not found")
		return
	}
	st, err := rt.store.LoadState(req.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load sketch state")
		return
	}

	plan := sketch.BuildPlan(id, st, rt.sketchParams())
	viewerURL := rt.cfg.Server.PublicURL + "/?inspection=" + id
	pdfBytes, err := report.BuildPDF(insp, plan, viewerURL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate PDF: %v", err))
		return
	}

	// Set headers for download
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"inspection_%s.pdf\"", insp.ClaimNumber))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))

	w.Write(pdfBytes)
}

// getScheduleXLSX downloads the room schedule workbook
func (rt *Router) getScheduleXLSX(w http.ResponseWriter, req *http.Request) {
	id, ok := rt.requireInspection(w, req)
	if !ok {
		return
	}
	insp, err := rt.store.GetInspection(req.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Inspection not found")
		return
	}
	st, err := rt.store.LoadState(req.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load sketch state")
		return
	}

	xlsxBytes, err := report.BuildXLSX(insp, st)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate schedule: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"schedule_%s.xlsx\"", insp.ClaimNumber))
	w.Header().Set("Content-Length", strconv.Itoa(len(xlsxBytes)))

	w.Write(xlsxBytes)
}

// exportInspection pushes the report to the claims system immediately
func (rt *Router) exportInspection(w http.ResponseWriter, req *http.Request) {
	id, ok := rt.requireInspection(w, req)
	if !ok {
		return
	}
	if rt.claims == nil {
		respondError(w, http.StatusServiceUnavailable, "Claims bridge is not configured")
		return
	}

	if err := rt.claims.ExportNow(req.Context(), id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondError(w, http.StatusNotFound, "Inspection not found")
		case errors.Is(err, claims.ErrInspectionNotReady):
			respondError(w, http.StatusConflict, "Inspection must be complete before export")
		default:
			rt.log.Errorw("Export to claims system failed", "inspection", id, "error", err)
			respondError(w, http.StatusBadGateway, "Failed to push report to claims system")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Inspection exported successfully",
	})
}
