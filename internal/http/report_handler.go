package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dukasmart/partspos/internal/apperr"
	"github.com/dukasmart/partspos/internal/service"
)

type reportHandler struct {
	res       *responder
	reportSvc service.ReportService
}

func newReportHandler(res *responder, reportSvc service.ReportService) *reportHandler {
	return &reportHandler{
		res:       res,
		reportSvc: reportSvc,
	}
}

func (h *reportHandler) daily(w http.ResponseWriter, r *http.Request) {
	day := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			h.res.writeError(w, r, apperr.ValidationErr.WrapParent(err))
			return
		}
		day = parsed
	}

	report, err := h.reportSvc.DailyReport(r.Context(), day)
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	h.res.writeJSON(w, r, http.StatusOK, report)
}

func (h *reportHandler) monthly(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	month, year := now.Month(), now.Year()

	if raw := r.URL.Query().Get("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			h.res.writeError(w, r, apperr.ValidationErr)
			return
		}
		month = time.Month(m)
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			h.res.writeError(w, r, apperr.ValidationErr.WrapParent(err))
			return
		}
		year = y
	}

	report, err := h.reportSvc.MonthlyReport(r.Context(), month, year)
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	h.res.writeJSON(w, r, http.StatusOK, report)
}

func (h *reportHandler) yearly(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			h.res.writeError(w, r, apperr.ValidationErr.WrapParent(err))
			return
		}
		year = y
	}

	report, err := h.reportSvc.YearlyReport(r.Context(), year)
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	h.res.writeJSON(w, r, http.StatusOK, report)
}

func (h *reportHandler) lowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.reportSvc.LowStockReport(r.Context())
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	h.res.writeJSON(w, r, http.StatusOK, products)
}
