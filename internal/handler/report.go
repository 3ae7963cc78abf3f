package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ritmodivulga/promo-engine/internal/domain"
	"github.com/ritmodivulga/promo-engine/internal/service"
	"github.com/ritmodivulga/promo-engine/pkg/response"
)

const dateLayout = "2006-01-02"

type ReportHandler struct {
	reports *service.ReportService
	loc     *time.Location
}

// NewReportHandler reads date-only query values in loc.
func NewReportHandler(reports *service.ReportService, loc *time.Location) *ReportHandler {
	return &ReportHandler{reports: reports, loc: loc}
}

// Financial serves the financial report. Query: period, from, to (dates or
// RFC 3339 timestamps) and client_id, repeatable or comma separated.
func (h *ReportHandler) Financial(w http.ResponseWriter, r *http.Request) {
	filter, err := h.reportFilter(r.URL.Query())
	if err != nil {
		response.BadRequest(w, "Invalid report filter", err)
		return
	}

	report, err := h.reports.FinancialReport(r.Context(), actor(r), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, report)
}

func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.reports.DashboardMetrics(r.Context(), actor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, metrics)
}

func (h *ReportHandler) reportFilter(q url.Values) (domain.ReportFilter, error) {
	filter := domain.ReportFilter{Period: q.Get("period")}

	if raw := q.Get("from"); raw != "" {
		from, err := h.parseTime(raw, false)
		if err != nil {
			return filter, fmt.Errorf("from: %w", err)
		}
		filter.From = &from
	}
	if raw := q.Get("to"); raw != "" {
		to, err := h.parseTime(raw, true)
		if err != nil {
			return filter, fmt.Errorf("to: %w", err)
		}
		filter.To = &to
	}

	for _, value := range q["client_id"] {
		for _, raw := range strings.Split(value, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			id, err := uuid.Parse(raw)
			if err != nil {
				return filter, fmt.Errorf("client_id: %w", err)
			}
			filter.ClientIDs = append(filter.ClientIDs, id)
		}
	}
	return filter, nil
}

// parseTime accepts a date or an RFC 3339 timestamp. A bare date used as
// the end of a range covers the whole day.
func (h *ReportHandler) parseTime(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, raw, h.loc); err == nil {
		if endOfDay {
			return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
		}
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
