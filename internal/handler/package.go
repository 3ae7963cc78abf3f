package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ritmodivulga/promo-engine/internal/domain"
	"github.com/ritmodivulga/promo-engine/internal/service"
	"github.com/ritmodivulga/promo-engine/pkg/response"
)

// PackageHandler serves packages, posts and their payment checklist.
type PackageHandler struct {
	packages *service.PackageService
	payments *service.PaymentService
}

func NewPackageHandler(packages *service.PackageService, payments *service.PaymentService) *PackageHandler {
	return &PackageHandler{packages: packages, payments: payments}
}

func (h *PackageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePackageRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.packages.CreatePackage(r.Context(), actor(r), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Created(w, res)
}

// Quote previews the financial breakdown of a contract without storing it.
func (h *PackageHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req domain.QuoteRequest
	if !decode(w, r, &req) {
		return
	}

	quote, err := h.packages.Quote(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, quote)
}

// List accepts the optional query filters type, status and client_id.
func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.PackageFilter{
		Type:   domain.PackageType(q.Get("type")),
		Status: domain.PackageStatus(q.Get("status")),
	}
	if raw := q.Get("client_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid client_id", err)
			return
		}
		filter.ClientID = uuid.NullUUID{UUID: id, Valid: true}
	}

	packages, err := h.packages.ListPackages(r.Context(), actor(r), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, packages)
}

func (h *PackageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "packageId")
	if !ok {
		return
	}

	pkg, err := h.packages.GetPackage(r.Context(), actor(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, pkg)
}

func (h *PackageHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "packageId")
	if !ok {
		return
	}

	pkg, err := h.packages.CancelPackage(r.Context(), actor(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, pkg)
}

func (h *PackageHandler) Videos(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "packageId")
	if !ok {
		return
	}

	videos, err := h.packages.ListVideos(r.Context(), actor(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, videos)
}

func (h *PackageHandler) Payments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "packageId")
	if !ok {
		return
	}

	summary, err := h.payments.PaymentSummary(r.Context(), actor(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, summary)
}

func (h *PackageHandler) SetPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "packageId")
	if !ok {
		return
	}
	var req domain.UpdatePaymentRequest
	if !decode(w, r, &req) {
		return
	}

	pkg, err := h.payments.SetPaymentFlag(r.Context(), actor(r), id, req.Field, req.Paid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, service.Summarize(pkg))
}
