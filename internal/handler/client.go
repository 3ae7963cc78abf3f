package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ritmodivulga/promo-engine/internal/domain"
	"github.com/ritmodivulga/promo-engine/internal/service"
	"github.com/ritmodivulga/promo-engine/pkg/response"
)

type ClientHandler struct {
	service *service.ClientService
}

func NewClientHandler(service *service.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

type ClientRevenue struct {
	ClientID string          `json:"client_id"`
	Revenue  decimal.Decimal `json:"revenue"`
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateClientRequest
	if !decode(w, r, &req) {
		return
	}

	client, err := h.service.CreateClient(r.Context(), actor(r), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Created(w, client)
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.ListClients(r.Context(), actor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, clients)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "clientId")
	if !ok {
		return
	}

	client, err := h.service.GetClient(r.Context(), actor(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "clientId")
	if !ok {
		return
	}
	var req domain.UpdateClientRequest
	if !decode(w, r, &req) {
		return
	}

	client, err := h.service.UpdateClient(r.Context(), actor(r), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "clientId")
	if !ok {
		return
	}

	if err := h.service.DeleteClient(r.Context(), actor(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	response.NoContent(w)
}

func (h *ClientHandler) Packages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "clientId")
	if !ok {
		return
	}

	packages, err := h.service.ClientPackages(r.Context(), actor(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, packages)
}

func (h *ClientHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "clientId")
	if !ok {
		return
	}

	revenue, err := h.service.ClientRevenue(r.Context(), actor(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, ClientRevenue{ClientID: id.String(), Revenue: revenue})
}
