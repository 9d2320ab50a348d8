package handlers

import (
	"net/http"
	"strconv"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// BroadcastHandler serves HTTP endpoints for broadcast resources.
type BroadcastHandler struct {
	logger   logx.Logger
	dispatch dispatchUsecase
	status   statusUsecase
	assign   assignUsecase
}

// NewBroadcastHandler wires the broadcast usecases into HTTP handlers.
func NewBroadcastHandler(
	logger logx.Logger,
	dispatch dispatchUsecase,
	status statusUsecase,
	assign assignUsecase,
) *BroadcastHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &BroadcastHandler{
		logger:   logger,
		dispatch: dispatch,
		status:   status,
		assign:   assign,
	}
}

// requireCaller reads the gateway identity header; a missing one yields 401.
func (h *BroadcastHandler) requireCaller(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := header(r, name)
	if id == "" {
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing "+name+" header")
		return "", false
	}
	return id, true
}

// Create handles POST /broadcasts.
func (h *BroadcastHandler) Create(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.requireCaller(w, r, HeaderCustomerID)
	if !ok {
		return
	}
	var req createBroadcastRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	b, err := h.dispatch.Create(r.Context(), req.toInput(customerID))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, modelToResponse(b))
}

// Get handles GET /broadcasts/{id}.
func (h *BroadcastHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	b, err := h.dispatch.Get(r.Context(), id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, modelToResponse(b))
}

// ListPending handles GET /retailers/me/broadcasts/pending.
func (h *BroadcastHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	retailerID, ok := h.requireCaller(w, r, HeaderRetailerID)
	if !ok {
		return
	}
	list, err := h.dispatch.ListPending(r.Context(), retailerID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, modelsToResponse(list))
}

// ListForCustomer handles GET /customers/me/broadcasts.
func (h *BroadcastHandler) ListForCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.requireCaller(w, r, HeaderCustomerID)
	if !ok {
		return
	}
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = v
	}
	list, err := h.dispatch.ListForCustomer(r.Context(), customerID, limit)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, modelsToResponse(list))
}

// Accept handles POST /broadcasts/{id}/accept.
func (h *BroadcastHandler) Accept(w http.ResponseWriter, r *http.Request) {
	retailerID, ok := h.requireCaller(w, r, HeaderRetailerID)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	res, err := h.dispatch.Accept(r.Context(), id, retailerID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, acceptToResponse(res))
}

// Reject handles POST /broadcasts/{id}/reject.
func (h *BroadcastHandler) Reject(w http.ResponseWriter, r *http.Request) {
	retailerID, ok := h.requireCaller(w, r, HeaderRetailerID)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	b, err := h.dispatch.Reject(r.Context(), id, retailerID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, modelToResponse(b))
}

// Cancel handles POST /broadcasts/{id}/cancel.
func (h *BroadcastHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.requireCaller(w, r, HeaderCustomerID)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	b, err := h.status.Cancel(r.Context(), id, customerID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, modelToResponse(b))
}

// Advance handles POST /broadcasts/{id}/status.
// The caller is the retailer or, failing that, the delivery agent.
func (h *BroadcastHandler) Advance(w http.ResponseWriter, r *http.Request) {
	var actor domain.Actor
	switch {
	case header(r, HeaderRetailerID) != "":
		actor = domain.Actor{Kind: domain.ActorRetailer, ID: header(r, HeaderRetailerID)}
	case header(r, HeaderAgentID) != "":
		actor = domain.Actor{Kind: domain.ActorAgent, ID: header(r, HeaderAgentID)}
	default:
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing "+HeaderRetailerID+" or "+HeaderAgentID+" header")
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req advanceStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.Status == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "status is required")
		return
	}

	b, err := h.status.Advance(r.Context(), id, actor, domain.Status(req.Status))
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, modelToResponse(b))
}

// Assign handles POST /broadcasts/{id}/assign.
func (h *BroadcastHandler) Assign(w http.ResponseWriter, r *http.Request) {
	retailerID, ok := h.requireCaller(w, r, HeaderRetailerID)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	res, err := h.assign.AssignDelivery(r.Context(), id, retailerID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, acceptToResponse(res))
}
