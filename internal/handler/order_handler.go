package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"orderdesk/internal/invoice"
	"orderdesk/internal/model"
	"orderdesk/internal/service"
	"orderdesk/internal/view"

	"github.com/rs/zerolog"
)

const ordersPath = "/api/orders/"

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service   service.OrderService
	formatter invoice.Formatter
	archiver  invoice.Archiver
	logger    zerolog.Logger
}

// NewOrderHandler creates a new order handler. archiver may be nil, in which case
// invoices are rendered but not archived.
func NewOrderHandler(
	service service.OrderService,
	formatter invoice.Formatter,
	archiver invoice.Archiver,
	logger zerolog.Logger,
) *OrderHandler {
	return &OrderHandler{
		service:   service,
		formatter: formatter,
		archiver:  archiver,
		logger:    logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var draft model.OrderDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), &draft)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// List handles GET /api/orders requests. With ?view= the response holds that
// view's projection; without it every order is returned newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var (
		selected model.View
		filtered bool
	)
	if raw := r.URL.Query().Get("view"); raw != "" {
		v, ok := model.ParseView(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "unknown view: "+raw, h.logger)
			return
		}
		selected, filtered = v, true
	}

	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	resp := model.OrderListResponse{Counts: view.Counts(orders)}
	if filtered {
		resp.View = selected
		resp.Orders = view.Project(orders, selected)
	} else {
		resp.Orders = view.Recent(orders)
	}

	writeJSON(w, http.StatusOK, resp)
}

// UpdateStatus handles PUT /api/orders/{id} requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	id, ok := orderID(r.URL.Path, "")
	if !ok {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "order ID is required", h.logger)
		return
	}

	var req model.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	requested, ok := model.ParseStatus(req.Status)
	if !ok {
		writeDomainError(w, model.ErrInvalidTransition.WithMessage("unknown status: "+req.Status), h.logger)
		return
	}
	if requested.RequiresConfirmation() && !req.Confirmed {
		writeDomainError(w, model.ErrConfirmationRequired, h.logger)
		return
	}

	order, err := h.service.ApplyTransition(r.Context(), id, requested)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Invoice handles GET /api/orders/{id}/invoice requests with a printable HTML page.
// The page is archived when an archiver is configured; archive failures are logged only.
func (h *OrderHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	id, ok := orderID(r.URL.Path, "/invoice")
	if !ok {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "order ID is required", h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	page, err := h.formatter.Format(*order).HTML()
	if err != nil {
		h.logger.Error().Err(err).Str("order_id", id).Msg("failed to render invoice")
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to render invoice", h.logger)
		return
	}

	h.archive(r.Context(), *order, page)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}

func (h *OrderHandler) archive(ctx context.Context, order model.Order, page []byte) {
	if h.archiver == nil {
		return
	}
	if err := h.archiver.Archive(ctx, invoice.ArchiveKey(order), page); err != nil {
		h.logger.Warn().Err(err).Str("order_id", order.ID).Msg("failed to archive invoice")
	}
}

// orderID extracts {id} from /api/orders/{id}<suffix>.
func orderID(path, suffix string) (string, bool) {
	if !strings.HasPrefix(path, ordersPath) || !strings.HasSuffix(path, suffix) {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(path, ordersPath), suffix)
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}
