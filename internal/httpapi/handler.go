// Package httpapi exposes the catalog service over HTTP. It owns request
// parsing, error-kind to status-code mapping, and response serialization;
// all search, matching, and reservation semantics live in the catalog
// service.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nestfit/nestfit/internal/catalog"
	"github.com/nestfit/nestfit/pkg/types"
)

// Handler serves the catalog HTTP API.
type Handler struct {
	service  *catalog.Service
	logger   *slog.Logger
	registry *prometheus.Registry
}

// NewHandler constructs a handler over the service. A nil logger discards
// request logs; a nil registry disables the /metrics endpoint.
func NewHandler(service *catalog.Service, logger *slog.Logger, registry *prometheus.Registry) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{service: service, logger: logger, registry: registry}
}

// Routes returns the API routing table.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/furniture/low_priced", h.handleLowPricedFurniture)
	mux.HandleFunc("GET /api/furniture/search", h.handleSearchFurniture)
	mux.HandleFunc("GET /api/furniture/search/condition", h.handleFurnitureConditions)
	mux.HandleFunc("GET /api/furniture/{id}", h.handleGetFurniture)
	mux.HandleFunc("POST /api/furniture/buy/{id}", h.handleBuyFurniture)
	mux.HandleFunc("POST /api/furniture", h.handleImportFurniture)

	mux.HandleFunc("GET /api/rental/low_priced", h.handleLowPricedRentals)
	mux.HandleFunc("GET /api/rental/search", h.handleSearchRentals)
	mux.HandleFunc("POST /api/rental", h.handleImportRental)
	mux.HandleFunc("GET /api/rental/search/condition", h.handleRentalConditions)
	mux.HandleFunc("POST /api/rental/area", h.handleSearchRentalsInArea)
	mux.HandleFunc("GET /api/rental/recommended/{furnitureID}", h.handleRecommendRentals)
	mux.HandleFunc("POST /api/rental/req_doc/{id}", h.handleRequestRentalDocs)
	mux.HandleFunc("GET /api/rental/{id}", h.handleGetRental)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if h.registry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))
	}

	return h.logRequests(mux)
}

func (h *Handler) handleLowPricedFurniture(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.LowPricedFurniture(r.Context())
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"furniture": emptyIfNilFurniture(items)})
}

func (h *Handler) handleSearchFurniture(w http.ResponseWriter, r *http.Request) {
	cursor, ok := parseCursor(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	filter := catalog.FurnitureFilter{
		PriceRangeID:  q.Get("priceRangeId"),
		HeightRangeID: q.Get("heightRangeId"),
		WidthRangeID:  q.Get("widthRangeId"),
		DepthRangeID:  q.Get("depthRangeId"),
		Kind:          q.Get("kind"),
		Color:         q.Get("color"),
		Features:      q.Get("features"),
	}
	result, err := h.service.SearchFurniture(r.Context(), filter, cursor)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	result.Furniture = emptyIfNilFurniture(result.Furniture)
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleFurnitureConditions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.service.FurnitureConditions())
}

func (h *Handler) handleGetFurniture(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	item, err := h.service.GetFurniture(r.Context(), id)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) handleBuyFurniture(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.ReserveFurniture(r.Context(), id); err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) handleImportFurniture(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("furniture")
	if err != nil {
		writeError(w, http.StatusBadRequest, "furniture file missing")
		return
	}
	defer file.Close()
	n, err := h.service.ImportFurnitureCSV(r.Context(), file)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "imported": n})
}

func (h *Handler) handleImportRental(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("rental")
	if err != nil {
		writeError(w, http.StatusBadRequest, "rental file missing")
		return
	}
	defer file.Close()
	n, err := h.service.ImportRentalCSV(r.Context(), file)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "imported": n})
}

func (h *Handler) handleLowPricedRentals(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.service.LowPricedRentals(r.Context())
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rentals": emptyIfNilRentals(rentals)})
}

func (h *Handler) handleSearchRentals(w http.ResponseWriter, r *http.Request) {
	cursor, ok := parseCursor(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	filter := catalog.RentalFilter{
		DoorHeightRangeID: q.Get("doorHeightRangeId"),
		DoorWidthRangeID:  q.Get("doorWidthRangeId"),
		RentRangeID:       q.Get("rentRangeId"),
		Features:          q.Get("features"),
	}
	result, err := h.service.SearchRentals(r.Context(), filter, cursor)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	result.Rentals = emptyIfNilRentals(result.Rentals)
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleRentalConditions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.service.RentalConditions())
}

// areaRequest is the body of an area search: the polygon drawn by the user.
type areaRequest struct {
	Coordinates []types.Coordinate `json:"coordinates"`
}

func (h *Handler) handleSearchRentalsInArea(w http.ResponseWriter, r *http.Request) {
	var req areaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	result, err := h.service.SearchRentalsInArea(r.Context(), req.Coordinates)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	result.Rentals = emptyIfNilRentals(result.Rentals)
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleRecommendRentals(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "furnitureID")
	if !ok {
		return
	}
	rentals, err := h.service.RecommendRentals(r.Context(), id, recommendLimit)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rentals": emptyIfNilRentals(rentals)})
}

func (h *Handler) handleRequestRentalDocs(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	ref, err := h.service.RequestRentalDocs(r.Context(), id)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "reference": ref})
}

func (h *Handler) handleGetRental(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	rental, err := h.service.GetRental(r.Context(), id)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// recommendLimit caps the recommendation listing.
const recommendLimit = 20

func parseID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// parseCursor requires well-formed page and perPage query parameters; the
// service takes a validated cursor only.
func parseCursor(w http.ResponseWriter, r *http.Request) (catalog.PageCursor, bool) {
	q := r.URL.Query()
	page, err := strconv.ParseInt(q.Get("page"), 10, 64)
	if err != nil || page < 0 {
		writeError(w, http.StatusBadRequest, "invalid page parameter")
		return catalog.PageCursor{}, false
	}
	perPage, err := strconv.ParseInt(q.Get("perPage"), 10, 64)
	if err != nil || perPage <= 0 {
		writeError(w, http.StatusBadRequest, "invalid perPage parameter")
		return catalog.PageCursor{}, false
	}
	// A window whose offset cannot be represented is no more valid than a
	// negative one.
	if page > math.MaxInt64/perPage {
		writeError(w, http.StatusBadRequest, "invalid page parameter")
		return catalog.PageCursor{}, false
	}
	return catalog.PageCursor{Page: page, PerPage: perPage}, true
}

func emptyIfNilFurniture(items []types.Furniture) []types.Furniture {
	if items == nil {
		return []types.Furniture{}
	}
	return items
}

func emptyIfNilRentals(rentals []types.Rental) []types.Rental {
	if rentals == nil {
		return []types.Rental{}
	}
	return rentals
}
