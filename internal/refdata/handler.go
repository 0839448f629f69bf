package refdata

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "lankaconnect/pkg/domain-errors"
	"lankaconnect/pkg/platform/httputil"
)

// EventCategory is one entry of the event-category catalog.
type EventCategory struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// BadgeDefinition is one entry of the badge catalog.
type BadgeDefinition struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	DurationDays int    `json:"duration_days,omitempty"`
}

// Source loads the reference data from its system of record on cache misses.
type Source interface {
	EventCategories(ctx context.Context) ([]EventCategory, error)
	BadgeCatalog(ctx context.Context) ([]BadgeDefinition, error)
}

// StaticSource serves the built-in catalogs. The admin surface that edits
// these lives outside this service; it invalidates the cache after writes.
type StaticSource struct{}

func (StaticSource) EventCategories(context.Context) ([]EventCategory, error) {
	return []EventCategory{
		{Slug: "cultural", Name: "Cultural"},
		{Slug: "religious", Name: "Religious"},
		{Slug: "community", Name: "Community"},
		{Slug: "sports", Name: "Sports"},
		{Slug: "educational", Name: "Educational"},
		{Slug: "networking", Name: "Networking"},
	}, nil
}

func (StaticSource) BadgeCatalog(context.Context) ([]BadgeDefinition, error) {
	return []BadgeDefinition{
		{Slug: "featured", Name: "Featured", DurationDays: 30},
		{Slug: "new", Name: "New", DurationDays: 14},
		{Slug: "popular", Name: "Popular", DurationDays: 7},
		{Slug: "verified-organizer", Name: "Verified Organizer"},
	}, nil
}

// Handler serves reference-data lookups read-through the cache.
type Handler struct {
	cache  *Cache
	source Source
	logger *slog.Logger
}

func NewHandler(cache *Cache, source Source, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{cache: cache, source: source, logger: logger}
}

// Register mounts reference-data endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/refdata", func(r chi.Router) {
		r.Get("/event-categories", h.HandleEventCategories)
		r.Get("/badge-catalog", h.HandleBadgeCatalog)
		r.Post("/{category}/invalidate", h.HandleInvalidate)
	})
}

func (h *Handler) HandleEventCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var categories []EventCategory
	err := h.cache.GetJSON(ctx, CategoryEventCategories, "all", &categories)
	if errors.Is(err, ErrMiss) {
		categories, err = h.source.EventCategories(ctx)
		if err == nil {
			h.fill(ctx, CategoryEventCategories, categories)
		}
	}
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load event categories"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, categories)
}

func (h *Handler) HandleBadgeCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var catalog []BadgeDefinition
	err := h.cache.GetJSON(ctx, CategoryBadgeCatalog, "all", &catalog)
	if errors.Is(err, ErrMiss) {
		catalog, err = h.source.BadgeCatalog(ctx)
		if err == nil {
			h.fill(ctx, CategoryBadgeCatalog, catalog)
		}
	}
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load badge catalog"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, catalog)
}

func (h *Handler) HandleInvalidate(w http.ResponseWriter, r *http.Request) {
	category := Category(chi.URLParam(r, "category"))
	switch category {
	case CategoryEventCategories, CategoryBadgeCatalog:
	default:
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeInvalidInput, "unknown category %q", category))
		return
	}
	if err := h.cache.Invalidate(r.Context(), category); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to invalidate cache"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fill is best effort; a failed cache write only costs the next reader a miss.
func (h *Handler) fill(ctx context.Context, category Category, value any) {
	if err := h.cache.SetJSON(ctx, category, "all", value); err != nil {
		h.logger.WarnContext(ctx, "refdata cache fill failed",
			"category", string(category), "error", err.Error())
	}
}
