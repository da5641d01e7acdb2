// Package status serves a small read-only HTTP API for operators: liveness,
// live casts and catalog previews.
package status

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Sk3pz/angler-bot-v2/internal/cast"
	"github.com/Sk3pz/angler-bot-v2/internal/fish"
	"github.com/Sk3pz/angler-bot-v2/internal/player"
)

// CastLister lists live casts.
type CastLister interface {
	Snapshots() []cast.Snapshot
}

// Anglers lists the players holding a cast slot. That includes casts still
// being set up, which have no snapshot yet.
type Anglers interface {
	Players() []player.ID
}

// Catalog serves the parsed species registry.
type Catalog interface {
	Registry(ctx context.Context) (*fish.Registry, error)
}

type Handler struct {
	casts   CastLister
	anglers Anglers
	catalog Catalog
	gen     fish.GeneratorConfig
	log     *zap.Logger
	now     func() time.Time
}

func NewHandler(casts CastLister, anglers Anglers, catalog Catalog, gen fish.GeneratorConfig, log *zap.Logger) *Handler {
	return &Handler{casts: casts, anglers: anglers, catalog: catalog, gen: gen, log: log, now: time.Now}
}

// New builds an echo instance with the middleware and routes installed.
func New(h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(RequestIDMiddleware())
	e.Use(LoggingMiddleware(h.log))
	h.Register(e)
	return e
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/casts", h.ListCasts)
	e.GET("/v1/pond", h.Pond)
	e.GET("/v1/species/:name", h.Species)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) ListCasts(c echo.Context) error {
	casts := h.casts.Snapshots()
	players := h.anglers.Players()
	anglers := make([]string, len(players))
	for i, id := range players {
		anglers[i] = id.String()
	}
	return c.JSON(http.StatusOK, CastsResponse{Count: len(casts), Casts: casts, Anglers: anglers, AsOf: h.now().UTC()})
}

// Pond previews the catalog filter: which species can bite at ?depth= with
// rarity ceiling ?rarity= (Mythical when omitted).
func (h *Handler) Pond(c echo.Context) error {
	depth, err := strconv.ParseFloat(c.QueryParam("depth"), 64)
	if err != nil || depth < 0 || depth > fish.MaxDepth {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "depth must be a number of feet between 0 and 10000"})
	}

	ceiling := fish.RarityMythical
	if raw := c.QueryParam("rarity"); raw != "" {
		if ceiling, err = fish.ParseRarity(raw); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
	}

	reg, err := h.registry(c)
	if err != nil {
		return err
	}

	gen := fish.NewGenerator(reg.All(), h.gen, nil)
	eligible := gen.Eligible(depth, ceiling)
	weights := gen.SpeciesWeights(eligible, nil)
	var total float64
	for _, w := range weights {
		total += w
	}

	candidates := make([]PondCandidate, len(eligible))
	for i, sp := range eligible {
		candidates[i] = PondCandidate{
			Name:        sp.Name,
			Rarity:      sp.Rarity.String(),
			Category:    sp.Category.String(),
			Probability: weights[i] / total,
		}
	}
	return c.JSON(http.StatusOK, PondResponse{
		DepthFt: depth,
		Band:    fish.BandFor(depth).String(),
		Ceiling: ceiling.String(),
		Species: candidates,
		Meta:    meta(c),
	})
}

func (h *Handler) Species(c echo.Context) error {
	reg, err := h.registry(c)
	if err != nil {
		return err
	}
	name := c.Param("name")
	sp, ok := reg.Get(name)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:       "unknown species " + strconv.Quote(name),
			Suggestions: reg.Suggest(name, 3),
		})
	}
	return c.JSON(http.StatusOK, SpeciesResponse{
		Name:          sp.Name,
		Rarity:        sp.Rarity.String(),
		Category:      sp.Category.String(),
		SizeIn:        attrRange(sp.Size),
		WeightLb:      attrRange(sp.Weight),
		DepthFt:       Range{Min: sp.Depth.Min, Max: sp.Depth.Max},
		BaseValue:     sp.BaseValue.String(),
		ExpectedValue: h.gen.Formula.Value(sp, sp.Size.Mean(), sp.Weight.Mean()).String(),
		Meta:          meta(c),
	})
}

func (h *Handler) registry(c echo.Context) (*fish.Registry, error) {
	reg, err := h.catalog.Registry(c.Request().Context())
	if err != nil {
		requestID, _ := c.Get("request_id").(string)
		h.log.Error("loading species catalog", zap.String("request_id", requestID), zap.Error(err))
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, ErrorResponse{Error: "catalog unavailable"})
	}
	return reg, nil
}

func attrRange(a fish.Attribute) Range {
	avg, mean := a.Average, a.Mean()
	return Range{Min: a.Min, Max: a.Max, Average: &avg, Mean: &mean}
}

func meta(c echo.Context) MetaResp {
	requestID, _ := c.Get("request_id").(string)
	return MetaResp{RequestID: requestID}
}
