package gatewayapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cidgate/cidgate/internal/httperr"
	"github.com/cidgate/cidgate/pkg/cidx"
	"github.com/cidgate/cidgate/pkg/provider"
	"github.com/cidgate/cidgate/pkg/route"
	"github.com/cidgate/cidgate/pkg/routestore"
)

// routeView is the JSON shape of §4.6: {provider_id, type, size, url, cid}.
type routeView struct {
	ProviderID string `json:"provider_id"`
	Type       string `json:"type"`
	Size       uint64 `json:"size"`
	URL        string `json:"url"`
	Cid        string `json:"cid"`
}

func toView(r route.Route) routeView {
	return routeView{
		ProviderID: r.ProviderID,
		Type:       string(r.ProviderType),
		Size:       r.Size,
		URL:        r.URL,
		Cid:        r.Cid.String(),
	}
}

func toViews(routes []route.Route) []routeView {
	out := make([]routeView, 0, len(routes))
	for _, r := range routes {
		out = append(out, toView(r))
	}
	return out
}

// stubView is the JSON shape for the supplemented stub listing
// endpoint: a route minus its content fields.
type stubView struct {
	ProviderID string  `json:"provider_id"`
	Type       string  `json:"type"`
	URL        string  `json:"url"`
	Size       *uint64 `json:"size,omitempty"`
}

func toStubView(s route.Stub) stubView {
	return stubView{ProviderID: s.ProviderID, Type: string(s.ProviderType), URL: s.URL, Size: s.Size}
}

// listOptionsFromQuery parses the direction/offset/limit query params per
// §4.6, defaulting to created_at desc, offset 0, limit 100. order_by is
// not read from the query, so listings always sort on created_at.
func listOptionsFromQuery(c echo.Context) (routestore.ListOptions, error) {
	opts := routestore.DefaultListOptions()

	if dir := c.QueryParam("direction"); dir != "" {
		switch dir {
		case "ASC":
			opts.Direction = routestore.Asc
		case "DESC":
			opts.Direction = routestore.Desc
		default:
			return opts, httperr.BadRequest(errInvalidDirection)
		}
	}

	if off := c.QueryParam("offset"); off != "" {
		n, err := strconv.Atoi(off)
		if err != nil || n < 0 {
			return opts, httperr.BadRequest(errInvalidOffset)
		}
		opts.Offset = n
	}

	if lim := c.QueryParam("limit"); lim != "" {
		n, err := strconv.Atoi(lim)
		if err != nil || n < 1 {
			return opts, httperr.BadRequest(errInvalidLimit)
		}
		opts.Limit = n
	}

	return opts, nil
}

// listRoutes implements GET /v1/routes.
func (s *Server) listRoutes(c echo.Context) error {
	opts, err := listOptionsFromQuery(c)
	if err != nil {
		return err
	}
	routes, err := s.ctx.Store.ListRoutes(c.Request().Context(), opts)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toViews(routes))
}

// liveRoutes probes every provider with a LiveRouteResolver capability
// (§4.4.3's HTTP-gateway provider, currently the only one) for c,
// skipping providers whose CidFilter rejects it outright. A probe
// failure is logged and does not fail the request — the DB-backed
// routes already found still stand.
func (s *Server) liveRoutes(ctx context.Context, c cidx.Cid) []route.Route {
	var live []route.Route
	for _, p := range s.ctx.Providers.All() {
		resolver, ok := provider.AsLiveRouteResolver(p)
		if !ok || !provider.IsEligible(p, c) {
			continue
		}
		routes, err := resolver.GetRoutes(ctx, c)
		if err != nil {
			log.Debugf("live route probe %s failed for %s: %s", p.ProviderID(), c.String(), err)
			continue
		}
		live = append(live, routes...)
	}
	return live
}

// routesForCid implements GET /v1/routes/{cid}, merging persisted
// routes with any synthesized by a live-resolving provider such as the
// HTTP-gateway backend.
func (s *Server) routesForCid(c echo.Context) error {
	cidParam := c.Param("cid")
	parsed, err := cidx.Parse(cidParam)
	if err != nil {
		return httperr.BadRequest(err)
	}
	ctx := c.Request().Context()
	routes, err := s.ctx.Store.RoutesForCid(ctx, parsed)
	if err != nil {
		return err
	}
	routes = append(routes, s.liveRoutes(ctx, parsed)...)
	return c.JSON(http.StatusOK, map[string]any{"routes": toViews(routes)})
}

// listStubs implements the supplemented GET /v1/routes/stubs?provider_id=...
func (s *Server) listStubs(c echo.Context) error {
	providerID := c.QueryParam("provider_id")
	if providerID == "" {
		return httperr.BadRequest(errMissingProviderID)
	}
	opts, err := listOptionsFromQuery(c)
	if err != nil {
		return err
	}
	stubs, err := s.ctx.Store.ListProviderStubs(c.Request().Context(), providerID, opts)
	if err != nil {
		return err
	}
	views := make([]stubView, 0, len(stubs))
	for _, st := range stubs {
		views = append(views, toStubView(st))
	}
	return c.JSON(http.StatusOK, views)
}

// listProviders implements the supplemented GET /v1/providers.
func (s *Server) listProviders(c echo.Context) error {
	providers := s.ctx.Providers.All()
	type providerView struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	views := make([]providerView, 0, len(providers))
	for _, p := range providers {
		views = append(views, providerView{ID: p.ProviderID(), Type: string(p.ProviderType())})
	}
	return c.JSON(http.StatusOK, views)
}
