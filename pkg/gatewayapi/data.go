package gatewayapi

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cidgate/cidgate/internal/httperr"
	"github.com/cidgate/cidgate/lib/verifyread"
	"github.com/cidgate/cidgate/pkg/cidx"
	"github.com/cidgate/cidgate/pkg/metrics"
	"github.com/cidgate/cidgate/pkg/provider"
	"github.com/cidgate/cidgate/pkg/route"
	"github.com/cidgate/cidgate/pkg/routestore"
)

// bearerToken extracts the token value from an "Authorization: Bearer
// <token>" header, returning "" if absent or malformed.
func bearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimPrefix(h, prefix)
}

func (s *Server) authenticate(c echo.Context) error {
	if err := s.ctx.Auth.Authenticate(c.Request().Context(), bearerToken(c)); err != nil {
		return httperr.Unauthorized(err)
	}
	return nil
}

// codecForContentType implements §4.6 step 2's Content-Type → codec
// translation.
func codecForContentType(contentType string) (cidx.Codec, error) {
	media := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	switch media {
	case "", "application/octet-stream", "application/x-www-form-urlencoded":
		return cidx.CodecRaw, nil
	case "application/vnd.ipld.dag-cbor":
		return cidx.CodecDagCBOR, nil
	default:
		return 0, fmt.Errorf("%w: %s", errUnsupportedMedia, media)
	}
}

// getData implements GET /v1/data/{cid}.
func (s *Server) getData(c echo.Context) error {
	ctx := c.Request().Context()
	parsed, err := cidx.Parse(c.Param("cid"))
	if err != nil {
		return httperr.BadRequest(err)
	}

	routes, err := s.ctx.Store.RoutesForCid(ctx, parsed)
	if err != nil {
		return err
	}
	routes = append(routes, s.liveRoutes(ctx, parsed)...)

	for _, r := range routes {
		p, ok := s.ctx.Providers.Get(r.ProviderID, r.ProviderType)
		if !ok {
			continue
		}
		resolver, ok := provider.AsRouteResolver(p)
		if !ok {
			continue
		}
		bytesResult, err := resolver.GetBytes(ctx, r)
		if err != nil {
			log.Debugf("route resolver %s failed for %s: %s", r.ProviderID, parsed.String(), err)
			continue
		}
		defer bytesResult.Close()
		c.Response().Header().Set(echo.HeaderContentType, "application/octet-stream")
		c.Response().WriteHeader(http.StatusOK)

		src := io.Reader(bytesResult.ReadCloser)
		if h, herr := parsed.NewHasher(); herr == nil {
			if digest, derr := parsed.Digest(); derr == nil {
				src = verifyread.New(bytesResult.ReadCloser, h, digest)
			}
		}

		if _, err := io.Copy(c.Response(), src); err != nil {
			log.Warnf("streaming %s from provider %s: %s", parsed.String(), r.ProviderID, err)
			return err
		}
		return nil
	}

	return httperr.NotFound(errNoResolvableRoute)
}

type postDataResponse struct {
	Cid      string `json:"cid"`
	Size     uint64 `json:"size"`
	Location string `json:"location"`
}

// postData implements POST /v1/data.
func (s *Server) postData(c echo.Context) error {
	ctx := c.Request().Context()

	if err := s.authenticate(c); err != nil {
		return err
	}

	codec, err := codecForContentType(c.Request().Header.Get(echo.HeaderContentType))
	if err != nil {
		return httperr.Unprocessable(err)
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return httperr.BadRequest(err)
	}

	c2 := cidx.Blake3Raw(codec, body)

	writers := s.ctx.Providers.EligibleWriters(c2)
	if len(writers) == 0 {
		return httperr.Unavailable(errNoEligibleWriter)
	}

	existing, err := s.ctx.Store.RoutesForCid(ctx, c2)
	if err != nil {
		return err
	}
	already := make(map[string]bool, len(existing))
	for _, r := range existing {
		already[r.ProviderID] = true
	}

	for _, p := range s.ctx.Providers.All() {
		w, ok := provider.AsBlobWriter(p)
		if !ok || !provider.IsEligible(p, c2) {
			continue
		}
		if already[p.ProviderID()] {
			continue
		}

		url, err := w.PutBlob(ctx, c2, uint64(len(body)), bytes.NewReader(body))
		if err != nil {
			log.Warnf("provider %s failed to store %s: %s", p.ProviderID(), c2.String(), err)
			continue
		}
		if url == "" {
			url = c2.String()
		}

		r, err := route.NewBuilder(p.ProviderID(), p.ProviderType()).
			WithCid(c2).
			WithSize(uint64(len(body))).
			WithURL(url).
			WithMulticodec(codec).
			Build(s.ctx.Signer)
		if err != nil {
			return err
		}
		if err := s.ctx.Store.InsertRoute(ctx, r); err != nil && err != routestore.ErrAlreadyIndexed {
			return err
		}
		metrics.RecordIngest(ctx, p.ProviderID(), int64(len(body)))
	}

	return c.JSON(http.StatusOK, postDataResponse{
		Cid:      c2.String(),
		Size:     uint64(len(body)),
		Location: "/v1/data/" + c2.String(),
	})
}
