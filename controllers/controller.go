// Package controllers exposes the storefront over HTTP: a view-resolution
// endpoint mirroring client-side navigation, plus action endpoints for the
// cart, favorites, checkout, auth and the admin back office.
package controllers

import (
	"context"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/cache"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/config"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/middleware"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/models"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/novaposhta"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/services"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/session"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/storeapi"
)

// Controller carries the gateway's collaborators. Every dependency is
// injected so each handler is testable against fakes.
type Controller struct {
	cfg      *config.App
	sessions *session.Manager
	api      *storeapi.Client
	np       *novaposhta.Client
	media    *services.MediaService // nil when cloudinary is not configured
}

func New(cfg *config.App, sessions *session.Manager, api *storeapi.Client, np *novaposhta.Client, media *services.MediaService) *Controller {
	return &Controller{
		cfg:      cfg,
		sessions: sessions,
		api:      api,
		np:       np,
		media:    media,
	}
}

// AdminResolver exposes the /auth/me fallback used by the admin guard.
func (ct *Controller) AdminResolver() middleware.AdminResolver {
	return &middleware.StoreAPIResolver{API: ct.api}
}

// apiFor binds the shared client to the session's bearer token.
func (ct *Controller) apiFor(sess *session.Session) *storeapi.Client {
	return ct.api.WithToken(sess.Token())
}

// trailers returns the trailer list, served from the short-lived cache when
// fresh.
func (ct *Controller) trailers(ctx context.Context) ([]models.Product, error) {
	if products, ok := catalog_cache.GetTrailers(); ok {
		return products, nil
	}
	products, err := ct.api.FetchTrailers(ctx)
	if err != nil {
		return nil, err
	}
	catalog_cache.SetTrailers(products)
	return products, nil
}

// components returns the component list, cached the same way.
func (ct *Controller) components(ctx context.Context) ([]models.Product, error) {
	if products, ok := catalog_cache.GetComponents(); ok {
		return products, nil
	}
	products, err := ct.api.FetchComponents(ctx)
	if err != nil {
		return nil, err
	}
	catalog_cache.SetComponents(products)
	return products, nil
}

// findProduct looks a product up by id across both lists (cart and
// favorites reference products from either).
func (ct *Controller) findProduct(ctx context.Context, productID string) (*models.Product, error) {
	trailers, err := ct.trailers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range trailers {
		if trailers[i].ID == productID {
			return &trailers[i], nil
		}
	}
	components, err := ct.components(ctx)
	if err != nil {
		return nil, err
	}
	for i := range components {
		if components[i].ID == productID {
			return &components[i], nil
		}
	}
	return nil, nil
}
