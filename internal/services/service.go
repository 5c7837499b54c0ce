package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/nananom-farms/backend/internal/platform/httpx"
)

// Catalog orchestrates catalog reads and writes, keeping the redis cache
// coherent with the repository.
type Catalog struct {
	repo   Repository
	cache  *Cache
	logger *slog.Logger
}

// NewCatalog constructs a Catalog.
func NewCatalog(repo Repository, cache *Cache, logger *slog.Logger) *Catalog {
	return &Catalog{repo: repo, cache: cache, logger: logger}
}

// List returns all services, served from cache when possible. Cache
// failures fall back to the repository rather than failing the request.
func (c *Catalog) List(ctx context.Context) ([]Service, error) {
	key, err := c.cache.ListKey(ctx)
	if err != nil {
		c.logNonFatal("catalog cache key", err)
		return c.repo.List(ctx)
	}
	var out []Service
	err = c.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		return c.repo.List(ctx)
	})
	if err != nil {
		c.logNonFatal("catalog cache fetch", err)
		return c.repo.List(ctx)
	}
	return out, nil
}

// Get fetches a single service by UUID.
func (c *Catalog) Get(ctx context.Context, id string) (*Service, error) {
	return c.repo.Get(ctx, id)
}

// CreateInput carries the fields needed to publish a service.
type CreateInput struct {
	ServiceName string
	Description string
	IsActive    bool
}

// Create publishes a new service and invalidates the cached listing.
func (c *Catalog) Create(ctx context.Context, in CreateInput) (*Service, error) {
	if strings.TrimSpace(in.ServiceName) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, httpx.ErrValidation
	}
	svc := &Service{
		ID:          uuid.NewString(),
		ServiceName: strings.TrimSpace(in.ServiceName),
		Description: strings.TrimSpace(in.Description),
		IsActive:    in.IsActive,
	}
	if err := c.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	c.bump(ctx)
	return svc, nil
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	ServiceName *string
	Description *string
	IsActive    *bool
}

// Update applies the provided fields to an existing service.
func (c *Catalog) Update(ctx context.Context, id string, in UpdateInput) (*Service, error) {
	svc, err := c.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.ServiceName != nil && strings.TrimSpace(*in.ServiceName) != "" {
		svc.ServiceName = strings.TrimSpace(*in.ServiceName)
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
		svc.Description = strings.TrimSpace(*in.Description)
	}
	if in.IsActive != nil {
		svc.IsActive = *in.IsActive
	}
	if err := c.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	c.bump(ctx)
	return svc, nil
}

// Delete removes a service.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return err
	}
	c.bump(ctx)
	return nil
}

func (c *Catalog) bump(ctx context.Context) {
	if err := c.cache.Bump(ctx); err != nil {
		c.logNonFatal("catalog cache bump", err)
	}
}

func (c *Catalog) logNonFatal(msg string, err error) {
	if c.logger != nil {
		c.logger.Warn(msg, slog.Any("error", err))
	}
}
