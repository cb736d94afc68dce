// Package store abre el Repository según el driver configurado.
package store

import (
	"context"
	"fmt"

	"github.com/herothreads/api/internal/store/core"
	"github.com/herothreads/api/internal/store/memory"
	mongostore "github.com/herothreads/api/internal/store/mongo"
)

// Config selecciona el backend de persistencia.
type Config struct {
	// Driver: "mongo" (default) | "memory".
	Driver string
	Mongo  struct {
		URI      string
		Database string
	}
}

// Open conecta el Repository del driver pedido.
func Open(ctx context.Context, cfg Config) (core.Repository, error) {
	switch cfg.Driver {
	case "", "mongo":
		uri := cfg.Mongo.URI
		if uri == "" {
			uri = "mongodb://localhost:27017"
		}
		db := cfg.Mongo.Database
		if db == "" {
			db = "hero-threads"
		}
		return mongostore.New(ctx, uri, db)
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
