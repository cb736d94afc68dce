// seed carga el catálogo de productos por defecto. Idempotente: los
// productos que ya existen (por nombre) se saltan.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/herothreads/api/internal/config"
	"github.com/herothreads/api/internal/observability/logger"
	"github.com/herothreads/api/internal/store"
	"github.com/herothreads/api/internal/store/core"
)

var defaultProducts = []core.Product{
	{
		Name:        "Camiseta Spider-Man Clásico",
		Description: "Diseño icónico del trepamuros, perfecto para cualquier fan.",
		Price:       17.0,
		Image:       "https://4tsix0yujj.ufs.sh/f/2vMRHqOYUHc08gWYphn7xHOTFQ3jrBEd0VGzfS9yKokWuAem",
	},
	{
		Name:        "Camiseta Capitán América",
		Description: "El escudo y los colores del Capitán, símbolo de justicia.",
		Price:       17.0,
		Image:       "https://4tsix0yujj.ufs.sh/f/2vMRHqOYUHc04VuB3E007fmwyReAgKCraUIWzEDZ6on58JNO",
	},
	{
		Name:        "Camiseta Iron Man Mark 85",
		Description: "Armadura de Iron Man, para los amantes de la tecnología.",
		Price:       17.0,
		Image:       "https://4tsix0yujj.ufs.sh/f/2vMRHqOYUHc04gqYUxk007fmwyReAgKCraUIWzEDZ6on58JN",
	},
	{
		Name:        "Camiseta Black Panther",
		Description: "El rey de Wakanda, diseño elegante y poderoso.",
		Price:       17.0,
		Image:       "https://4tsix0yujj.ufs.sh/f/2vMRHqOYUHc0zTDyG5eYLtCPgmTbn59N6BRyWUl87afK30Dw",
	},
	{
		Name:        "Camiseta Hulk Smash",
		Description: "El gigante verde en acción, ¡fuerza bruta en tu pecho!",
		Price:       17.0,
		Image:       "https://4tsix0yujj.ufs.sh/f/2vMRHqOYUHc04g3nsEz007fmwyReAgKCraUIWzEDZ6on58JN",
	},
	{
		Name:        "Camiseta Thor Stormbreaker",
		Description: "El dios del trueno con su arma, digno de Asgard.",
		Price:       17.0,
		Image:       "https://4tsix0yujj.ufs.sh/f/2vMRHqOYUHc0pCZ4Gn89LiV6g1FsuhvBa0wlA7EzOrDJYMmS",
	},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	var configPath string
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "ruta al config YAML (opcional)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "herothreads-seed"})
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var storeCfg store.Config
	storeCfg.Driver = cfg.Storage.Driver
	storeCfg.Mongo.URI = cfg.Storage.Mongo.URI
	storeCfg.Mongo.Database = cfg.Storage.Mongo.Database
	repo, err := store.Open(ctx, storeCfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = repo.Close(context.Background()) }()

	created := 0
	now := time.Now().UTC()
	for _, p := range defaultProducts {
		p.ID = uuid.NewString()
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := repo.Products().Create(ctx, &p); err != nil {
			if errors.Is(err, core.ErrConflict) {
				logger.L().Info("product already seeded", logger.String("name", p.Name))
				continue
			}
			return fmt.Errorf("seed %q: %w", p.Name, err)
		}
		created++
	}

	logger.L().Info("seed done", logger.Count(created))
	return nil
}
