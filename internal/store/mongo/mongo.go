// Package mongo implementa el Repository sobre MongoDB.
//
// Los consumos de token se hacen con FindOneAndUpdate condicional (match por
// token + expiry, escritura del nuevo estado) para que la validación y la
// limpieza del token sean un solo paso atómico por documento.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/herothreads/api/internal/store/core"
)

const (
	collAccounts = "accounts"
	collProducts = "products"
	collSales    = "sales"

	connectTimeout = 10 * time.Second
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database

	accounts *accountRepo
	products *productRepo
	sales    *saleRepo
}

// New conecta al cluster, verifica la conexión y asegura los índices únicos.
func New(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(database)
	s := &Store{
		client:   client,
		db:       db,
		accounts: &accountRepo{coll: db.Collection(collAccounts)},
		products: &productRepo{coll: db.Collection(collProducts)},
		sales:    &saleRepo{coll: db.Collection(collSales)},
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// ensureIndexes crea los índices que sostienen las invariantes de unicidad.
// El índice único por email es la guarda autoritativa contra registros
// duplicados; el pre-chequeo en el service solo mejora el mensaje de error.
func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(collAccounts).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "verifyToken", Value: 1}}, Options: options.Index().SetSparse(true)},
		{Keys: bson.D{{Key: "resetToken", Value: 1}}, Options: options.Index().SetSparse(true)},
	})
	if err != nil {
		return fmt.Errorf("mongo indexes (accounts): %w", err)
	}
	_, err = s.db.Collection(collProducts).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongo indexes (products): %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error  { return s.client.Ping(ctx, nil) }
func (s *Store) Close(ctx context.Context) error { return s.client.Disconnect(ctx) }

func (s *Store) Accounts() core.AccountRepository { return s.accounts }
func (s *Store) Products() core.ProductRepository { return s.products }
func (s *Store) Sales() core.SaleRepository       { return s.sales }

// mapErr traduce errores del driver a los sentinels de core.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case err == mongo.ErrNoDocuments:
		return core.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return core.ErrConflict
	default:
		return err
	}
}
