package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/herothreads/api/internal/store/core"
)

type productRepo struct {
	coll *mongo.Collection
}

var _ core.ProductRepository = (*productRepo)(nil)

func (r *productRepo) Create(ctx context.Context, p *core.Product) error {
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return mapErr(err)
	}
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*core.Product, error) {
	var p core.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context) ([]core.Product, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, mapErr(err)
	}
	defer cur.Close(ctx)

	var out []core.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (r *productRepo) Update(ctx context.Context, p *core.Product) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}

type saleRepo struct {
	coll *mongo.Collection
}

var _ core.SaleRepository = (*saleRepo)(nil)

func (r *saleRepo) Create(ctx context.Context, s *core.Sale) error {
	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		return mapErr(err)
	}
	return nil
}

func (r *saleRepo) GetByID(ctx context.Context, id string) (*core.Sale, error) {
	var s core.Sale
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

func (r *saleRepo) List(ctx context.Context) ([]core.Sale, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, mapErr(err)
	}
	defer cur.Close(ctx)

	var out []core.Sale
	if err := cur.All(ctx, &out); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}
