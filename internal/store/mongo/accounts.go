package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/herothreads/api/internal/store/core"
)

type accountRepo struct {
	coll *mongo.Collection
}

var _ core.AccountRepository = (*accountRepo)(nil)

func (r *accountRepo) Create(ctx context.Context, a *core.Account) error {
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return mapErr(err)
	}
	return nil
}

func (r *accountRepo) GetByID(ctx context.Context, id string) (*core.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*core.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *accountRepo) findOne(ctx context.Context, filter bson.M) (*core.Account, error) {
	var a core.Account
	if err := r.coll.FindOne(ctx, filter).Decode(&a); err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

func (r *accountRepo) List(ctx context.Context) ([]core.Account, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, mapErr(err)
	}
	defer cur.Close(ctx)

	var out []core.Account
	if err := cur.All(ctx, &out); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (r *accountRepo) Update(ctx context.Context, id string, upd core.AccountUpdate) (*core.Account, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.City != nil {
		set["city"] = *upd.City
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

func (r *accountRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}

// ConsumeVerifyToken: match por token vigente y escritura del estado
// verificado en un solo update. Un token expirado, consumido o inexistente
// cae igual en ErrNotFound.
func (r *accountRepo) ConsumeVerifyToken(ctx context.Context, token string, now time.Time) (*core.Account, error) {
	filter := bson.M{
		"verifyToken":   token,
		"verifyExpires": bson.M{"$gt": now},
	}
	update := bson.M{
		"$set":   bson.M{"emailVerified": true, "updatedAt": now},
		"$unset": bson.M{"verifyToken": "", "verifyExpires": ""},
	}
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *accountRepo) SetResetToken(ctx context.Context, id, token string, expires, now time.Time) error {
	update := bson.M{"$set": bson.M{
		"resetToken":   token,
		"resetExpires": expires,
		"updatedAt":    now,
	}}
	res, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *accountRepo) GetByResetToken(ctx context.Context, token string, now time.Time) (*core.Account, error) {
	return r.findOne(ctx, bson.M{
		"resetToken":   token,
		"resetExpires": bson.M{"$gt": now},
	})
}

func (r *accountRepo) ConsumeResetToken(ctx context.Context, token string, now time.Time, newHash string) (*core.Account, error) {
	filter := bson.M{
		"resetToken":   token,
		"resetExpires": bson.M{"$gt": now},
	}
	update := bson.M{
		"$set":   bson.M{"passwordHash": newHash, "lastActivity": now, "updatedAt": now},
		"$unset": bson.M{"resetToken": "", "resetExpires": ""},
	}
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *accountRepo) LinkGoogle(ctx context.Context, id, googleID string, now time.Time) (*core.Account, error) {
	update := bson.M{"$set": bson.M{
		"googleId":      googleID,
		"emailVerified": true,
		"lastActivity":  now,
		"updatedAt":     now,
	}}
	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, update)
}

func (r *accountRepo) TouchActivity(ctx context.Context, id string, now time.Time) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"lastActivity": now}})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *accountRepo) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*core.Account, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var a core.Account
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&a); err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}
