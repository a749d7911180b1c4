package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the gateway's access paths rely on. It
// is run once at startup; existing indexes are left untouched. The unique
// index on callers backs the atomicity of EnsureCaller.
func (g *Gateway) EnsureIndexes(ctx context.Context) error {
	_, err := g.callers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone_number", Value: 1}},
		Options: options.Index().SetName("phone_number_unique").SetUnique(true),
	})
	if err != nil {
		return storeErr("create callers index", err)
	}
	_, err = g.symptoms.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone_number", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("phone_created_at"),
	})
	if err != nil {
		return storeErr("create symptoms index", err)
	}
	return nil
}
