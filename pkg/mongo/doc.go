// Package mongo wires the MongoDB client used by the mongo-backed storages.
//
// Connection settings come from an env-tagged Config so deployments configure
// the database entirely through the environment:
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//	db, err := mongo.Database(ctx, cfg)
package mongo
