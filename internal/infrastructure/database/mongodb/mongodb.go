package mongodb

import (
	"context"
	"time"

	"github.com/ohmfruit/fruitstore-service/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
)

const connectTimeout = 10 * time.Second

// ConnectToMongoDB dials the configured deployment, checks it with a ping and
// returns the catalog database. Commands are traced as child spans of the
// request.
func ConnectToMongoDB(ctx context.Context, conf config.MongoDBConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(conf.MongoURI()).
		SetAppName("fruitstore-service").
		SetMonitor(otelmongo.NewMonitor())

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client.Database(conf.DBName), nil
}
