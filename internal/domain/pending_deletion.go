package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PendingImageDeletion is a storage object whose best-effort removal failed
// and is retried by the cleanup job.
type PendingImageDeletion struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Key       string             `bson:"key"`
	Attempts  int                `bson:"attempts"`
	LastError string             `bson:"last_error"`
	CreatedAt time.Time          `bson:"created_at"`
}
