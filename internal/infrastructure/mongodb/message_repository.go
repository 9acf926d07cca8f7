package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

type messageDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	User      string             `bson:"user"`
	Message   string             `bson:"message"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// MessageRepo mensajes del chat sobre la colección messages.
type MessageRepo struct {
	collection *mongo.Collection
}

// NewMessageRepository construye el adaptador.
func NewMessageRepository(db *mongo.Database) *MessageRepo {
	return &MessageRepo{collection: db.Collection(MessagesCollection)}
}

// Create agrega un mensaje.
func (r *MessageRepo) Create(ctx context.Context, msg *entity.Message) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	doc := messageDoc{ID: primitive.NewObjectID(), User: msg.User, Message: msg.Text, CreatedAt: msg.CreatedAt.UTC()}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	msg.ID = doc.ID.Hex()
	return nil
}

// List devuelve todos los mensajes en orden de inserción (_id ascendente).
func (r *MessageRepo) List(ctx context.Context) ([]*entity.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []messageDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	out := make([]*entity.Message, 0, len(docs))
	for _, d := range docs {
		out = append(out, &entity.Message{ID: d.ID.Hex(), User: d.User, Text: d.Message, CreatedAt: d.CreatedAt})
	}
	return out, nil
}
