package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"specanalyzer/internal/model"
)

type SessionRepo interface {
	Create(ctx context.Context, session *model.AnalysisSession) error
	GetBySessionID(ctx context.Context, sessionID string) (*model.AnalysisSession, error)
	List(ctx context.Context, limit int) ([]*model.AnalysisSession, error)
	Delete(ctx context.Context, sessionID string) error
	CountByDecision(ctx context.Context) (map[model.Decision]int64, error)
}

type sessionRepo struct {
	collection *mongo.Collection
}

func NewSessionRepo(db *mongo.Database) SessionRepo {
	return &sessionRepo{
		collection: db.Collection("analysis_sessions"),
	}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.AnalysisSession) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, session)
	return err
}

func (r *sessionRepo) GetBySessionID(ctx context.Context, sessionID string) (*model.AnalysisSession, error) {
	var session model.AnalysisSession
	err := r.collection.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) List(ctx context.Context, limit int) ([]*model.AnalysisSession, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []*model.AnalysisSession
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepo) Delete(ctx context.Context, sessionID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"sessionId": sessionID})
	return err
}

func (r *sessionRepo) CountByDecision(ctx context.Context) (map[model.Decision]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$decision",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Decision model.Decision `bson:"_id"`
		Count    int64          `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[model.Decision]int64, len(rows))
	for _, row := range rows {
		counts[row.Decision] = row.Count
	}
	return counts, nil
}
