package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"specanalyzer/internal/model"
)

type TemplateRepo interface {
	Seed(ctx context.Context, templates []model.AnalysisTemplate) error
	List(ctx context.Context) ([]*model.AnalysisTemplate, error)
	GetByName(ctx context.Context, templateName string) (*model.AnalysisTemplate, error)
	IncrementUsage(ctx context.Context, templateName string) error
}

type templateRepo struct {
	collection *mongo.Collection
}

func NewTemplateRepo(db *mongo.Database) TemplateRepo {
	return &templateRepo{
		collection: db.Collection("analysis_templates"),
	}
}

// Seed inserts the default templates that are not already present
func (r *templateRepo) Seed(ctx context.Context, templates []model.AnalysisTemplate) error {
	for _, t := range templates {
		if t.CreatedAt.IsZero() {
			t.CreatedAt = time.Now()
		}
		err := r.collection.FindOne(ctx, bson.M{"templateName": t.TemplateName}).Err()
		if err == mongo.ErrNoDocuments {
			if _, err := r.collection.InsertOne(ctx, t); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *templateRepo) List(ctx context.Context) ([]*model.AnalysisTemplate, error) {
	opts := options.Find().SetSort(bson.M{"templateName": 1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var templates []*model.AnalysisTemplate
	if err = cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *templateRepo) GetByName(ctx context.Context, templateName string) (*model.AnalysisTemplate, error) {
	var t model.AnalysisTemplate
	err := r.collection.FindOne(ctx, bson.M{"templateName": templateName}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *templateRepo) IncrementUsage(ctx context.Context, templateName string) error {
	update := bson.M{"$inc": bson.M{"usageCount": 1}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"templateName": templateName}, update)
	return err
}
