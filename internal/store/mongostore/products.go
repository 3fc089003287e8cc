package mongostore

import (
	"context"
	"regexp"
	"time"

	"github.com/arzan03/StoreFront/internal/models"
	"github.com/arzan03/StoreFront/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductStore struct {
	coll *mongo.Collection
}

var _ store.ProductStore = (*ProductStore)(nil)

func (s *ProductStore) Create(ctx context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	if product.Reviews == nil {
		product.Reviews = []models.Review{}
	}
	_, err := s.coll.InsertOne(ctx, product)
	return translate(err)
}

func (s *ProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *ProductStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Product, error) {
	out := make(map[primitive.ObjectID]*models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	products, err := s.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	for i := range products {
		out[products[i].ID] = &products[i]
	}
	return out, nil
}

func (s *ProductStore) List(ctx context.Context) ([]models.Product, error) {
	return s.find(ctx, bson.M{}, newestFirst())
}

func (s *ProductStore) Search(ctx context.Context, query string) ([]models.Product, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return s.find(ctx, bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"category": pattern},
	}})
}

func (s *ProductStore) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.find(ctx, bson.M{"category": category}, newestFirst())
}

func (s *ProductStore) FirstPerCategory(ctx context.Context) ([]models.Product, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "product", Value: bson.D{{Key: "$first", Value: "$$ROOT"}}},
		}}},
		{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$product"}}}},
		{{Key: "$sort", Value: bson.D{{Key: "category", Value: 1}}}},
	}

	products := []models.Product{}
	if err := s.aggregate(ctx, pipeline, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductStore) Trending(ctx context.Context, limit int) ([]models.Product, error) {
	return s.find(ctx, bson.M{"isTrending": true}, newestFirst().SetLimit(int64(limit)))
}

func (s *ProductStore) UpdateCategory(ctx context.Context, id primitive.ObjectID, category string) (*models.Product, error) {
	var p models.Product
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"category": category, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *ProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// AppendReview pushes review only while no review by the same user exists,
// so two racing submissions cannot both land.
func (s *ProductStore) AppendReview(ctx context.Context, productID primitive.ObjectID, review models.Review) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": productID, "reviews.userId": bson.M{"$ne": review.UserID}},
		reviewsUpdate(bson.D{{Key: "$concatArrays", Value: bson.A{
			bson.D{{Key: "$ifNull", Value: bson.A{"$reviews", bson.A{}}}},
			bson.D{{Key: "$literal", Value: bson.A{review}}},
		}}}),
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := s.coll.CountDocuments(ctx, bson.M{"_id": productID})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return store.ErrDuplicate
}

func (s *ProductStore) UpdateReview(ctx context.Context, productID, reviewID, userID primitive.ObjectID, edit store.ReviewEdit) error {
	fields := bson.M{}
	if edit.Rating != nil {
		fields["rating"] = *edit.Rating
	}
	if edit.Comment != nil {
		fields["comment"] = *edit.Comment
	}

	return s.updateOwnReview(ctx, productID, reviewID, userID, bson.D{{Key: "$map", Value: bson.D{
		{Key: "input", Value: "$reviews"},
		{Key: "as", Value: "r"},
		{Key: "in", Value: bson.D{{Key: "$cond", Value: bson.A{
			bson.D{{Key: "$eq", Value: bson.A{"$$r._id", reviewID}}},
			bson.D{{Key: "$mergeObjects", Value: bson.A{"$$r", bson.D{{Key: "$literal", Value: fields}}}}},
			"$$r",
		}}}},
	}}})
}

func (s *ProductStore) RemoveReview(ctx context.Context, productID, reviewID, userID primitive.ObjectID) error {
	return s.updateOwnReview(ctx, productID, reviewID, userID, bson.D{{Key: "$filter", Value: bson.D{
		{Key: "input", Value: "$reviews"},
		{Key: "as", Value: "r"},
		{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$r._id", reviewID}}}},
	}}})
}

func (s *ProductStore) updateOwnReview(ctx context.Context, productID, reviewID, userID primitive.ObjectID, reviews bson.D) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": productID, "reviews": bson.M{"$elemMatch": bson.M{"_id": reviewID, "userId": userID}}},
		reviewsUpdate(reviews),
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// reviewsUpdate sets reviews to the given expression and recomputes
// averageRating from the result within the same document update.
func reviewsUpdate(reviews bson.D) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "reviews", Value: reviews},
			{Key: "updatedAt", Value: "$$NOW"},
		}}},
		{{Key: "$set", Value: bson.D{
			{Key: "averageRating", Value: bson.D{{Key: "$ifNull", Value: bson.A{
				bson.D{{Key: "$avg", Value: "$reviews.rating"}}, 0,
			}}}},
		}}},
	}
}

func (s *ProductStore) CountByCategory(ctx context.Context) ([]models.CategoryCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	out := []models.CategoryCount{}
	if err := s.aggregate(ctx, pipeline, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ProductStore) Ratings(ctx context.Context) ([]models.ProductRating, error) {
	opts := options.Find().SetProjection(bson.M{"name": 1, "averageRating": 1})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []models.ProductRating{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ProductStore) MonthlyCreated(ctx context.Context) ([]models.MonthlyCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "year", Value: bson.D{{Key: "$year", Value: "$createdAt"}}},
				{Key: "month", Value: bson.D{{Key: "$month", Value: "$createdAt"}}},
			}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id.year", Value: 1}, {Key: "_id.month", Value: 1}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "year", Value: "$_id.year"},
			{Key: "month", Value: "$_id.month"},
			{Key: "count", Value: 1},
		}}},
	}

	out := []models.MonthlyCount{}
	if err := s.aggregate(ctx, pipeline, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ProductStore) CountBySize(ctx context.Context) ([]models.SizeCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$sizes"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$sizes.size"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	out := []models.SizeCount{}
	if err := s.aggregate(ctx, pipeline, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ProductStore) find(ctx context.Context, filter any, opts ...*options.FindOptions) ([]models.Product, error) {
	cursor, err := s.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductStore) aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}
