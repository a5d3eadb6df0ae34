// Package adapters はratingsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"math"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	catalogusecase "movie_browser/internal/feature/catalog/usecase"
	"movie_browser/internal/feature/ratings/domain/entity"
	"movie_browser/internal/feature/ratings/usecase"
	"movie_browser/internal/platform/db"
)

// ratingMongo はRatingRepositoryインターフェースのMongoDB実装です。
type ratingMongo struct {
	col *mongo.Collection
}

var _ usecase.RatingRepository = (*ratingMongo)(nil)

// catalogユースケースの集計リポジトリとしても利用できます。
var _ catalogusecase.RatingStatsRepository = (*ratingMongo)(nil)

// NewRatingMongo は指定されたデータベースハンドルでratingMongoの新しいインスタンスを生成します。
func NewRatingMongo(database *mongo.Database) *ratingMongo {
	return &ratingMongo{col: database.Collection(db.RatingsCollection)}
}

// Insert は評価をRatingsコレクションに追加します。
// (userId, movieId) の複合ユニークインデックスに違反した場合、
// usecase.ErrAlreadyRatedを返します。
func (r *ratingMongo) Insert(ctx context.Context, rating *entity.Rating) error {
	res, err := r.col.InsertOne(ctx, rating)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrAlreadyRated
		}
		return err
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		rating.ID = id
	}
	return nil
}

// ListByUser は指定ユーザーの評価一覧を取得します。
// 結果は (ratedDate, _id) の昇順で安定しています。
func (r *ratingMongo) ListByUser(ctx context.Context, userID string) ([]entity.Rating, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		// 不正なIDのユーザーは評価を持たない
		return nil, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "ratedDate", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.D{{Key: "userId", Value: uid}}, opts)
	if err != nil {
		return nil, err
	}

	var ratings []entity.Rating
	if err := cur.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

// AverageForMovie は指定映画の平均評価を集計パイプラインで算出します。
// 評価が1件もない場合は 0.0 を返します。
func (r *ratingMongo) AverageForMovie(ctx context.Context, movieID string) (float64, error) {
	mid, err := bson.ObjectIDFromHex(movieID)
	if err != nil {
		return 0, nil
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "movieId", Value: mid}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "average", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}

	var results []struct {
		Average float64 `bson:"average"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return roundToTenth(results[0].Average), nil
}

// roundToTenth は小数第1位に丸めます。中間値は0から遠ざかる方向に丸めます。
func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
