// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"movie_browser/internal/feature/watchlist/domain/entity"
	"movie_browser/internal/feature/watchlist/usecase"
	"movie_browser/internal/platform/db"
)

// watchlistMongo はWatchlistRepositoryインターフェースのMongoDB実装です。
type watchlistMongo struct {
	col *mongo.Collection
}

var _ usecase.WatchlistRepository = (*watchlistMongo)(nil)

// NewWatchlistMongo は指定されたデータベースハンドルでwatchlistMongoの新しいインスタンスを生成します。
func NewWatchlistMongo(database *mongo.Database) *watchlistMongo {
	return &watchlistMongo{col: database.Collection(db.WatchlistCollection)}
}

// Insert はエントリをWatchlistコレクションに追加します。
// (userId, movieId) の複合ユニークインデックスに違反した場合、
// usecase.ErrAlreadyInWatchlistを返します。
func (r *watchlistMongo) Insert(ctx context.Context, entry *entity.Entry) error {
	res, err := r.col.InsertOne(ctx, entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrAlreadyInWatchlist
		}
		return err
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		entry.ID = id
	}
	return nil
}

// ListByUser は指定ユーザーのウォッチリストを取得します。
// 結果は (addedDate, _id) の昇順で安定しています。
func (r *watchlistMongo) ListByUser(ctx context.Context, userID string) ([]entity.Entry, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		// 不正なIDのユーザーはエントリを持たない
		return nil, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "addedDate", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.D{{Key: "userId", Value: uid}}, opts)
	if err != nil {
		return nil, err
	}

	var entries []entity.Entry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
