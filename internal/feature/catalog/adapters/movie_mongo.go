// Package adapters はcatalogフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"movie_browser/internal/feature/catalog/domain/entity"
	"movie_browser/internal/feature/catalog/usecase"
	"movie_browser/internal/platform/db"
)

// movieMongo はMovieRepositoryインターフェースのMongoDB実装です。
type movieMongo struct {
	col *mongo.Collection
}

var _ usecase.MovieRepository = (*movieMongo)(nil)

// NewMovieMongo は指定されたデータベースハンドルでmovieMongoの新しいインスタンスを生成します。
func NewMovieMongo(database *mongo.Database) *movieMongo {
	return &movieMongo{col: database.Collection(db.MoviesCollection)}
}

// Insert は映画をMoviesコレクションに追加し、採番されたIDをエンティティに設定します。
func (r *movieMongo) Insert(ctx context.Context, m *entity.Movie) error {
	res, err := r.col.InsertOne(ctx, m)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		m.ID = id
	}
	return nil
}

// FindByID はID（hex文字列）で映画を取得します。
// IDが不正、または映画が存在しない場合、usecase.ErrMovieNotFoundを返します。
func (r *movieMongo) FindByID(ctx context.Context, id string) (*entity.Movie, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, usecase.ErrMovieNotFound
	}
	var m entity.Movie
	err = r.col.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Search はタイトルの大文字小文字を区別しない部分一致で映画を検索します。
// termが空の場合は全件を返します。結果は (title, _id) の昇順で安定しています。
func (r *movieMongo) Search(ctx context.Context, term string) ([]entity.Movie, error) {
	filter := bson.D{}
	if term != "" {
		// 正規表現のメタ文字をエスケープし、純粋な部分一致として扱う
		filter = bson.D{{Key: "title", Value: bson.D{
			{Key: "$regex", Value: regexp.QuoteMeta(term)},
			{Key: "$options", Value: "i"},
		}}}
	}

	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var movies []entity.Movie
	if err := cur.All(ctx, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}
