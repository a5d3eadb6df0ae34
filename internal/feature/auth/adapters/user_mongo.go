// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"movie_browser/internal/feature/auth/domain/entity"
	"movie_browser/internal/feature/auth/usecase"
	"movie_browser/internal/platform/db"
)

// userMongo はUserRepositoryインターフェースのMongoDB実装です。
// Usersコレクションに対してドキュメント操作を行います。
type userMongo struct {
	col *mongo.Collection
}

// userMongoがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userMongo)(nil)

// NewUserMongo は指定されたデータベースハンドルでuserMongoの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewUserMongo(database *mongo.Database) *userMongo {
	return &userMongo{col: database.Collection(db.UsersCollection)}
}

// Create はユーザーをUsersコレクションに追加します。
// username/emailのユニークインデックスに違反した場合、usecase.ErrUserAlreadyExistsを返します。
func (r *userMongo) Create(ctx context.Context, u *entity.User) error {
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		// E11000: ユニークインデックスの重複エントリ
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrUserAlreadyExists
		}
		return err
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		u.ID = id
	}
	return nil
}

// FindByUsername はユーザー名でユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userMongo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var u entity.User
	err := r.col.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID はID（hex文字列）でユーザーを取得します。
// IDが不正、またはユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userMongo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, usecase.ErrUserNotFound
	}
	var u entity.User
	err = r.col.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
