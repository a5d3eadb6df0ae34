package adapters

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"movie_browser/internal/feature/auth/domain/entity"
	"movie_browser/internal/feature/auth/usecase"
	"movie_browser/internal/platform/db"
)

// sessionDoc はSessionsコレクションに保存されるドキュメント表現です。
// リフレッシュトークン値をそのまま _id として使用します。
type sessionDoc struct {
	ID        string     `bson:"_id"`
	UserID    string     `bson:"userId"`
	UserAgent string     `bson:"userAgent"`
	IPAddress string     `bson:"ipAddress"`
	CreatedAt time.Time  `bson:"createdAt"`
	ExpiresAt time.Time  `bson:"expiresAt"`
	RevokedAt *time.Time `bson:"revokedAt,omitempty"`
}

func (d *sessionDoc) toEntity() *entity.Session {
	return &entity.Session{
		ID:        d.ID,
		UserID:    d.UserID,
		UserAgent: d.UserAgent,
		IPAddress: d.IPAddress,
		CreatedAt: d.CreatedAt,
		ExpiresAt: d.ExpiresAt,
		RevokedAt: d.RevokedAt,
	}
}

// sessionMongo はSessionRepositoryインターフェースのMongoDB実装です。
// Redisが利用できない環境向けのフォールバックで、期限切れの削除は
// EnsureSchemaが作成するTTLインデックスに任せます。
type sessionMongo struct {
	col *mongo.Collection
}

var _ usecase.SessionRepository = (*sessionMongo)(nil)

// NewSessionMongo は指定されたデータベースハンドルでsessionMongoの新しいインスタンスを生成します。
func NewSessionMongo(database *mongo.Database) *sessionMongo {
	return &sessionMongo{col: database.Collection(db.SessionsCollection)}
}

// Create はセッションをSessionsコレクションに追加します。
func (r *sessionMongo) Create(ctx context.Context, s *entity.Session) error {
	doc := sessionDoc{
		ID:        s.ID,
		UserID:    s.UserID,
		UserAgent: s.UserAgent,
		IPAddress: s.IPAddress,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
		RevokedAt: s.RevokedAt,
	}
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// FindByID はID（リフレッシュトークン値）でセッションを取得します。
func (r *sessionMongo) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var doc sessionDoc
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

// Revoke はセッションにrevokedAtを設定して失効させます。
func (r *sessionMongo) Revoke(ctx context.Context, id string) error {
	now := time.Now()
	res, err := r.col.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "revokedAt", Value: now}}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}

// CountByUserID はユーザーの有効なセッション数を返します。
func (r *sessionMongo) CountByUserID(ctx context.Context, userID string) (int64, error) {
	filter := bson.D{
		{Key: "userId", Value: userID},
		{Key: "expiresAt", Value: bson.D{{Key: "$gt", Value: time.Now()}}},
		{Key: "revokedAt", Value: nil},
	}
	return r.col.CountDocuments(ctx, filter)
}

// DeleteOldestByUserID はユーザーの最も古いセッションを削除します。
func (r *sessionMongo) DeleteOldestByUserID(ctx context.Context, userID string) error {
	opts := options.FindOneAndDelete().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	err := r.col.FindOneAndDelete(ctx, bson.D{{Key: "userId", Value: userID}}, opts).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return err
}
