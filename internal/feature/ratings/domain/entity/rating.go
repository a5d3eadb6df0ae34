// Package entity はレーティング機能のドメインモデルを定義します。
package entity

import (
	"time"

	catalogentity "movie_browser/internal/feature/catalog/domain/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Rating はあるユーザーのある映画に対する評価を表します。
// ユーザーと映画の組み合わせは一意であり、ストレージ層の複合ユニークインデックスで保証されます。
type Rating struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    bson.ObjectID `bson:"userId"`
	MovieID   bson.ObjectID `bson:"movieId"`
	Rating    int           `bson:"rating"`
	Review    string        `bson:"review"`
	RatedDate time.Time     `bson:"ratedDate"`
}

// RatedMovie は評価に映画情報を結合した読み取り用のモデルです。
type RatedMovie struct {
	Movie  catalogentity.Movie
	Rating int
	Review string
}
