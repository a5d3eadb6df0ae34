// Package entity はウォッチリスト機能のドメインモデルを定義します。
package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Entry はウォッチリストの1件を表します。
// ユーザーと映画の組み合わせは一意であり、ストレージ層の複合ユニークインデックスで保証されます。
type Entry struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    bson.ObjectID `bson:"userId"`
	MovieID   bson.ObjectID `bson:"movieId"`
	AddedDate time.Time     `bson:"addedDate"`
}
