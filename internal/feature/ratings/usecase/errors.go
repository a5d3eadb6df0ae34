package usecase

import "errors"

// ドメインのエラーを定義します。
// Adapters層でドライバ固有のエラーをこれらに変換し、上位層はこれだけに依存します。
var (
	// ErrAlreadyRated は同じユーザーが同じ映画を二重に評価しようとした場合のエラーです。
	ErrAlreadyRated = errors.New("movie already rated by this user")
	// ErrInvalidRating は評価値が1〜10の範囲外の場合のエラーです。
	ErrInvalidRating = errors.New("rating must be between 1 and 10")
)
