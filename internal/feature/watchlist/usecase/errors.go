package usecase

import "errors"

// ドメインのエラーを定義します。
var (
	// ErrAlreadyInWatchlist は既にウォッチリストに登録済みの映画を再登録しようとした場合のエラーです。
	ErrAlreadyInWatchlist = errors.New("movie already in watchlist")
)
