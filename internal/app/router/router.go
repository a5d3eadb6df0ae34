package router

import (
	authhandler "movie_browser/internal/feature/auth/transport/handler"
	cataloghandler "movie_browser/internal/feature/catalog/transport/handler"
	ratinghandler "movie_browser/internal/feature/ratings/transport/handler"
	watchlisthandler "movie_browser/internal/feature/watchlist/transport/handler"
	"movie_browser/internal/platform/http/handler"
	jwtmw "movie_browser/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

func NewRouter(authHandler *authhandler.AuthHandler, catalog *cataloghandler.CatalogHandler,
	ratings *ratinghandler.RatingHandler, watchlist *watchlisthandler.WatchlistHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", authHandler.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)
	// リフレッシュトークンによるアクセストークンの再発行
	r.POST("/refresh", authHandler.Refresh)

	// 認証必須のルート
	// r.Group("/") でルートグループを作成
	auth := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth.Use(jwtmw.AuthRequired())
	{
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/movies", catalog.List)
		auth.POST("/movies", catalog.Create)
		auth.POST("/movies/:movieID/rating", ratings.Create)
		auth.GET("/ratings", ratings.List)
		auth.POST("/watchlist/:movieID", watchlist.Add)
		auth.GET("/watchlist", watchlist.List)
	}

	return r
}
