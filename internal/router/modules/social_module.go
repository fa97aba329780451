package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/vidtube/internal/interface/http"
	"github.com/oksasatya/vidtube/pkg/helpers"
)

type CommentModule struct {
	Handler *handlers.CommentHandler
	JWT     *helpers.JWTManager
}

func NewCommentModule(h *handlers.CommentHandler, jwt *helpers.JWTManager) *CommentModule {
	return &CommentModule{Handler: h, JWT: jwt}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	public(rg, m.JWT).GET("/comments/:videoId", m.Handler.List)

	auth := protected(rg, m.JWT)
	{
		auth.POST("/comments/:videoId", m.Handler.Add)
		auth.PATCH("/comments/c/:commentId", m.Handler.Update)
		auth.DELETE("/comments/c/:commentId", m.Handler.Delete)
	}
}

type TweetModule struct {
	Handler *handlers.TweetHandler
	JWT     *helpers.JWTManager
}

func NewTweetModule(h *handlers.TweetHandler, jwt *helpers.JWTManager) *TweetModule {
	return &TweetModule{Handler: h, JWT: jwt}
}

func (m *TweetModule) Register(rg *gin.RouterGroup) {
	public(rg, m.JWT).GET("/tweets/user/:userId", m.Handler.ListByUser)

	auth := protected(rg, m.JWT)
	{
		auth.POST("/tweets", m.Handler.Create)
		auth.PATCH("/tweets/:tweetId", m.Handler.Update)
		auth.DELETE("/tweets/:tweetId", m.Handler.Delete)
	}
}

type LikeModule struct {
	Handler *handlers.LikeHandler
	JWT     *helpers.JWTManager
}

func NewLikeModule(h *handlers.LikeHandler, jwt *helpers.JWTManager) *LikeModule {
	return &LikeModule{Handler: h, JWT: jwt}
}

func (m *LikeModule) Register(rg *gin.RouterGroup) {
	auth := protected(rg, m.JWT)
	{
		auth.POST("/likes/toggle/v/:videoId", m.Handler.ToggleVideo)
		auth.POST("/likes/toggle/c/:commentId", m.Handler.ToggleComment)
		auth.POST("/likes/toggle/t/:tweetId", m.Handler.ToggleTweet)
		auth.GET("/likes/videos", m.Handler.LikedVideos)
	}
}

type SubscriptionModule struct {
	Handler *handlers.SubscriptionHandler
	JWT     *helpers.JWTManager
}

func NewSubscriptionModule(h *handlers.SubscriptionHandler, jwt *helpers.JWTManager) *SubscriptionModule {
	return &SubscriptionModule{Handler: h, JWT: jwt}
}

func (m *SubscriptionModule) Register(rg *gin.RouterGroup) {
	pub := public(rg, m.JWT)
	{
		pub.GET("/subscriptions/c/:channelId", m.Handler.Subscribers)
		pub.GET("/subscriptions/u/:subscriberId", m.Handler.SubscribedChannels)
	}
	protected(rg, m.JWT).POST("/subscriptions/c/:channelId", m.Handler.Toggle)
}
