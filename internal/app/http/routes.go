package routes

import (
	adminapi "blog-app/internal/api/admin"
	authapi "blog-app/internal/api/auth"
	commentsapi "blog-app/internal/api/comments"
	postsapi "blog-app/internal/api/posts"
	tagsapi "blog-app/internal/api/tags"
	themesapi "blog-app/internal/api/themes"
	usersapi "blog-app/internal/api/users"
	"blog-app/internal/app/http/middleware"
	"blog-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public reads
	r.GET("/posts", postsapi.ListPosts)
	r.GET("/posts/:id", postsapi.GetPost)
	r.GET("/posts/:id/comments", commentsapi.ListComments)
	r.GET("/themes", themesapi.ListThemes)
	r.GET("/tags", tagsapi.ListTags)
	r.GET("/tags/:id/posts", tagsapi.PostsForTag)
	r.GET("/blogs/:slug", usersapi.GetBlog)
	r.GET("/verify", authapi.VerifyEmail)

	r.GET("/auth/google", authapi.GoogleStart)
	r.GET("/auth/google/callback", authapi.GoogleCallback)

	// Public writes go through input sanitization
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.POST("/refresh", authapi.Refresh)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())
	auth.GET("/me", usersapi.GetCurrentUser)
	auth.POST("/logout", authapi.Logout)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.POST("/posts/:id/comments", commentsapi.CreateComment)
	auth.DELETE("/comments/:id", commentsapi.DeleteComment)
	auth.POST("/posts/:id/like", postsapi.LikePost)
	auth.DELETE("/posts/:id/like", postsapi.UnlikePost)

	// Authors and admins
	author := auth.Group("/")
	author.Use(middleware.RequireAnyRole(users.RoleAuthor, users.RoleAdmin))
	author.POST("/posts", postsapi.CreatePost)
	author.PUT("/posts/:id", postsapi.UpdatePost)
	author.DELETE("/posts/:id", postsapi.DeletePost)
	author.POST("/images", postsapi.UploadImage)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(users.RoleAdmin))
	admin.GET("/dashboard", adminapi.Dashboard)
	admin.GET("/users", adminapi.ListUsers)
	admin.GET("/users/:id", adminapi.GetUserDetails)
	admin.PUT("/users/:id/role", adminapi.UpdateUserRole)
	admin.POST("/themes", themesapi.CreateTheme)
	admin.PUT("/themes/:id", themesapi.UpdateTheme)
	admin.DELETE("/themes/:id", themesapi.DeleteTheme)
}
