package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/claimboard/internal/app/controllers"
	"github.com/yigit/claimboard/internal/app/models"
	"github.com/yigit/claimboard/internal/middleware"
)

// SetupRouter configures all application routes. Every route requires a bearer token.
func SetupRouter(
	router *gin.Engine,
	userController *controllers.UserController,
	claimController *controllers.ClaimController,
	leaderboardController *controllers.LeaderboardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.JWTAuth())

	users := v1.Group("/users")
	{
		users.GET("/me", userController.GetProfile)
		users.PUT("/me", userController.UpdateProfile)
	}

	claims := v1.Group("/claims")
	{
		student := claims.Group("/student")
		student.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			student.POST("", claimController.SubmitClaim)
			student.GET("", claimController.ListStudentClaims)
		}

		proctor := claims.Group("/proctor")
		proctor.Use(authMiddleware.RoleRequired(models.RoleProctor))
		{
			proctor.GET("", claimController.ListPendingClaims)
			proctor.PATCH("/:claimId", claimController.ReviewClaim)
		}

		// Proctors see mentor views too
		staff := authMiddleware.RoleRequired(models.RoleMentor, models.RoleProctor)
		claims.GET("/mentor", staff, claimController.ListMentorClaims)
		claims.GET("/:claimId/proof/download", staff, claimController.DownloadProof)
	}

	leaderboard := v1.Group("/leaderboard")
	{
		leaderboard.GET("", leaderboardController.GetLeaderboard)
		leaderboard.GET("/me/mentors", leaderboardController.GetMyMentors)
	}
}
