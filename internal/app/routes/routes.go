package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjun/placementhub/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	driveController *controllers.DriveController,
	questionController *controllers.InterviewQuestionController,
	materialController *controllers.PlacementMaterialController,
	authMiddleware gin.HandlerFunc,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/signin", authController.Signin)
		auth.POST("/signout", authController.Signout)
		auth.PUT("/forgot-password", authController.ForgotPassword)
		auth.PUT("/verify-forgot-password-otp", authController.VerifyOTP)
		auth.PUT("/reset-password", authController.ResetPassword)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware)
	{
		authProtected := authenticated.Group("/auth")
		{
			authProtected.PUT("/update-user", authController.UpdateUser)
			authProtected.PUT("/upload-profile", authController.UploadProfile)
		}

		drives := authenticated.Group("/drives")
		{
			drives.GET("", driveController.ListDrives)
			drives.GET("/:id", driveController.GetDrive)
			drives.POST("", driveController.CreateDrive)
			drives.PUT("/:id", driveController.UpdateDrive)
			drives.DELETE("/:id", driveController.DeleteDrive)
		}

		questions := authenticated.Group("/interview-questions")
		{
			questions.GET("", questionController.ListQuestions)
			questions.GET("/:id", questionController.GetQuestion)
			questions.POST("", questionController.CreateQuestion)
			questions.PUT("/:id", questionController.UpdateQuestion)
			questions.DELETE("/:id", questionController.DeleteQuestion)
			questions.PUT("/:id/upvote", questionController.ToggleUpvote)
			questions.POST("/:id/comments", questionController.AddComment)
			questions.DELETE("/:id/comments/:commentId", questionController.DeleteComment)
		}

		materials := authenticated.Group("/placement-materials")
		{
			materials.GET("", materialController.ListMaterials)
			materials.GET("/:id", materialController.GetMaterial)
			materials.POST("", materialController.CreateMaterial)
			materials.PUT("/:id", materialController.UpdateMaterial)
			materials.DELETE("/:id", materialController.DeleteMaterial)
			materials.PUT("/:id/upvote", materialController.ToggleUpvote)
			materials.PUT("/:id/download", materialController.RecordDownload)
		}
	}
}
