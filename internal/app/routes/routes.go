package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/group7/resmatch/internal/app/controllers"
	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/middleware"
)

// Controllers bundles the handlers mounted under /api/v1
type Controllers struct {
	Auth        *controllers.AuthController
	Resource    *controllers.ResourceController
	Student     *controllers.StudentController
	Application *controllers.ApplicationController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.RefreshToken)
		auth.POST("/logout", ctrl.Auth.Logout)
	}

	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	suppliersOnly := authMiddleware.RoleRequired(models.RoleDepartment, models.RoleCompany)
	studentsOnly := authMiddleware.RoleRequired(models.RoleStudent)

	resources := authenticated.Group("/resources")
	{
		resources.GET("", ctrl.Resource.ListResources)
		resources.GET("/my", suppliersOnly, ctrl.Resource.ListMyResources)
		resources.GET("/:id", ctrl.Resource.GetResource)
		resources.POST("", suppliersOnly, ctrl.Resource.CreateResource)

		conditions := resources.Group("/:id/conditions")
		conditions.Use(suppliersOnly)
		{
			conditions.POST("", ctrl.Resource.AddCondition)
			conditions.PUT("", ctrl.Resource.UpsertCondition)
			conditions.GET("", ctrl.Resource.ListConditions)
			conditions.DELETE("", ctrl.Resource.DeleteConditions)
			conditions.DELETE("/:departmentId", ctrl.Resource.DeleteCondition)
		}
	}

	student := authenticated.Group("/student")
	student.Use(studentsOnly)
	{
		student.GET("/profile", ctrl.Student.GetProfile)
		student.PUT("/profile", ctrl.Student.UpsertProfile)
		student.GET("/gpa", ctrl.Student.ListGPA)
		student.GET("/achievements", ctrl.Student.ListAchievements)

		student.GET("/applications", ctrl.Application.ListMyApplications)
		student.POST("/applications", ctrl.Application.Apply)
		student.DELETE("/applications/:resourceId", ctrl.Application.Withdraw)
	}
}
