package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vmerk/tutorium/internal/app/controllers"
	"github.com/vmerk/tutorium/internal/app/models"
	"github.com/vmerk/tutorium/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	associationController *controllers.AssociationController,
	disciplineController *controllers.DisciplineController,
	branchController *controllers.BranchController,
	subscriptionController *controllers.SubscriptionController,
	lessonController *controllers.LessonController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// Branch and discipline catalogs are readable without a token
	v1.GET("/branches", branchController.GetAllBranches)
	v1.GET("/branches/:id", branchController.GetBranch)
	v1.GET("/branches/:id/classrooms", branchController.GetBranchClassrooms)
	v1.GET("/disciplines", disciplineController.GetAll)
	v1.GET("/disciplines/:id", disciplineController.GetByID)
	v1.GET("/disciplines/:id/teachers", disciplineController.TeachersFor)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/check", authController.Check)

		users := authenticated.Group("/users")
		{
			users.GET("/me", userController.GetMe)
			users.GET("/:id", userController.GetUser)

			usersAdmin := users.Group("")
			usersAdmin.Use(authMiddleware.RoleRequired(models.RoleAdministrator))
			{
				usersAdmin.GET("", userController.GetAllUsers)
				usersAdmin.PUT("/:id", userController.UpdateUser)
				usersAdmin.DELETE("/:id", userController.DeleteUser)
				usersAdmin.POST("/:id/roles", userController.AddRole)
				usersAdmin.PUT("/:id/student", userController.UpdateStudent)
				usersAdmin.PUT("/:id/teacher", userController.UpdateTeacher)
			}
		}

		// Per-user collection views
		authenticated.GET("/students/:studentId/teachers", associationController.TeachersForStudent)
		authenticated.GET("/students/:studentId/subscriptions", subscriptionController.GetForStudent)
		authenticated.GET("/students/:studentId/lessons", lessonController.GetForStudent)
		authenticated.GET("/teachers/:teacherId/students", associationController.StudentsForTeacher)
		authenticated.GET("/teachers/:teacherId/subscriptions", subscriptionController.GetForTeacher)
		authenticated.GET("/teachers/:teacherId/lessons", lessonController.GetForTeacher)
		authenticated.GET("/teachers/:teacherId/disciplines", disciplineController.TeacherDisciplines)

		associations := authenticated.Group("/associations")
		associations.Use(authMiddleware.RoleRequired(models.RoleAdministrator))
		{
			associations.GET("", associationController.GetAll)
			associations.POST("", associationController.Create)
			associations.POST("/bulk", associationController.BulkCreate)
			associations.DELETE("/:studentId/:teacherId", associationController.Delete)
		}

		disciplinesAdmin := authenticated.Group("/disciplines")
		disciplinesAdmin.Use(authMiddleware.RoleRequired(models.RoleAdministrator))
		{
			disciplinesAdmin.POST("", disciplineController.Create)
			disciplinesAdmin.PUT("/:id", disciplineController.Update)
			disciplinesAdmin.DELETE("/:id", disciplineController.Delete)
			disciplinesAdmin.POST("/teachers", disciplineController.AddTeacher)
			disciplinesAdmin.DELETE("/:disciplineId/teachers/:teacherId", disciplineController.RemoveTeacher)
		}

		branchesAdmin := authenticated.Group("")
		branchesAdmin.Use(authMiddleware.RoleRequired(models.RoleAdministrator))
		{
			branchesAdmin.POST("/branches", branchController.CreateBranch)
			branchesAdmin.PUT("/branches/:id", branchController.UpdateBranch)
			branchesAdmin.DELETE("/branches/:id", branchController.DeleteBranch)
			branchesAdmin.POST("/classrooms", branchController.CreateClassroom)
			branchesAdmin.PUT("/classrooms/:id", branchController.UpdateClassroom)
			branchesAdmin.DELETE("/classrooms/:id", branchController.DeleteClassroom)
		}
		authenticated.GET("/classrooms/:id", branchController.GetClassroom)

		subscriptions := authenticated.Group("/subscriptions")
		{
			subscriptions.GET("/:id", subscriptionController.GetByID)
			subscriptions.GET("/:id/lessons", lessonController.GetBySubscription)
			subscriptions.GET("/active/:studentId/:teacherId", subscriptionController.GetActive)
			subscriptions.POST("/:id/archive", subscriptionController.Archive)

			subscriptionsStaff := subscriptions.Group("")
			subscriptionsStaff.Use(authMiddleware.AnyRoleRequired(models.RoleTeacher, models.RoleAdministrator))
			{
				subscriptionsStaff.POST("", subscriptionController.Create)
				subscriptionsStaff.PUT("/:id", subscriptionController.Update)
			}

			subscriptionsAdmin := subscriptions.Group("")
			subscriptionsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdministrator))
			{
				subscriptionsAdmin.DELETE("/:id", subscriptionController.Delete)
			}
		}

		lessons := authenticated.Group("/lessons")
		{
			lessons.GET("/upcoming", lessonController.GetUpcoming)
			lessons.GET("/:id", lessonController.GetByID)

			lessonsStaff := lessons.Group("")
			lessonsStaff.Use(authMiddleware.AnyRoleRequired(models.RoleTeacher, models.RoleAdministrator))
			{
				lessonsStaff.POST("", lessonController.Create)
				lessonsStaff.PUT("/:id", lessonController.Update)
				lessonsStaff.POST("/:id/finalize", lessonController.Finalize)
			}

			lessonsAdmin := lessons.Group("")
			lessonsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdministrator))
			{
				lessonsAdmin.PUT("/:id/status", lessonController.SetStatus)
				lessonsAdmin.DELETE("/:id", lessonController.Delete)
			}
		}
	}
}
