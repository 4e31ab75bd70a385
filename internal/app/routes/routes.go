package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campustrack/campustrack/internal/app/controllers"
	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	facultyController *controllers.FacultyController,
	activityController *controllers.ActivityController,
	certificateController *controllers.CertificateController,
	eventController *controllers.EventController,
	analyticsController *controllers.AnalyticsController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.Me)

		// Student routes
		students := authenticated.Group("/students")
		{
			students.GET("", studentController.GetAllStudents)
			students.GET("/:id", studentController.GetStudentByID)
			students.PUT("/:id", studentController.UpdateStudent)
			students.GET("/:id/activities", studentController.GetStudentActivities)
			students.GET("/:id/certificates", studentController.GetStudentCertificates)

			studentsAdmin := students.Group("")
			studentsAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin), string(models.RoleFaculty)))
			{
				studentsAdmin.POST("", studentController.CreateStudent)
			}
		}

		// Faculty routes
		faculty := authenticated.Group("/faculty")
		{
			faculty.GET("", facultyController.GetAllFaculty)
			faculty.GET("/:id", facultyController.GetFacultyByID)
			faculty.PUT("/:id", facultyController.UpdateFaculty)

			facultyAdmin := faculty.Group("")
			facultyAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				facultyAdmin.POST("", facultyController.CreateFaculty)
			}
		}

		// Activity routes
		activities := authenticated.Group("/activities")
		{
			activities.GET("", activityController.GetAllActivities)
			activities.GET("/search", activityController.SearchActivities)
			activities.GET("/:id", activityController.GetActivityByID)
			activities.POST("", activityController.CreateActivity)
			activities.PUT("/:id", activityController.UpdateActivity)

			// Review transitions are reserved for faculty and admins.
			activitiesReview := activities.Group("")
			activitiesReview.Use(authMiddleware.RoleRequired(string(models.RoleFaculty), string(models.RoleAdmin)))
			{
				activitiesReview.POST("/:id/approve", activityController.ApproveActivity)
				activitiesReview.POST("/:id/reject", activityController.RejectActivity)
			}
		}

		// Certificate routes
		certificates := authenticated.Group("/certificates")
		{
			certificates.GET("", certificateController.GetAllCertificates)
			certificates.GET("/:id", certificateController.GetCertificateByID)
			certificates.POST("", certificateController.CreateCertificate)
			certificates.PUT("/:id", certificateController.UpdateCertificate)
			certificates.DELETE("/:id", certificateController.DeleteCertificate)

			certificatesReview := certificates.Group("")
			certificatesReview.Use(authMiddleware.RoleRequired(string(models.RoleFaculty), string(models.RoleAdmin)))
			{
				certificatesReview.POST("/:id/approve", certificateController.ApproveCertificate)
				certificatesReview.POST("/:id/reject", certificateController.RejectCertificate)
			}
		}

		// Event routes
		events := authenticated.Group("/events")
		{
			events.GET("", eventController.GetAllEvents)
			events.GET("/search", eventController.SearchEvents)
			events.GET("/:id", eventController.GetEventByID)
			events.POST("", eventController.CreateEvent)
			events.PUT("/:id", eventController.UpdateEvent)
			events.DELETE("/:id", eventController.DeleteEvent)
			events.POST("/:id/register", eventController.RegisterForEvent)
			events.GET("/:id/registrations", eventController.GetEventRegistrations)
		}

		// Analytics routes
		authenticated.GET("/analytics/statistics", analyticsController.GetStatistics)
	}
}
