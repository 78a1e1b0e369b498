package routes

import (
	"github.com/gin-gonic/gin"

	"studenttracker/auth"
	"studenttracker/handlers"
)

// SetupRoutes configures the API routes
func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	// Public routes
	api.POST("/auth/signup", handlers.SignupHandler)
	api.POST("/auth/login", handlers.LoginHandler)

	// Protected routes
	protected := api.Group("")
	protected.Use(auth.AuthMiddleware())

	// Student routes
	protected.POST("/students", handlers.CreateStudentHandler)
	protected.GET("/students", handlers.ListStudentsHandler)
	protected.GET("/students/:id", handlers.GetStudentHandler)
	protected.GET("/students/user/:userId", handlers.GetStudentByUserHandler)
	protected.PUT("/students/:id", handlers.UpdateStudentHandler)
	protected.DELETE("/students/:id", handlers.DeleteStudentHandler)

	// Instructor routes
	protected.POST("/instructors", handlers.CreateInstructorHandler)
	protected.GET("/instructors", handlers.ListInstructorsHandler)
	protected.GET("/instructors/:id", handlers.GetInstructorHandler)
	protected.GET("/instructors/user/:userId", handlers.GetInstructorByUserHandler)
	protected.PUT("/instructors/:id", handlers.UpdateInstructorHandler)
	protected.DELETE("/instructors/:id", handlers.DeleteInstructorHandler)

	// Course routes
	protected.POST("/courses", handlers.CreateCourseHandler)
	protected.GET("/courses", handlers.ListCoursesHandler)
	protected.GET("/courses/:id", handlers.GetCourseHandler)
	protected.GET("/courses/instructor/:instructorId", handlers.ListCoursesByInstructorHandler)
	protected.PUT("/courses/:id", handlers.UpdateCourseHandler)
	protected.DELETE("/courses/:id", handlers.DeleteCourseHandler)

	// Assignment routes
	protected.POST("/assignments", handlers.CreateAssignmentHandler)
	protected.GET("/assignments", handlers.ListAssignmentsHandler)
	protected.GET("/assignments/:id", handlers.GetAssignmentHandler)
	protected.GET("/assignments/course/:courseId", handlers.ListAssignmentsByCourseHandler)
	protected.PUT("/assignments/:id", handlers.UpdateAssignmentHandler)
	protected.DELETE("/assignments/:id", handlers.DeleteAssignmentHandler)

	// Grade routes
	protected.POST("/grades", handlers.CreateGradeHandler)
	protected.GET("/grades", handlers.ListGradesHandler)
	protected.GET("/grades/:id", handlers.GetGradeHandler)
	protected.GET("/grades/student/:id", handlers.ListGradesByStudentHandler)
	protected.GET("/grades/assignment/:id", handlers.ListGradesByAssignmentHandler)
	protected.PUT("/grades/:id", handlers.UpdateGradeHandler)
	protected.DELETE("/grades/:id", handlers.DeleteGradeHandler)

	// Submission routes
	protected.POST("/submissions", handlers.CreateSubmissionHandler)
	protected.GET("/submissions", handlers.ListSubmissionsHandler)
	protected.GET("/submissions/:id", handlers.GetSubmissionHandler)
	protected.GET("/submissions/student/:studentId/assignment/:assignmentId", handlers.GetSubmissionByStudentAndAssignmentHandler)
	protected.GET("/submissions/student/:studentId", handlers.ListSubmissionsByStudentHandler)
	protected.GET("/submissions/assignment/:assignmentId", handlers.ListSubmissionsByAssignmentHandler)
	protected.PUT("/submissions/:id", handlers.UpdateSubmissionHandler)
	protected.DELETE("/submissions/:id", handlers.DeleteSubmissionHandler)

	// AI prediction routes
	protected.GET("/ai/predict/:studentId", handlers.PredictHandler)
	protected.GET("/ai/prediction/:studentId", handlers.GetSavedPredictionHandler)
}
