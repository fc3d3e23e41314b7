package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/skillhub/internal/app/controllers"
	"github.com/yigit/skillhub/internal/app/pages"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	env *controllers.Env,
	homeController *controllers.HomeController,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
) {
	router.GET("/", homeController.Home)

	// Student routes
	students := router.Group("/students")
	{
		students.GET("", studentController.ListStudents)
		students.POST("", studentController.CreateStudent)
		students.GET("/export.xlsx", studentController.ExportStudents)
		students.POST("/import", studentController.ImportStudents)

		students.GET("/:id", studentController.GetStudent)
		students.POST("/:id", studentController.UpdateStudent)
		students.POST("/:id/delete", studentController.DeleteStudent)
		students.POST("/:id/enrollments", studentController.AddEnrollments)
		students.POST("/:id/enrollments/:enrollmentId/delete", studentController.RemoveEnrollment)
	}

	// Course routes
	courses := router.Group("/courses")
	{
		courses.GET("", courseController.ListCourses)
		courses.POST("", courseController.CreateCourse)
		courses.GET("/export.xlsx", courseController.ExportCourses)

		courses.GET("/:id", courseController.GetCourse)
		courses.POST("/:id", courseController.UpdateCourse)
		courses.POST("/:id/delete", courseController.DeleteCourse)
		courses.POST("/:id/enrollments/:enrollmentId/delete", courseController.RemoveEnrollment)
	}

	router.GET(pages.NotFoundPath, env.NotFound)
	router.NoRoute(env.NotFound)
}
