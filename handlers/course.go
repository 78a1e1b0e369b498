package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studenttracker/models"
)

const courseColumns = "course_id, course_name, instructor_id, description"

func scanCourse(row *sql.Row) (models.Course, error) {
	var course models.Course
	err := row.Scan(&course.CourseID, &course.CourseName, &course.InstructorID, &course.Description)
	return course, err
}

// CreateCourseHandler creates a course
func CreateCourseHandler(c *gin.Context) {
	var req models.Course
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	result, err := db.Exec(
		"INSERT INTO course (course_name, instructor_id, description) VALUES (?, ?, ?)",
		req.CourseName, req.InstructorID, req.Description,
	)
	if err != nil {
		log.Printf("Error inserting course: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	req.CourseID, _ = result.LastInsertId()
	c.JSON(http.StatusOK, req)
}

// ListCoursesHandler returns all courses
func ListCoursesHandler(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	rows, err := db.Query("SELECT " + courseColumns + " FROM course")
	if err != nil {
		log.Printf("Error querying courses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.CourseID, &course.CourseName, &course.InstructorID, &course.Description); err != nil {
			log.Printf("Error scanning course: %v", err)
			continue
		}
		courses = append(courses, course)
	}

	c.JSON(http.StatusOK, courses)
}

// GetCourseHandler returns a course by id
func GetCourseHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	course, err := scanCourse(db.QueryRow("SELECT "+courseColumns+" FROM course WHERE course_id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		log.Printf("Error querying course: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, course)
}

// ListCoursesByInstructorHandler returns the courses owned by an instructor
func ListCoursesByInstructorHandler(c *gin.Context) {
	instructorID, err := strconv.ParseInt(c.Param("instructorId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instructor ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	rows, err := db.Query("SELECT "+courseColumns+" FROM course WHERE instructor_id = ?", instructorID)
	if err != nil {
		log.Printf("Error querying courses by instructor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.CourseID, &course.CourseName, &course.InstructorID, &course.Description); err != nil {
			log.Printf("Error scanning course: %v", err)
			continue
		}
		courses = append(courses, course)
	}

	c.JSON(http.StatusOK, courses)
}

// UpdateCourseHandler overwrites only the fields present in the payload
func UpdateCourseHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}

	var req models.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	course, err := scanCourse(db.QueryRow("SELECT "+courseColumns+" FROM course WHERE course_id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		log.Printf("Error querying course: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if req.CourseName != nil {
		course.CourseName = *req.CourseName
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.InstructorID != nil {
		course.InstructorID = *req.InstructorID
	}

	_, err = db.Exec(
		"UPDATE course SET course_name = ?, instructor_id = ?, description = ? WHERE course_id = ?",
		course.CourseName, course.InstructorID, course.Description, id,
	)
	if err != nil {
		log.Printf("Error updating course: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, course)
}

// DeleteCourseHandler removes the course row; assignments keep their
// dangling course_id
func DeleteCourseHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	if _, err := db.Exec("DELETE FROM course WHERE course_id = ?", id); err != nil {
		log.Printf("Error deleting course: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Status(http.StatusNoContent)
}
