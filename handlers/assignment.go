package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"studenttracker/models"
)

const assignmentColumns = "assignment_id, title, description, due_date, max_marks, instructor_id, course_id, created_at"

func scanAssignment(row *sql.Row) (models.Assignment, error) {
	var a models.Assignment
	err := row.Scan(&a.AssignmentID, &a.Title, &a.Description, &a.DueDate, &a.MaxMarks, &a.InstructorID, &a.CourseID, &a.CreatedAt)
	return a, err
}

// CreateAssignmentHandler creates an assignment, stamping created_at
func CreateAssignmentHandler(c *gin.Context) {
	var req models.Assignment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	req.CreatedAt = time.Now()
	result, err := db.Exec(
		"INSERT INTO assignment (title, description, due_date, max_marks, instructor_id, course_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		req.Title, req.Description, req.DueDate, req.MaxMarks, req.InstructorID, req.CourseID, req.CreatedAt,
	)
	if err != nil {
		log.Printf("Error inserting assignment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	req.AssignmentID, _ = result.LastInsertId()
	c.JSON(http.StatusOK, req)
}

// ListAssignmentsHandler returns all assignments
func ListAssignmentsHandler(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	rows, err := db.Query("SELECT " + assignmentColumns + " FROM assignment")
	if err != nil {
		log.Printf("Error querying assignments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	assignments := []models.Assignment{}
	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(&a.AssignmentID, &a.Title, &a.Description, &a.DueDate, &a.MaxMarks, &a.InstructorID, &a.CourseID, &a.CreatedAt); err != nil {
			log.Printf("Error scanning assignment: %v", err)
			continue
		}
		assignments = append(assignments, a)
	}

	c.JSON(http.StatusOK, assignments)
}

// GetAssignmentHandler returns an assignment by id, or a null body when absent
func GetAssignmentHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	a, err := scanAssignment(db.QueryRow("SELECT "+assignmentColumns+" FROM assignment WHERE assignment_id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusOK, nil)
			return
		}
		log.Printf("Error querying assignment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, a)
}

// ListAssignmentsByCourseHandler returns the assignments of a course
func ListAssignmentsByCourseHandler(c *gin.Context) {
	courseID, err := strconv.ParseInt(c.Param("courseId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	rows, err := db.Query("SELECT "+assignmentColumns+" FROM assignment WHERE course_id = ?", courseID)
	if err != nil {
		log.Printf("Error querying assignments by course: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	assignments := []models.Assignment{}
	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(&a.AssignmentID, &a.Title, &a.Description, &a.DueDate, &a.MaxMarks, &a.InstructorID, &a.CourseID, &a.CreatedAt); err != nil {
			log.Printf("Error scanning assignment: %v", err)
			continue
		}
		assignments = append(assignments, a)
	}

	c.JSON(http.StatusOK, assignments)
}

// UpdateAssignmentHandler overwrites only the fields present in the payload
func UpdateAssignmentHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
		return
	}

	var req models.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	a, err := scanAssignment(db.QueryRow("SELECT "+assignmentColumns+" FROM assignment WHERE assignment_id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
			return
		}
		log.Printf("Error querying assignment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if req.Title != nil {
		a.Title = req.Title
	}
	if req.Description != nil {
		a.Description = req.Description
	}
	if req.DueDate != nil {
		a.DueDate = req.DueDate
	}
	if req.MaxMarks != nil {
		a.MaxMarks = req.MaxMarks
	}

	_, err = db.Exec(
		"UPDATE assignment SET title = ?, description = ?, due_date = ?, max_marks = ? WHERE assignment_id = ?",
		a.Title, a.Description, a.DueDate, a.MaxMarks, id,
	)
	if err != nil {
		log.Printf("Error updating assignment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, a)
}

// DeleteAssignmentHandler removes the assignment row
func DeleteAssignmentHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	if _, err := db.Exec("DELETE FROM assignment WHERE assignment_id = ?", id); err != nil {
		log.Printf("Error deleting assignment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Status(http.StatusOK)
}
