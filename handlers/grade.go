package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studenttracker/models"
)

const gradeColumns = "grade_id, student_id, assignment_id, score, feedback, graded_by, graded_at"

func scanGrade(row *sql.Row) (models.Grade, error) {
	var g models.Grade
	err := row.Scan(&g.GradeID, &g.StudentID, &g.AssignmentID, &g.Score, &g.Feedback, &g.GradedBy, &g.GradedAt)
	return g, err
}

func collectGrades(rows *sql.Rows) []models.Grade {
	grades := []models.Grade{}
	for rows.Next() {
		var g models.Grade
		if err := rows.Scan(&g.GradeID, &g.StudentID, &g.AssignmentID, &g.Score, &g.Feedback, &g.GradedBy, &g.GradedAt); err != nil {
			log.Printf("Error scanning grade: %v", err)
			continue
		}
		grades = append(grades, g)
	}
	return grades
}

// CreateGradeHandler records a grade
func CreateGradeHandler(c *gin.Context) {
	var req models.Grade
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	result, err := db.Exec(
		"INSERT INTO grade (student_id, assignment_id, score, feedback, graded_by, graded_at) VALUES (?, ?, ?, ?, ?, ?)",
		req.StudentID, req.AssignmentID, req.Score, req.Feedback, req.GradedBy, req.GradedAt,
	)
	if err != nil {
		log.Printf("Error inserting grade: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	req.GradeID, _ = result.LastInsertId()
	c.JSON(http.StatusOK, req)
}

// ListGradesHandler returns all grades
func ListGradesHandler(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	rows, err := db.Query("SELECT " + gradeColumns + " FROM grade")
	if err != nil {
		log.Printf("Error querying grades: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	c.JSON(http.StatusOK, collectGrades(rows))
}

// GetGradeHandler returns a grade by id, or a null body when absent
func GetGradeHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid grade ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	g, err := scanGrade(db.QueryRow("SELECT "+gradeColumns+" FROM grade WHERE grade_id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusOK, nil)
			return
		}
		log.Printf("Error querying grade: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, g)
}

// ListGradesByStudentHandler returns a student's grade history
func ListGradesByStudentHandler(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	rows, err := db.Query("SELECT "+gradeColumns+" FROM grade WHERE student_id = ?", studentID)
	if err != nil {
		log.Printf("Error querying grades by student: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	c.JSON(http.StatusOK, collectGrades(rows))
}

// ListGradesByAssignmentHandler returns the grades recorded for an assignment
func ListGradesByAssignmentHandler(c *gin.Context) {
	assignmentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	rows, err := db.Query("SELECT "+gradeColumns+" FROM grade WHERE assignment_id = ?", assignmentID)
	if err != nil {
		log.Printf("Error querying grades by assignment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	c.JSON(http.StatusOK, collectGrades(rows))
}

// UpdateGradeHandler overwrites only the fields present in the payload
func UpdateGradeHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid grade ID"})
		return
	}

	var req models.UpdateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	g, err := scanGrade(db.QueryRow("SELECT "+gradeColumns+" FROM grade WHERE grade_id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Grade not found"})
			return
		}
		log.Printf("Error querying grade: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if req.Score != nil {
		g.Score = req.Score
	}
	if req.Feedback != nil {
		g.Feedback = req.Feedback
	}

	_, err = db.Exec(
		"UPDATE grade SET score = ?, feedback = ? WHERE grade_id = ?",
		g.Score, g.Feedback, id,
	)
	if err != nil {
		log.Printf("Error updating grade: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, g)
}

// DeleteGradeHandler removes the grade row
func DeleteGradeHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid grade ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	if _, err := db.Exec("DELETE FROM grade WHERE grade_id = ?", id); err != nil {
		log.Printf("Error deleting grade: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Status(http.StatusOK)
}
