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

const submissionColumns = "submission_id, student_id, assignment_id, submission_date, file_path"

func scanSubmission(row *sql.Row) (models.Submission, error) {
	var s models.Submission
	err := row.Scan(&s.SubmissionID, &s.StudentID, &s.AssignmentID, &s.SubmissionDate, &s.FilePath)
	return s, err
}

func collectSubmissions(rows *sql.Rows) []models.Submission {
	submissions := []models.Submission{}
	for rows.Next() {
		var s models.Submission
		if err := rows.Scan(&s.SubmissionID, &s.StudentID, &s.AssignmentID, &s.SubmissionDate, &s.FilePath); err != nil {
			log.Printf("Error scanning submission: %v", err)
			continue
		}
		submissions = append(submissions, s)
	}
	return submissions
}

// CreateSubmissionHandler records a submission, stamping submission_date
func CreateSubmissionHandler(c *gin.Context) {
	var req models.Submission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	req.SubmissionDate = time.Now()
	result, err := db.Exec(
		"INSERT INTO submission (student_id, assignment_id, submission_date, file_path) VALUES (?, ?, ?, ?)",
		req.StudentID, req.AssignmentID, req.SubmissionDate, req.FilePath,
	)
	if err != nil {
		log.Printf("Error inserting submission: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	req.SubmissionID, _ = result.LastInsertId()
	c.JSON(http.StatusOK, req)
}

// ListSubmissionsHandler returns all submissions
func ListSubmissionsHandler(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	rows, err := db.Query("SELECT " + submissionColumns + " FROM submission")
	if err != nil {
		log.Printf("Error querying submissions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	c.JSON(http.StatusOK, collectSubmissions(rows))
}

// GetSubmissionHandler returns a submission by id
func GetSubmissionHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	s, err := scanSubmission(db.QueryRow("SELECT "+submissionColumns+" FROM submission WHERE submission_id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		log.Printf("Error querying submission: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, s)
}

// ListSubmissionsByStudentHandler returns a student's submissions
func ListSubmissionsByStudentHandler(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("studentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	rows, err := db.Query("SELECT "+submissionColumns+" FROM submission WHERE student_id = ?", studentID)
	if err != nil {
		log.Printf("Error querying submissions by student: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	c.JSON(http.StatusOK, collectSubmissions(rows))
}

// ListSubmissionsByAssignmentHandler returns the submissions for an assignment
func ListSubmissionsByAssignmentHandler(c *gin.Context) {
	assignmentID, err := strconv.ParseInt(c.Param("assignmentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	rows, err := db.Query("SELECT "+submissionColumns+" FROM submission WHERE assignment_id = ?", assignmentID)
	if err != nil {
		log.Printf("Error querying submissions by assignment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	c.JSON(http.StatusOK, collectSubmissions(rows))
}

// GetSubmissionByStudentAndAssignmentHandler returns the first submission a
// student made for an assignment. Duplicates are not prevented at the data
// model; the first matching row wins.
func GetSubmissionByStudentAndAssignmentHandler(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("studentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}
	assignmentID, err := strconv.ParseInt(c.Param("assignmentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	s, err := scanSubmission(db.QueryRow(
		"SELECT "+submissionColumns+" FROM submission WHERE student_id = ? AND assignment_id = ? LIMIT 1",
		studentID, assignmentID,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		log.Printf("Error querying submission: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, s)
}

// UpdateSubmissionHandler overwrites only the file path when supplied
func UpdateSubmissionHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var req models.UpdateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	s, err := scanSubmission(db.QueryRow("SELECT "+submissionColumns+" FROM submission WHERE submission_id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		log.Printf("Error querying submission: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if req.FilePath != nil {
		s.FilePath = req.FilePath
	}

	_, err = db.Exec("UPDATE submission SET file_path = ? WHERE submission_id = ?", s.FilePath, id)
	if err != nil {
		log.Printf("Error updating submission: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, s)
}

// DeleteSubmissionHandler removes the submission row
func DeleteSubmissionHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	if _, err := db.Exec("DELETE FROM submission WHERE submission_id = ?", id); err != nil {
		log.Printf("Error deleting submission: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Status(http.StatusNoContent)
}
