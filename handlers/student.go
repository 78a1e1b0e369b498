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

const studentColumns = "student_id, user_id, name, email, department, year, gpa, enrollment_date"

func scanStudent(row *sql.Row) (models.Student, error) {
	var s models.Student
	err := row.Scan(&s.StudentID, &s.UserID, &s.Name, &s.Email, &s.Department, &s.Year, &s.GPA, &s.EnrollmentDate)
	return s, err
}

// CreateStudentHandler creates a student record directly (outside signup)
func CreateStudentHandler(c *gin.Context) {
	var req models.Student
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	req.EnrollmentDate = time.Now()
	result, err := db.Exec(
		"INSERT INTO student (user_id, name, email, department, year, gpa, enrollment_date) VALUES (?, ?, ?, ?, ?, ?, ?)",
		req.UserID, req.Name, req.Email, req.Department, req.Year, req.GPA, req.EnrollmentDate,
	)
	if err != nil {
		log.Printf("Error inserting student: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	req.StudentID, _ = result.LastInsertId()
	c.JSON(http.StatusOK, req)
}

// ListStudentsHandler returns all students
func ListStudentsHandler(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	rows, err := db.Query("SELECT " + studentColumns + " FROM student")
	if err != nil {
		log.Printf("Error querying students: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.StudentID, &s.UserID, &s.Name, &s.Email, &s.Department, &s.Year, &s.GPA, &s.EnrollmentDate); err != nil {
			log.Printf("Error scanning student: %v", err)
			continue
		}
		students = append(students, s)
	}

	c.JSON(http.StatusOK, students)
}

// GetStudentHandler returns a student by id, or a null body when absent
func GetStudentHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	s, err := scanStudent(db.QueryRow("SELECT "+studentColumns+" FROM student WHERE student_id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusOK, nil)
			return
		}
		log.Printf("Error querying student: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, s)
}

// GetStudentByUserHandler returns the student profile linked to a user
func GetStudentByUserHandler(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	s, err := scanStudent(db.QueryRow("SELECT "+studentColumns+" FROM student WHERE user_id = ?", userID))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		log.Printf("Error querying student by user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, s)
}

// UpdateStudentHandler overwrites only the fields present in the payload
func UpdateStudentHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	var req models.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	s, err := scanStudent(db.QueryRow("SELECT "+studentColumns+" FROM student WHERE student_id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		log.Printf("Error querying student: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if req.Name != nil {
		s.Name = req.Name
	}
	if req.Email != nil {
		s.Email = req.Email
	}
	if req.Department != nil {
		s.Department = req.Department
	}
	if req.Year != nil {
		s.Year = req.Year
	}
	if req.GPA != nil {
		s.GPA = *req.GPA
	}

	_, err = db.Exec(
		"UPDATE student SET name = ?, email = ?, department = ?, year = ?, gpa = ? WHERE student_id = ?",
		s.Name, s.Email, s.Department, s.Year, s.GPA, id,
	)
	if err != nil {
		log.Printf("Error updating student: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, s)
}

// DeleteStudentHandler removes the student row. Grades and submissions
// referencing the student are left in place.
func DeleteStudentHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	if _, err := db.Exec("DELETE FROM student WHERE student_id = ?", id); err != nil {
		log.Printf("Error deleting student: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Status(http.StatusOK)
}
