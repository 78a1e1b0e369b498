package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studenttracker/models"
)

const instructorColumns = "instructor_id, user_id, name, email, department"

func scanInstructor(row *sql.Row) (models.Instructor, error) {
	var i models.Instructor
	err := row.Scan(&i.InstructorID, &i.UserID, &i.Name, &i.Email, &i.Department)
	return i, err
}

// CreateInstructorHandler creates an instructor record
func CreateInstructorHandler(c *gin.Context) {
	var req models.Instructor
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	result, err := db.Exec(
		"INSERT INTO instructor (user_id, name, email, department) VALUES (?, ?, ?, ?)",
		req.UserID, req.Name, req.Email, req.Department,
	)
	if err != nil {
		log.Printf("Error inserting instructor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	req.InstructorID, _ = result.LastInsertId()
	c.JSON(http.StatusOK, req)
}

// ListInstructorsHandler returns all instructors
func ListInstructorsHandler(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	rows, err := db.Query("SELECT " + instructorColumns + " FROM instructor")
	if err != nil {
		log.Printf("Error querying instructors: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	instructors := []models.Instructor{}
	for rows.Next() {
		var i models.Instructor
		if err := rows.Scan(&i.InstructorID, &i.UserID, &i.Name, &i.Email, &i.Department); err != nil {
			log.Printf("Error scanning instructor: %v", err)
			continue
		}
		instructors = append(instructors, i)
	}

	c.JSON(http.StatusOK, instructors)
}

// GetInstructorHandler returns an instructor by id
func GetInstructorHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instructor ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	i, err := scanInstructor(db.QueryRow("SELECT "+instructorColumns+" FROM instructor WHERE instructor_id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Instructor not found"})
			return
		}
		log.Printf("Error querying instructor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, i)
}

// GetInstructorByUserHandler returns the instructor profile linked to a user
func GetInstructorByUserHandler(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	i, err := scanInstructor(db.QueryRow("SELECT "+instructorColumns+" FROM instructor WHERE user_id = ?", userID))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Instructor not found"})
			return
		}
		log.Printf("Error querying instructor by user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, i)
}

// UpdateInstructorHandler overwrites only the fields present in the payload
func UpdateInstructorHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instructor ID"})
		return
	}

	var req models.UpdateInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	i, err := scanInstructor(db.QueryRow("SELECT "+instructorColumns+" FROM instructor WHERE instructor_id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Instructor not found"})
			return
		}
		log.Printf("Error querying instructor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if req.Name != nil {
		i.Name = *req.Name
	}
	if req.Email != nil {
		i.Email = req.Email
	}
	if req.Department != nil {
		i.Department = req.Department
	}

	_, err = db.Exec(
		"UPDATE instructor SET name = ?, email = ?, department = ? WHERE instructor_id = ?",
		i.Name, i.Email, i.Department, id,
	)
	if err != nil {
		log.Printf("Error updating instructor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, i)
}

// DeleteInstructorHandler removes the instructor row; owned courses keep
// their dangling instructor_id
func DeleteInstructorHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instructor ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	if _, err := db.Exec("DELETE FROM instructor WHERE instructor_id = ?", id); err != nil {
		log.Printf("Error deleting instructor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Status(http.StatusNoContent)
}
