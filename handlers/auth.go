package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"studenttracker/auth"
	"studenttracker/models"
)

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func optStringField(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok {
		return &v
	}
	return nil
}

// yearField coerces the optional year value, which may arrive as a JSON
// number or a numeric string. Returns ok=false for any other form.
func yearField(m map[string]interface{}, key string) (*int, bool) {
	v, present := m[key]
	if !present || v == nil {
		return nil, true
	}
	switch y := v.(type) {
	case float64:
		n := int(y)
		return &n, true
	case string:
		n, err := strconv.Atoi(y)
		if err != nil {
			return nil, false
		}
		return &n, true
	}
	return nil, false
}

// SignupHandler registers a user and provisions exactly one role profile.
// Both writes run in a single transaction so a failed profile insert never
// leaves a profile-less user behind.
func SignupHandler(c *gin.Context) {
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil || len(req) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Request body cannot be empty"})
		return
	}

	username := stringField(req, "username")
	email := stringField(req, "email")
	password := stringField(req, "password")
	roleStr := stringField(req, "role")
	name := optStringField(req, "name")
	department := optStringField(req, "department")

	if strings.TrimSpace(username) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username is required"})
		return
	}
	if strings.TrimSpace(email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}
	if strings.TrimSpace(password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password is required"})
		return
	}
	if strings.TrimSpace(roleStr) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Role is required"})
		return
	}

	year, ok := yearField(req, "year")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Year must be a valid number"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	trimmedUsername := strings.TrimSpace(username)
	trimmedEmail := strings.TrimSpace(email)

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM user WHERE username = ?", trimmedUsername).Scan(&count); err != nil {
		log.Printf("Error checking username existence: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Signup failed: " + err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
		return
	}

	if err := db.QueryRow("SELECT COUNT(*) FROM user WHERE email = ?", trimmedEmail).Scan(&count); err != nil {
		log.Printf("Error checking email existence: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Signup failed: " + err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
		return
	}

	role, ok := models.ParseRole(roleStr)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid role. Must be STUDENT or INSTRUCTOR"})
		return
	}

	tx, err := db.Begin()
	if err != nil {
		log.Printf("Error starting transaction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Signup failed: " + err.Error()})
		return
	}
	defer tx.Rollback() // no-op once committed

	result, err := tx.Exec(
		"INSERT INTO user (username, email, password, role) VALUES (?, ?, ?, ?)",
		trimmedUsername, trimmedEmail, password, string(role),
	)
	if err != nil {
		log.Printf("Error inserting user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Signup failed: " + err.Error()})
		return
	}
	userID, err := result.LastInsertId()
	if err != nil {
		log.Printf("Error getting last insert ID: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Signup failed: " + err.Error()})
		return
	}

	switch role {
	case models.RoleStudent:
		_, err = tx.Exec(
			"INSERT INTO student (user_id, name, email, department, year, enrollment_date) VALUES (?, ?, ?, ?, ?, ?)",
			userID, name, email, department, year, time.Now(),
		)
		if err != nil {
			log.Printf("Error inserting student profile: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Signup failed: " + err.Error()})
			return
		}
	case models.RoleInstructor:
		instructorName := trimmedUsername
		if name != nil && strings.TrimSpace(*name) != "" {
			instructorName = *name
		}
		_, err = tx.Exec(
			"INSERT INTO instructor (user_id, name, email, department) VALUES (?, ?, ?, ?)",
			userID, instructorName, email, department,
		)
		if err != nil {
			log.Printf("Error inserting instructor profile: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Signup failed: " + err.Error()})
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("Error committing signup transaction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Signup failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Signup successful",
		"user": gin.H{
			"id":       userID,
			"username": trimmedUsername,
			"email":    trimmedEmail,
			"role":     role,
		},
	})
}

// LoginHandler authenticates a user against the stored credentials and
// declared role, and issues a session token
func LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	var user models.User
	err := db.QueryRow(
		"SELECT user_id, username, email, password, role FROM user WHERE username = ?",
		req.Username,
	).Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Role)
	if err != nil {
		if err == sql.ErrNoRows {
			// same message as a wrong password, to avoid user enumeration
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		} else {
			log.Printf("Error querying user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed: " + err.Error()})
		}
		return
	}

	if user.Password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		return
	}

	if string(user.Role) != req.Role {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid role for this user"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		log.Printf("Error signing token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}
