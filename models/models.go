package models

import (
	"strings"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleInstructor Role = "INSTRUCTOR"
)

// ParseRole converts a raw string into a Role. This is the only place a
// case-insensitive comparison happens; everything downstream uses the
// typed constants.
func ParseRole(s string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(RoleStudent):
		return RoleStudent, true
	case string(RoleInstructor):
		return RoleInstructor, true
	}
	return "", false
}

// User is the root identity record
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
}

// Student is the role profile for STUDENT users
type Student struct {
	StudentID      int64     `json:"studentId"`
	UserID         *int64    `json:"userId"`
	Name           *string   `json:"name"`
	Email          *string   `json:"email"`
	Department     *string   `json:"department"`
	Year           *int      `json:"year"`
	GPA            float64   `json:"gpa"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
}

// Instructor is the role profile for INSTRUCTOR users
type Instructor struct {
	InstructorID int64   `json:"instructorId"`
	UserID       int64   `json:"userId" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Email        *string `json:"email"`
	Department   *string `json:"department"`
}

// Course model
type Course struct {
	CourseID     int64   `json:"courseId"`
	CourseName   string  `json:"courseName" binding:"required"`
	InstructorID int64   `json:"instructorId" binding:"required"`
	Description  *string `json:"description"`
}

// Assignment model
type Assignment struct {
	AssignmentID int64      `json:"assignmentId"`
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	DueDate      *time.Time `json:"dueDate"`
	MaxMarks     *int       `json:"maxMarks"`
	InstructorID *int64     `json:"instructorId"`
	CourseID     *int64     `json:"courseId"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Grade model. Nothing prevents multiple rows per (student, assignment).
type Grade struct {
	GradeID      int64      `json:"gradeId"`
	StudentID    int64      `json:"studentId"`
	AssignmentID int64      `json:"assignmentId"`
	Score        *float64   `json:"score"`
	Feedback     *string    `json:"feedback"`
	GradedBy     *int64     `json:"gradedBy"`
	GradedAt     *time.Time `json:"gradedAt"`
}

// Submission model
type Submission struct {
	SubmissionID   int64     `json:"submissionId"`
	StudentID      int64     `json:"studentId" binding:"required"`
	AssignmentID   int64     `json:"assignmentId" binding:"required"`
	SubmissionDate time.Time `json:"submissionDate"`
	FilePath       *string   `json:"filePath"`
}

// AiPrediction is a persisted result of the external scoring service
type AiPrediction struct {
	PredictionID    int64     `json:"predictionId"`
	StudentID       int64     `json:"studentId"`
	PredictedScore  float64   `json:"predictedScore"`
	RiskLevel       string    `json:"riskLevel"`
	Suggestion      string    `json:"suggestion"`
	ConfidenceLevel *float64  `json:"confidenceLevel"`
	CreatedAt       time.Time `json:"createdAt"`
}

// LoginRequest for authentication
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateStudentRequest carries the fields a student update may overwrite
type UpdateStudentRequest struct {
	Name       *string  `json:"name"`
	Email      *string  `json:"email"`
	Department *string  `json:"department"`
	Year       *int     `json:"year"`
	GPA        *float64 `json:"gpa"`
}

// UpdateInstructorRequest for partial instructor updates
type UpdateInstructorRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Department *string `json:"department"`
}

// UpdateCourseRequest for partial course updates
type UpdateCourseRequest struct {
	CourseName   *string `json:"courseName"`
	Description  *string `json:"description"`
	InstructorID *int64  `json:"instructorId"`
}

// UpdateAssignmentRequest for partial assignment updates
type UpdateAssignmentRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	MaxMarks    *int       `json:"maxMarks"`
}

// UpdateGradeRequest for partial grade updates
type UpdateGradeRequest struct {
	Score    *float64 `json:"score"`
	Feedback *string  `json:"feedback"`
}

// UpdateSubmissionRequest for partial submission updates
type UpdateSubmissionRequest struct {
	FilePath *string `json:"filePath"`
}
