package db

import (
	"database/sql"
	"fmt"
	"log"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS user (
		user_id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(255) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS student (
		student_id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT,
		name VARCHAR(255),
		email VARCHAR(255),
		department VARCHAR(255),
		year INT,
		gpa DOUBLE DEFAULT 0,
		enrollment_date DATETIME
	)`,
	`CREATE TABLE IF NOT EXISTS instructor (
		instructor_id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255),
		department VARCHAR(255)
	)`,
	`CREATE TABLE IF NOT EXISTS course (
		course_id INT AUTO_INCREMENT PRIMARY KEY,
		course_name VARCHAR(255) NOT NULL,
		instructor_id INT NOT NULL,
		description VARCHAR(1000)
	)`,
	`CREATE TABLE IF NOT EXISTS assignment (
		assignment_id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255),
		description VARCHAR(1000),
		due_date DATE,
		max_marks INT,
		instructor_id INT,
		course_id INT,
		created_at DATETIME
	)`,
	`CREATE TABLE IF NOT EXISTS grade (
		grade_id INT AUTO_INCREMENT PRIMARY KEY,
		student_id INT,
		assignment_id INT,
		score DOUBLE,
		feedback VARCHAR(1000),
		graded_by INT,
		graded_at DATETIME
	)`,
	`CREATE TABLE IF NOT EXISTS submission (
		submission_id INT AUTO_INCREMENT PRIMARY KEY,
		student_id INT NOT NULL,
		assignment_id INT NOT NULL,
		submission_date DATETIME,
		file_path VARCHAR(512)
	)`,
	`CREATE TABLE IF NOT EXISTS ai_prediction (
		prediction_id INT AUTO_INCREMENT PRIMARY KEY,
		student_id INT,
		predicted_score DOUBLE,
		risk_level VARCHAR(50),
		suggestion VARCHAR(1000),
		confidence_level DOUBLE,
		created_at DATETIME
	)`,
}

// InitSchema creates the application tables if they do not exist.
// No foreign key constraints: deletes do not cascade to dependent rows.
func InitSchema(database *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run schema statement: %v", err)
		}
	}
	log.Println("Database schema ready")
	return nil
}
