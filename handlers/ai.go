package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"studenttracker/config"
	"studenttracker/models"
)

type scorerRequest struct {
	StudentID     int64     `json:"studentId"`
	PreviousMarks []float64 `json:"previousMarks"`
}

// scoreField parses the scorer's predictedScore, which may come back as a
// JSON number or as a numeric string.
func scoreField(v interface{}) (float64, error) {
	switch s := v.(type) {
	case float64:
		return s, nil
	case string:
		return strconv.ParseFloat(s, 64)
	case json.Number:
		return s.Float64()
	}
	return 0, fmt.Errorf("missing or non-numeric predictedScore")
}

// PredictHandler forwards a student's grade history to the external scoring
// service, persists the returned prediction, and relays the raw scorer
// response to the caller. Single best-effort call: no retry, no backoff.
func PredictHandler(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("studentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	rows, err := db.Query("SELECT score FROM grade WHERE student_id = ?", studentID)
	if err != nil {
		log.Printf("Error querying grades: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	var scores []float64
	for rows.Next() {
		var score sql.NullFloat64
		if err := rows.Scan(&score); err != nil {
			log.Printf("Error scanning grade score: %v", err)
			continue
		}
		scores = append(scores, score.Float64)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error iterating grades: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if len(scores) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No marks found for this student"})
		return
	}

	body, err := json.Marshal(scorerRequest{StudentID: studentID, PreviousMarks: scores})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction failed: " + err.Error()})
		return
	}

	resp, err := http.Post(config.ConfigInstance.AIServiceURL, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("Error calling prediction service: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction failed: " + err.Error()})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("Prediction service returned status %d", resp.StatusCode)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Prediction failed: service returned status %d", resp.StatusCode)})
		return
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("Error decoding prediction response: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction failed: " + err.Error()})
		return
	}

	predictedScore, err := scoreField(result["predictedScore"])
	if err != nil {
		log.Printf("Invalid prediction response: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction failed: " + err.Error()})
		return
	}
	risk, ok := result["risk"].(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction failed: missing risk in response"})
		return
	}
	suggestion, ok := result["suggestion"].(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction failed: missing suggestion in response"})
		return
	}

	_, err = db.Exec(
		"INSERT INTO ai_prediction (student_id, predicted_score, risk_level, suggestion, created_at) VALUES (?, ?, ?, ?, ?)",
		studentID, predictedScore, risk, suggestion, time.Now(),
	)
	if err != nil {
		log.Printf("Error saving prediction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSavedPredictionHandler returns the most recently saved prediction for
// a student, or a null body when none exists
func GetSavedPredictionHandler(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("studentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	db := c.MustGet("db").(*sql.DB)
	var p models.AiPrediction
	err = db.QueryRow(`
		SELECT prediction_id, student_id, predicted_score, risk_level, suggestion, confidence_level, created_at
		FROM ai_prediction
		WHERE student_id = ?
		ORDER BY created_at DESC, prediction_id DESC
		LIMIT 1`, studentID).Scan(
		&p.PredictionID, &p.StudentID, &p.PredictedScore, &p.RiskLevel, &p.Suggestion, &p.ConfidenceLevel, &p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusOK, nil)
			return
		}
		log.Printf("Error querying saved prediction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, p)
}
