package handlers

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradeRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	r, mock := newTestRouter(t)
	r.POST("/api/v1/grades", CreateGradeHandler)
	r.GET("/api/v1/grades/student/:id", ListGradesByStudentHandler)
	r.PUT("/api/v1/grades/:id", UpdateGradeHandler)
	return r, mock
}

func TestCreateGrade(t *testing.T) {
	r, mock := gradeRouter(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO grade (student_id, assignment_id, score, feedback, graded_by, graded_at) VALUES (?, ?, ?, ?, ?, ?)")).
		WithArgs(int64(1), int64(2), 87.5, "Good work", int64(4), nil).
		WillReturnResult(sqlmock.NewResult(41, 1))

	w := performJSON(t, r, http.MethodPost, "/api/v1/grades", map[string]interface{}{
		"studentId": 1, "assignmentId": 2, "score": 87.5, "feedback": "Good work", "gradedBy": 4,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(41), decodeBody(t, w)["gradeId"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListGradesByStudent(t *testing.T) {
	r, mock := gradeRouter(t)
	mock.ExpectQuery("SELECT .+ FROM grade WHERE student_id = ?").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"grade_id", "student_id", "assignment_id", "score", "feedback", "graded_by", "graded_at"}).
			AddRow(int64(41), int64(1), int64(2), 87.5, nil, nil, nil).
			AddRow(int64(42), int64(1), int64(3), 92.0, "Great", int64(4), nil))

	w := performJSON(t, r, http.MethodGet, "/api/v1/grades/student/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "87.5")
	assert.Contains(t, w.Body.String(), "92")
}

func TestUpdateGradePartialMerge(t *testing.T) {
	r, mock := gradeRouter(t)
	mock.ExpectQuery("SELECT .+ FROM grade WHERE grade_id = ?").
		WithArgs(int64(41)).
		WillReturnRows(sqlmock.NewRows([]string{"grade_id", "student_id", "assignment_id", "score", "feedback", "graded_by", "graded_at"}).
			AddRow(int64(41), int64(1), int64(2), 87.5, "Good work", int64(4), nil))
	// score changes, feedback is kept
	mock.ExpectExec(regexp.QuoteMeta("UPDATE grade SET score = ?, feedback = ? WHERE grade_id = ?")).
		WithArgs(90.0, "Good work", int64(41)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := performJSON(t, r, http.MethodPut, "/api/v1/grades/41", map[string]interface{}{"score": 90})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(90), body["score"])
	assert.Equal(t, "Good work", body["feedback"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
