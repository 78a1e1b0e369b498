package handlers

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submissionRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	r, mock := newTestRouter(t)
	r.POST("/api/v1/submissions", CreateSubmissionHandler)
	r.GET("/api/v1/submissions/student/:studentId/assignment/:assignmentId", GetSubmissionByStudentAndAssignmentHandler)
	r.PUT("/api/v1/submissions/:id", UpdateSubmissionHandler)
	return r, mock
}

func TestCreateSubmissionStampsDate(t *testing.T) {
	r, mock := submissionRouter(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO submission (student_id, assignment_id, submission_date, file_path) VALUES (?, ?, ?, ?)")).
		WithArgs(int64(1), int64(2), sqlmock.AnyArg(), "uploads/hw1.pdf").
		WillReturnResult(sqlmock.NewResult(31, 1))

	w := performJSON(t, r, http.MethodPost, "/api/v1/submissions", map[string]interface{}{
		"studentId": 1, "assignmentId": 2, "filePath": "uploads/hw1.pdf",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(31), body["submissionId"])
	assert.NotEmpty(t, body["submissionDate"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSubmissionByStudentAndAssignment(t *testing.T) {
	r, mock := submissionRouter(t)
	submitted := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .+ FROM submission WHERE student_id = .+ AND assignment_id = ").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"submission_id", "student_id", "assignment_id", "submission_date", "file_path"}).
			AddRow(int64(31), int64(1), int64(2), submitted, "uploads/hw1.pdf"))

	w := performJSON(t, r, http.MethodGet, "/api/v1/submissions/student/1/assignment/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(31), decodeBody(t, w)["submissionId"])
}

func TestGetSubmissionByStudentAndAssignmentMissing(t *testing.T) {
	r, mock := submissionRouter(t)
	mock.ExpectQuery("SELECT .+ FROM submission WHERE student_id = .+ AND assignment_id = ").
		WithArgs(int64(1), int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"submission_id", "student_id", "assignment_id", "submission_date", "file_path"}))

	w := performJSON(t, r, http.MethodGet, "/api/v1/submissions/student/1/assignment/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Submission not found", decodeBody(t, w)["error"])
}

func TestUpdateSubmissionFilePathOnly(t *testing.T) {
	r, mock := submissionRouter(t)
	submitted := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .+ FROM submission WHERE submission_id = ?").
		WithArgs(int64(31)).
		WillReturnRows(sqlmock.NewRows([]string{"submission_id", "student_id", "assignment_id", "submission_date", "file_path"}).
			AddRow(int64(31), int64(1), int64(2), submitted, "uploads/hw1.pdf"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE submission SET file_path = ? WHERE submission_id = ?")).
		WithArgs("uploads/hw1-v2.pdf", int64(31)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := performJSON(t, r, http.MethodPut, "/api/v1/submissions/31", map[string]interface{}{
		"filePath": "uploads/hw1-v2.pdf",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "uploads/hw1-v2.pdf", decodeBody(t, w)["filePath"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
