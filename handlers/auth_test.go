package handlers

import (
	"database/sql"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	r, mock := newTestRouter(t)
	r.POST("/api/v1/auth/signup", SignupHandler)
	r.POST("/api/v1/auth/login", LoginHandler)
	return r, mock
}

func expectNoDuplicates(mock sqlmock.Sqlmock, username, email string) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM user WHERE username = ?")).
		WithArgs(username).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM user WHERE email = ?")).
		WithArgs(email).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
}

func TestSignupValidationOrder(t *testing.T) {
	cases := []struct {
		name    string
		payload map[string]interface{}
		message string
	}{
		{"empty body", map[string]interface{}{}, "Request body cannot be empty"},
		{"missing username", map[string]interface{}{"email": "a@b.c"}, "Username is required"},
		{"blank username", map[string]interface{}{"username": "   "}, "Username is required"},
		{"missing email", map[string]interface{}{"username": "alice"}, "Email is required"},
		{"missing password", map[string]interface{}{"username": "alice", "email": "a@b.c"}, "Password is required"},
		{"missing role", map[string]interface{}{"username": "alice", "email": "a@b.c", "password": "pw"}, "Role is required"},
		{"bad year string", map[string]interface{}{"username": "alice", "email": "a@b.c", "password": "pw", "role": "STUDENT", "year": "abc"}, "Year must be a valid number"},
		{"bad year type", map[string]interface{}{"username": "alice", "email": "a@b.c", "password": "pw", "role": "STUDENT", "year": true}, "Year must be a valid number"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := signupRouter(t)
			w := performJSON(t, r, http.MethodPost, "/api/v1/auth/signup", tc.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.message, decodeBody(t, w)["message"])
		})
	}
}

func TestSignupInvalidRole(t *testing.T) {
	r, mock := signupRouter(t)
	expectNoDuplicates(mock, "alice", "a@b.c")

	w := performJSON(t, r, http.MethodPost, "/api/v1/auth/signup", map[string]interface{}{
		"username": "alice", "email": "a@b.c", "password": "pw", "role": "ADMIN",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid role. Must be STUDENT or INSTRUCTOR", decodeBody(t, w)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupDuplicateUsername(t *testing.T) {
	r, mock := signupRouter(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM user WHERE username = ?")).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	w := performJSON(t, r, http.MethodPost, "/api/v1/auth/signup", map[string]interface{}{
		"username": "alice", "email": "a@b.c", "password": "pw", "role": "STUDENT",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username already exists", decodeBody(t, w)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupCreatesStudentProfile(t *testing.T) {
	r, mock := signupRouter(t)
	expectNoDuplicates(mock, "alice", "alice@uni.edu")
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user (username, email, password, role) VALUES (?, ?, ?, ?)")).
		WithArgs("alice", "alice@uni.edu", "pw", "STUDENT").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO student (user_id, name, email, department, year, enrollment_date) VALUES (?, ?, ?, ?, ?, ?)")).
		WithArgs(int64(7), "Alice", "alice@uni.edu", "CS", 3, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	w := performJSON(t, r, http.MethodPost, "/api/v1/auth/signup", map[string]interface{}{
		"username": "alice", "email": "alice@uni.edu", "password": "pw",
		"role": "student", "name": "Alice", "department": "CS", "year": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Signup successful", body["message"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, float64(7), user["id"])
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "STUDENT", user["role"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupYearAsNumericString(t *testing.T) {
	r, mock := signupRouter(t)
	expectNoDuplicates(mock, "bob", "bob@uni.edu")
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user")).
		WithArgs("bob", "bob@uni.edu", "pw", "STUDENT").
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO student")).
		WithArgs(int64(8), nil, "bob@uni.edu", nil, 2, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	w := performJSON(t, r, http.MethodPost, "/api/v1/auth/signup", map[string]interface{}{
		"username": "bob", "email": "bob@uni.edu", "password": "pw",
		"role": "STUDENT", "year": "2",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupCreatesInstructorProfileWithNameFallback(t *testing.T) {
	r, mock := signupRouter(t)
	expectNoDuplicates(mock, "prof", "prof@uni.edu")
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user")).
		WithArgs("prof", "prof@uni.edu", "pw", "INSTRUCTOR").
		WillReturnResult(sqlmock.NewResult(9, 1))
	// blank name falls back to the username
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO instructor (user_id, name, email, department) VALUES (?, ?, ?, ?)")).
		WithArgs(int64(9), "prof", "prof@uni.edu", "Math").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	w := performJSON(t, r, http.MethodPost, "/api/v1/auth/signup", map[string]interface{}{
		"username": "prof", "email": "prof@uni.edu", "password": "pw",
		"role": "INSTRUCTOR", "name": "  ", "department": "Math",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupRollsBackWhenProfileInsertFails(t *testing.T) {
	r, mock := signupRouter(t)
	expectNoDuplicates(mock, "carol", "carol@uni.edu")
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user")).
		WithArgs("carol", "carol@uni.edu", "pw", "STUDENT").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO student")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	w := performJSON(t, r, http.MethodPost, "/api/v1/auth/signup", map[string]interface{}{
		"username": "carol", "email": "carol@uni.edu", "password": "pw", "role": "STUDENT",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decodeBody(t, w)["message"], "Signup failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func expectUserRow(mock sqlmock.Sqlmock, username, password, role string) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, username, email, password, role FROM user WHERE username = ?")).
		WithArgs(username).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "username", "email", "password", "role"}).
			AddRow(int64(7), username, username+"@uni.edu", password, role))
}

func TestLoginSuccess(t *testing.T) {
	r, mock := signupRouter(t)
	expectUserRow(mock, "alice", "pw", "STUDENT")

	w := performJSON(t, r, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"username": "alice", "password": "pw", "role": "STUDENT",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	tokenString := body["token"].(string)
	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, "STUDENT", claims["role"])
	assert.NotEmpty(t, claims["jti"])

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginFailures(t *testing.T) {
	t.Run("unknown username", func(t *testing.T) {
		r, mock := signupRouter(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, username, email, password, role FROM user WHERE username = ?")).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)
		w := performJSON(t, r, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
			"username": "ghost", "password": "pw", "role": "STUDENT",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid username or password", decodeBody(t, w)["message"])
	})

	t.Run("wrong password", func(t *testing.T) {
		r, mock := signupRouter(t)
		expectUserRow(mock, "alice", "pw", "STUDENT")
		w := performJSON(t, r, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
			"username": "alice", "password": "nope", "role": "STUDENT",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid username or password", decodeBody(t, w)["message"])
	})

	t.Run("wrong role", func(t *testing.T) {
		r, mock := signupRouter(t)
		expectUserRow(mock, "alice", "pw", "STUDENT")
		w := performJSON(t, r, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
			"username": "alice", "password": "pw", "role": "INSTRUCTOR",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid role for this user", decodeBody(t, w)["message"])
	})
}

func TestLoginIssuesDistinctTokens(t *testing.T) {
	r, mock := signupRouter(t)
	expectUserRow(mock, "alice", "pw", "STUDENT")
	expectUserRow(mock, "alice", "pw", "STUDENT")

	payload := map[string]interface{}{"username": "alice", "password": "pw", "role": "STUDENT"}
	first := decodeBody(t, performJSON(t, r, http.MethodPost, "/api/v1/auth/login", payload))
	second := decodeBody(t, performJSON(t, r, http.MethodPost, "/api/v1/auth/login", payload))

	assert.NotEqual(t, first["token"], second["token"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
