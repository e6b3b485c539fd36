package client

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"message": "Inicio de sesión exitoso",
			"data": {
				"token": "abc123",
				"user": {"id": 7, "full_name": "Ana Ruiz", "email": "ana@test.com", "role": {"id": 3, "name": "student"}}
			}
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	result, err := c.Login("ana@test.com", "clave123")
	assert.NoError(t, err)
	assert.Equal(t, "abc123", result.Token)
	assert.Equal(t, uint(7), result.User.ID)
	assert.Equal(t, "student", result.User.Role.Name)

	// El token queda guardado para las siguientes llamadas
	assert.Equal(t, "abc123", c.Token)
}

func TestClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success": false, "error": "Credenciales incorrectas"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login("ana@test.com", "mala")
	assert.Error(t, err)

	apiErr, ok := err.(*APIError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Credenciales incorrectas", apiErr.Message)
}

func TestClientInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetCourses("")
	assert.Error(t, err)

	apiErr, ok := err.(*APIError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Respuesta inválida del servidor", apiErr.Message)
}

func TestClientSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer mi-token", r.Header.Get("Authorization"))
		assert.Equal(t, "5", r.URL.Query().Get("student_id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "message": "OK", "data": {}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.Token = "mi-token"
	_, err := c.StudentDashboard(5)
	assert.NoError(t, err)
}

func TestClientQueryFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pending", r.URL.Query().Get("status"))
		assert.Equal(t, "3", r.URL.Query().Get("course_id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "message": "OK", "data": {"enrollments": []}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetEnrollments("pending", 3)
	assert.NoError(t, err)
}
