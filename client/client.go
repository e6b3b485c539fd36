// Package client es un cliente Go para la API de Escuela DUX.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// APIError es un error devuelto por el servidor con su mensaje original.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// Client llama a la API. El token se adjunta como Bearer si está presente.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(method, path string, query url.Values, payload interface{}) (*envelope, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "Respuesta inválida del servidor"}
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "Error de conexión. Intenta de nuevo."
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	return &env, nil
}

func decode(env *envelope, out interface{}) error {
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

// User es el usuario devuelto por login.
type User struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"role"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login autentica y guarda el token en el cliente.
func (c *Client) Login(email, password string) (*LoginResult, error) {
	env, err := c.do("POST", "/api/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	var result LoginResult
	if err := decode(env, &result); err != nil {
		return nil, err
	}
	c.Token = result.Token
	return &result, nil
}

type RegisterInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Country  string `json:"country,omitempty"`
	CourseID uint   `json:"course_id"`
}

// Register crea la cuenta y deja la inscripción pendiente de aprobación.
func (c *Client) Register(input RegisterInput) (string, error) {
	env, err := c.do("POST", "/api/auth/register", nil, input)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// GetCourses devuelve el catálogo público como data cruda.
func (c *Client) GetCourses(modality string) (json.RawMessage, error) {
	query := url.Values{}
	if modality != "" {
		query.Set("modality", modality)
	}
	env, err := c.do("GET", "/api/courses/get_all", query, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) StudentDashboard(studentID uint) (json.RawMessage, error) {
	query := url.Values{"student_id": {strconv.FormatUint(uint64(studentID), 10)}}
	env, err := c.do("GET", "/api/student/dashboard_data", query, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) TeacherDashboard(teacherID uint) (json.RawMessage, error) {
	query := url.Values{"teacher_id": {strconv.FormatUint(uint64(teacherID), 10)}}
	env, err := c.do("GET", "/api/teacher/dashboard_data", query, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) AdminStats() (json.RawMessage, error) {
	env, err := c.do("GET", "/api/admin/get_stats", nil, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) GetUsers(role, search string, page int) (json.RawMessage, error) {
	query := url.Values{}
	if role != "" {
		query.Set("role", role)
	}
	if search != "" {
		query.Set("search", search)
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	env, err := c.do("GET", "/api/admin/get_users", query, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) GetEnrollments(status string, courseID uint) (json.RawMessage, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	if courseID > 0 {
		query.Set("course_id", strconv.FormatUint(uint64(courseID), 10))
	}
	env, err := c.do("GET", "/api/admin/get_enrollments", query, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ApproveEnrollment cambia el estado de una inscripción y devuelve el mensaje del servidor.
func (c *Client) ApproveEnrollment(enrollmentID uint, status, notes string) (string, error) {
	env, err := c.do("POST", "/api/admin/approve_enrollment", nil, map[string]interface{}{
		"enrollment_id": enrollmentID,
		"status":        status,
		"notes":         notes,
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

type CreateAssignmentInput struct {
	TeacherID   uint     `json:"teacher_id"`
	CourseID    uint     `json:"course_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	MaxGrade    *float64 `json:"max_grade,omitempty"`
}

func (c *Client) CreateAssignment(input CreateAssignmentInput) (string, error) {
	env, err := c.do("POST", "/api/teacher/create_assignment", nil, input)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *Client) GradeSubmission(teacherID, submissionID uint, grade float64, feedback string) (string, error) {
	env, err := c.do("POST", "/api/teacher/grade_submission", nil, map[string]interface{}{
		"teacher_id":    teacherID,
		"submission_id": submissionID,
		"grade":         grade,
		"feedback":      feedback,
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
