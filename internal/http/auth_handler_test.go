package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ruxsilva/basket-app/internal/domain"
	"github.com/ruxsilva/basket-app/internal/service"
)

type authServiceMock struct {
	user  *domain.User
	token string
	err   error
}

func (m authServiceMock) Register(context.Context, string, string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m authServiceMock) Login(context.Context, string, string) (*domain.User, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return m.user, m.token, nil
}

func TestRegister_Success(t *testing.T) {
	mock := authServiceMock{user: &domain.User{ID: 1, Email: "alice@example.com"}}
	handler := NewAuthHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/auth/register",
		strings.NewReader(`{"email":"alice@example.com","password":"s3cret"}`))
	handler.Register(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d: %s", http.StatusCreated, recorder.Code, recorder.Body.String())
	}

	var resp UserResponseDTO
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != 1 || resp.Email != "alice@example.com" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Token != "" {
		t.Errorf("register must not return a token, got %q", resp.Token)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	handler := NewAuthHandler(authServiceMock{err: service.ErrEmailExists}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/auth/register",
		strings.NewReader(`{"email":"alice@example.com","password":"s3cret"}`))
	handler.Register(recorder, request)

	if recorder.Code != http.StatusConflict {
		t.Errorf("expected %d, got %d", http.StatusConflict, recorder.Code)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	handler := NewAuthHandler(authServiceMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/auth/register",
		strings.NewReader(`{"email":"","password":""}`))
	handler.Register(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestLogin_ReturnsToken(t *testing.T) {
	mock := authServiceMock{
		user:  &domain.User{ID: 1, Email: "alice@example.com"},
		token: "header.payload.signature",
	}
	handler := NewAuthHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"s3cret"}`))
	handler.Login(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, recorder.Code, recorder.Body.String())
	}

	var resp UserResponseDTO
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token != "header.payload.signature" {
		t.Errorf("expected token in response, got %q", resp.Token)
	}
}

func TestLogin_WrongCredentials(t *testing.T) {
	handler := NewAuthHandler(authServiceMock{err: service.ErrInvalidCredentials}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"wrong"}`))
	handler.Login(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
}

func TestLogin_ServiceFailure(t *testing.T) {
	handler := NewAuthHandler(authServiceMock{err: errors.New("db down")}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"s3cret"}`))
	handler.Login(recorder, request)

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("expected %d, got %d", http.StatusInternalServerError, recorder.Code)
	}
}
