package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type tokenParserMock struct {
	userID int64
	err    error
}

func (m tokenParserMock) ParseToken(string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.userID, nil
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	var gotUserID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = getUserIDFromContext(r.Context())
	})

	handler := AuthMiddleware(tokenParserMock{userID: 42})(next)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/", nil)
	request.Header.Set("Authorization", "Bearer sometoken")
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("expected %d, got %d", http.StatusOK, recorder.Code)
	}
	if gotUserID != 42 {
		t.Errorf("expected user id 42 in context, got %d", gotUserID)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler must not be called")
	})

	handler := AuthMiddleware(tokenParserMock{userID: 42})(next)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/", nil))

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler must not be called")
	})

	handler := AuthMiddleware(tokenParserMock{err: errors.New("bad token")})(next)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/", nil)
	request.Header.Set("Authorization", "Bearer garbage")
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
}

func TestRequestIDMiddleware_GeneratesAndEchoes(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = getRequestID(r.Context())
	})

	recorder := httptest.NewRecorder()
	RequestIDMiddleware(next).ServeHTTP(recorder, httptest.NewRequest("GET", "/", nil))

	if seen == "" {
		t.Error("expected a generated request id in context")
	}
	if recorder.Header().Get("X-Request-ID") != seen {
		t.Errorf("expected response header to echo %q, got %q", seen, recorder.Header().Get("X-Request-ID"))
	}
}

func TestRequestIDMiddleware_KeepsProvidedID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = getRequestID(r.Context())
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/", nil)
	request.Header.Set("X-Request-ID", "req-abc")
	RequestIDMiddleware(next).ServeHTTP(recorder, request)

	if seen != "req-abc" {
		t.Errorf("expected req-abc, got %q", seen)
	}
}
