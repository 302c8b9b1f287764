package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/vmerk/tutorium/internal/app/models/dto"
	"github.com/vmerk/tutorium/internal/pkg/apperrors"
)

func runHandler(t *testing.T, err error) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return w, body
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.ErrInvalidRole, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.ErrInvalidTransition, http.StatusConflict, dto.ErrorCodeInvalidTransition},
		{apperrors.ErrSubscriptionMismatch, http.StatusUnprocessableEntity, dto.ErrorCodeValidationFailed},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrLessonNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.ErrAssociationExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.ErrConstraintViolated, http.StatusConflict, dto.ErrorCodeResourceInUse},
		{errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tc := range cases {
		w, body := runHandler(t, tc.err)
		if w.Code != tc.status {
			t.Errorf("%v: status = %d, want %d", tc.err, w.Code, tc.status)
		}
		if body.Error.Code != tc.code {
			t.Errorf("%v: code = %s, want %s", tc.err, body.Error.Code, tc.code)
		}
		if body.Success {
			t.Errorf("%v: error responses must not report success", tc.err)
		}
	}
}

func TestHandleAPIErrorWrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("loading lesson 7: %w", apperrors.ErrLessonNotFound)
	w, body := runHandler(t, wrapped)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if body.Error.Code != dto.ErrorCodeResourceNotFound {
		t.Fatalf("code = %s", body.Error.Code)
	}
}

func TestHandleAPIErrorCustomError(t *testing.T) {
	custom := apperrors.NewCustomError(apperrors.ErrInvalidTransition, "cannot transition a completed lesson to missed")
	w, _ := runHandler(t, custom)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}
