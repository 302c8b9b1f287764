package services

import (
	"context"
	"errors"
	"testing"

	"github.com/vmerk/tutorium/internal/app/models/dto"
	"github.com/vmerk/tutorium/internal/pkg/apperrors"
)

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		FullName:    "Ivan Sidorov",
		Email:       "ivan@example.com",
		Password:    "Passw0rd",
		Birthday:    "2008-02-15",
		Gender:      "male",
		City:        "Moscow",
		PhoneNumber: "+79161234567",
		Role:        "student",
	}
}

// Register's input checks run before any storage access, so a bare service is
// enough to exercise the rejection paths.
func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(nil, nil, nil)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*dto.RegisterRequest)
	}{
		{"empty email", func(r *dto.RegisterRequest) { r.Email = " " }},
		{"malformed email", func(r *dto.RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *dto.RegisterRequest) { r.Password = "Ab1" }},
		{"password without digits", func(r *dto.RegisterRequest) { r.Password = "passwords" }},
		{"password without letters", func(r *dto.RegisterRequest) { r.Password = "12345678" }},
		{"malformed phone", func(r *dto.RegisterRequest) { r.PhoneNumber = "phone" }},
		{"malformed birthday", func(r *dto.RegisterRequest) { r.Birthday = "15.02.2008" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := registerRequest()
			tc.mutate(req)
			if _, err := svc.Register(ctx, req); !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Fatalf("got %v, want ErrValidationFailed", err)
			}
		})
	}

	req := registerRequest()
	req.Role = "janitor"
	if _, err := svc.Register(ctx, req); !errors.Is(err, apperrors.ErrInvalidRole) {
		t.Fatalf("unknown role: got %v, want ErrInvalidRole", err)
	}
}
