// Package user exposes login, registration and logout.
package user

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/service"
)

type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      Profile   `json:"user"`
}

type LoginBody struct {
	Email    string `json:"email" required:"true" format:"email"`
	Password string `json:"password" required:"true"`
}

type LoginInput struct {
	Body LoginBody
}

type RegisterBody struct {
	Email    string `json:"email" required:"true" format:"email"`
	Password string `json:"password" required:"true"`
	Name     string `json:"name,omitempty" doc:"Display name, derived from the email when empty"`
}

type RegisterInput struct {
	Body RegisterBody
}

type SessionOutput struct {
	Body Session
}

type authService interface {
	Login(ctx context.Context, email, password string) (service.LoginResult, error)
	Register(ctx context.Context, email, password, name string) (service.LoginResult, error)
	Logout(ctx context.Context, userID, token string) error
}

type Handler struct {
	AuthService authService
}

func NewHandler(svc authService) *Handler {
	return &Handler{AuthService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/v1/auth/login",
		Summary:     "Sign in",
		Tags:        []string{"Auth"},
	}, h.login)

	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/v1/auth/register",
		Summary:       "Create an account and sign in",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, h.register)

	huma.Register(api, huma.Operation{
		OperationID:   "logout",
		Method:        http.MethodPost,
		Path:          "/v1/auth/logout",
		Summary:       "Sign out and revoke the token",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusNoContent,
		Security:      []map[string][]string{{auth.SchemeName: {}}},
	}, h.logout)
}

const missingCredentials = "Please enter both email and password"

// parseCredentials rejects blank fields the schema's required check lets through.
func parseCredentials(email, password string) error {
	fields := map[string]string{}
	if strings.TrimSpace(email) == "" {
		fields["email"] = missingCredentials
	}
	if strings.TrimSpace(password) == "" {
		fields["password"] = missingCredentials
	}
	if len(fields) == 0 {
		return nil
	}
	return &ledger.ValidationError{Fields: fields}
}

func (h *Handler) login(ctx context.Context, input *LoginInput) (*SessionOutput, error) {
	if err := parseCredentials(input.Body.Email, input.Body.Password); err != nil {
		return nil, apierror.From(err, "")
	}

	result, err := h.AuthService.Login(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, apierror.From(err, "failed to sign in")
	}
	return &SessionOutput{Body: toSession(result)}, nil
}

func (h *Handler) register(ctx context.Context, input *RegisterInput) (*SessionOutput, error) {
	if err := parseCredentials(input.Body.Email, input.Body.Password); err != nil {
		return nil, apierror.From(err, "")
	}

	result, err := h.AuthService.Register(ctx, input.Body.Email, input.Body.Password, input.Body.Name)
	if err != nil {
		return nil, apierror.From(err, "failed to register")
	}
	return &SessionOutput{Body: toSession(result)}, nil
}

func (h *Handler) logout(ctx context.Context, _ *struct{}) (*struct{}, error) {
	userID, err := apierror.UserID(ctx)
	if err != nil {
		return nil, err
	}
	token, _ := auth.TokenFrom(ctx)

	if err := h.AuthService.Logout(ctx, userID, token); err != nil {
		return nil, apierror.From(err, "failed to sign out")
	}
	return nil, nil
}

func toSession(result service.LoginResult) Session {
	return Session{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User: Profile{
			ID:        result.Profile.ID,
			Email:     result.Profile.Email,
			Name:      result.Profile.Name,
			Avatar:    result.Profile.Avatar,
			CreatedAt: result.Profile.CreatedAt,
		},
	}
}
