// Package auth define los contratos de request/response del flujo de
// identidad. Los nombres de campo siguen el contrato que el frontend
// ya consume.
package auth

import "strings"

type RegisterRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Normalize() {
	r.Nombre = strings.TrimSpace(r.Nombre)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *RegisterRequest) Validate() []string {
	var missing []string
	if r.Nombre == "" {
		missing = append(missing, "nombre")
	}
	if r.Email == "" {
		missing = append(missing, "email")
	}
	if r.Password == "" {
		missing = append(missing, "password")
	}
	return missing
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type GoogleCallbackRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

// UserPayload es la vista pública de una cuenta en las respuestas de auth.
type UserPayload struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type RegisterResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	User      UserPayload `json:"user"`
	EmailSent bool        `json:"emailSent"`
}

// SessionResponse cubre login y callback de Google: usuario + token de sesión.
type SessionResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    UserPayload `json:"user"`
	Token   string      `json:"token,omitempty"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type AuthURLResponse struct {
	Success bool   `json:"success"`
	AuthURL string `json:"authUrl"`
}
