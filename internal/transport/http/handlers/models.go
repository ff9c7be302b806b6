package handlers

import (
	"github.com/pribylovaa/account-service/internal/models"
	"github.com/pribylovaa/account-service/internal/service"
)

// DTO HTTP-слоя. Хэш пароля наружу не отдаётся; токены — непрозрачные
// строки, формат клиенту не гарантируется.

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Email        string `json:"email"`
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken     string `json:"access_token"`
	RefreshToken    string `json:"refresh_token"`
	TokenType       string `json:"token_type"`
	AccessExpiresAt int64  `json:"access_expires_at"` // Unix UTC
}

// Регистрация не принимает is_active/is_superuser: строгий декодер
// отклонит тело с этими полями, привилегии выдаёт только суперпользователь
// через update.
type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

type updateUserRequest struct {
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	FullName    *string `json:"full_name,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	IsSuperuser *bool   `json:"is_superuser,omitempty"`
}

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
	CreatedAt   int64  `json:"created_at"` // Unix UTC
	UpdatedAt   int64  `json:"updated_at"` // Unix UTC
}

func tokenPairResponse(pair *models.TokenPair) tokenResponse {
	return tokenResponse{
		AccessToken:     pair.AccessToken,
		RefreshToken:    pair.RefreshToken,
		TokenType:       pair.TokenType,
		AccessExpiresAt: pair.AccessExpiresAt.Unix(),
	}
}

func userFromModel(user *models.User) userResponse {
	return userResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		FullName:    user.FullName,
		IsActive:    user.IsActive,
		IsSuperuser: user.IsSuperuser,
		CreatedAt:   user.CreatedAt.Unix(),
		UpdatedAt:   user.UpdatedAt.Unix(),
	}
}

func (r createUserRequest) toInput() service.CreateUserInput {
	return service.CreateUserInput{
		Email:    r.Email,
		Password: r.Password,
		FullName: r.FullName,
	}
}

func (r updateUserRequest) toInput() service.UpdateUserInput {
	return service.UpdateUserInput{
		Email:       r.Email,
		Password:    r.Password,
		FullName:    r.FullName,
		IsActive:    r.IsActive,
		IsSuperuser: r.IsSuperuser,
	}
}
