package authapi

import (
	"time"

	"github.com/gridleapp/gridle/internal/domain/models"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,password"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type requestResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type completeResetRequest struct {
	Token    string `json:"token" validate:"required,len=64,hexadecimal"`
	Password string `json:"password" validate:"required,min=8,password"`
}

// userView is the auth response shape; it never carries credential or
// token material.
type userView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func viewOf(u *models.User) userView {
	return userView{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Image:     u.Image,
		CreatedAt: u.CreatedAt,
	}
}
