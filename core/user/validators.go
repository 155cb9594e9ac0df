package user

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lms/core"
)

// LoginRequest is the login form.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,emailaddr"`
	Password string `json:"password" form:"password" validate:"min=6"`
}

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email)
	return validate.Struct(lr)
}

// Registration is the registration form. A valid Registration is acknowledged but never stored.
type Registration struct {
	Name       string `json:"name" form:"name" validate:"notblank"`
	Department string `json:"department" form:"department" validate:"notblank"`
	Email      string `json:"email" form:"email" validate:"required,emailaddr"`
	Phone      string `json:"phone" form:"phone" validate:"required,phone10"`
	Password   string `json:"password" form:"password" validate:"min=8"`
}

func (reg *Registration) Validate(validate *validator.Validate) error {
	reg.Name = core.CleanString(reg.Name)
	reg.Department = core.CleanString(reg.Department)
	reg.Email = core.CleanString(reg.Email)
	reg.Phone = core.CleanString(reg.Phone)
	return validate.Struct(reg)
}
