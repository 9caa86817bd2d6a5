package request

import (
	"errors"
	"fmt"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
)

// passwordPattern needs lookaheads, which the stdlib regexp engine rejects.
var passwordPattern = regexp2.MustCompile(`^(?=.*[A-Za-z])(?=.*\d).{8,72}$`, regexp2.None)

func validatePassword(value interface{}) error {
	password, ok := value.(string)
	if !ok {
		return errors.New("password must be a string")
	}

	matched, err := passwordPattern.MatchString(password)
	if err != nil {
		return fmt.Errorf("password validation failed: %w", err)
	}
	if !matched {
		return errors.New("password must be at least 8 characters and contain a letter and a digit")
	}

	return nil
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
}

func (req *SignupRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, validation.Length(3, 254)),
		validation.Field(&req.Password, validation.Required, validation.By(validatePassword)),
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Role, validation.Required, validation.In("exhibitor", "organizer")),
		validation.Field(&req.Company, validation.Length(0, 100)),
		validation.Field(&req.Phone, validation.Length(0, 20)),
	)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required),
		validation.Field(&req.Password, validation.Required),
	)
}
