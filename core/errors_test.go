package core

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type contactForm struct {
	Name  string `form:"name" validate:"notblank"`
	Email string `json:"email" validate:"required,emailaddr"`
	Phone string `form:"phone" validate:"omitempty,phone10"`
	Notes string `form:"-" validate:"max=5"`
}

func TestFieldErrors(t *testing.T) {
	validate, translator := NewValidator()

	tests := []struct {
		name   string
		form   contactForm
		want   map[string]string
		wantOK bool
	}{
		{name: "valid", form: contactForm{Name: "x", Email: "a@b.co"}},
		{name: "valid phone", form: contactForm{Name: "x", Email: "a@b.co", Phone: "0123456789"}},
		{
			name:   "all wrong",
			form:   contactForm{Name: " ", Email: "a@b", Phone: "12345"},
			want:   map[string]string{"name": "this field cannot be blank", "email": "invalid email format", "phone": "phone must be 10 digits"},
			wantOK: true,
		},
		{
			name:   "missing email",
			form:   contactForm{Name: "x"},
			want:   map[string]string{"email": "this field is required"},
			wantOK: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.form)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			got, ok := FieldErrors(errors.Wrap(err, "validating"), translator)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldErrors_ValidationError(t *testing.T) {
	err := NewValidationError(errors.New("bad"), FieldError{Field: "instructor", Error: "unknown instructor"})
	got, ok := FieldErrors(err, nil)
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"instructor": "unknown instructor"}, got)
	assert.Equal(t, "bad", err.Error())

	_, ok = FieldErrors(errors.New("plain"), nil)
	assert.False(t, ok)
	_, ok = FieldErrors(nil, nil)
	assert.False(t, ok)
}

func TestIsShutdown(t *testing.T) {
	assert.True(t, IsShutdown(errors.Wrap(NewShutdownError("integrity"), "ctx")))
	assert.False(t, IsShutdown(errors.New("integrity")))
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Hello", CleanString("  Hello \n"))
	assert.Equal(t, "hello", CleanString(" HeLLo ", true))
}
