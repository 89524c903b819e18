package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]any{"id": 1})

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something went wrong")

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something went wrong", resp.Error)
}

func TestValidationError(t *testing.T) {
	type form struct {
		Username string `validate:"required"`
		Email    string `validate:"required,email"`
		UserUID  string `validate:"omitempty,uuid"`
		Nickname string `validate:"omitempty,alphanum"`
	}

	validate := validator.New()

	tests := []struct {
		name    string
		input   form
		wantMsg string
	}{
		{
			name:    "missing required field",
			input:   form{Email: "user@example.com"},
			wantMsg: "field Username is a required field",
		},
		{
			name:    "invalid email",
			input:   form{Username: "user1", Email: "not-an-email"},
			wantMsg: "field Email can contain only a valid email",
		},
		{
			name:    "invalid uuid",
			input:   form{Username: "user1", Email: "user@example.com", UserUID: "abc"},
			wantMsg: "field UserUID can contain only uuid",
		},
		{
			name:    "invalid alphanum",
			input:   form{Username: "user1", Email: "user@example.com", Nickname: "user #1"},
			wantMsg: "field Nickname can contain only numbers and letters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.input)
			require.Error(t, err)

			resp := ValidationError(err.(validator.ValidationErrors))
			assert.Equal(t, StatusError, resp.Status)
			assert.Contains(t, resp.Error, tt.wantMsg)
		})
	}
}

func TestValidationError_JoinsMultipleViolations(t *testing.T) {
	type form struct {
		Username string `validate:"required"`
		Email    string `validate:"required"`
	}

	err := validator.New().Struct(form{})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Contains(t, resp.Error, "field Username is a required field")
	assert.Contains(t, resp.Error, "field Email is a required field")
}
