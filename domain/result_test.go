package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailure_AlwaysHasMessage(t *testing.T) {
	res := Failure("")
	assert.False(t, res.Status)
	assert.Equal(t, MsgGeneric, res.Message)
	assert.True(t, res.Failed())
}

func TestFailWith_DropsData(t *testing.T) {
	res := FailWith[*Account](Failure(MsgUserNotExists))
	assert.False(t, res.Status)
	assert.Equal(t, MsgUserNotExists, res.Message)
	assert.Nil(t, res.Data)
}

func TestDataResult_JSON(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{
			name:     "success with data",
			value:    SuccessData(&LoginResult{Token: "abc"}),
			expected: `{"status":true,"data":{"token":"abc"}}`,
		},
		{
			name:     "failure without data",
			value:    FailureData[*LoginResult](MsgLoginFailed),
			expected: `{"status":false,"message":"Login failed"}`,
		},
		{
			name:     "plain success message",
			value:    Success(MsgVerificationSent),
			expected: `{"status":true,"message":"Verification email sent"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(raw))
		})
	}
}
