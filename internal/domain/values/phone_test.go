package values

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPhoneNumber(t *testing.T) {
	tests := []struct {
		name     string
		number   string
		expected string
		wantErr  bool
	}{
		{
			name:     "valid E.164 US number",
			number:   "+15551234567",
			expected: "+15551234567",
			wantErr:  false,
		},
		{
			name:     "number with parentheses",
			number:   "(555) 123-4567",
			expected: "5551234567",
			wantErr:  false,
		},
		{
			name:     "number with dashes",
			number:   "555-123-4567",
			expected: "5551234567",
			wantErr:  false,
		},
		{
			name:     "number with periods",
			number:   "555.123.4567",
			expected: "5551234567",
			wantErr:  false,
		},
		{
			name:     "surrounding whitespace",
			number:   "  +44 20 7123 4567  ",
			expected: "+442071234567",
			wantErr:  false,
		},
		{
			name:     "plus not in first position is dropped",
			number:   "555+1234567",
			expected: "5551234567",
			wantErr:  false,
		},
		{
			name:     "minimum length 8 digits",
			number:   "12345678",
			expected: "12345678",
			wantErr:  false,
		},
		{
			name:     "maximum length 15 digits",
			number:   "+123456789012345",
			expected: "+123456789012345",
			wantErr:  false,
		},
		{
			name:    "empty number",
			number:  "",
			wantErr: true,
		},
		{
			name:    "too short",
			number:  "123",
			wantErr: true,
		},
		{
			name:    "too long",
			number:  "12345678901234567",
			wantErr: true,
		},
		{
			name:    "non-digit content",
			number:  "abc12345678",
			wantErr: true,
		},
		{
			name:    "only formatting characters",
			number:  "() - .",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phone, err := NewPhoneNumber(tt.number)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, phone.String())
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"+15551234567",
		"(555) 123-4567",
		"  +44 20.7123-4567 ",
		"555+1234+567",
		"",
		"abc-123",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("+91"+strings.Repeat("9", 10)))
	assert.False(t, IsValid("123"))
	assert.False(t, IsValid("12345678901234567"))
	assert.False(t, IsValid("abc12345678"))
}

func TestPhoneNumber_Hash(t *testing.T) {
	a := MustNewPhoneNumber("+15551234567")
	b := MustNewPhoneNumber("(555) 123-4567")

	// Hash depends only on the normalized form.
	assert.Equal(t, a.Hash(), MustNewPhoneNumber("+1 555 123 4567").Hash())
	assert.NotEqual(t, a.Hash(), b.Hash())
	assert.Len(t, a.Hash(), 64)
}

func TestPhoneNumber_JSON(t *testing.T) {
	phone := MustNewPhoneNumber("+15551234567")

	data, err := json.Marshal(phone)
	require.NoError(t, err)
	assert.Equal(t, `"+15551234567"`, string(data))

	var decoded PhoneNumber
	require.NoError(t, json.Unmarshal([]byte(`"(555) 123-4567"`), &decoded))
	assert.Equal(t, "5551234567", decoded.String())

	assert.Error(t, json.Unmarshal([]byte(`"bad"`), &decoded))
}
