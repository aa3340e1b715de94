package validator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type phoneOnly struct {
	Phone string `validate:"required,inmobile"`
}

type categoryOnly struct {
	FeeCategory string `validate:"required,feecategory"`
}

type dateOnly struct {
	RegistrationDate string `validate:"required,dateformat,pastdate"`
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"rfc3339", "2025-03-14T10:30:00Z", false},
		{"no zone", "2025-03-14T10:30:00", false},
		{"bare date", "2025-03-14", false},
		{"garbage", "14/03/2025", true},
		{"empty", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDate(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIndianMobileTag(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, Validate(ctx, phoneOnly{Phone: "9876543210"}))
	assert.NoError(t, Validate(ctx, phoneOnly{Phone: "6000000000"}))

	for _, phone := range []string{"5876543210", "98765", "98765432101", "abcdefghij", "987654321O"} {
		err := Validate(ctx, phoneOnly{Phone: phone})
		require.Error(t, err, "phone %q should be rejected", phone)
		assert.Equal(t, "Invalid Indian phone number format", err.Error())
	}
}

func TestFeeCategoryTag(t *testing.T) {
	ctx := context.Background()

	for _, cat := range []string{"Research Scholars", "Faculty Delegates", "R&D/Industry", "International", "Listeners"} {
		assert.NoError(t, Validate(ctx, categoryOnly{FeeCategory: cat}), cat)
	}

	err := Validate(ctx, categoryOnly{FeeCategory: "Students"})
	require.Error(t, err)
	assert.Equal(t, "Students is not a valid fee category", err.Error())
}

func TestDateTags(t *testing.T) {
	ctx := context.Background()

	yesterday := time.Now().Add(-24 * time.Hour).Format(time.RFC3339)
	assert.NoError(t, Validate(ctx, dateOnly{RegistrationDate: yesterday}))

	tomorrow := time.Now().Add(24 * time.Hour).Format(time.RFC3339)
	err := Validate(ctx, dateOnly{RegistrationDate: tomorrow})
	require.Error(t, err)
	assert.Equal(t, "Registration date cannot be in the future", err.Error())

	err = Validate(ctx, dateOnly{RegistrationDate: "not-a-date"})
	require.Error(t, err)
	assert.Equal(t, "Invalid date format", err.Error())
}

func TestRequiredMessageUsesFieldLabel(t *testing.T) {
	type form struct {
		Name string `validate:"required"`
	}
	err := Validate(context.Background(), form{})
	require.Error(t, err)
	assert.Equal(t, "Name is required", err.Error())
}
