package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careeros/backend/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("email", "a@x.com"),
			validator.ValidEmail("email", "a@x.com"),
		)
		require.NoError(t, err)
	})

	t.Run("collects every failure", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("email", ""),
			validator.MinLenString("password", "short", 8),
		)
		require.Error(t, err)

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, []string{"email", "password"}, verrs.Fields())
		assert.Equal(t, []string{"is required"}, verrs.Get("email"))
	})
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"a@x.com", "user.name+tag@example.co.uk"}
	for _, email := range valid {
		assert.NoError(t, validator.Apply(validator.ValidEmail("email", email)), email)
	}

	invalid := []string{"", "not-an-email", "@x.com", "a@", "Name <a@x.com>", "a b@x.com"}
	for _, email := range invalid {
		assert.Error(t, validator.Apply(validator.ValidEmail("email", email)), email)
	}
}

func TestLengthRules(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.MinLenString("password", "longenough1", 8)))
	assert.Error(t, validator.Apply(validator.MinLenString("password", "short", 8)))
	assert.NoError(t, validator.Apply(validator.MaxLenString("password", "ok", 72)))
	assert.Error(t, validator.Apply(validator.MaxLenString("password", string(make([]byte, 73)), 72)))
}
