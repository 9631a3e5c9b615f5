package validation

import (
	"strings"
	"testing"

	"haggle/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("al"))
	assert.NoError(t, ValidateName("alice"))
	assert.Error(t, ValidateName("a"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName(strings.Repeat("a", 41)))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("alice@example.com"))
	assert.NoError(t, ValidateEmail("a.b+c@sub.example.co"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("@example.com"))
	assert.Error(t, ValidateEmail("alice@"))
	assert.Error(t, ValidateEmail(""))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("longenough1"))
	assert.NoError(t, ValidatePassword("12345678"))
	assert.Error(t, ValidatePassword("1234567"))
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 129)))
}

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, ValidateTitle("Lamp!"))
	assert.Error(t, ValidateTitle("Lamp"))
	assert.Error(t, ValidateTitle(strings.Repeat("a", 51)))
}

func TestValidateDescription(t *testing.T) {
	assert.NoError(t, ValidateDescription("Good"))
	assert.Error(t, ValidateDescription("abc"))
	assert.Error(t, ValidateDescription(strings.Repeat("a", 401)))
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, ValidatePrice(1))
	assert.NoError(t, ValidatePrice(10000))
	assert.Error(t, ValidatePrice(0))
	assert.Error(t, ValidatePrice(-5))
	assert.Error(t, ValidatePrice(10001))
}

func TestValidateCondition(t *testing.T) {
	assert.NoError(t, ValidateCondition("As new"))
	assert.NoError(t, ValidateCondition("Needs alterations"))
	assert.Error(t, ValidateCondition("Broken"))
	assert.Error(t, ValidateCondition(""))
}

func TestValidateCategory(t *testing.T) {
	assert.NoError(t, ValidateCategory("Rugs"))
	assert.Error(t, ValidateCategory("Cars"))
}

// Handlers decide between 400 and 500 by inspecting the error code, so every
// validator failure must carry CodeValidation.
func TestValidationFailuresCarryValidationCode(t *testing.T) {
	cases := map[string]error{
		"short name":      ValidateName("x"),
		"bad email":       ValidateEmail("not-an-email"),
		"short password":  ValidatePassword("short"),
		"short title":     ValidateTitle("abc"),
		"long desc":       ValidateDescription(strings.Repeat("a", 401)),
		"zero price":      ValidatePrice(0),
		"bad condition":   ValidateCondition("Broken"),
		"bad category":    ValidateCategory("Cars"),
		"empty delivery":  ValidateDelivery(nil),
		"bad delivery":    ValidateDelivery([]string{"Drone"}),
	}
	for name, err := range cases {
		assert.Error(t, err, name)
		assert.True(t, models.IsCode(err, models.CodeValidation), name)
	}
}

func TestValidateDelivery(t *testing.T) {
	assert.NoError(t, ValidateDelivery([]string{"Pick up"}))
	assert.NoError(t, ValidateDelivery([]string{"Pick up", "Ship"}))
	assert.Error(t, ValidateDelivery(nil))
	assert.Error(t, ValidateDelivery([]string{}))
	assert.Error(t, ValidateDelivery([]string{"Drone"}))
	assert.Error(t, ValidateDelivery([]string{"Pick up", "Drone"}))
}
