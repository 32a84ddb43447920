package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	errs := ValidateRegister("ana@example.com", "ana_17", "Ana", "secret1")
	assert.False(t, errs.HasErrors())

	errs = ValidateRegister("not-an-email", "ab", "", "short")
	assert.True(t, errs.HasErrors())
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "display_name")
	assert.Contains(t, errs, "password")

	errs = ValidateRegister("ana@example.com", "ana luis", "Ana", "secret1")
	assert.Contains(t, errs, "username")
}

func TestValidateLogin(t *testing.T) {
	assert.False(t, ValidateLogin("ana", "secret1").HasErrors())
	assert.Contains(t, ValidateLogin("  ", "secret1"), "username")
	assert.Contains(t, ValidateLogin("ana", ""), "password")
}
