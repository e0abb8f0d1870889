package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageFilename(t *testing.T) {
	assert.NoError(t, ValidateImageFilename("leaf.jpg"))
	assert.NoError(t, ValidateImageFilename("IMG_0042.JPEG"))
	assert.NoError(t, ValidateImageFilename("mask.png"))

	assert.Error(t, ValidateImageFilename(""))
	assert.Error(t, ValidateImageFilename("   "))
	assert.Error(t, ValidateImageFilename("notes.txt"))
	assert.Error(t, ValidateImageFilename("../../etc/passwd.png"))
	assert.Error(t, ValidateImageFilename("a/b.jpg"))
	assert.Error(t, ValidateImageFilename("evil\x00.jpg"))
}

func TestValidateAnalysisID(t *testing.T) {
	assert.NoError(t, ValidateAnalysisID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	assert.Error(t, ValidateAnalysisID(""))
	assert.Error(t, ValidateAnalysisID("not-a-uuid"))
	assert.Error(t, ValidateAnalysisID("6ba7b810-9dad-11d1-80b4-00c04fd430c8; DROP TABLE analyses"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("farmer@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("farmer"))
	assert.Error(t, ValidateEmail("farmer@nodot"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("12345678"))
	assert.Error(t, ValidatePassword("short"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello\x00 "))
	assert.Equal(t, "a\tb", SanitizeString("a\tb\x01"))
}
