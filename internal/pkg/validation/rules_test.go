package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type profileInput struct {
	Github   *string `validate:"omitempty,github_url"`
	Linkedin *string `validate:"omitempty,linkedin_url"`
}

func strPtr(s string) *string { return &s }

func TestNew_CustomRules(t *testing.T) {
	v := New()

	t.Run("profile urls", func(t *testing.T) {
		assert.NoError(t, v.Struct(profileInput{}))
		assert.NoError(t, v.Struct(profileInput{
			Github:   strPtr("https://github.com/asha"),
			Linkedin: strPtr("https://www.linkedin.com/in/asha"),
		}))
		assert.Error(t, v.Struct(profileInput{Github: strPtr("https://gitlab.com/asha")}))
		assert.Error(t, v.Struct(profileInput{Github: strPtr("github.com/asha")}))
		assert.Error(t, v.Struct(profileInput{Linkedin: strPtr("ftp://linkedin.com/in/asha")}))
		assert.Error(t, v.Struct(profileInput{Linkedin: strPtr("https://notlinkedin.com/in/asha")}))
	})
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("Deven.M@Somaiya.edu"))
	assert.False(t, IsEmail("not-an-email"))
	assert.False(t, IsEmail(""))
}
