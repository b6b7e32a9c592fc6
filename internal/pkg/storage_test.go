package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImage(t *testing.T) {
	assert.NoError(t, ValidateImage("a.png", 100, MaxAvatarSize))
	assert.NoError(t, ValidateImage("photo.JPG", 100, MaxAvatarSize))
	assert.NoError(t, ValidateImage("photo.jpeg", MaxAvatarSize, MaxAvatarSize))

	assert.ErrorIs(t, ValidateImage("a.gif", 100, MaxAvatarSize), ErrBadImage)
	assert.ErrorIs(t, ValidateImage("noext", 100, MaxAvatarSize), ErrBadImage)
	assert.Error(t, ValidateImage("a.png", MaxAvatarSize+1, MaxAvatarSize))
}
