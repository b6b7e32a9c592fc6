package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandDigits(t *testing.T) {
	code, err := RandDigits(6)
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9')
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 50))
	assert.Equal(t, "abcde...", Truncate("abcdefgh", 5))
	// 按 rune 截断，不会把多字节字符劈开
	assert.Equal(t, "你好...", Truncate("你好世界啊", 2))
}

func TestNotificationChannel(t *testing.T) {
	assert.Equal(t, "notifications:42", NotificationChannel(42))
}
