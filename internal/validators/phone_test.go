package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPhoneValid(t *testing.T) {
	valid := []string{"+5511999990000", "5511 99999-0000", "(11) 99999-0000", "+1 415.555.0100"}
	for _, p := range valid {
		assert.True(t, IsPhoneValid(p), p)
	}

	invalid := []string{"", "+", "0123456", "abc", "+55 11 99999-0000 ext 2", "1234567890123456"}
	for _, p := range invalid {
		assert.False(t, IsPhoneValid(p), p)
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+5511999990000", NormalizePhone(" +55 (11) 99999-0000 "))
}
