package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MateoL17/LinKage/internal/domain"
)

func TestConversationKey(t *testing.T) {
	assert.Equal(t, "ana|luis", domain.ConversationKey("ana", "luis"))
	assert.Equal(t, "ana|luis", domain.ConversationKey("luis", "ana"))
	assert.Equal(t, "ana|ana", domain.ConversationKey("ana", "ana"))
}

func TestIsGeneralRoom(t *testing.T) {
	assert.True(t, domain.IsGeneralRoom("general"))
	assert.True(t, domain.IsGeneralRoom("@general"))
	assert.False(t, domain.IsGeneralRoom("ana"))
	assert.False(t, domain.IsGeneralRoom("General"))
}
