package security

import (
	"testing"

	"github.com/chroniclehq/chronicle/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifyToken(t *testing.T) {
	account := models.Account{BaseModel: models.BaseModel{ID: 42}}

	token, err := IssueToken(account, "test-secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := VerifyToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	account := models.Account{BaseModel: models.BaseModel{ID: 42}}

	token, err := IssueToken(account, "test-secret")
	require.NoError(t, err)

	_, err = VerifyToken(token, "another-secret")
	assert.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	_, err := VerifyToken("definitely.not.a.token", "test-secret")
	assert.Error(t, err)
}
