package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", 7*24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "owner@example.com")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTManager_RejectsOtherSecretAndExpired(t *testing.T) {
	m := NewJWTManager("secret-a", time.Hour)
	token, err := m.GenerateAccessToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)

	expired := NewJWTManager("secret-a", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateAccessToken(uuid.New(), "a@example.com")
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(old)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3cret!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "wash-fold", Slugify("Wash & Fold"))
	assert.Equal(t, "duvet-cleaning", Slugify("  Duvet   Cleaning "))
	assert.Equal(t, "suits-2-piece", Slugify("Suits (2-piece)"))
}

func TestReceiptNumber(t *testing.T) {
	id := uuid.MustParse("3f2a8c1e-1b2c-4d5e-8f90-a1b2c3d4e5ff")
	at := time.UnixMilli(1718000000123)

	n := ReceiptNumber(id, at)

	assert.Equal(t, "RCP-1718000000123-E5FF", n)
	assert.Regexp(t, regexp.MustCompile(`^RCP-\d+-[A-Z0-9]{4}$`), n)
	assert.Regexp(t, regexp.MustCompile(`^RCP-\d+-[A-Z0-9]{4}$`), ReceiptNumber(uuid.New(), time.Now()))
}

func TestReceiptFilename(t *testing.T) {
	name := ReceiptFilename("RCP-1-ABCD", time.UnixMilli(42))

	assert.Equal(t, "receipt_RCP-1-ABCD_42.pdf", name)
	assert.True(t, IsReceiptFilename(name))
	assert.False(t, IsReceiptFilename("../etc/passwd"))
	assert.False(t, IsReceiptFilename("receipt_../../x.pdf"))
	assert.False(t, IsReceiptFilename("invoice_1.pdf"))
}
