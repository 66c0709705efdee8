package utils

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/o1egl/paseto"
)

const (
	// Session tokens outlive a single upload but not a browsing day; the
	// refresh token lets a returning patient skip re-entering identity.
	SessionTokenExpiry = 24 * time.Hour
	RefreshTokenExpiry = 7 * 24 * time.Hour
)

// SessionClaims is the data carried in a session token: the patient record
// key the session points at, and when the token lapses. The stored patient
// record itself is never embedded; logout only discards this pointer.
type SessionClaims struct {
	RecordID string    `json:"recordId"`
	Expiry   time.Time `json:"expiry"`
}

// GetSymmetricKey retrieves the symmetric key from the environment variable.
// Ensures it has the correct length (32 bytes).
func GetSymmetricKey() []byte {
	key := os.Getenv("SYMMETRIC_KEY")
	if len(key) != 32 {
		log.Fatalf("SYMMETRIC_KEY must be 32 bytes long. Current length: %d", len(key))
	}
	return []byte(key)
}

// GenerateSessionTokens generates both the session token and refresh token
// pointing at the given patient record key.
func GenerateSessionTokens(recordID string) (sessionToken, refreshToken string, err error) {
	sessionToken, err = generatePASEToken(recordID, SessionTokenExpiry)
	if err != nil {
		log.Printf("Error generating session token: %v", err)
		return "", "", err
	}

	refreshToken, err = generatePASEToken(recordID, RefreshTokenExpiry)
	if err != nil {
		log.Printf("Error generating refresh token: %v", err)
		return "", "", err
	}

	return sessionToken, refreshToken, nil
}

// GenerateSessionToken generates only the short-lived session token.
func GenerateSessionToken(recordID string) (string, error) {
	token, err := generatePASEToken(recordID, SessionTokenExpiry)
	if err != nil {
		log.Printf("Error generating session token: %v", err)
		return "", err
	}
	return token, nil
}

func generatePASEToken(recordID string, expiry time.Duration) (string, error) {
	claims := SessionClaims{
		RecordID: recordID,
		Expiry:   time.Now().Add(expiry),
	}

	symmetricKey := GetSymmetricKey()
	token, err := paseto.NewV2().Encrypt(symmetricKey, claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// ValidateSessionToken validates the given token string and checks expiry.
func ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	claims, err := parseToken(tokenString)
	if err != nil {
		log.Printf("Token parsing failed: %v", err)
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if time.Now().After(claims.Expiry) {
		log.Printf("Token expired for record %s", claims.RecordID)
		return nil, errors.New("token expired")
	}

	return claims, nil
}

func parseToken(tokenString string) (*SessionClaims, error) {
	var claims SessionClaims
	symmetricKey := GetSymmetricKey()

	err := paseto.NewV2().Decrypt(tokenString, symmetricKey, &claims, nil)
	if err != nil {
		log.Printf("Token decryption failed: %v", err)
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}

	return &claims, nil
}
