// Package auth stores the bearer token sent to the ticket feed.
package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	credFileName = "credentials.json"
	// EnvToken overrides the stored credentials when set.
	EnvToken = "TICKETBOARD_TOKEN"
)

// TokenInfo is a token plus where it came from. Source is "env" or "file".
type TokenInfo struct {
	Token     string     `json:"token"`
	Source    string     `json:"source"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Dir is the per-user state directory, ~/.ticketboard.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".ticketboard"), nil
}

func credFilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, credFileName), nil
}

// GetToken looks up the feed token, preferring $TICKETBOARD_TOKEN over the
// credentials file. It returns nil, nil when neither is set.
func GetToken() (*TokenInfo, error) {
	if v := strings.TrimSpace(os.Getenv(EnvToken)); v != "" {
		token := stripBearer(v)
		return &TokenInfo{Token: token, Source: "env", ExpiresAt: jwtExpiry(token)}, nil
	}
	return readCredentials()
}

func readCredentials() (*TokenInfo, error) {
	path, err := credFilePath()
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	info := new(TokenInfo)
	if err := json.Unmarshal(raw, info); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	info.Token = stripBearer(info.Token)
	if info.Token == "" {
		return nil, nil
	}
	return info, nil
}

// Expired reports whether the token carries an expiry that has passed.
func (ti *TokenInfo) Expired(now time.Time) bool {
	return ti.ExpiresAt != nil && now.After(*ti.ExpiresAt)
}

// ErrEmptyToken is returned when login is given nothing to store.
var ErrEmptyToken = errors.New("empty token")

// SetToken stores token in the credentials file. A nil expires is filled
// from the JWT exp claim when the token has one.
func SetToken(token string, expires *time.Time) error {
	token = stripBearer(strings.TrimSpace(token))
	if token == "" {
		return ErrEmptyToken
	}
	if expires == nil {
		expires = jwtExpiry(token)
	}

	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	raw, err := json.MarshalIndent(TokenInfo{
		Token:     token,
		Source:    "file",
		CreatedAt: time.Now(),
		ExpiresAt: expires,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	path := filepath.Join(dir, credFileName)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// DeleteToken removes the credentials file. Logging out twice is not an error.
func DeleteToken() error {
	path, err := credFilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// Claims decodes the payload segment of a JWT without verifying it.
// Opaque tokens return false.
func Claims(token string) (string, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", false
	}
	payload := strings.TrimRight(parts[1], "=")
	dec, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", false
	}
	if !json.Valid(dec) {
		return "", false
	}
	return string(dec), true
}

func jwtExpiry(token string) *time.Time {
	payload, ok := Claims(token)
	if !ok {
		return nil
	}
	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal([]byte(payload), &claims); err != nil || claims.Exp == 0 {
		return nil
	}
	exp := time.Unix(claims.Exp, 0).UTC()
	return &exp
}

// stripBearer drops a pasted "Bearer" scheme, in any case.
func stripBearer(s string) string {
	s = strings.TrimSpace(s)
	const scheme = "bearer"
	if len(s) < len(scheme) || !strings.EqualFold(s[:len(scheme)], scheme) {
		return s
	}
	rest := s[len(scheme):]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return s
	}
	return strings.TrimSpace(rest)
}
