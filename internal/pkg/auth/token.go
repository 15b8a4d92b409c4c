package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

const (
	tokenVersion = "v1"
	defaultTTL   = 24 * time.Hour
)

// HMACStrategy signs tokens of the form v1.<user>.<expiry>.<mac> and encodes
// them as unpadded URL-safe base64 so they survive cookies unescaped.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	s := &HMACStrategy{secret: []byte(secret), ttl: opts.TTL, now: opts.Now}
	if s.ttl <= 0 {
		s.ttl = defaultTTL
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// IssueToken generates signed auth token for the user.
func (s *HMACStrategy) IssueToken(userID int64) (string, error) {
	if userID <= 0 {
		return "", fmt.Errorf("issue token: invalid user id %d", userID)
	}
	claims := strings.Join([]string{
		tokenVersion,
		strconv.FormatInt(userID, 36),
		strconv.FormatInt(s.now().Add(s.ttl).Unix(), 36),
	}, ".")
	return base64.RawURLEncoding.EncodeToString([]byte(claims + "." + s.sign(claims))), nil
}

// ParseToken validates token and returns encoded user ID.
func (s *HMACStrategy) ParseToken(token string) (int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, ErrInvalidToken
	}

	idx := strings.LastIndexByte(string(raw), '.')
	if idx < 0 {
		return 0, ErrInvalidToken
	}
	claims, sig := string(raw[:idx]), string(raw[idx+1:])
	if !hmac.Equal([]byte(s.sign(claims)), []byte(sig)) {
		return 0, ErrInvalidToken
	}

	parts := strings.Split(claims, ".")
	if len(parts) != 3 || parts[0] != tokenVersion {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(parts[1], 36, 64)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidToken
	}
	expires, err := strconv.ParseInt(parts[2], 36, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	if !s.now().Before(time.Unix(expires, 0)) {
		return 0, fmt.Errorf("%w: expired", ErrInvalidToken)
	}
	return userID, nil
}

func (s *HMACStrategy) sign(claims string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(claims))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
