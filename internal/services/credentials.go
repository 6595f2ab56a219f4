package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lexivault/lexivault/internal/config"
	"github.com/lexivault/lexivault/internal/types"
	"golang.org/x/crypto/bcrypt"
)

// Credentials hashes and verifies passwords and issues signed, time-limited
// claims. It is constructed once from config and passed where needed; there
// is no ambient secret lookup in business logic.
type Credentials struct {
	secret    []byte
	accessTTL time.Duration
	verifyTTL time.Duration
}

// NewCredentials builds a Credentials service from the loaded configuration.
func NewCredentials(cfg *config.Config) *Credentials {
	return &Credentials{
		secret:    []byte(cfg.SecretKey),
		accessTTL: time.Duration(cfg.AccessTokenMinutes) * time.Minute,
		verifyTTL: time.Duration(cfg.VerifyTokenMinutes) * time.Minute,
	}
}

// HashPassword returns a salted one-way hash of the password.
func (c *Credentials) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash.
func (c *Credentials) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueAccessToken issues a signed access token whose subject is the user id.
func (c *Credentials) IssueAccessToken(userID string) (string, error) {
	return c.issue(jwt.MapClaims{"sub": userID}, c.accessTTL)
}

// IssueVerifyToken issues a signed verification token carrying extra claims
// (e.g. the email being verified, or a pending email change).
func (c *Credentials) IssueVerifyToken(claims map[string]interface{}) (string, error) {
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	return c.issue(mc, c.verifyTTL)
}

func (c *Credentials) issue(claims jwt.MapClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(ttl).Unix()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode validates a token and returns its claims. All failure modes -
// malformed, bad signature, expired - collapse into a single InvalidToken
// error so responses never reveal which check failed.
func (c *Credentials) Decode(token string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, types.InvalidToken("could not validate credentials")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, types.InvalidToken("could not validate credentials")
	}
	return claims, nil
}

// Subject decodes a token and returns its "sub" claim.
func (c *Credentials) Subject(token string) (string, error) {
	claims, err := c.Decode(token)
	if err != nil {
		return "", err
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", types.InvalidToken("could not validate credentials")
	}
	return sub, nil
}
