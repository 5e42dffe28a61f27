package usecase

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/argon2"

	"github.com/learnovatex/platform/internal/domain"
)

// argon2Params defines parameters for Argon2id password hashing.
type argon2Params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLen     uint32
	keyLen      uint32
}

var defaultArgon2Params = argon2Params{
	memory:      64 * 1024, // 64 MB
	iterations:  3,
	parallelism: 2,
	saltLen:     16,
	keyLen:      32,
}

// knownRoles accepted at registration.
var knownRoles = map[string]bool{
	domain.RoleStudent:      true,
	domain.RoleJobSeeker:    true,
	domain.RoleCompany:      true,
	domain.RoleCollegeAdmin: true,
}

// TokenClaims is the verified identity carried by a bearer token.
type TokenClaims struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// AuthService registers accounts, verifies credentials, and issues
// HMAC-signed bearer tokens.
type AuthService struct {
	Users  domain.UserRepository
	Secret []byte
	TTL    time.Duration
}

// NewAuthService constructs an AuthService.
func NewAuthService(users domain.UserRepository, secret string, ttl time.Duration) AuthService {
	return AuthService{Users: users, Secret: []byte(secret), TTL: ttl}
}

// Register creates an account and returns the stored user with a fresh token.
// The email must be unused; unknown roles default to student.
func (s AuthService) Register(ctx domain.Context, email, password, name, role string) (domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") || strings.Contains(email, ":") {
		return domain.User{}, "", fmt.Errorf("%w: invalid email", domain.ErrInvalidArgument)
	}
	if len(password) < 8 {
		return domain.User{}, "", fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidArgument)
	}
	if name = strings.TrimSpace(name); name == "" {
		return domain.User{}, "", fmt.Errorf("%w: name required", domain.ErrInvalidArgument)
	}
	if !knownRoles[role] {
		role = domain.RoleStudent
	}
	hash, err := hashPassword(password, defaultArgon2Params)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("op=auth.register: %w", err)
	}
	u := domain.User{Email: email, PasswordHash: hash, Name: name, Role: role, CreatedAt: time.Now().UTC()}
	id, err := s.Users.Create(ctx, u)
	if err != nil {
		return domain.User{}, "", err
	}
	u.ID = id
	token := s.issueToken(u)
	return u, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Wrong email and wrong password are indistinguishable to the caller.
func (s AuthService) Login(ctx domain.Context, email, password string) (domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("op=auth.login: %w", domain.ErrUnauthorized)
	}
	if !verifyPassword(password, u.PasswordHash) {
		return domain.User{}, "", fmt.Errorf("op=auth.login: %w", domain.ErrUnauthorized)
	}
	return u, s.issueToken(u), nil
}

// VerifyToken checks a bearer token's signature and expiry.
func (s AuthService) VerifyToken(token string) (TokenClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return TokenClaims{}, fmt.Errorf("op=auth.verify: %w", domain.ErrUnauthorized)
	}
	payload, sigB64 := parts[0], parts[1]

	mac := hmac.New(sha256.New, s.Secret)
	mac.Write([]byte(payload))
	want := mac.Sum(nil)
	got, err := base64.URLEncoding.DecodeString(sigB64)
	if err != nil || !hmac.Equal(want, got) {
		return TokenClaims{}, fmt.Errorf("op=auth.verify: %w", domain.ErrUnauthorized)
	}

	fields := strings.Split(payload, ":")
	if len(fields) != 4 {
		return TokenClaims{}, fmt.Errorf("op=auth.verify: %w", domain.ErrUnauthorized)
	}
	claims := TokenClaims{
		UserID:    fields[0],
		Email:     fields[1],
		IssuedAt:  time.Unix(parseInt64(fields[2]), 0),
		ExpiresAt: time.Unix(parseInt64(fields[3]), 0),
	}
	if time.Now().After(claims.ExpiresAt) {
		return TokenClaims{}, fmt.Errorf("op=auth.verify: token expired: %w", domain.ErrUnauthorized)
	}
	return claims, nil
}

// issueToken signs payload userID:email:issuedAt:expiresAt with HMAC-SHA256.
// Emails cannot contain ':' past validation, so the payload splits cleanly.
func (s AuthService) issueToken(u domain.User) string {
	now := time.Now()
	payload := fmt.Sprintf("%s:%s:%d:%d", u.ID, u.Email, now.Unix(), now.Add(s.TTL).Unix())
	mac := hmac.New(sha256.New, s.Secret)
	mac.Write([]byte(payload))
	return payload + "." + base64.URLEncoding.EncodeToString(mac.Sum(nil))
}

// hashPassword creates an Argon2id hash of the password.
// Format: argon2id$iterations$memory$parallelism$salt$hash (base64 encoded).
func hashPassword(password string, p argon2Params) (string, error) {
	salt := make([]byte, p.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, p.iterations, p.memory, p.parallelism, p.keyLen)
	return fmt.Sprintf("argon2id$%d$%d$%d$%s$%s",
		p.iterations, p.memory, p.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// verifyPassword verifies a password against its Argon2id hash.
func verifyPassword(password, encodedHash string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "argon2id" {
		return false
	}
	iters, err1 := parseUint32(parts[1])
	mem, err2 := parseUint32(parts[2])
	par64, err3 := parseUint32(parts[3])
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}
	var par uint8
	if par64 > math.MaxUint8 {
		par = math.MaxUint8
	} else {
		par = uint8(par64)
	}
	actual := argon2.IDKey([]byte(password), salt, iters, mem, par, defaultArgon2Params.keyLen)
	return subtle.ConstantTimeCompare(actual, expected) == 1
}

func parseInt64(s string) int64 {
	x, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return x
}

func parseUint32(s string) (uint32, error) {
	x, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse")
	}
	return uint32(x), nil
}
