package security

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"ChatProject/tools/errs"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Options control signing and verification.
type Options struct {
	Secret []byte        // HMAC secret
	Alg    string        // HS256/HS384/HS512 (default HS256)
	TTL    time.Duration // token lifetime (default 2h)
}

type JWTClaims struct {
	jwtlib.MapClaims
}

func DefaultOptions(secret []byte) Options {
	return Options{Secret: secret, Alg: "HS256", TTL: 2 * time.Hour}
}

// HashToken identifies a token in logs without exposing it.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "sha256:" + hex.EncodeToString(sum[:])
}

// Generate signs a token whose "id" and "sub" claims carry userID.
func Generate(opts Options, userID int64, scopes []string) (token string, expireAt time.Time, err error) {
	method, err := signingMethod(opts.Alg)
	if err != nil {
		return "", time.Time{}, err
	}
	if opts.TTL <= 0 {
		opts.TTL = 2 * time.Hour
	}
	now := time.Now()
	exp := now.Add(opts.TTL)

	claims := jwtlib.MapClaims{
		"id":  userID,
		"sub": strconv.FormatInt(userID, 10),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": exp.Unix(),
	}
	if len(scopes) > 0 {
		claims["scope"] = scopes
	}

	signed, err := jwtlib.NewWithClaims(method, claims).SignedString(opts.Secret)
	if err != nil {
		return "", time.Time{}, errs.Wrap(err)
	}
	return signed, exp, nil
}

// Verify checks signature and time claims. Only the configured alg is accepted.
func Verify(opts Options, token string) (*JWTClaims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errs.ErrUnauthorized.WrapMsg("missing token")
	}
	method, err := signingMethod(opts.Alg)
	if err != nil {
		return nil, err
	}
	parsed, err := jwtlib.Parse(token, func(*jwtlib.Token) (interface{}, error) {
		return opts.Secret, nil
	}, jwtlib.WithValidMethods([]string{method.Alg()}), jwtlib.WithJSONNumber())
	if err != nil {
		return nil, errs.ErrUnauthorized.WrapMsg("invalid token", "err", err)
	}
	if !parsed.Valid {
		return nil, errs.ErrUnauthorized.WrapMsg("invalid token")
	}
	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errs.ErrUnauthorized.WrapMsg("claims type mismatch")
	}
	return &JWTClaims{claims}, nil
}

// UserID reads the user identifier from the "id" claim, falling back to "sub".
// Ids must be positive integers.
func (c *JWTClaims) UserID() (int64, error) {
	for _, key := range []string{"id", "sub"} {
		v, ok := c.MapClaims[key]
		if !ok || v == nil {
			continue
		}
		var raw string
		switch t := v.(type) {
		case json.Number:
			raw = t.String()
		case string:
			raw = t
		default:
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return 0, errs.ErrUnauthorized.WrapMsg("malformed user id claim", "claim", key)
		}
		return id, nil
	}
	return 0, errs.ErrUnauthorized.WrapMsg("token carries no user id")
}

// VerifyUserID is Verify followed by UserID.
func VerifyUserID(opts Options, token string) (int64, error) {
	claims, err := Verify(opts, token)
	if err != nil {
		return 0, err
	}
	return claims.UserID()
}

func signingMethod(alg string) (jwtlib.SigningMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(alg)) {
	case "", "HS256":
		return jwtlib.SigningMethodHS256, nil
	case "HS384":
		return jwtlib.SigningMethodHS384, nil
	case "HS512":
		return jwtlib.SigningMethodHS512, nil
	default:
		return nil, errs.ErrInternal.WrapMsg("unsupported alg, use HS256/HS384/HS512", "alg", alg)
	}
}
