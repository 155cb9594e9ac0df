package echoweb

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/auth"
	"github.com/trezcool/lms/core/user"
)

var contextUserKey = "user"

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Name  string    `json:"name,omitempty"`
	Email string    `json:"email,omitempty"`
	Role  user.Role `json:"role,omitempty"`
}

func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "userToken",
		Claims:        new(Claims),
	}
}

func GetUserClaims(usr user.User, conf *core.Config) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   usr.Email,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Name:  usr.Name,
		Email: usr.Email,
		Role:  usr.Role,
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func (s *Server) GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(s.jwtConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(s.jwtConfig.SigningKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func (s *Server) getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(s.jwtConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// tokenSubject is the auth.Subject of an API request: the identity a verified token names.
type tokenSubject struct {
	usr user.User
	ok  bool
}

var _ auth.Subject = tokenSubject{}

func (ts tokenSubject) CurrentUser() (user.User, bool) {
	return ts.usr, ts.ok
}

// getContextUser resolves the token's subject against the identity store.
// A token naming an unknown identity yields an unauthenticated subject.
func (s *Server) getContextUser(ctx echo.Context) (tokenSubject, error) {
	if sub, ok := ctx.Get(contextUserKey).(tokenSubject); ok {
		return sub, nil
	}

	claims, err := s.getContextClaims(ctx)
	if err != nil {
		return tokenSubject{}, nil
	}
	usr, err := s.deps.UserSvc.Lookup(claims.Subject)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return tokenSubject{}, nil
		}
		return tokenSubject{}, errors.Wrap(err, "finding user by email")
	}

	sub := tokenSubject{usr: usr, ok: true}
	ctx.Set(contextUserKey, sub)
	return sub, nil
}
