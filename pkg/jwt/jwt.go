package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Errores de verificación. El gate de autorización los colapsa en uno solo hacia el cliente.
var (
	ErrMalformed        = errors.New("jwt: token mal formado")
	ErrInvalidSignature = errors.New("jwt: firma inválida")
	ErrExpired          = errors.New("jwt: token expirado")
)

var errUnsupportedAlgorithm = errors.New("jwt: algoritmo no soportado")

// Claims del token: solo los registrados; Subject lleva el username.
type Claims struct {
	jwt.RegisteredClaims
}

// Service emite y verifica tokens HS256 con un secreto de proceso inmutable.
type Service struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// Option configura el Service.
type Option func(*Service)

// WithIssuer fija el claim iss al emitir y lo exige al verificar.
func WithIssuer(issuer string) Option {
	return func(s *Service) { s.issuer = issuer }
}

// WithClock reemplaza el reloj (pruebas).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService construye el servicio. ttl es la vigencia por defecto de los tokens.
func NewService(secret string, ttl time.Duration, opts ...Option) (*Service, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt: ttl debe ser positivo")
	}
	s := &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL devuelve la vigencia por defecto.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue genera un token firmado con sub=subject y exp=now+ttl. ttl <= 0 usa la vigencia por defecto.
func (s *Service) Issue(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("jwt: subject vacío")
	}
	if ttl <= 0 {
		ttl = s.ttl
	}
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: firmar token: %w", err)
	}
	return signed, nil
}

// Verify valida firma y vigencia y devuelve el subject.
// Errores: ErrMalformed, ErrInvalidSignature o ErrExpired (la firma se comprueba antes que exp).
func (s *Service) Verify(tokenString string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("%w: %v", errUnsupportedAlgorithm, t.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		return "", classify(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrMalformed
	}
	return claims.Subject, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, errUnsupportedAlgorithm):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
