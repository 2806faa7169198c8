package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"seatbooking/internal/config"
	"seatbooking/internal/domain"
	"seatbooking/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const reflectionMethod = "/grpc.reflection.v1.ServerReflection/ServerReflectionInfo"

func testAPIConfig() config.APIConfig {
	return config.APIConfig{
		Enabled: true,
		Auth: config.APIAuthConfig{
			Enabled:      true,
			HeaderAPIKey: "x-api-key",
			HeaderExtra:  "x-api-extra",
			APIKeys: []config.APIClientKey{
				{Key: "valid-key", Extra: "valid-extra", Permissions: []string{"export"}},
				{Key: "admin-key", Extra: "admin-extra"},
			},
		},
		RateLimit: config.APIRateLimitConfig{
			RPS:   100,
			Burst: 200,
		},
		JWT: config.JWTConfig{Secret: "test-secret", Issuer: "seatbooking-test", TTL: time.Hour},
	}
}

type fakeServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *fakeServerStream) Context() context.Context { return s.ctx }

func (s *fakeServerStream) SetHeader(metadata.MD) error { return nil }

func TestAuthInterceptor(t *testing.T) {
	cfg := testAPIConfig()
	auth := NewAuthInterceptor(&cfg)
	interceptor := auth.Unary()

	handler := func(_ context.Context, req any) (any, error) {
		return "ok", nil
	}
	info := &grpc.UnaryServerInfo{FullMethod: "/seatbooking.Admin/Anything"}

	t.Run("Success", func(t *testing.T) {
		md := metadata.Pairs("x-api-key", "valid-key", "x-api-extra", "valid-extra")
		ctx := metadata.NewIncomingContext(context.Background(), md)
		resp, err := interceptor(ctx, "req", info, handler)
		assert.NoError(t, err)
		assert.Equal(t, "ok", resp)
	})

	t.Run("MissingMetadata", func(t *testing.T) {
		_, err := interceptor(context.Background(), "req", info, handler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("MissingHeaders", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs())
		_, err := interceptor(ctx, "req", info, handler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("InvalidKey", func(t *testing.T) {
		md := metadata.Pairs("x-api-key", "invalid", "x-api-extra", "valid-extra")
		ctx := metadata.NewIncomingContext(context.Background(), md)
		_, err := interceptor(ctx, "req", info, handler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("InvalidExtra", func(t *testing.T) {
		md := metadata.Pairs("x-api-key", "valid-key", "x-api-extra", "invalid")
		ctx := metadata.NewIncomingContext(context.Background(), md)
		_, err := interceptor(ctx, "req", info, handler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("HealthIsOpen", func(t *testing.T) {
		healthInfo := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
		resp, err := interceptor(context.Background(), "req", healthInfo, handler)
		assert.NoError(t, err)
		assert.Equal(t, "ok", resp)
	})
}

func TestAuthInterceptor_StreamPermissions(t *testing.T) {
	cfg := testAPIConfig()
	auth := NewAuthInterceptor(&cfg)
	interceptor := auth.Stream()
	info := &grpc.StreamServerInfo{FullMethod: reflectionMethod}

	called := 0
	handler := func(any, grpc.ServerStream) error {
		called++
		return nil
	}

	denied := metadata.NewIncomingContext(context.Background(),
		metadata.Pairs("x-api-key", "valid-key", "x-api-extra", "valid-extra"))
	err := interceptor(nil, &fakeServerStream{ctx: denied}, info, handler)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	allowed := metadata.NewIncomingContext(context.Background(),
		metadata.Pairs("x-api-key", "admin-key", "x-api-extra", "admin-extra"))
	require.NoError(t, interceptor(nil, &fakeServerStream{ctx: allowed}, info, handler))
	assert.Equal(t, 1, called)
}

func TestAuthInterceptor_RateLimit(t *testing.T) {
	cfg := config.APIConfig{
		Enabled: true,
		Auth:    config.APIAuthConfig{Enabled: false},
		RateLimit: config.APIRateLimitConfig{
			RPS:   1,
			Burst: 1,
		},
	}

	auth := NewAuthInterceptor(&cfg)
	interceptor := auth.Unary()
	info := &grpc.UnaryServerInfo{FullMethod: "test"}
	handler := func(_ context.Context, req any) (any, error) { return "ok", nil }

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-api-key", "key1"))

	_, err := interceptor(ctx, "req", info, handler)
	assert.NoError(t, err)

	_, err = interceptor(ctx, "req", info, handler)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	other := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-api-key", "key2"))
	_, err = interceptor(other, "req", info, handler)
	assert.NoError(t, err)
}

func TestLoggingInterceptors(t *testing.T) {
	unary := LoggingUnaryInterceptor(nil)
	info := &grpc.UnaryServerInfo{FullMethod: "test"}
	resp, err := unary(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "ok", resp)

	stream := LoggingStreamInterceptor(nil)
	boom := status.Error(codes.Internal, "boom")
	err = stream(nil, &fakeServerStream{ctx: context.Background()}, &grpc.StreamServerInfo{FullMethod: "test"},
		func(any, grpc.ServerStream) error { return boom })
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestChainInterceptorsOrder(t *testing.T) {
	var order []string
	mk := func(name string) grpc.UnaryServerInterceptor {
		return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
			order = append(order, name)
			return handler(ctx, req)
		}
	}

	chain := ChainUnaryInterceptors(mk("outer"), mk("inner"))
	_, err := chain(context.Background(), nil, &grpc.UnaryServerInfo{}, func(context.Context, any) (any, error) {
		order = append(order, "handler")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestRequiredPermission(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{reflectionMethod, "reflection"},
		{"/grpc.reflection.v1alpha.ServerReflection/ServerReflectionInfo", "reflection"},
		{"/grpc.health.v1.Health/Check", ""},
		{"other", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, requiredPermission(tt.method))
	}
}

func TestTokenIssuer(t *testing.T) {
	cfg := testAPIConfig()
	issuer := NewTokenIssuer(cfg.JWT)
	now := time.Date(2030, 3, 4, 8, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return now }

	token, expires, err := issuer.Issue(&models.User{ID: 42, Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expires)

	id, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	t.Run("Expired", func(t *testing.T) {
		later := NewTokenIssuer(cfg.JWT)
		later.now = func() time.Time { return now.Add(2 * time.Hour) }
		_, err := later.Parse(token)
		assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewTokenIssuer(config.JWTConfig{Secret: "other", Issuer: cfg.JWT.Issuer})
		other.now = issuer.now
		_, err := other.Parse(token)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("WrongIssuer", func(t *testing.T) {
		other := NewTokenIssuer(config.JWTConfig{Secret: cfg.JWT.Secret, Issuer: "someone-else"})
		other.now = issuer.now
		_, err := other.Parse(token)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("NoneAlgorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    cfg.JWT.Issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = issuer.Parse(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestRateLimiterDisabled(t *testing.T) {
	l := newRateLimiter(config.APIRateLimitConfig{})
	for i := 0; i < 100; i++ {
		assert.True(t, l.allow("same"))
	}
}
