package api

import (
	"context"
	"crypto/subtle"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"recruitbot/internal/config"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

const (
	apiKeyHeaderDefault   = "x-api-key"
	apiExtraHeaderDefault = "x-api-extra"
	permReadStats         = "read:stats"
	permReadPending       = "read:pending"
	permExport            = "read:export"
	clientKeyUnknown      = "unknown"
	requestIDMetadataKey  = "x-request-id"
)

var (
	errMissingKey       = errors.New("missing api key headers")
	errInvalidKey       = errors.New("invalid api key")
	errInvalidExtra     = errors.New("invalid extra header")
	errPermissionDenied = errors.New("permission denied")
	errRateLimited      = errors.New("rate limit exceeded")
)

// Authenticator checks API keys, permissions and per-client rate limits for
// both transports.
type Authenticator struct {
	cfg       config.APIConfig
	apiHeader string
	extra     string
	clients   map[string]config.APIClientKey
	limiter   *rateLimiter
}

func NewAuthenticator(cfg config.APIConfig) *Authenticator {
	m := make(map[string]config.APIClientKey, len(cfg.Auth.APIKeys))
	for _, k := range cfg.Auth.APIKeys {
		m[k.Key] = k
	}

	apiHeader := strings.ToLower(strings.TrimSpace(cfg.Auth.HeaderAPIKey))
	if apiHeader == "" {
		apiHeader = apiKeyHeaderDefault
	}
	extra := strings.ToLower(strings.TrimSpace(cfg.Auth.HeaderExtra))
	if extra == "" {
		extra = apiExtraHeaderDefault
	}

	return &Authenticator{
		cfg:       cfg,
		apiHeader: apiHeader,
		extra:     extra,
		clients:   m,
		limiter:   newRateLimiter(cfg.RateLimit),
	}
}

// verify validates a key pair against the permission a route needs.
func (a *Authenticator) verify(apiKey, extra, required string) error {
	if apiKey == "" || extra == "" {
		return errMissingKey
	}
	client, ok := a.clients[apiKey]
	if !ok {
		return errInvalidKey
	}
	if subtle.ConstantTimeCompare([]byte(client.Extra), []byte(extra)) != 1 {
		return errInvalidExtra
	}
	if required == "" || len(client.Permissions) == 0 {
		// пустой список прав означает полный доступ
		return nil
	}
	for _, p := range client.Permissions {
		if strings.TrimSpace(p) == required {
			return nil
		}
	}
	return errPermissionDenied
}

// Unary is the gRPC side: auth, then rate limit.
func (a *Authenticator) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !a.cfg.Enabled || isHealthMethod(info.FullMethod) {
			return handler(ctx, req)
		}

		md, _ := metadata.FromIncomingContext(ctx)
		apiKey := first(md.Get(a.apiHeader))

		if a.cfg.Auth.Enabled {
			if md == nil {
				return nil, status.Error(codes.Unauthenticated, "missing metadata")
			}
			err := a.verify(apiKey, first(md.Get(a.extra)), requiredPermission(info.FullMethod))
			switch {
			case errors.Is(err, errPermissionDenied):
				return nil, status.Error(codes.PermissionDenied, err.Error())
			case err != nil:
				return nil, status.Error(codes.Unauthenticated, err.Error())
			}
		}

		key := apiKey
		if key == "" {
			key = clientKeyUnknown
			if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
				key = p.Addr.String()
			}
		}
		if !a.limiter.Allow(key) {
			return nil, status.Error(codes.ResourceExhausted, errRateLimited.Error())
		}
		return handler(ctx, req)
	}
}

// Wrap is the HTTP side. /healthz stays open for probes.
func (a *Authenticator) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.cfg.Enabled || r.URL.Path == healthPath {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := strings.TrimSpace(r.Header.Get(a.apiHeader))
		if a.cfg.Auth.Enabled {
			err := a.verify(apiKey, strings.TrimSpace(r.Header.Get(a.extra)), requiredPermissionHTTP(r.URL.Path))
			if err != nil {
				code := http.StatusUnauthorized
				if errors.Is(err, errPermissionDenied) {
					code = http.StatusForbidden
				}
				writeError(w, code, err.Error())
				return
			}
		}

		if !a.limiter.Allow(httpClientKey(apiKey, r)) {
			writeError(w, http.StatusTooManyRequests, errRateLimited.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requiredPermission(fullMethod string) string {
	switch fullMethod {
	case OpsGetStatsMethod:
		return permReadStats
	case OpsListPendingMethod:
		return permReadPending
	default:
		return ""
	}
}

func requiredPermissionHTTP(path string) string {
	switch path {
	case statsPath:
		return permReadStats
	case pendingPath:
		return permReadPending
	case exportPath:
		return permExport
	default:
		return ""
	}
}

func isHealthMethod(fullMethod string) bool {
	return strings.HasPrefix(fullMethod, "/grpc.health.v1.Health/")
}

func httpClientKey(apiKey string, r *http.Request) string {
	if apiKey != "" {
		return apiKey
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return clientKeyUnknown
}

func first(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return strings.TrimSpace(vals[0])
}

// LoggingUnaryInterceptor logs every call with a request id echoed back in headers.
func LoggingUnaryInterceptor(logger *zerolog.Logger) grpc.UnaryServerInterceptor {
	base := zerolog.Nop()
	if logger != nil {
		base = logger.With().Str("component", "grpc").Logger()
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		requestID := requestIDFromMetadata(ctx)
		_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDMetadataKey, requestID))

		start := time.Now()
		resp, err := handler(ctx, req)
		dur := time.Since(start)

		code := codes.OK
		if err != nil {
			code = status.Code(err)
		}

		remote := clientKeyUnknown
		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			remote = p.Addr.String()
		}

		base.Info().
			Str("request_id", requestID).
			Str("method", info.FullMethod).
			Str("remote", remote).
			Str("code", code.String()).
			Dur("duration", dur).
			Msg("grpc request")

		return resp, err
	}
}

func requestIDFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if vals := md.Get(requestIDMetadataKey); len(vals) > 0 {
			if id := strings.TrimSpace(vals[0]); id != "" {
				return id
			}
		}
	}
	return uuid.NewString()
}
