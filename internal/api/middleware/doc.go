// Package middleware provides HTTP middleware for the DeskShell backend.
//
// Middleware stack includes:
//   - RequestID: ULID request IDs echoed in X-Request-ID
//   - Logger: Request logging with zap
//   - CORS: Cross-origin resource sharing with configurable origins
//   - SecurityHeaders: COOP/COEP isolation and nosniff
//   - RateLimit: Per-IP token bucket rate limiting
//
// Rate Limiting:
//   - Per-IP tracking with idle cleanup
//   - Token bucket algorithm
//   - Configurable RPS and burst capacity
//
// Example Usage:
//
//	router.Use(middleware.RequestID(), middleware.Logger(logger))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.RateLimitConfig{RequestsPerSecond: 100, Burst: 200}))
package middleware
