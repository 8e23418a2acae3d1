package middleware

import (
	"errors"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/transport/http/response"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const cacheKeyRateLimit = "limiter"

// RateLimit counts requests per client address in fixed windows. The window
// index is part of the key, so a counter never outlives its window even when
// the cache write refreshes the TTL. Cache failures let the request through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			limits := a.config.App.RateLimiter
			if !limits.Enable || limits.MaxRequests <= 0 || limits.WindowSeconds <= 0 {
				next.ServeHTTP(writer, request)

				return
			}

			now := time.Now().Unix()
			window := int64(limits.WindowSeconds)
			key := shared.BuildCacheKey(cacheKeyRateLimit, clientAddress(request), strconv.FormatInt(now/window, 10))

			var count int

			err := a.cache.Get(request.Context(), key, &count)
			if err != nil && !errors.Is(err, cache.Nil) {
				log.Warn().Err(err).Msg("rate limiter cache unavailable, letting request through")
				next.ServeHTTP(writer, request)

				return
			}

			count++

			if count > limits.MaxRequests {
				writer.Header().Set(constant.RequestHeaderRetryAfter, strconv.FormatInt(window-now%window, 10))
				response.WithRequestLimitExceeded(writer)

				return
			}

			if err = a.cache.Save(request.Context(), key, count, limits.WindowSeconds); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("failed to save rate limiter counter")
			}

			writer.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limits.MaxRequests))
			writer.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(limits.MaxRequests-count))
			writer.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limits.WindowSeconds))

			next.ServeHTTP(writer, request)
		})
	}
}

// clientAddress relies on chi's RealIP having already rewritten RemoteAddr
// from the proxy headers.
func clientAddress(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}

	return host
}
