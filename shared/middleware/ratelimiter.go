package middleware

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strings"

	"github.com/devbook-dev/devbook/shared/middleware/ratelimiter"
	"github.com/devbook-dev/devbook/shared/utils"
)

func RateLimit(rl *ratelimiter.UserRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(identity) {
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GlobalRateLimit(rl *ratelimiter.UserRateLimiter) func(http.Handler) http.Handler {
	return RateLimit(rl, func(r *http.Request) (string, error) { return "global", nil })
}

// GetIP extracts the client IP from RemoteAddr only; forwarding headers are not trusted.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}

	return ip, nil
}

// GetIPBehind returns an identity func for services that sit behind known proxies.
// When the direct peer is one of trusted, the rightmost X-Forwarded-For entry is
// used, since that is the one the trusted proxy appended. Anyone else gets GetIP.
func GetIPBehind(trusted []string) func(r *http.Request) (string, error) {
	return func(r *http.Request) (string, error) {
		peer, err := GetIP(r)
		if err != nil || !slices.Contains(trusted, peer) {
			return peer, err
		}

		xff := r.Header.Get("X-Forwarded-For")
		if xff == "" {
			return peer, nil
		}
		parts := strings.Split(xff, ",")
		ip := strings.TrimSpace(parts[len(parts)-1])
		if net.ParseIP(ip) == nil {
			return "", fmt.Errorf("invalid forwarded IP address: %s", ip)
		}
		return ip, nil
	}
}

// GetUserIdFromRequest keys limits by the authenticated user. Requires NeedAuth earlier in the chain.
func GetUserIdFromRequest(r *http.Request) (string, error) {
	uid, ok := GetUserIdFromContext(r)
	if !ok {
		return "", errors.New("Can't get user id")
	}
	return fmt.Sprintf("user_%d", uid), nil
}
