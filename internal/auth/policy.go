package auth

import (
	"fmt"

	"github.com/equitydash/equitydash/internal/cli/client"
)

// FallbackPolicy decides when a failed remote login falls through to the
// demo account check
type FallbackPolicy string

const (
	// FallbackAlways checks the demo account after any remote failure,
	// including an explicit rejection
	FallbackAlways FallbackPolicy = "always"
	// FallbackUnreachable checks the demo account only when the backend could
	// not give an answer; a 401/403 is final
	FallbackUnreachable FallbackPolicy = "unreachable"
	// FallbackOff never checks the demo account
	FallbackOff FallbackPolicy = "off"
)

// ParseFallbackPolicy parses a policy name; empty means FallbackAlways
func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	switch FallbackPolicy(s) {
	case "", FallbackAlways:
		return FallbackAlways, nil
	case FallbackUnreachable:
		return FallbackUnreachable, nil
	case FallbackOff:
		return FallbackOff, nil
	}
	return "", fmt.Errorf("invalid fallback policy '%s', must be one of: always, unreachable, off", s)
}

type outcome int

const (
	outcomeFallback outcome = iota
	outcomeReject
	outcomeUnavailable
)

func (p FallbackPolicy) decide(remoteErr error) outcome {
	rejected := client.IsRejection(remoteErr)

	switch p {
	case FallbackUnreachable:
		if rejected {
			return outcomeReject
		}
		return outcomeFallback
	case FallbackOff:
		if rejected {
			return outcomeReject
		}
		return outcomeUnavailable
	default:
		return outcomeFallback
	}
}
