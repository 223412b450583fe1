package controllers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestDenyTTL(t *testing.T) {
	// No exp claim: the token is still denied for the full access
	// token lifetime instead of being skipped.
	if got := denyTTL(jwt.MapClaims{}); got != accessTokenTTL {
		t.Fatalf("missing exp: got %v, want %v", got, accessTokenTTL)
	}
	if got := denyTTL(jwt.MapClaims{"exp": "not-a-number"}); got != accessTokenTTL {
		t.Fatalf("unparsable exp: got %v, want %v", got, accessTokenTTL)
	}

	future := time.Now().Add(2 * time.Hour)
	got := denyTTL(jwt.MapClaims{"exp": float64(future.Unix())})
	if got < time.Hour || got > 2*time.Hour {
		t.Fatalf("future exp: got %v, want about 2h", got)
	}

	// An already expired token needs no denylist entry.
	past := time.Now().Add(-time.Hour)
	if got := denyTTL(jwt.MapClaims{"exp": float64(past.Unix())}); got > 0 {
		t.Fatalf("past exp: got %v, want <= 0", got)
	}
}
