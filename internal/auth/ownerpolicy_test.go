package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SC-BookingService/internal/domain"
)

func TestVerifiedEmailDomainPolicy(t *testing.T) {
	policy := NewVerifiedEmailDomainPolicy("gmail.com")

	tests := []struct {
		name     string
		identity domain.Identity
		allowed  bool
	}{
		{
			"verified gmail account",
			domain.Identity{Email: "owner@gmail.com", EmailVerified: true},
			true,
		},
		{
			"unverified gmail account",
			domain.Identity{Email: "owner@gmail.com", EmailVerified: false},
			false,
		},
		{
			"verified non-gmail account",
			domain.Identity{Email: "owner@example.com", EmailVerified: true},
			false,
		},
		{
			"empty email",
			domain.Identity{EmailVerified: true},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, policy.CanActAsOwner(tt.identity))
		})
	}
}

func TestVerifiedEmailDomainPolicy_DefaultDomain(t *testing.T) {
	policy := NewVerifiedEmailDomainPolicy("")
	assert.True(t, policy.CanActAsOwner(domain.Identity{Email: "owner@gmail.com", EmailVerified: true}))
}

func TestAllowAllPolicy(t *testing.T) {
	assert.True(t, AllowAllPolicy{}.CanActAsOwner(domain.Identity{}))
}
