package auth

import (
	"strings"

	"github.com/m04kA/SC-BookingService/internal/domain"
)

// DefaultOwnerEmailDomain домен почты по умолчанию для эвристики владельца
const DefaultOwnerEmailDomain = "gmail.com"

// OwnerPolicy decides whether a signed-in identity may act as a salon owner.
// The check is an anti-abuse heuristic, not a security boundary; keeping it
// behind an interface lets the policy be swapped without touching the core.
type OwnerPolicy interface {
	CanActAsOwner(identity domain.Identity) bool
}

// VerifiedEmailDomainPolicy пропускает только подтверждённые аккаунты
// с почтой на заданном домене (по умолчанию gmail.com)
type VerifiedEmailDomainPolicy struct {
	domain string
}

// NewVerifiedEmailDomainPolicy создает политику с указанным доменом почты
// Пустой домен заменяется на DefaultOwnerEmailDomain
func NewVerifiedEmailDomainPolicy(emailDomain string) *VerifiedEmailDomainPolicy {
	if emailDomain == "" {
		emailDomain = DefaultOwnerEmailDomain
	}
	return &VerifiedEmailDomainPolicy{domain: strings.ToLower(emailDomain)}
}

// CanActAsOwner проверяет, что почта подтверждена и находится на нужном домене
func (p *VerifiedEmailDomainPolicy) CanActAsOwner(identity domain.Identity) bool {
	if !identity.EmailVerified {
		return false
	}
	return strings.HasSuffix(strings.ToLower(identity.Email), "@"+p.domain)
}

// AllowAllPolicy политика без ограничений
// Используется, когда эвристика отключена в конфиге
type AllowAllPolicy struct{}

// CanActAsOwner всегда возвращает true
func (AllowAllPolicy) CanActAsOwner(_ domain.Identity) bool {
	return true
}
