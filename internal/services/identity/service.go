package identity

import (
	"sessionkey/internal/crypto"
	"sessionkey/internal/domain"
)

// Service derives session identities. It holds no state; derivation is a pure
// function of the key material.
type Service struct{}

// New returns an identity service.
func New() *Service { return &Service{} }

// Derive returns the public key and address for material. Equal material
// always yields an equal identity.
func (s *Service) Derive(material domain.SessionKeyMaterial) (domain.SessionIdentity, error) {
	return crypto.DeriveIdentity(material)
}

// Fingerprint returns a short fingerprint of the identity's public key.
func (s *Service) Fingerprint(identity domain.SessionIdentity) domain.Fingerprint {
	return domain.Fingerprint(crypto.Fingerprint(identity.PublicKey))
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
