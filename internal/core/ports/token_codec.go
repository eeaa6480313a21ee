package ports

import (
	"time"

	"github.com/acquisitions/accounts-api/internal/core/domain"
)

// TokenCodec signs and verifies the compact tokens used for
// authentication. Verification is stateless: validity is self-contained
// in the token (signature + expiry), no revocation list is consulted.
type TokenCodec interface {
	Sign(identity domain.Identity) (string, error)
	Verify(token string) (domain.Identity, error)
	TTL() time.Duration
}
