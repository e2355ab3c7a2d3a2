// Package credential verifies login secrets against the credential store,
// migrating legacy plaintext fields to bcrypt hashes as they are used.
package credential

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Htr33ml/CS25-2CIA/internal/adapters/sheet"
	"github.com/Htr33ml/CS25-2CIA/pkg/metrics"
)

// defaultCost is the bcrypt work factor for migrated secrets.
const defaultCost = bcrypt.DefaultCost

// secretCol is the 1-based sheet column holding the secret field.
const secretCol = 2

// Option applies a configuration option to the Verifier.
type Option func(*Verifier)

// WithCost sets the bcrypt work factor used when migrating plaintext.
func WithCost(cost int) Option {
	return func(v *Verifier) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			v.cost = cost
		}
	}
}

// Verifier checks secrets against stored credential rows.
type Verifier struct {
	store sheet.CredentialStore
	cost  int
	// decoy is a hash of a value no caller can supply; comparisons against
	// it keep unknown-user lookups on the same code path as known users.
	decoy []byte
}

// New creates a Verifier over the given store.
func New(store sheet.CredentialStore, opts ...Option) (*Verifier, error) {
	v := &Verifier{store: store, cost: defaultCost}
	for _, opt := range opts {
		opt(v)
	}
	decoy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), v.cost)
	if err != nil {
		return nil, fmt.Errorf("generate decoy hash: %w", err)
	}
	v.decoy = decoy
	return v, nil
}

// isHash reports whether a stored field already carries a bcrypt hash.
func isHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// Verify compares secret against the stored field for username. The stored
// field may be plaintext or a bcrypt hash; both comparisons run on every
// call, so the four outcomes (unknown user, hashed match, plaintext match,
// mismatch) share one evaluation shape. A plaintext match rewrites the
// stored field to its hash before reporting success; a failed rewrite is a
// failed operation, not a silent success.
func (v *Verifier) Verify(ctx context.Context, username, secret string) (bool, error) {
	username = strings.TrimSpace(username)
	secret = strings.TrimSpace(secret)

	rows, err := v.store.ListAll(ctx)
	if err != nil {
		return false, fmt.Errorf("list credentials: %w", err)
	}

	// First match wins when the store holds duplicate usernames.
	stored := ""
	storeRow := 0 // 1-based row of the matched user, 0 when unknown
	for i := sheet.HeaderRows; i < len(rows); i++ {
		if len(rows[i]) >= secretCol && strings.TrimSpace(rows[i][0]) == username {
			stored = rows[i][secretCol-1]
			storeRow = i + 1
			break
		}
	}

	target := v.decoy
	if isHash(stored) {
		target = []byte(stored)
	}
	hashedOK := bcrypt.CompareHashAndPassword(target, []byte(secret)) == nil
	plainOK := subtle.ConstantTimeCompare([]byte(stored), []byte(secret)) == 1 && !isHash(stored)

	if storeRow == 0 {
		return false, nil
	}
	if plainOK {
		hash, err := bcrypt.GenerateFromPassword([]byte(secret), v.cost)
		if err != nil {
			return false, fmt.Errorf("hash secret: %w", err)
		}
		if err := v.store.Update(ctx, storeRow, secretCol, []string{string(hash)}); err != nil {
			return false, fmt.Errorf("migrate credential: %w", err)
		}
		metrics.RecordCredentialMigration()
		return true, nil
	}
	return hashedOK, nil
}
