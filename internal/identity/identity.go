// Package identity derives stable record IDs from a record's stable fields.
//
// An ID is the hex SHA-1 of the canonical key: every field followed by a
// literal hyphen. The same fields always give the same ID, which is what lets
// repeated imports of one statement recognize records they have already seen.
package identity

import (
	"context"
	"crypto/sha1" //nolint:gosec // fingerprint, not a security boundary
	"encoding/hex"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Separator follows every field in the canonical key.
const Separator = "-"

// DefaultConcurrency bounds the number of hashing goroutines per batch.
const DefaultConcurrency = 8

// CanonicalKey joins fields into the string that gets hashed. Each field is
// trimmed first.
func CanonicalKey(fields ...string) string {
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(strings.TrimSpace(f))
		b.WriteString(Separator)
	}
	return b.String()
}

// Hash returns the hex SHA-1 digest of key.
func Hash(key string) string {
	sum := sha1.Sum([]byte(key)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// ID hashes the canonical key of fields.
func ID(fields ...string) string {
	return Hash(CanonicalKey(fields...))
}

// Keyed is anything that exposes its stable identity fields.
type Keyed interface {
	IdentityFields() []string
}

// HashAll computes the ID of every item concurrently and returns them in input
// order. It returns only after every hash has been computed.
func HashAll[T Keyed](ctx context.Context, items []T) ([]string, error) {
	ids := make([]string, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultConcurrency)

	for i := range items {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ids[i] = ID(items[i].IdentityFields()...)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}
