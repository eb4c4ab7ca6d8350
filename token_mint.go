package confirm

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// newConfirmationToken mints the opaque store key: a 128-bit random
// identifier rendered as a string. Guessing one within the TTL window is
// not feasible, which is what makes the link safe to act on.
func newConfirmationToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to mint confirmation token")
	}
	return id.String(), nil
}
