package postgres

import (
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	domerrors "github.com/Rluis14/Plant-Pals-App/internal/domain/errors"
)

// uniqueViolation is the Postgres error code for a unique-constraint hit.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// storeErr classifies a store failure: transport problems surface as
// ErrNetwork, provider-side rejections as ErrProvider. Callers that expect a
// specific condition (unique violation, no rows) check for it first.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", domerrors.ErrNetwork, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%w: %s", domerrors.ErrProvider, pgErr.Message)
	}
	return err
}
