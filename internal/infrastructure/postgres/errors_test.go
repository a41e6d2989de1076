package postgres

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/DonOmbisi/kilimo3/pkg/apperrors"
)

func TestStoreOrNotFoundMapsFKViolation(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "blog_votes_blog_id_fkey"}

	err := storeOrNotFound(fk, "blog not found")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, http.StatusNotFound, apperrors.HTTPStatus(err))
	assert.EqualError(t, err, "blog not found")

	wrapped := fmt.Errorf("exec: %w", fk)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(storeOrNotFound(wrapped, "blog not found")))
}

func TestStoreOrNotFoundKeepsOtherFailures(t *testing.T) {
	err := storeOrNotFound(errors.New("connection reset"), "blog not found")
	assert.Equal(t, apperrors.KindStore, apperrors.KindOf(err))

	unique := &pgconn.PgError{Code: "23505"}
	assert.Equal(t, apperrors.KindStore, apperrors.KindOf(storeOrNotFound(unique, "blog not found")))
}
