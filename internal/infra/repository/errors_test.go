package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-sync/internal/storeerr"
)

func TestClassifyGorm(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want storeerr.Category
	}{
		{"not found", gorm.ErrRecordNotFound, storeerr.CategoryNotFound},
		{"translated duplicate", gorm.ErrDuplicatedKey, storeerr.CategoryAlreadyExists},
		{"raw duplicate", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), storeerr.CategoryAlreadyExists},
		{"plain", errors.New("boom"), storeerr.CategoryUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, storeerr.CategoryOf(classifyGorm(tc.err)))
		})
	}

	assert.NoError(t, classifyGorm(nil))
}
