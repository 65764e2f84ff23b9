package sqlite_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	. "github.com/onsi/gomega"

	"crmchat/internal/adapter/database/sqlite"
	"crmchat/internal/core/domain"
)

func TestWrapError(t *testing.T) {
	RegisterTestingT(t)

	Expect(sqlite.WrapError("deal.GetByID", nil)).To(BeNil())
	Expect(sqlite.WrapError("deal.GetByID", sql.ErrNoRows)).To(MatchError(domain.ErrNotFound))
	Expect(sqlite.WrapError("deal.GetByID", fmt.Errorf("scan: %w", sql.ErrNoRows))).To(MatchError(domain.ErrNotFound))

	validation := domain.NewValidationError("body", "no fields to update")
	Expect(sqlite.WrapError("deal.Update", validation)).To(BeIdenticalTo(validation))

	err := sqlite.WrapError("deal.Create", errors.New("database is locked"))

	var storageErr *domain.StorageError
	Expect(errors.As(err, &storageErr)).To(BeTrue())
	Expect(storageErr.Op).To(Equal("deal.Create"))
	Expect(storageErr.Constraint).To(BeFalse())
	Expect(err.Error()).To(Equal("database is locked"))

	Expect(sqlite.WrapError("deal.Update", err)).To(BeIdenticalTo(err))
}
