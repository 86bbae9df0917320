package repository

import (
	"errors"

	"github.com/amirasaad/vmadmin/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts gorm errors to domain errors. The connection
// must be opened with TranslateError so driver constraint errors surface as
// gorm sentinels. Unmapped errors are returned unchanged.
func MapGormErrorToDomain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		// A referenced user, machine or plan vanished between check and write.
		return domain.ErrNotFound
	}
	return err
}

// WrapError runs op and maps its error.
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
