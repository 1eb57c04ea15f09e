// Package users holds the credential store: the Repository contract and its
// in-memory implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/userkeeper/internal/server/models"
)

// Repository is the credential store. Lookups that miss return
// common.ErrorNotFound. Implementations return copies, so callers may not
// mutate stored records through the returned values.
type Repository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create assigns the ID and stores the record.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// Update replaces name and email. passwordHash replaces the stored hash
	// only when non-empty.
	Update(ctx context.Context, id int64, name, email, passwordHash string) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
