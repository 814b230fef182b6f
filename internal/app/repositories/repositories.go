package repositories

import (
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository  *UserRepository
	ClaimRepository *ClaimRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:  NewUserRepository(db),
		ClaimRepository: NewClaimRepository(db),
	}
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
