package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/claimboard/internal/app/models"
	"github.com/yigit/claimboard/internal/pkg/apperrors"
	"github.com/yigit/claimboard/internal/pkg/dberrors"
	"github.com/yigit/claimboard/internal/pkg/logger"
)

// IUserRepository defines the user directory operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindManyByEmails returns the users that exist; unknown emails are simply absent
	FindManyByEmails(ctx context.Context, emails []string) ([]*models.User, error)
	FindManyByIDs(ctx context.Context, ids []int64) ([]*models.User, error)
	UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) (*models.User, error)
}

var userColumns = []string{
	"id", "email", "name", "role", "is_active", "department", "year",
	"roll_no", "github_url", "linkedin_url", "created_at", "updated_at",
}

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func selectUsers() squirrel.SelectBuilder {
	return squirrel.Select(userColumns...).From("users").PlaceholderFormat(squirrel.Dollar)
}

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.IsActive, &u.Department, &u.Year,
		&u.RollNo, &u.GithubURL, &u.LinkedinURL, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Create inserts a user and returns its id. The email is stored normalised.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	sql, args, err := squirrel.Insert("users").
		Columns("email", "name", "role", "is_active", "department", "year", "roll_no", "github_url", "linkedin_url").
		Values(models.NormalizeEmail(user.Email), user.Name, user.Role, user.IsActive, user.Department,
			user.Year, user.RollNo, user.GithubURL, user.LinkedinURL).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return 0, err
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}
	return id, nil
}

// FindByID retrieves a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := selectUsers().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		logger.Error().Err(err).Int64("userID", id).Msg("Error getting user by ID")
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, err
}

// FindByEmail retrieves a user by email, matching case-insensitively
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := selectUsers().Where(squirrel.Eq{"email": models.NormalizeEmail(email)}).ToSql()
	if err != nil {
		return nil, err
	}
	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		logger.Error().Err(err).Msg("Error getting user by email")
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, err
}

// FindManyByEmails returns the users with any of the given emails
func (r *UserRepository) FindManyByEmails(ctx context.Context, emails []string) ([]*models.User, error) {
	if len(emails) == 0 {
		return []*models.User{}, nil
	}
	normalized := make([]string, len(emails))
	for i, e := range emails {
		normalized[i] = models.NormalizeEmail(e)
	}
	return r.queryUsers(ctx, selectUsers().Where(squirrel.Eq{"email": normalized}).OrderBy("id"))
}

// FindManyByIDs returns the users with any of the given ids
func (r *UserRepository) FindManyByIDs(ctx context.Context, ids []int64) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}
	return r.queryUsers(ctx, selectUsers().Where(squirrel.Eq{"id": ids}).OrderBy("id"))
}

// UpdateProfile applies the non-nil fields of update and returns the stored user
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) (*models.User, error) {
	if update.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	builder := squirrel.Update("users").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(userColumns)).
		PlaceholderFormat(squirrel.Dollar)

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Department != nil {
		builder = builder.Set("department", *update.Department)
	}
	if update.Year != nil {
		builder = builder.Set("year", *update.Year)
	}
	if update.RollNo != nil {
		builder = builder.Set("roll_no", *update.RollNo)
	}
	if update.GithubURL != nil {
		builder = builder.Set("github_url", *update.GithubURL)
	}
	if update.LinkedinURL != nil {
		builder = builder.Set("linkedin_url", *update.LinkedinURL)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update profile SQL")
		return nil, err
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		logger.Error().Err(err).Int64("userID", id).Msg("Error executing update profile query")
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return user, err
}

func (r *UserRepository) queryUsers(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.User, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying users")
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}
