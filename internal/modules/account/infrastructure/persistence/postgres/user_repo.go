package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/soundstage/soundstage/internal/modules/account/domain"
)

type PgUserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates and returns a new PostgreSQL-based user repository
// implementing domain.UserRepository.
func NewUserRepository(db *sqlx.DB) *PgUserRepository {
	return &PgUserRepository{db: db}
}

// roleProbes lists the specialization tables in resolution precedence order.
// A username present in more than one table resolves to the first hit.
var roleProbes = []struct {
	role  domain.Role
	table string
}{
	{domain.RoleArtist, "artist_profiles"},
	{domain.RoleManager, "manager_profiles"},
	{domain.RoleModerator, "moderator_profiles"},
	{domain.RoleBasic, "basic_profiles"},
}

// Create inserts the users row and exactly one specialization row matching
// user.Role, in a single transaction. The profile row starts empty.
func (r *PgUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = time.Now()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return mapErr(err)
	}
	defer tx.Rollback()

	query := `INSERT INTO users (id, username, full_name, email, password_hash, role, phone, link, avatar_url, created_at, updated_at)
	          VALUES (:id, :username, :full_name, :email, :password_hash, :role, :phone, :link, :avatar_url, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, user); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrUserAlreadyExists
		}
		return mapErr(err)
	}

	if err := insertProfile(ctx, tx, user.ID, user.Profile); err != nil {
		return mapErr(err)
	}

	return tx.Commit()
}

func insertProfile(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, profile domain.Profile) error {
	switch p := profile.(type) {
	case *domain.BasicProfile:
		p.UserID = userID
		_, err := tx.NamedExecContext(ctx, `INSERT INTO basic_profiles (user_id, birth_date, preferences, description, card_reference, subscription_type, subscription_price, subscription_date, bank_info)
			VALUES (:user_id, :birth_date, :preferences, :description, :card_reference, :subscription_type, :subscription_price, :subscription_date, :bank_info)`, p)
		return err
	case *domain.ArtistProfile:
		p.UserID = userID
		_, err := tx.NamedExecContext(ctx, `INSERT INTO artist_profiles (user_id, genre, biography, discography, photo_url)
			VALUES (:user_id, :genre, :biography, :discography, :photo_url)`, p)
		return err
	case *domain.ManagerProfile:
		p.UserID = userID
		_, err := tx.NamedExecContext(ctx, `INSERT INTO manager_profiles (user_id, artist_role_description, tasks)
			VALUES (:user_id, :artist_role_description, :tasks)`, p)
		return err
	case *domain.ModeratorProfile:
		p.UserID = userID
		_, err := tx.NamedExecContext(ctx, `INSERT INTO moderator_profiles (user_id, tasks, moderation_history)
			VALUES (:user_id, :tasks, :moderation_history)`, p)
		return err
	}
	return fmt.Errorf("unknown profile variant %T", profile)
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE email = $1`, email)
}

func (r *PgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE id = $1`, id)
}

func (r *PgUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE username = $1`, username)
}

func (r *PgUserRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.GetContext(ctx, user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, mapErr(err)
	}
	return user, nil
}

// ResolveRole probes the specialization tables in precedence order
// artist > manager > moderator > basic and returns the first match. When no
// specialization row exists it falls back to the role column on users.
func (r *PgUserRepository) ResolveRole(ctx context.Context, username string) (domain.Role, error) {
	for _, probe := range roleProbes {
		var exists bool
		query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s p JOIN users u ON p.user_id = u.id WHERE u.username = $1)`, probe.table)
		if err := r.db.GetContext(ctx, &exists, query, username); err != nil {
			return "", mapErr(err)
		}
		if exists {
			return probe.role, nil
		}
	}

	var role domain.Role
	err := r.db.GetContext(ctx, &role, `SELECT role FROM users WHERE username = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrUserNotFound
	}
	if err != nil {
		return "", mapErr(err)
	}
	return role, nil
}

// GetProfile loads the specialization row for user.Role. A missing row is
// returned as the empty variant.
func (r *PgUserRepository) GetProfile(ctx context.Context, user *domain.User) (domain.Profile, error) {
	var (
		dest  domain.Profile
		query string
	)
	switch user.Role {
	case domain.RoleBasic:
		dest, query = &domain.BasicProfile{}, `SELECT * FROM basic_profiles WHERE user_id = $1`
	case domain.RoleArtist:
		dest, query = &domain.ArtistProfile{}, `SELECT * FROM artist_profiles WHERE user_id = $1`
	case domain.RoleManager:
		dest, query = &domain.ManagerProfile{}, `SELECT * FROM manager_profiles WHERE user_id = $1`
	case domain.RoleModerator:
		dest, query = &domain.ModeratorProfile{}, `SELECT * FROM moderator_profiles WHERE user_id = $1`
	default:
		return nil, fmt.Errorf("unknown role %q", user.Role)
	}

	err := r.db.GetContext(ctx, dest, query, user.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.EmptyProfile(user.Role, user.ID), nil
	}
	if err != nil {
		return nil, mapErr(err)
	}
	return dest, nil
}

// UpdateSharedAndProfile writes the shared user columns and, when profile is
// non-nil, the specialization row for its variant inside one transaction, so
// a failed role-field write never leaves the shared fields half applied.
func (r *PgUserRepository) UpdateSharedAndProfile(ctx context.Context, id uuid.UUID, fullName, phone, link *string, profile domain.Profile) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return mapErr(err)
	}
	defer tx.Rollback()

	if err := updateShared(ctx, tx, id, fullName, phone, link); err != nil {
		return mapErr(err)
	}
	if profile != nil {
		if err := updateProfile(ctx, tx, id, profile); err != nil {
			return mapErr(err)
		}
	}

	return tx.Commit()
}

// updateShared updates the fields every role may edit. Only non-nil values
// are written.
func updateShared(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID, fullName, phone, link *string) error {
	setClauses := []string{}
	args := []interface{}{}
	argIndex := 1

	if fullName != nil {
		setClauses = append(setClauses, fmt.Sprintf("full_name = $%d", argIndex))
		args = append(args, fullName)
		argIndex++
	}
	if phone != nil {
		setClauses = append(setClauses, fmt.Sprintf("phone = $%d", argIndex))
		args = append(args, phone)
		argIndex++
	}
	if link != nil {
		setClauses = append(setClauses, fmt.Sprintf("link = $%d", argIndex))
		args = append(args, link)
		argIndex++
	}

	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now())
	argIndex++
	args = append(args, id)

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argIndex)
	_, err := ext.ExecContext(ctx, query, args...)
	return err
}

func (r *PgUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`, passwordHash, time.Now(), id)
	return mapErr(err)
}

func (r *PgUserRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET avatar_url = $1, updated_at = $2 WHERE id = $3`, avatarURL, time.Now(), id)
	return mapErr(err)
}

// UpdateProfile writes the full specialization row for the variant's role.
// Callers load the current profile, apply changes and write it back, which
// keeps the exhaustive dispatch in one place.
func (r *PgUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, profile domain.Profile) error {
	return mapErr(updateProfile(ctx, r.db, id, profile))
}

func updateProfile(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID, profile domain.Profile) error {
	var (
		query string
		err   error
	)
	switch p := profile.(type) {
	case *domain.BasicProfile:
		p.UserID = id
		query = `UPDATE basic_profiles SET birth_date = :birth_date, preferences = :preferences, description = :description,
			card_reference = :card_reference, subscription_type = :subscription_type, subscription_price = :subscription_price,
			subscription_date = :subscription_date, bank_info = :bank_info WHERE user_id = :user_id`
		_, err = sqlx.NamedExecContext(ctx, ext, query, p)
	case *domain.ArtistProfile:
		p.UserID = id
		query = `UPDATE artist_profiles SET genre = :genre, biography = :biography, discography = :discography, photo_url = :photo_url WHERE user_id = :user_id`
		_, err = sqlx.NamedExecContext(ctx, ext, query, p)
	case *domain.ManagerProfile:
		p.UserID = id
		query = `UPDATE manager_profiles SET artist_role_description = :artist_role_description, tasks = :tasks WHERE user_id = :user_id`
		_, err = sqlx.NamedExecContext(ctx, ext, query, p)
	case *domain.ModeratorProfile:
		p.UserID = id
		query = `UPDATE moderator_profiles SET tasks = :tasks, moderation_history = :moderation_history WHERE user_id = :user_id`
		_, err = sqlx.NamedExecContext(ctx, ext, query, p)
	default:
		return fmt.Errorf("unknown profile variant %T", profile)
	}
	return err
}

// FindByID implements domain.UserFinder for other modules
func (r *PgUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.GetByID(ctx, id)
}

// Exists implements domain.UserFinder
func (r *PgUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id)
	return exists, mapErr(err)
}

// mapErr surfaces connection-level failures as ErrStoreUnavailable so the
// web layer can answer with a retryable status.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, driver.ErrBadConn) {
		return domain.ErrStoreUnavailable
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "08" {
		return domain.ErrStoreUnavailable
	}
	return err
}
