package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"

	"github.com/soundstage/soundstage/internal/modules/account/domain"
	"github.com/soundstage/soundstage/internal/modules/account/infrastructure/jwt"
)

// DTOs for registration, login and profile updates
type RegisterRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLoginRequest struct {
	Token string `json:"token"`
}

// UpdateProfileRequest carries shared fields, an optional password change and
// at most one role-specific field group. Only the group matching the caller's
// own role is ever consulted; the rest are ignored, so a client cannot write
// another role's fields.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Link     *string `json:"link"`

	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`

	Basic     *BasicProfileUpdate     `json:"basic,omitempty"`
	Artist    *ArtistProfileUpdate    `json:"artist,omitempty"`
	Manager   *ManagerProfileUpdate   `json:"manager,omitempty"`
	Moderator *ModeratorProfileUpdate `json:"moderator,omitempty"`
}

type BasicProfileUpdate struct {
	BirthDate   *time.Time `json:"birth_date"`
	Preferences *string    `json:"preferences"`
	Description *string    `json:"description"`
	BankInfo    *string    `json:"bank_info"`
}

type ArtistProfileUpdate struct {
	Genre       *string `json:"genre"`
	Biography   *string `json:"biography"`
	Discography *string `json:"discography"`
	PhotoURL    *string `json:"photo_url"`
}

type ManagerProfileUpdate struct {
	ArtistRoleDescr *string `json:"artist_role_description"`
	Tasks           *string `json:"tasks"`
}

type ModeratorProfileUpdate struct {
	Tasks             *string `json:"tasks"`
	ModerationHistory *string `json:"moderation_history"`
}

// UpdateProfileResult reports the outcome of a profile update. A failed
// password change does not roll back the committed field updates; it is
// reported here alongside them.
type UpdateProfileResult struct {
	User            *domain.User `json:"user"`
	PasswordChanged bool         `json:"password_changed"`
	PasswordError   string       `json:"password_error,omitempty"`
}

// AccountService provides registration, authentication and profile operations
type AccountService struct {
	repo                 domain.UserRepository
	jwtSecret            string
	jwtExpiry            time.Duration
	googleTokenValidator func(ctx context.Context, token string, audience string) (*idtoken.Payload, error)
}

// NewAccountService creates a new account service
func NewAccountService(repo domain.UserRepository, jwtSecret string, jwtExpiry time.Duration) *AccountService {
	return &AccountService{
		repo:                 repo,
		jwtSecret:            jwtSecret,
		jwtExpiry:            jwtExpiry,
		googleTokenValidator: idtoken.Validate,
	}
}

// Register creates a new account with exactly one specialization row matching
// the requested role. Plaintext passwords are hashed before they leave this
// function and are never logged.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, domain.ErrValidation
	}
	if !strings.Contains(req.Email, "@") {
		return nil, domain.ErrValidation
	}

	role := domain.Role(req.Role)
	if !role.Valid() {
		return nil, domain.ErrValidation
	}

	hashedPass, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		fullName = req.Username
	}

	id := uuid.New()
	user := &domain.User{
		ID:           id,
		Username:     req.Username,
		FullName:     fullName,
		Email:        req.Email,
		PasswordHash: string(hashedPass),
		Role:         role,
		Profile:      domain.EmptyProfile(role, id),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies credentials and returns the user with the effective
// role plus a signed session token. Unknown email and wrong password produce
// the same generic error.
func (s *AccountService) Authenticate(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	if req.Email == "" || req.Password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials // don't reveal user existence
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	// Role is resolved by probing the specialization tables; the fixed
	// precedence keeps resolution deterministic even when a username shows
	// up in more than one table.
	role, err := s.repo.ResolveRole(ctx, user.Username)
	if err != nil {
		return nil, "", err
	}
	user.Role = role

	token, err := jwt.GenerateToken(s.jwtSecret, s.jwtExpiry, user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// GetUser retrieves a user with their specialization profile
func (s *AccountService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile, err := s.repo.GetProfile(ctx, user)
	if err != nil {
		return nil, err
	}
	user.Profile = profile
	return user, nil
}

// GetPublicProfile retrieves a user's public profile by username
func (s *AccountService) GetPublicProfile(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	profile, err := s.repo.GetProfile(ctx, user)
	if err != nil {
		return nil, err
	}
	user.Profile = profile
	return user, nil
}

// UpdateProfile applies an owner-only profile update. Shared and role-specific
// fields commit together in one transaction; the password changes only when
// the supplied old password matches, and a mismatch is reported in the result
// without rolling back the rest.
func (s *AccountService) UpdateProfile(ctx context.Context, callerID, targetID uuid.UUID, req UpdateProfileRequest) (*UpdateProfileResult, error) {
	if callerID != targetID {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	profile, err := s.mergedRoleFields(ctx, user, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateSharedAndProfile(ctx, callerID, req.FullName, req.Phone, req.Link, profile); err != nil {
		return nil, err
	}

	result := &UpdateProfileResult{}

	if req.OldPassword != "" && req.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
			result.PasswordError = "current password is incorrect"
		} else {
			hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
			if err != nil {
				return nil, err
			}
			if err := s.repo.UpdatePassword(ctx, callerID, string(hashed)); err != nil {
				return nil, err
			}
			result.PasswordChanged = true
		}
	}

	updated, err := s.GetUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	result.User = updated
	return result, nil
}

// mergedRoleFields loads the caller's specialization row and merges in the
// field group matching their own role. Groups for other roles are ignored;
// when no matching group was sent it returns nil so no profile row is written.
func (s *AccountService) mergedRoleFields(ctx context.Context, user *domain.User, req UpdateProfileRequest) (domain.Profile, error) {
	profile, err := s.repo.GetProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	switch p := profile.(type) {
	case *domain.BasicProfile:
		if req.Basic == nil {
			return nil, nil
		}
		merge(&p.BirthDate, req.Basic.BirthDate)
		merge(&p.Preferences, req.Basic.Preferences)
		merge(&p.Description, req.Basic.Description)
		merge(&p.BankInfo, req.Basic.BankInfo)
	case *domain.ArtistProfile:
		if req.Artist == nil {
			return nil, nil
		}
		merge(&p.Genre, req.Artist.Genre)
		merge(&p.Biography, req.Artist.Biography)
		merge(&p.Discography, req.Artist.Discography)
		merge(&p.PhotoURL, req.Artist.PhotoURL)
	case *domain.ManagerProfile:
		if req.Manager == nil {
			return nil, nil
		}
		merge(&p.ArtistRoleDescr, req.Manager.ArtistRoleDescr)
		merge(&p.Tasks, req.Manager.Tasks)
	case *domain.ModeratorProfile:
		if req.Moderator == nil {
			return nil, nil
		}
		merge(&p.Tasks, req.Moderator.Tasks)
		merge(&p.ModerationHistory, req.Moderator.ModerationHistory)
	}

	return profile, nil
}

func merge[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

// SetAvatar stores the uploaded avatar URL on the account
func (s *AccountService) SetAvatar(ctx context.Context, id uuid.UUID, url string) error {
	return s.repo.UpdateAvatar(ctx, id, url)
}

// ValidateToken validates a JWT token and returns the claims
func (s *AccountService) ValidateToken(tokenStr string) (*jwt.CustomClaims, error) {
	return jwt.ValidateToken(tokenStr, s.jwtSecret)
}

// GoogleLogin validates a Google ID token and signs the matching account in,
// provisioning a basic account on first sight.
func (s *AccountService) GoogleLogin(ctx context.Context, googleClientID string, req GoogleLoginRequest) (string, error) {
	validate := s.googleTokenValidator
	if validate == nil {
		validate = idtoken.Validate
	}

	payload, err := validate(ctx, req.Token, googleClientID)
	if err != nil {
		log.Printf("GoogleLogin token validate failed: %v", err)
		return "", errors.New("invalid google token")
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		return "", errors.New("email not provided by google")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return "", err
		}
		id := uuid.New()
		user = &domain.User{
			ID:           id,
			Username:     strings.SplitN(email, "@", 2)[0],
			FullName:     name,
			Email:        email,
			PasswordHash: "", // no password for OAuth accounts
			Role:         domain.RoleBasic,
			Profile:      domain.EmptyProfile(domain.RoleBasic, id),
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if createErr := s.repo.Create(ctx, user); createErr != nil {
			if !errors.Is(createErr, domain.ErrUserAlreadyExists) {
				return "", createErr
			}
			// The email local part is already taken as a username by another
			// account; retry once with a short random suffix.
			user.Username = fmt.Sprintf("%s-%s", user.Username, uuid.NewString()[:8])
			if createErr := s.repo.Create(ctx, user); createErr != nil {
				return "", createErr
			}
		}
	}

	return jwt.GenerateToken(s.jwtSecret, s.jwtExpiry, user.ID, user.Username, string(user.Role))
}
