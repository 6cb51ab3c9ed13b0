package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"citalink.app/configs/configslog"
	"citalink.app/models"
	"citalink.app/pkg/queryparams"
	"citalink.app/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	ErrUserEntityNotFound    ServiceError = "usuario no encontrado"
	ErrEmailTaken            ServiceError = "el correo electrónico ya existe"
	ErrInvalidCredentials    ServiceError = "credenciales inválidas"
	ErrUserSuspended         ServiceError = "acceso denegado: tu cuenta está suspendida"
	ErrPasswordTooShort      ServiceError = "la contraseña debe tener al menos 8 caracteres"
	ErrPasswordHashingFailed ServiceError = "error al generar la contraseña"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nameRegex  = regexp.MustCompile(`^[a-zA-ZáéíóúüñÑ\s'` + "`" + `-]+$`)
)

const minPasswordLength = 8

// RegisterUserInput carries the registration fields.
type RegisterUserInput struct {
	Email          string
	FirstName      string
	LastName       string
	Password       string
	Role           string
	ProfilePicture string
	Locations      models.LocationList
	Profession     *string
	OfficePictures models.StringList
}

// UserPatch is a partial update; nil fields are left untouched.
type UserPatch struct {
	Email          *string
	FirstName      *string
	LastName       *string
	Password       *string
	Role           *string
	ProfilePicture *string
	Locations      *models.LocationList
	Profession     *string
	OfficePictures *models.StringList
	Strikes        *int
	IsVerified     *bool
}

// LoginInput carries the credentials plus the request metadata recorded in
// the login history ring.
type LoginInput struct {
	Email    string
	Password string
	Device   string
	IP       string
}

// IUserService covers account lifecycle, authentication state and the
// administrative listings.
type IUserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetAllUsers(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetAllDeletedUsers(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateUser(ctx context.Context, id, actorID uuid.UUID, patch UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id, deletedBy uuid.UUID) (bool, error)
	Login(ctx context.Context, input LoginInput) (*models.User, error)
	SuspendOverdueUsers(ctx context.Context) (int64, error)
}

// UserService implements IUserService.
type UserService struct {
	repo      repositories.IUserRepository
	guard     *ReferentialGuard
	lifecycle *Lifecycle[models.User, *models.User]
}

// NewUserService wires the service with its repository and guard.
func NewUserService(repo repositories.IUserRepository, guard *ReferentialGuard) IUserService {
	return &UserService{
		repo:      repo,
		guard:     guard,
		lifecycle: NewLifecycle[models.User, *models.User](repo, guard),
	}
}

func validateName(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s es requerido", ErrInvalidInput, field)
	}
	if !nameRegex.MatchString(value) {
		return fmt.Errorf("%w: %s solo puede contener letras y espacios", ErrInvalidInput, field)
	}
	return nil
}

func validateRoleAndProfession(role string, profession *string) error {
	if !models.ValidRoles[role] {
		return fmt.Errorf("%w: rol desconocido %q", ErrInvalidInput, role)
	}
	if role == models.RoleProf {
		if profession == nil || *profession == "" {
			return fmt.Errorf("%w: la profesión es requerida para profesionales", ErrInvalidInput)
		}
		if !models.ValidProfessions[*profession] {
			return fmt.Errorf("%w: profesión desconocida %q", ErrInvalidInput, *profession)
		}
	} else if profession != nil && *profession != "" {
		return fmt.Errorf("%w: solo los profesionales declaran profesión", ErrInvalidInput)
	}
	return nil
}

func hashPassword(plain string) (string, error) {
	if len(plain) < minPasswordLength {
		return "", ErrPasswordTooShort
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrPasswordHashingFailed
	}
	return string(hashed), nil
}

// Register creates an account with an empty audit envelope.
func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (*models.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if !emailRegex.MatchString(input.Email) {
		return nil, fmt.Errorf("%w: por favor introduce un email válido", ErrInvalidInput)
	}
	if err := validateName("el nombre", input.FirstName); err != nil {
		return nil, err
	}
	if err := validateName("el apellido", input.LastName); err != nil {
		return nil, err
	}
	if err := validateRoleAndProfession(input.Role, input.Profession); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:          input.Email,
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		PasswordHash:   hashed,
		Role:           input.Role,
		ProfilePicture: input.ProfilePicture,
		Locations:      input.Locations,
		Profession:     input.Profession,
		OfficePictures: input.OfficePictures,
	}
	if err := s.lifecycle.Create(ctx, user); err != nil {
		return nil, err
	}
	configslog.SLog.Infof("User registered: %s (%s)", user.ID, user.Role)
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserEntityNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetAllUsers(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	items, total, err := s.repo.FindAllFiltered(ctx, params, false)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(items, params, total), nil
}

// GetAllDeletedUsers is the administrative listing of soft-deleted accounts.
func (s *UserService) GetAllDeletedUsers(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	items, total, err := s.repo.FindAllFiltered(ctx, params, true)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(items, params, total), nil
}

// UpdateUser applies a partial update attributed to actorID. A password
// change pushes the superseded hash onto the bounded password-history ring
// before the new hash replaces it.
func (s *UserService) UpdateUser(ctx context.Context, id, actorID uuid.UUID, patch UserPatch) (*models.User, error) {
	updated, err := s.lifecycle.Update(ctx, id, actorID, func(u *models.User) error {
		if patch.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*patch.Email))
			if !emailRegex.MatchString(email) {
				return fmt.Errorf("%w: por favor introduce un email válido", ErrInvalidInput)
			}
			if existing, err := s.repo.FindByEmail(ctx, email); err == nil {
				if existing.ID != u.ID {
					return ErrEmailTaken
				}
			} else if !errors.Is(err, repositories.ErrNotFound) {
				return err
			}
			u.Email = email
		}
		if patch.FirstName != nil {
			if err := validateName("el nombre", *patch.FirstName); err != nil {
				return err
			}
			u.FirstName = strings.TrimSpace(*patch.FirstName)
		}
		if patch.LastName != nil {
			if err := validateName("el apellido", *patch.LastName); err != nil {
				return err
			}
			u.LastName = strings.TrimSpace(*patch.LastName)
		}
		if patch.Role != nil || patch.Profession != nil {
			role := u.Role
			if patch.Role != nil {
				role = *patch.Role
			}
			profession := u.Profession
			if patch.Profession != nil {
				profession = patch.Profession
			}
			if err := validateRoleAndProfession(role, profession); err != nil {
				return err
			}
			u.Role = role
			u.Profession = profession
		}
		if patch.Password != nil {
			hashed, err := hashPassword(*patch.Password)
			if err != nil {
				return err
			}
			// u.PasswordHash still holds the persisted hash at this point.
			if u.PasswordHash != "" {
				u.PasswordHistory.Push(models.PasswordRecord{
					Password:  u.PasswordHash,
					ChangedAt: s.lifecycle.now(),
				})
			}
			u.PasswordHash = hashed
		}
		if patch.ProfilePicture != nil {
			u.ProfilePicture = *patch.ProfilePicture
		}
		if patch.Locations != nil {
			u.Locations = *patch.Locations
		}
		if patch.OfficePictures != nil {
			u.OfficePictures = *patch.OfficePictures
		}
		if patch.Strikes != nil {
			if *patch.Strikes < 0 {
				return fmt.Errorf("%w: los strikes no pueden ser negativos", ErrInvalidInput)
			}
			u.Strikes = *patch.Strikes
		}
		if patch.IsVerified != nil {
			u.IsVerified = *patch.IsVerified
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUserEntityNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeleteUser soft-deletes an account; repeating it is a successful no-op.
func (s *UserService) DeleteUser(ctx context.Context, id, deletedBy uuid.UUID) (bool, error) {
	transitioned, err := s.lifecycle.SoftDelete(ctx, id, deletedBy)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, ErrUserEntityNotFound
		}
		return false, err
	}
	if transitioned {
		configslog.SLog.Infof("User soft-deleted: %s (by %s)", id, deletedBy)
	}
	return transitioned, nil
}

// Login verifies credentials and records the login: lastLogin, the total
// counter, and the bounded newest-first login-history ring. Suspended or
// deleted accounts are rejected. A login is the subject acting on itself, so
// no modification-ledger entry is appended; old_data is still captured.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.IsSuspended {
		return nil, ErrUserSuspended
	}
	if user.Deleted.IsDeleted {
		return nil, ErrInvalidCredentials
	}

	now := s.lifecycle.now()
	device := input.Device
	if device == "" {
		device = "Dispositivo desconocido"
	}
	ip := input.IP
	if ip == "" {
		ip = "IP desconocida"
	}

	s.lifecycle.snapshot.Capture(ctx, user)
	user.LastLogin = &now
	user.TotalLoginCount++
	user.HistoricalLogins.Push(models.LoginRecord{LoginDate: now, Device: device, IP: ip})

	if err := s.repo.Save(ctx, user); err != nil {
		configslog.SLog.Errorw("Login bookkeeping save failed", "userID", user.ID, "err", err)
		return nil, err
	}
	return user, nil
}

// SuspendOverdueUsers runs the daily strike sweep.
func (s *UserService) SuspendOverdueUsers(ctx context.Context) (int64, error) {
	suspended, err := s.repo.SuspendOverdue(ctx)
	if err != nil {
		return 0, err
	}
	if suspended > 0 {
		configslog.SLog.Infof("Suspension sweep: %d account(s) suspended", suspended)
	}
	return suspended, nil
}

var _ IUserService = (*UserService)(nil)
