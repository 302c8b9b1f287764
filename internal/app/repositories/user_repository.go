package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/vmerk/tutorium/internal/app/models"
	"github.com/vmerk/tutorium/internal/app/repositories/user"
	"github.com/vmerk/tutorium/internal/db"
	"github.com/vmerk/tutorium/internal/pkg/apperrors"
	"github.com/vmerk/tutorium/internal/pkg/dberrors"
	"github.com/vmerk/tutorium/internal/pkg/helpers"
	"github.com/vmerk/tutorium/internal/pkg/logger"
	"github.com/vmerk/tutorium/internal/pkg/validation"
)

// uniqueCodeAttempts bounds the retry loop for unique-code generation.
const uniqueCodeAttempts = 5

// UserPatch is the whitelisted partial-update set for a user. Nil fields are
// left unchanged. PasswordHash must already be hashed by the caller.
type UserPatch struct {
	FullName          *string
	Email             *string
	PasswordHash      *string
	Birthday          *time.Time
	Gender            *models.Gender
	City              *string
	PhoneNumber       *string
	ProfilePictureURL *string
}

// UserRepository combines the shared user table with the four role-record
// sub-repositories. Multi-statement operations run inside a transaction with
// the sub-repositories rebound to the transaction handle.
type UserRepository struct {
	store         *db.PostgresDB
	common        *user.Repository
	student       *user.StudentRepository
	teacher       *user.TeacherRepository
	parent        *user.ParentRepository
	administrator *user.AdministratorRepository
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(store *db.PostgresDB) *UserRepository {
	return &UserRepository{
		store:         store,
		common:        user.NewRepository(store.Pool),
		student:       user.NewStudentRepository(store.Pool),
		teacher:       user.NewTeacherRepository(store.Pool),
		parent:        user.NewParentRepository(store.Pool),
		administrator: user.NewAdministratorRepository(store.Pool),
	}
}

// CreateUserWithRole creates a user together with exactly one role record in
// a single transaction. The role's attribute bundle is read from the matching
// relation field on u (u.Student, u.Teacher, ...); a nil bundle inserts a
// record with zero-value attributes. An unrecognized role value creates the
// user with no role record at all; rejecting such input is the HTTP layer's
// concern. Any failure rolls back the whole operation.
func (r *UserRepository) CreateUserWithRole(ctx context.Context, u *models.User, role models.Role) error {
	err := r.store.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		common := user.NewRepository(tx)

		exists, err := common.EmailExists(ctx, u.Email)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrEmailAlreadyExists
		}

		if u.UniqueCode == "" {
			code, err := freeUniqueCode(ctx, common)
			if err != nil {
				return err
			}
			u.UniqueCode = code
		} else if !validation.IsValidUniqueCode(u.UniqueCode) {
			return fmt.Errorf("%w: unique code must be 8 alphanumeric characters", apperrors.ErrValidationFailed)
		}

		if err := common.CreateUser(ctx, u); err != nil {
			return err
		}

		switch role {
		case models.RoleStudent:
			student := u.Student
			if student == nil {
				student = &models.Student{}
			}
			student.UserID = u.ID
			u.Student = student
			return user.NewStudentRepository(tx).CreateStudent(ctx, student)
		case models.RoleTeacher:
			teacher := u.Teacher
			if teacher == nil {
				teacher = &models.Teacher{}
			}
			teacher.UserID = u.ID
			u.Teacher = teacher
			return user.NewTeacherRepository(tx).CreateTeacher(ctx, teacher)
		case models.RoleParent:
			parent := u.Parent
			if parent == nil {
				parent = &models.Parent{}
			}
			parent.UserID = u.ID
			u.Parent = parent
			return user.NewParentRepository(tx).CreateParent(ctx, parent)
		case models.RoleAdministrator:
			admin := u.Administrator
			if admin == nil {
				admin = &models.Administrator{}
			}
			admin.UserID = u.ID
			u.Administrator = admin
			return user.NewAdministratorRepository(tx).CreateAdministrator(ctx, admin)
		default:
			// Dangling identity: user row without a role record.
			logger.Warn().Str("role", string(role)).Int64("userID", u.ID).Msg("User created without a role record")
			return nil
		}
	})

	if err != nil {
		return translateUserError(err)
	}

	return nil
}

// freeUniqueCode generates a code not currently in use. The existence check
// is advisory; the unique constraint on users.unique_code is the backstop.
func freeUniqueCode(ctx context.Context, common *user.Repository) (string, error) {
	for i := 0; i < uniqueCodeAttempts; i++ {
		code, err := helpers.GenerateUniqueCode()
		if err != nil {
			return "", fmt.Errorf("failed to generate unique code: %w", err)
		}
		taken, err := common.UniqueCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", apperrors.ErrUniqueCodeExists
}

// translateUserError maps storage-level constraint failures onto domain errors
func translateUserError(err error) error {
	switch {
	case dberrors.IsUniqueConstraintError(err, "users_email_key"):
		return apperrors.ErrEmailAlreadyExists
	case dberrors.IsUniqueConstraintError(err, "users_unique_code_key"):
		return apperrors.ErrUniqueCodeExists
	case dberrors.IsUniqueViolation(err), dberrors.IsForeignKeyViolation(err):
		return apperrors.NewConstraintViolation(err)
	default:
		return err
	}
}

// GetByID retrieves a user by ID, nil when absent
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.common.GetUserByID(ctx, id)
}

// GetByEmail retrieves a user by email, nil when absent
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.common.GetUserByEmail(ctx, email)
}

// GetAll retrieves all users
func (r *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	return r.common.GetAllUsers(ctx)
}

// EmailExists checks email availability
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.common.EmailExists(ctx, email)
}

// Update applies a partial update and returns the updated user, or nil when
// the id does not exist.
func (r *UserRepository) Update(ctx context.Context, id int64, patch UserPatch) (*models.User, error) {
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("users").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})

	changed := false
	if patch.FullName != nil {
		sb = sb.Set("full_name", *patch.FullName)
		changed = true
	}
	if patch.Email != nil {
		sb = sb.Set("email", *patch.Email)
		changed = true
	}
	if patch.PasswordHash != nil {
		sb = sb.Set("password_hash", *patch.PasswordHash)
		changed = true
	}
	if patch.Birthday != nil {
		sb = sb.Set("birthday", *patch.Birthday)
		changed = true
	}
	if patch.Gender != nil {
		sb = sb.Set("gender", *patch.Gender)
		changed = true
	}
	if patch.City != nil {
		sb = sb.Set("city", *patch.City)
		changed = true
	}
	if patch.PhoneNumber != nil {
		sb = sb.Set("phone_number", *patch.PhoneNumber)
		changed = true
	}
	if patch.ProfilePictureURL != nil {
		sb = sb.Set("profile_picture_url", *patch.ProfilePictureURL)
		changed = true
	}

	if !changed {
		return r.GetByID(ctx, id)
	}

	sql, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update user query: %w", err)
	}

	cmdTag, err := r.store.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return nil, translateUserError(err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

// Delete removes a user; role records and association rows cascade. Returns
// false when the id does not exist. A user still referenced by subscriptions
// or lessons cannot be deleted and surfaces a constraint violation.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	found, err := r.common.DeleteUser(ctx, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return false, apperrors.NewConstraintViolation(err)
		}
		return false, err
	}
	return found, nil
}

// AddRole attaches a role record to an existing user. The attribute bundle is
// read from the matching relation field on u, mirroring CreateUserWithRole.
// Inserting a role the user already holds surfaces ErrConflict.
func (r *UserRepository) AddRole(ctx context.Context, u *models.User, role models.Role) error {
	var err error
	switch role {
	case models.RoleStudent:
		student := u.Student
		if student == nil {
			student = &models.Student{}
		}
		student.UserID = u.ID
		u.Student = student
		err = r.student.CreateStudent(ctx, student)
	case models.RoleTeacher:
		teacher := u.Teacher
		if teacher == nil {
			teacher = &models.Teacher{}
		}
		teacher.UserID = u.ID
		u.Teacher = teacher
		err = r.teacher.CreateTeacher(ctx, teacher)
	case models.RoleParent:
		parent := u.Parent
		if parent == nil {
			parent = &models.Parent{}
		}
		parent.UserID = u.ID
		u.Parent = parent
		err = r.parent.CreateParent(ctx, parent)
	case models.RoleAdministrator:
		admin := u.Administrator
		if admin == nil {
			admin = &models.Administrator{}
		}
		admin.UserID = u.ID
		u.Administrator = admin
		err = r.administrator.CreateAdministrator(ctx, admin)
	default:
		return apperrors.ErrInvalidRole
	}

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return err
	}

	return nil
}

// GetStudentByUserID retrieves the student role record, nil when absent
func (r *UserRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.student.GetStudentByUserID(ctx, userID)
}

// GetTeacherByUserID retrieves the teacher role record, nil when absent
func (r *UserRepository) GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	return r.teacher.GetTeacherByUserID(ctx, userID)
}

// GetParentByUserID retrieves the parent role record, nil when absent
func (r *UserRepository) GetParentByUserID(ctx context.Context, userID int64) (*models.Parent, error) {
	return r.parent.GetParentByUserID(ctx, userID)
}

// GetAdministratorByUserID retrieves the administrator role record, nil when absent
func (r *UserRepository) GetAdministratorByUserID(ctx context.Context, userID int64) (*models.Administrator, error) {
	return r.administrator.GetAdministratorByUserID(ctx, userID)
}

// UpdateStudent updates the student role record attributes
func (r *UserRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	return r.student.UpdateStudent(ctx, student)
}

// UpdateTeacher updates the teacher role record attributes
func (r *UserRepository) UpdateTeacher(ctx context.Context, teacher *models.Teacher) error {
	return r.teacher.UpdateTeacher(ctx, teacher)
}

// GetWithRoles loads a user and all role records attached to it. Returns nil
// when the user does not exist.
func (r *UserRepository) GetWithRoles(ctx context.Context, id int64) (*models.User, error) {
	u, err := r.common.GetUserByID(ctx, id)
	if err != nil || u == nil {
		return u, err
	}

	if u.Student, err = r.student.GetStudentByUserID(ctx, id); err != nil {
		return nil, err
	}
	if u.Teacher, err = r.teacher.GetTeacherByUserID(ctx, id); err != nil {
		return nil, err
	}
	if u.Parent, err = r.parent.GetParentByUserID(ctx, id); err != nil {
		return nil, err
	}
	if u.Administrator, err = r.administrator.GetAdministratorByUserID(ctx, id); err != nil {
		return nil, err
	}

	return u, nil
}

// RolesOf returns the role kinds held by a loaded user
func RolesOf(u *models.User) []models.Role {
	var roles []models.Role
	if u.Student != nil {
		roles = append(roles, models.RoleStudent)
	}
	if u.Teacher != nil {
		roles = append(roles, models.RoleTeacher)
	}
	if u.Parent != nil {
		roles = append(roles, models.RoleParent)
	}
	if u.Administrator != nil {
		roles = append(roles, models.RoleAdministrator)
	}
	return roles
}
