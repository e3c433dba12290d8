package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/justsurfingit/jobly/internal/apperr"
	"github.com/justsurfingit/jobly/internal/database"
	"github.com/justsurfingit/jobly/internal/dtos"
	"github.com/justsurfingit/jobly/internal/models"
	"github.com/justsurfingit/jobly/internal/sqlgen"
)

const userColumns = `username, first_name, last_name, email, is_admin`

type UserService struct {
	DB         *gorm.DB
	BcryptCost int
}

func NewUserService(db *gorm.DB, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		DB:         db,
		BcryptCost: bcryptCost,
	}
}

// Authenticate checks username and password. Both an unknown user and a wrong
// password give the same unauthorized error.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, "username = ?", username).Error
	if err != nil && !errors.Is(database.Classify(err), database.ErrNotFound) {
		return nil, storeError(err, "authenticate")
	}
	if err == nil && bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil {
		return &user, nil
	}
	return nil, apperr.Unauthorizedf("Invalid username/password")
}

// Register creates a user with a hashed password.
func (s *UserService) Register(ctx context.Context, req *dtos.UserRegisterRequest, isAdmin bool) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Username:  req.Username,
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		IsAdmin:   isAdmin,
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(database.Classify(err), database.ErrDuplicateKey) {
			return nil, apperr.Conflict(err, "Duplicate username: %s", req.Username)
		}
		return nil, storeError(err, "register user")
	}
	log.Printf("[INFO] user %s registered, admin %v", user.Username, user.IsAdmin)
	return user, nil
}

// FindAll lists every user ordered by username.
func (s *UserService) FindAll(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.DB.WithContext(ctx).Order("username").Find(&users).Error; err != nil {
		return nil, storeError(err, "list users")
	}
	return users, nil
}

// Get returns a user with the ids of the jobs applied to.
func (s *UserService) Get(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(database.Classify(err), database.ErrNotFound) {
			return nil, apperr.NotFoundf("No user: %s", username)
		}
		return nil, storeError(err, "get user")
	}

	user.Jobs = []int{}
	err := s.DB.WithContext(ctx).Model(&models.Application{}).
		Where("username = ?", username).Order("job_id").Pluck("job_id", &user.Jobs).Error
	if err != nil {
		return nil, storeError(err, "get user applications")
	}
	return &user, nil
}

// Update applies a partial update. A new password is hashed before it is stored.
func (s *UserService) Update(ctx context.Context, username string, fields sqlgen.Fields) (*models.User, error) {
	if err := checkImmutable(fields, userImmutable); err != nil {
		return nil, err
	}
	if raw, ok := fields.Get("password"); ok {
		password, isString := raw.(string)
		if !isString || password == "" {
			return nil, apperr.BadRequest("instance.password must be a non-empty string")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields = fields.Set("password", string(hashed))
	}

	set, err := sqlgen.PartialUpdate(fields, UserFields)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`UPDATE users SET %s WHERE username = $%d RETURNING %s`,
		set.Join(", "), set.Next(), userColumns)
	args := append(set.Values, username)

	var user models.User
	res := s.DB.WithContext(ctx).Raw(query, args...).Scan(&user)
	if res.Error != nil {
		return nil, storeError(res.Error, "update user")
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFoundf("No user: %s", username)
	}
	log.Printf("[INFO] user %s updated, fields %v", username, fields.Keys())
	return &user, nil
}

// Remove deletes a user.
func (s *UserService) Remove(ctx context.Context, username string) error {
	res := s.DB.WithContext(ctx).Delete(&models.User{}, "username = ?", username)
	if res.Error != nil {
		return storeError(res.Error, "delete user")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("No user: %s", username)
	}
	log.Printf("[INFO] user %s deleted", username)
	return nil
}

// ApplyToJob records that username applied to job id.
func (s *UserService) ApplyToJob(ctx context.Context, username string, jobID int) error {
	err := s.DB.WithContext(ctx).Create(&models.Application{Username: username, JobID: jobID}).Error
	if err == nil {
		log.Printf("[INFO] user %s applied to job %d", username, jobID)
		return nil
	}

	classified := database.Classify(err)
	var se *database.StoreError
	switch {
	case errors.Is(classified, database.ErrForeignKeyViolation):
		if errors.As(classified, &se) && se.Constraint == "applications_username_fkey" {
			return apperr.NotFoundf("No user: %s", username)
		}
		return apperr.NotFoundf("No job: %d", jobID)
	case errors.Is(classified, database.ErrDuplicateKey):
		return apperr.Conflict(err, "Already applied to job: %d", jobID)
	}
	return storeError(err, "apply to job")
}
