package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/owner"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// UpdateAccount copies only name, username and email. Provided values are
// validated with the registration rules; collisions surface from the
// unique indexes.
func (s *UserService) UpdateAccount(ctx context.Context, id uuid.UUID, in *dto.AccountUpdates) (*models.User, error) {
	updates := map[string]interface{}{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("Name cannot be empty")
		}
		updates["name"] = name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if err := ValidateEmail(email); err != nil {
			return nil, err
		}
		updates["email"] = email
	}
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if err := ValidateUsername(username); err != nil {
			return nil, err
		}
		updates["username"] = username
	}

	if len(updates) == 0 {
		return s.GetByID(ctx, id)
	}
	updates["updated_at"] = time.Now()

	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return nil, s.accountConflict(ctx, id, updates)
		}
		return nil, fmt.Errorf("failed to update account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *UserService) accountConflict(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if email, ok := updates["email"]; ok {
		taken, err := s.takenByOther(ctx, id, "email = ?", email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}
	}
	if username, ok := updates["username"]; ok {
		taken, err := s.takenByOther(ctx, id, "username = ?", username)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}
	}
	if _, ok := updates["email"]; ok {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

func (s *UserService) takenByOther(ctx context.Context, id uuid.UUID, query string, arg interface{}) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where(query, arg).Where("id <> ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to resolve account conflict: %w", err)
	}
	return count > 0, nil
}

// UpdateAbout applies an allow-listed partial patch to the about document.
// The read-modify-write runs under a row lock so concurrent patches do not
// drop each other's fields.
func (s *UserService) UpdateAbout(ctx context.Context, id uuid.UUID, patch *dto.AboutPatch) (models.About, error) {
	var about models.About
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		about = applyAboutPatch(user.About.Data(), patch)
		return tx.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
			"about":      datatypes.NewJSONType(about),
			"updated_at": time.Now(),
		}).Error
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return models.About{}, err
		}
		return models.About{}, fmt.Errorf("failed to update about: %w", err)
	}
	return about, nil
}

func applyAboutPatch(a models.About, p *dto.AboutPatch) models.About {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&a.Title, p.Title)
	set(&a.Bio, p.Bio)
	set(&a.Location, p.Location)
	set(&a.Email, p.Email)
	set(&a.Phone, p.Phone)
	set(&a.Avatar, p.Avatar)
	set(&a.Resume, p.Resume)
	if p.Social != nil {
		set(&a.Social.Github, p.Social.Github)
		set(&a.Social.Linkedin, p.Social.Linkedin)
		set(&a.Social.Twitter, p.Social.Twitter)
		set(&a.Social.Website, p.Social.Website)
	}
	return a
}

// SetActive toggles whether the public portfolio is served.
func (s *UserService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.User, error) {
	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":  active,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return s.GetByID(ctx, id)
}

// Portfolio assembles the public view for username. Inactive owners get an
// empty view with IsActive false so callers can render the offline state.
func (s *UserService) Portfolio(ctx context.Context, username string) (*dto.PortfolioResponse, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	resp := &dto.PortfolioResponse{
		User: dto.PublicUser{
			Name:            user.Name,
			Username:        user.Username,
			DisplayUsername: user.DisplayUsername,
			IsActive:        user.IsActive,
			CreatedAt:       user.CreatedAt,
		},
		Projects: []models.Project{},
		Skills:   []models.Skill{},
	}
	if !user.IsActive {
		return resp, nil
	}

	resp.About = user.About.Data()
	if err := s.db.WithContext(ctx).Scopes(owner.ForUser(user.ID)).
		Where("status = ?", models.ProjectStatusPublished).
		Order("created_at DESC").
		Find(&resp.Projects).Error; err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	if err := s.db.WithContext(ctx).Scopes(owner.ForUser(user.ID)).
		Order("category ASC, name ASC").
		Find(&resp.Skills).Error; err != nil {
		return nil, fmt.Errorf("failed to load skills: %w", err)
	}
	return resp, nil
}

// Me gathers the owner's own data for the dashboard, including drafts.
func (s *UserService) Me(ctx context.Context, id uuid.UUID) (*dto.MeResponse, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.MeResponse{
		User:     dto.NewUserResponse(user),
		Projects: []models.Project{},
		Skills:   []models.Skill{},
	}
	db := s.db.WithContext(ctx)
	if err := db.Scopes(owner.ForUser(id)).Order("created_at DESC").Find(&resp.Projects).Error; err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	if err := db.Scopes(owner.ForUser(id)).Order("category ASC, name ASC").Find(&resp.Skills).Error; err != nil {
		return nil, fmt.Errorf("failed to load skills: %w", err)
	}
	if err := db.Model(&models.Message{}).Scopes(owner.ForUser(id)).Where("is_read = ?", false).Count(&resp.UnreadCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}
	return resp, nil
}
