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
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

// List returns all of the owner's projects, drafts included, newest first.
func (s *ProjectService) List(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	projects := []models.Project{}
	if err := s.db.WithContext(ctx).Scopes(owner.ForUser(userID)).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// ListPublished returns the Published projects of username. An inactive
// owner has nothing on display.
func (s *ProjectService) ListPublished(ctx context.Context, username string) ([]models.Project, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	projects := []models.Project{}
	if !user.IsActive {
		return projects, nil
	}
	if err := s.db.WithContext(ctx).Scopes(owner.ForUser(user.ID)).
		Where("status = ?", models.ProjectStatusPublished).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Save appends a project or, when isEdit is set, replaces the one with the
// same id. The bool result reports whether a row was created.
func (s *ProjectService) Save(ctx context.Context, userID uuid.UUID, in *dto.ProjectInput, isEdit bool) (*models.Project, bool, error) {
	if in == nil {
		return nil, false, invalid("Project data is required")
	}
	p, err := projectFromInput(userID, in)
	if err != nil {
		return nil, false, err
	}

	if isEdit {
		if p.ID == "" {
			return nil, false, invalid("Project ID is required")
		}
		result := s.db.WithContext(ctx).Model(&models.Project{}).
			Scopes(owner.ForUser(userID)).
			Where("id = ?", p.ID).
			Updates(map[string]interface{}{
				"title":       p.Title,
				"description": p.Description,
				"tech":        p.Tech,
				"image":       p.Image,
				"github":      p.Github,
				"live":        p.Live,
				"status":      p.Status,
				"updated_at":  time.Now(),
			})
		if result.Error != nil {
			return nil, false, fmt.Errorf("failed to update project: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, false, ErrProjectNotFound
		}
		saved, err := s.get(ctx, userID, p.ID)
		return saved, false, err
	}

	if err := requireUser(ctx, s.db, userID); err != nil {
		return nil, false, err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, false, ErrDuplicateProjectID
		}
		return nil, false, fmt.Errorf("failed to create project: %w", err)
	}
	return p, true, nil
}

func (s *ProjectService) Delete(ctx context.Context, userID uuid.UUID, projectID string) error {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return invalid("Project ID is required")
	}
	result := s.db.WithContext(ctx).Scopes(owner.ForUser(userID)).
		Where("id = ?", projectID).
		Delete(&models.Project{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (s *ProjectService) get(ctx context.Context, userID uuid.UUID, id string) (*models.Project, error) {
	var p models.Project
	if err := s.db.WithContext(ctx).Scopes(owner.ForUser(userID)).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return &p, nil
}

func projectFromInput(userID uuid.UUID, in *dto.ProjectInput) (*models.Project, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, invalid("Title and description are required")
	}

	status := strings.TrimSpace(in.Status)
	switch status {
	case "":
		status = models.ProjectStatusDraft
	case models.ProjectStatusPublished, models.ProjectStatusDraft:
	default:
		return nil, invalid("Status must be Published or Draft")
	}

	tech := datatypes.JSONSlice[string]{}
	for _, t := range in.Tech {
		tech = append(tech, t)
	}

	return &models.Project{
		UserID:      userID,
		ID:          strings.TrimSpace(in.ID),
		Title:       title,
		Description: description,
		Tech:        tech,
		Image:       strings.TrimSpace(in.Image),
		Github:      strings.TrimSpace(in.Github),
		Live:        strings.TrimSpace(in.Live),
		Status:      status,
	}, nil
}

// requireUser guards inserts into owner-keyed tables; there are no foreign
// keys to do it for us.
func requireUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if count == 0 {
		return ErrUserNotFound
	}
	return nil
}
