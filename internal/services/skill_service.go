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
	"gorm.io/gorm"
)

type SkillService struct {
	db *gorm.DB
}

func NewSkillService(db *gorm.DB) *SkillService {
	return &SkillService{db: db}
}

func (s *SkillService) List(ctx context.Context, userID uuid.UUID) ([]models.Skill, error) {
	skills := []models.Skill{}
	if err := s.db.WithContext(ctx).Scopes(owner.ForUser(userID)).
		Order("category ASC, name ASC").
		Find(&skills).Error; err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return skills, nil
}

// Save mirrors ProjectService.Save for skills.
func (s *SkillService) Save(ctx context.Context, userID uuid.UUID, in *dto.SkillInput, isEdit bool) (*models.Skill, bool, error) {
	if in == nil {
		return nil, false, invalid("Skill data is required")
	}
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || category == "" {
		return nil, false, invalid("Name and category are required")
	}
	if in.Proficiency < 0 || in.Proficiency > 100 {
		return nil, false, invalid("Proficiency must be between 0 and 100")
	}
	skill := &models.Skill{
		UserID:      userID,
		ID:          strings.TrimSpace(in.ID),
		Name:        name,
		Category:    category,
		Proficiency: in.Proficiency,
	}

	if isEdit {
		if skill.ID == "" {
			return nil, false, invalid("Skill ID is required")
		}
		result := s.db.WithContext(ctx).Model(&models.Skill{}).
			Scopes(owner.ForUser(userID)).
			Where("id = ?", skill.ID).
			Updates(map[string]interface{}{
				"name":        skill.Name,
				"category":    skill.Category,
				"proficiency": skill.Proficiency,
				"updated_at":  time.Now(),
			})
		if result.Error != nil {
			return nil, false, fmt.Errorf("failed to update skill: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, false, ErrSkillNotFound
		}
		var saved models.Skill
		if err := s.db.WithContext(ctx).Scopes(owner.ForUser(userID)).Where("id = ?", skill.ID).First(&saved).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, ErrSkillNotFound
			}
			return nil, false, fmt.Errorf("failed to load skill: %w", err)
		}
		return &saved, false, nil
	}

	if err := requireUser(ctx, s.db, userID); err != nil {
		return nil, false, err
	}
	if skill.ID == "" {
		skill.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(skill).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, false, ErrDuplicateSkillID
		}
		return nil, false, fmt.Errorf("failed to create skill: %w", err)
	}
	return skill, true, nil
}

func (s *SkillService) Delete(ctx context.Context, userID uuid.UUID, skillID string) error {
	skillID = strings.TrimSpace(skillID)
	if skillID == "" {
		return invalid("Skill ID is required")
	}
	result := s.db.WithContext(ctx).Scopes(owner.ForUser(userID)).
		Where("id = ?", skillID).
		Delete(&models.Skill{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete skill: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSkillNotFound
	}
	return nil
}
