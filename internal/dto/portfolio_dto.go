package dto

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/models"
)

// --- Account & about ---

// AccountUpdates lists the only account fields a client may change.
type AccountUpdates struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

type UpdateAccountRequest struct {
	UserID  string          `json:"userId"`
	Updates *AccountUpdates `json:"updates"`
}

type AboutPatch struct {
	Title    *string      `json:"title"`
	Bio      *string      `json:"bio"`
	Location *string      `json:"location"`
	Email    *string      `json:"email"`
	Phone    *string      `json:"phone"`
	Avatar   *string      `json:"avatar"`
	Resume   *string      `json:"resume"`
	Social   *SocialPatch `json:"social"`
}

type SocialPatch struct {
	Github   *string `json:"github"`
	Linkedin *string `json:"linkedin"`
	Twitter  *string `json:"twitter"`
	Website  *string `json:"website"`
}

type UpdateAboutRequest struct {
	UserID string      `json:"userId"`
	About  *AboutPatch `json:"about"`
}

type AboutResponse struct {
	Message string       `json:"message"`
	About   models.About `json:"about"`
}

type UpdateStatusRequest struct {
	UserID   string `json:"userId"`
	IsActive *bool  `json:"isActive"`
}

type AccountResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// MeResponse bootstraps the dashboard with everything the owner manages.
type MeResponse struct {
	User        UserResponse     `json:"user"`
	Projects    []models.Project `json:"projects"`
	Skills      []models.Skill   `json:"skills"`
	UnreadCount int64            `json:"unreadCount"`
}

// --- Projects ---

// TechList accepts either a JSON string array or a comma-separated string.
type TechList []string

func (t *TechList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*t = cleanTech(list)
		return nil
	}
	var joined string
	if err := json.Unmarshal(b, &joined); err != nil {
		return errors.New("tech must be an array of strings or a comma-separated string")
	}
	*t = cleanTech(strings.Split(joined, ","))
	return nil
}

func cleanTech(in []string) TechList {
	out := make(TechList, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type ProjectInput struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tech        TechList `json:"tech"`
	Image       string   `json:"image"`
	Github      string   `json:"github"`
	Live        string   `json:"live"`
	Status      string   `json:"status"`
}

type SaveProjectRequest struct {
	UserID  string        `json:"userId"`
	Project *ProjectInput `json:"project"`
	IsEdit  bool          `json:"isEdit"`
}

type DeleteProjectRequest struct {
	UserID    string `json:"userId"`
	ProjectID string `json:"projectId"`
}

type ProjectResponse struct {
	Message string          `json:"message"`
	Project *models.Project `json:"project"`
}

type ProjectListResponse struct {
	Projects []models.Project `json:"projects"`
}

// --- Skills ---

type SkillInput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency int    `json:"proficiency"`
}

type SaveSkillRequest struct {
	UserID string      `json:"userId"`
	Skill  *SkillInput `json:"skill"`
	IsEdit bool        `json:"isEdit"`
}

type DeleteSkillRequest struct {
	UserID  string `json:"userId"`
	SkillID string `json:"skillId"`
}

type SkillResponse struct {
	Message string        `json:"message"`
	Skill   *models.Skill `json:"skill"`
}

type SkillListResponse struct {
	Skills []models.Skill `json:"skills"`
}

// --- Public portfolio ---

type PublicUser struct {
	Name            string    `json:"name"`
	Username        string    `json:"username"`
	DisplayUsername string    `json:"displayUsername,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}

// PortfolioResponse is what a visitor sees. Projects are already filtered
// to Published; an inactive owner yields empty collections.
type PortfolioResponse struct {
	User     PublicUser       `json:"user"`
	About    models.About     `json:"about"`
	Projects []models.Project `json:"projects"`
	Skills   []models.Skill   `json:"skills"`
}
