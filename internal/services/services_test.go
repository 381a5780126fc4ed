package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	cfg      *config.Config
	db       *gorm.DB
	auth     *AuthService
	users    *UserService
	projects *ProjectService
	skills   *SkillService
	messages *MessageService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := testutil.Config()
	db := testutil.NewDB(t, cfg)
	return &fixture{
		cfg:      cfg,
		db:       db,
		auth:     NewAuthService(db, cfg),
		users:    NewUserService(db),
		projects: NewProjectService(db),
		skills:   NewSkillService(db),
		messages: NewMessageService(db),
	}
}

func (f *fixture) register(t *testing.T, username, email string) *models.User {
	t.Helper()
	user, err := f.auth.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Test " + username,
		Email:    email,
		Username: username,
		Password: "longenough",
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func validationMessage(t *testing.T, err error) string {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Message
}
