package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"blogapi/internal/model"
	"blogapi/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}, &model.Activity{}))
	return db
}

// capturePublisher records activity events instead of touching a broker.
type capturePublisher struct {
	events []model.Activity
}

func (p *capturePublisher) Publish(_ context.Context, activity model.Activity) error {
	p.events = append(p.events, activity)
	return nil
}

func (p *capturePublisher) actions() []string {
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Action)
	}
	return out
}

func seedUser(t *testing.T, svc *UserService, name, email string) *model.User {
	t.Helper()

	user, err := svc.Create(context.Background(), CreateUserInput{
		Name:     name,
		Email:    email,
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func newUserService(t *testing.T, pub ActivityPublisher) (*UserService, *repository.UserRepository) {
	t.Helper()

	repo := repository.NewUserRepository(newTestDB(t))
	return NewUserService(repo, pub, 15, 100), repo
}
