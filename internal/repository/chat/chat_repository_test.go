// File: internal/repository/chat/chat_repository_test.go
package chat

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/docuchat/docuchat/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Single connection keeps concurrent writers from hitting SQLITE_BUSY.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Chat{}, &domain.Message{}))
	return db
}

func TestChatRepository_CreateAndFind(t *testing.T) {
	repo := NewChatRepository(setupTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Chat{UserID: 1, Title: "First chat"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "First chat", found.Title)
	assert.Equal(t, uint(1), found.UserID)

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestChatRepository_CreateValidation(t *testing.T) {
	repo := NewChatRepository(setupTestDB(t))
	ctx := context.Background()

	tests := []struct {
		name string
		chat *domain.Chat
	}{
		{"nil chat", nil},
		{"missing user", &domain.Chat{Title: "no owner"}},
		{"script in title", &domain.Chat{UserID: 1, Title: "<script>alert(1)</script>"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Create(ctx, tt.chat)
			assert.Error(t, err)
		})
	}
}

func TestChatRepository_OwnershipCheck(t *testing.T) {
	repo := NewChatRepository(setupTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Chat{UserID: 1, Title: "mine"})
	require.NoError(t, err)

	owned, err := repo.ExistsByIDAndUserID(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.True(t, owned)

	owned, err = repo.ExistsByIDAndUserID(ctx, created.ID, 2)
	require.NoError(t, err)
	assert.False(t, owned)
}

func TestChatRepository_PaginationOrdersByActivity(t *testing.T) {
	repo := NewChatRepository(setupTestDB(t))
	ctx := context.Background()

	first, err := repo.Create(ctx, &domain.Chat{UserID: 1, Title: "older"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &domain.Chat{UserID: 1, Title: "newer"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Chat{UserID: 2, Title: "other user"})
	require.NoError(t, err)

	chats, total, err := repo.FindByUserIDWithPagination(ctx, 1, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, chats, 2)
	assert.Equal(t, second.ID, chats[0].ID, "latest activity first")
	assert.Equal(t, first.ID, chats[1].ID)

	_, _, err = repo.FindByUserIDWithPagination(ctx, 1, 0, 0)
	assert.Error(t, err)
}

func TestChatRepository_TouchUpdatedAt(t *testing.T) {
	repo := NewChatRepository(setupTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Chat{UserID: 1, Title: "touch me"})
	require.NoError(t, err)

	assert.NoError(t, repo.TouchUpdatedAt(ctx, created.ID))
	assert.ErrorIs(t, repo.TouchUpdatedAt(ctx, 9999), ErrChatNotFound)
}
