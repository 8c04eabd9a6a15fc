package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"github.com/yukikurage/kanban-board-api/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type accessTestEnv struct {
	db      *gorm.DB
	access  *AccessService
	board   *models.Board
	ownerID string
}

func setupAccessTestEnv(t *testing.T) accessTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.BoardMember{},
	)
	require.NoError(t, err)

	ownerID := utils.NewID(utils.PrefixUser)
	board := &models.Board{
		ID:      utils.NewID(utils.PrefixBoard),
		Name:    "Roadmap",
		OwnerID: ownerID,
	}
	require.NoError(t, db.Create(board).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return accessTestEnv{
		db:      db,
		access:  NewAccessService(repository.NewBoardRepository(db)),
		board:   board,
		ownerID: ownerID,
	}
}

func (env accessTestEnv) addMember(t *testing.T, role models.BoardRole) string {
	t.Helper()
	userID := utils.NewID(utils.PrefixUser)
	member := &models.BoardMember{
		ID:      utils.NewID(utils.PrefixBoardMember),
		BoardID: env.board.ID,
		UserID:  userID,
		Role:    role,
	}
	require.NoError(t, env.db.Create(member).Error)
	return userID
}

func TestCheckAccess_OwnerBypassesRequiredRoles(t *testing.T) {
	env := setupAccessTestEnv(t)

	decision, err := env.access.CheckAccess(env.board.ID, env.ownerID, models.RoleAdmin)
	require.NoError(t, err)
	require.True(t, decision.Allowed)
	require.Equal(t, models.RoleOwner, decision.Role)
}

func TestCheckAccess_MissingBoardFailsClosed(t *testing.T) {
	env := setupAccessTestEnv(t)

	decision, err := env.access.CheckAccess("brd_missing", env.ownerID)
	require.NoError(t, err)
	require.False(t, decision.Allowed)
	require.Equal(t, models.RoleViewer, decision.Role)
}

func TestCheckAccess_ClosedBoardDeniesEveryone(t *testing.T) {
	env := setupAccessTestEnv(t)
	adminID := env.addMember(t, models.RoleAdmin)

	require.NoError(t, env.db.Model(env.board).Update("is_closed", true).Error)

	for _, userID := range []string{env.ownerID, adminID} {
		decision, err := env.access.CheckAccess(env.board.ID, userID)
		require.NoError(t, err)
		require.False(t, decision.Allowed)
	}
}

func TestCheckAccess_MemberRoles(t *testing.T) {
	env := setupAccessTestEnv(t)

	cases := []struct {
		role models.BoardRole
	}{
		{models.RoleAdmin},
		{models.RoleMember},
		{models.RoleViewer},
	}
	for _, tc := range cases {
		userID := env.addMember(t, tc.role)
		decision, err := env.access.CheckAccess(env.board.ID, userID)
		require.NoError(t, err)
		require.True(t, decision.Allowed)
		require.Equal(t, tc.role, decision.Role)
	}
}

func TestCheckAccess_RequiredRoleFilter(t *testing.T) {
	env := setupAccessTestEnv(t)
	adminID := env.addMember(t, models.RoleAdmin)
	viewerID := env.addMember(t, models.RoleViewer)

	decision, err := env.access.CheckAccess(env.board.ID, adminID, models.RoleAdmin)
	require.NoError(t, err)
	require.True(t, decision.Allowed)

	decision, err = env.access.CheckAccess(env.board.ID, viewerID, models.RoleAdmin)
	require.NoError(t, err)
	require.False(t, decision.Allowed)
	require.Equal(t, models.RoleViewer, decision.Role)
}

func TestCheckAccess_StrangerDenied(t *testing.T) {
	env := setupAccessTestEnv(t)

	decision, err := env.access.CheckAccess(env.board.ID, utils.NewID(utils.PrefixUser))
	require.NoError(t, err)
	require.False(t, decision.Allowed)
}
