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

type positionTestEnv struct {
	db        *gorm.DB
	sequencer *PositionSequencer
	listRepo  repository.ListRepository
	cardRepo  repository.CardRepository
	boardID   string
}

func setupPositionTestEnv(t *testing.T) positionTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Board{},
		&models.List{},
		&models.Card{},
	)
	require.NoError(t, err)

	boardID := utils.NewID(utils.PrefixBoard)
	require.NoError(t, db.Create(&models.Board{
		ID:      boardID,
		Name:    "Sprint",
		OwnerID: utils.NewID(utils.PrefixUser),
	}).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	listRepo := repository.NewListRepository(db)
	cardRepo := repository.NewCardRepository(db)

	return positionTestEnv{
		db:        db,
		sequencer: NewPositionSequencer(listRepo, cardRepo),
		listRepo:  listRepo,
		cardRepo:  cardRepo,
		boardID:   boardID,
	}
}

func (env positionTestEnv) createList(t *testing.T, title string, position int) *models.List {
	t.Helper()
	list := &models.List{
		ID:       utils.NewID(utils.PrefixList),
		BoardID:  env.boardID,
		Title:    title,
		Position: position,
	}
	require.NoError(t, env.db.Create(list).Error)
	return list
}

func (env positionTestEnv) createCard(t *testing.T, listID, title string, position int) *models.Card {
	t.Helper()
	card := &models.Card{
		ID:       utils.NewID(utils.PrefixCard),
		ListID:   listID,
		Title:    title,
		Position: position,
	}
	require.NoError(t, env.db.Create(card).Error)
	return card
}

func TestNextListPosition(t *testing.T) {
	env := setupPositionTestEnv(t)

	pos, err := env.sequencer.NextListPosition(env.boardID)
	require.NoError(t, err)
	require.Equal(t, 0, pos)

	env.createList(t, "To Do", 0)
	env.createList(t, "Done", 1)

	pos, err = env.sequencer.NextListPosition(env.boardID)
	require.NoError(t, err)
	require.Equal(t, 2, pos)
}

func TestNextListPosition_CountsArchivedLists(t *testing.T) {
	env := setupPositionTestEnv(t)

	list := env.createList(t, "Old", 4)
	require.NoError(t, env.db.Model(list).Update("is_archived", true).Error)

	pos, err := env.sequencer.NextListPosition(env.boardID)
	require.NoError(t, err)
	require.Equal(t, 5, pos)
}

func TestNextCardPosition(t *testing.T) {
	env := setupPositionTestEnv(t)
	list := env.createList(t, "To Do", 0)

	pos, err := env.sequencer.NextCardPosition(list.ID)
	require.NoError(t, err)
	require.Equal(t, 0, pos)

	env.createCard(t, list.ID, "First", 0)

	pos, err = env.sequencer.NextCardPosition(list.ID)
	require.NoError(t, err)
	require.Equal(t, 1, pos)
}

func TestReorderLists(t *testing.T) {
	env := setupPositionTestEnv(t)
	a := env.createList(t, "A", 0)
	b := env.createList(t, "B", 1)
	c := env.createList(t, "C", 2)

	require.NoError(t, env.sequencer.ReorderLists(env.boardID, []string{c.ID, a.ID, b.ID}))

	lists, err := env.listRepo.ListByBoard(env.boardID, false)
	require.NoError(t, err)
	require.Equal(t, []string{c.ID, a.ID, b.ID}, []string{lists[0].ID, lists[1].ID, lists[2].ID})
	require.Equal(t, []int{0, 1, 2}, []int{lists[0].Position, lists[1].Position, lists[2].Position})

	// Applying the same order again is a stable no-op.
	require.NoError(t, env.sequencer.ReorderLists(env.boardID, []string{c.ID, a.ID, b.ID}))
	again, err := env.listRepo.ListByBoard(env.boardID, false)
	require.NoError(t, err)
	require.Equal(t, lists, again)
}

func TestReorderLists_Validation(t *testing.T) {
	env := setupPositionTestEnv(t)
	a := env.createList(t, "A", 0)
	b := env.createList(t, "B", 1)

	err := env.sequencer.ReorderLists(env.boardID, nil)
	require.ErrorIs(t, err, ErrEmptyReorder)

	err = env.sequencer.ReorderLists(env.boardID, []string{a.ID})
	require.ErrorIs(t, err, ErrIncompleteOrder)

	err = env.sequencer.ReorderLists(env.boardID, []string{a.ID, "lst_other"})
	require.ErrorIs(t, err, ErrUnknownListID)

	err = env.sequencer.ReorderLists(env.boardID, []string{a.ID, a.ID})
	require.ErrorIs(t, err, ErrIncompleteOrder)

	// Rejected calls never touch stored positions.
	lists, err := env.listRepo.ListByBoard(env.boardID, false)
	require.NoError(t, err)
	require.Equal(t, a.ID, lists[0].ID)
	require.Equal(t, b.ID, lists[1].ID)
}

func TestReorderLists_ExcludesArchived(t *testing.T) {
	env := setupPositionTestEnv(t)
	a := env.createList(t, "A", 0)
	archived := env.createList(t, "B", 1)
	require.NoError(t, env.db.Model(archived).Update("is_archived", true).Error)
	c := env.createList(t, "C", 2)

	// The visible sequence covers only non-archived lists.
	require.NoError(t, env.sequencer.ReorderLists(env.boardID, []string{c.ID, a.ID}))

	// The archived list keeps its stored slot.
	var kept models.List
	require.NoError(t, env.db.First(&kept, "id = ?", archived.ID).Error)
	require.Equal(t, 1, kept.Position)

	err := env.sequencer.ReorderLists(env.boardID, []string{c.ID, a.ID, archived.ID})
	require.ErrorIs(t, err, ErrIncompleteOrder)
}

func TestMoveCards_AcrossLists(t *testing.T) {
	env := setupPositionTestEnv(t)
	src := env.createList(t, "To Do", 0)
	dst := env.createList(t, "Doing", 1)

	a := env.createCard(t, src.ID, "A", 0)
	b := env.createCard(t, src.ID, "B", 1)
	c := env.createCard(t, src.ID, "C", 2)
	x := env.createCard(t, dst.ID, "X", 0)

	// Drag B to the top of the destination list. The batch carries the
	// destination's post-move order plus the source's re-densified rest.
	moves := []CardMove{
		{CardID: b.ID, ListID: dst.ID, Position: 0},
		{CardID: x.ID, ListID: dst.ID, Position: 1},
		{CardID: a.ID, ListID: src.ID, Position: 0},
		{CardID: c.ID, ListID: src.ID, Position: 1},
	}
	require.NoError(t, env.sequencer.MoveCards(env.boardID, moves))

	srcCards, err := env.cardRepo.ListByList(src.ID, false)
	require.NoError(t, err)
	require.Len(t, srcCards, 2)
	require.Equal(t, a.ID, srcCards[0].ID)
	require.Equal(t, c.ID, srcCards[1].ID)
	require.Equal(t, []int{0, 1}, []int{srcCards[0].Position, srcCards[1].Position})

	dstCards, err := env.cardRepo.ListByList(dst.ID, false)
	require.NoError(t, err)
	require.Len(t, dstCards, 2)
	require.Equal(t, b.ID, dstCards[0].ID)
	require.Equal(t, x.ID, dstCards[1].ID)
}

func TestMoveCards_RejectsForeignTargets(t *testing.T) {
	env := setupPositionTestEnv(t)
	list := env.createList(t, "To Do", 0)
	card := env.createCard(t, list.ID, "A", 0)

	otherBoardID := utils.NewID(utils.PrefixBoard)
	require.NoError(t, env.db.Create(&models.Board{
		ID:      otherBoardID,
		Name:    "Other",
		OwnerID: utils.NewID(utils.PrefixUser),
	}).Error)
	foreignList := &models.List{
		ID:      utils.NewID(utils.PrefixList),
		BoardID: otherBoardID,
		Title:   "Elsewhere",
	}
	require.NoError(t, env.db.Create(foreignList).Error)
	foreignCard := &models.Card{
		ID:     utils.NewID(utils.PrefixCard),
		ListID: foreignList.ID,
		Title:  "Stray",
	}
	require.NoError(t, env.db.Create(foreignCard).Error)

	err := env.sequencer.MoveCards(env.boardID, []CardMove{
		{CardID: card.ID, ListID: foreignList.ID, Position: 0},
	})
	require.ErrorIs(t, err, ErrUnknownListID)

	err = env.sequencer.MoveCards(env.boardID, []CardMove{
		{CardID: foreignCard.ID, ListID: list.ID, Position: 0},
	})
	require.ErrorIs(t, err, ErrUnknownCardID)

	err = env.sequencer.MoveCards(env.boardID, nil)
	require.ErrorIs(t, err, ErrEmptyReorder)
}

func TestMoveCards_StoreFailureIsNotValidation(t *testing.T) {
	env := setupPositionTestEnv(t)
	list := env.createList(t, "To Do", 0)

	err := env.sequencer.MoveCards(env.boardID, []CardMove{
		{CardID: "crd_missing", ListID: list.ID, Position: 0},
	})
	require.ErrorIs(t, err, ErrUnknownCardID)

	// A failing card read must surface as a store error, not as an
	// unknown-card rejection.
	require.NoError(t, env.db.Migrator().DropTable(&models.Card{}))
	err = env.sequencer.MoveCards(env.boardID, []CardMove{
		{CardID: "crd_missing", ListID: list.ID, Position: 0},
	})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUnknownCardID)
}

func TestMoveCards_IntoArchivedListAllowed(t *testing.T) {
	env := setupPositionTestEnv(t)
	src := env.createList(t, "To Do", 0)
	archived := env.createList(t, "Archive", 1)
	require.NoError(t, env.db.Model(archived).Update("is_archived", true).Error)

	card := env.createCard(t, src.ID, "A", 0)

	// Archived lists still belong to the board; moving into one is legal
	// even though the board view hides it.
	require.NoError(t, env.sequencer.MoveCards(env.boardID, []CardMove{
		{CardID: card.ID, ListID: archived.ID, Position: 0},
	}))

	var moved models.Card
	require.NoError(t, env.db.First(&moved, "id = ?", card.ID).Error)
	require.Equal(t, archived.ID, moved.ListID)
}
