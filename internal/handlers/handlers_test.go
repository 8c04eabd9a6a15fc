package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/kanban-board-api/internal/constants"
	"github.com/yukikurage/kanban-board-api/internal/database"
	"github.com/yukikurage/kanban-board-api/internal/middleware"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"github.com/yukikurage/kanban-board-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fakeObjectStore satisfies services.ObjectStore without a running MinIO.
type fakeObjectStore struct {
	removed []string
}

func (f *fakeObjectStore) PresignUpload(_ context.Context, filename, _ string) (*services.PresignedUpload, error) {
	return &services.PresignedUpload{
		UploadURL: "http://storage.local/upload/" + filename,
		Key:       "2026/01/01/" + filename,
		ExpiresIn: 10 * time.Minute,
	}, nil
}

func (f *fakeObjectStore) RemoveObject(_ context.Context, key string) error {
	f.removed = append(f.removed, key)
	return nil
}

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	store  *fakeObjectStore

	boardRepo repository.BoardRepository
	listRepo  repository.ListRepository
	cardRepo  repository.CardRepository

	authService  *services.AuthService
	boardService *services.BoardService
	cardService  *services.CardService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.BoardMember{},
		&models.List{},
		&models.Card{},
		&models.Label{},
		&models.CardLabel{},
		&models.CardMember{},
		&models.Checklist{},
		&models.ChecklistItem{},
		&models.Comment{},
		&models.Attachment{},
		&models.Activity{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	listRepo := repository.NewListRepository(db)
	cardRepo := repository.NewCardRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	activityService := services.NewActivityService(activityRepo, nil)
	accessService := services.NewAccessService(boardRepo)
	sequencer := services.NewPositionSequencer(listRepo, cardRepo)
	authService := services.NewAuthService(userRepo)
	boardService := services.NewBoardService(boardRepo, listRepo, cardRepo, labelRepo, userRepo, activityService)
	listService := services.NewListService(listRepo, sequencer, activityService)
	cardService := services.NewCardService(cardRepo, listRepo, labelRepo, boardRepo, checklistRepo, commentRepo, attachmentRepo, sequencer, activityService)
	checklistService := services.NewChecklistService(checklistRepo, cardRepo, listRepo)
	commentService := services.NewCommentService(commentRepo, cardRepo, listRepo, activityService)
	labelService := services.NewLabelService(labelRepo)

	objectStore := &fakeObjectStore{}
	attachmentService := services.NewAttachmentService(attachmentRepo, cardRepo, listRepo, objectStore, nil)

	authHandler := NewAuthHandler(authService)
	boardHandler := NewBoardHandler(boardService, activityService)
	listHandler := NewListHandler(listService)
	cardHandler := NewCardHandler(cardService)
	checklistHandler := NewChecklistHandler(checklistService)
	commentHandler := NewCommentHandler(commentService)
	labelHandler := NewLabelHandler(labelService)
	attachmentHandler := NewAttachmentHandler(attachmentService)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionName, cookie.NewStore([]byte("test-secret"))))

	api := r.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)

	boards := api.Group("/boards")
	boards.Use(middleware.RequireAuth())
	boards.POST("", boardHandler.CreateBoard)
	boards.GET("", boardHandler.ListBoards)
	boards.DELETE("/:boardId", boardHandler.DeleteBoard)

	board := boards.Group("/:boardId")
	board.Use(middleware.RequireBoardAccess(accessService))
	board.GET("", boardHandler.GetBoard)
	board.PATCH("", middleware.RequireBoardRole(models.RoleAdmin), boardHandler.UpdateBoard)
	board.GET("/members", boardHandler.ListMembers)
	board.POST("/members", middleware.RequireBoardRole(models.RoleAdmin), boardHandler.AddMember)
	board.DELETE("/members/:userId", middleware.RequireBoardRole(models.RoleAdmin), boardHandler.RemoveMember)
	board.GET("/activity", boardHandler.ListActivity)
	board.POST("/lists", listHandler.CreateList)
	board.PUT("/lists/reorder", listHandler.ReorderLists)
	board.PATCH("/lists/:listId", listHandler.UpdateList)
	board.DELETE("/lists/:listId", listHandler.DeleteList)
	board.POST("/cards", cardHandler.CreateCard)
	board.PUT("/cards/move", cardHandler.MoveCards)
	board.GET("/cards/:cardId", cardHandler.GetCard)
	board.PATCH("/cards/:cardId", cardHandler.UpdateCard)
	board.DELETE("/cards/:cardId", cardHandler.DeleteCard)
	board.POST("/cards/:cardId/labels", cardHandler.AddLabel)
	board.DELETE("/cards/:cardId/labels/:labelId", cardHandler.RemoveLabel)
	board.POST("/cards/:cardId/members", cardHandler.AssignMember)
	board.DELETE("/cards/:cardId/members/:userId", cardHandler.UnassignMember)
	board.POST("/cards/:cardId/checklists", checklistHandler.CreateChecklist)
	board.PATCH("/checklists/:checklistId", checklistHandler.RenameChecklist)
	board.DELETE("/checklists/:checklistId", checklistHandler.DeleteChecklist)
	board.POST("/checklists/:checklistId/items", checklistHandler.CreateItem)
	board.PATCH("/checklists/:checklistId/items/:itemId", checklistHandler.UpdateItem)
	board.DELETE("/checklists/:checklistId/items/:itemId", checklistHandler.DeleteItem)
	board.GET("/cards/:cardId/comments", commentHandler.ListComments)
	board.POST("/cards/:cardId/comments", commentHandler.CreateComment)
	board.PATCH("/comments/:commentId", commentHandler.UpdateComment)
	board.DELETE("/comments/:commentId", commentHandler.DeleteComment)
	board.GET("/labels", labelHandler.ListLabels)
	board.POST("/labels", labelHandler.CreateLabel)
	board.PATCH("/labels/:labelId", labelHandler.UpdateLabel)
	board.DELETE("/labels/:labelId", labelHandler.DeleteLabel)
	board.POST("/uploads/presign", attachmentHandler.PresignUpload)
	board.GET("/cards/:cardId/attachments", attachmentHandler.ListAttachments)
	board.POST("/cards/:cardId/attachments", attachmentHandler.CreateAttachment)
	board.DELETE("/attachments/:attachmentId", attachmentHandler.DeleteAttachment)

	return &testEnv{
		db:           db,
		router:       r,
		store:        objectStore,
		boardRepo:    boardRepo,
		listRepo:     listRepo,
		cardRepo:     cardRepo,
		authService:  authService,
		boardService: boardService,
		cardService:  cardService,
	}
}

// testUser is an authenticated client identity for requests.
type testUser struct {
	id      string
	email   string
	cookies []*http.Cookie
}

func (env *testEnv) signupAndLogin(t *testing.T, name, email string) *testUser {
	t.Helper()

	user, err := env.authService.Signup(services.SignupInput{
		Name:     name,
		Email:    email,
		Password: "supersecret",
	})
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": "supersecret",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	return &testUser{
		id:      user.ID,
		email:   email,
		cookies: w.Result().Cookies(),
	}
}

func (env *testEnv) request(t *testing.T, user *testUser, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range user.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) addBoardMember(t *testing.T, boardID string, user *testUser, role models.BoardRole) {
	t.Helper()
	require.NoError(t, env.db.Create(&models.BoardMember{
		ID:      fmt.Sprintf("bmb_test%s", user.id),
		BoardID: boardID,
		UserID:  user.id,
		Role:    role,
	}).Error)
}

func boardInput(name, ownerID string) services.CreateBoardInput {
	return services.CreateBoardInput{
		Name:    name,
		OwnerID: ownerID,
	}
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
