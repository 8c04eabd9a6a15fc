package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/kanban-board-api/internal/dto"
	"github.com/yukikurage/kanban-board-api/internal/models"
)

func TestCommentHandler_AuthorOnlyEdits(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.signupAndLogin(t, "Alice", "alice@example.com")
	member := env.signupAndLogin(t, "Bob", "bob@example.com")

	board, err := env.boardService.CreateBoard(boardInput("Sprint", owner.id))
	require.NoError(t, err)
	env.addBoardMember(t, board.ID, member, models.RoleMember)

	lists, err := env.listRepo.ListByBoard(board.ID, false)
	require.NoError(t, err)
	card, err := env.cardService.CreateCard(board.ID, lists[0].ID, owner.id, "Card")
	require.NoError(t, err)

	w := env.request(t, member, http.MethodPost, "/api/boards/"+board.ID+"/cards/"+card.ID+"/comments", map[string]string{
		"content": "First take",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var comment dto.CommentDTO
	decodeJSON(t, w, &comment)
	require.Equal(t, member.id, comment.User.ID)

	// Even the board owner cannot edit someone else's comment.
	w = env.request(t, owner, http.MethodPatch, "/api/boards/"+board.ID+"/comments/"+comment.ID, map[string]string{
		"content": "Overwritten",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, owner, http.MethodDelete, "/api/boards/"+board.ID+"/comments/"+comment.ID, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, member, http.MethodPatch, "/api/boards/"+board.ID+"/comments/"+comment.ID, map[string]string{
		"content": "Second take",
	})
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &comment)
	require.Equal(t, "Second take", comment.Content)

	w = env.request(t, member, http.MethodDelete, "/api/boards/"+board.ID+"/comments/"+comment.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, member, http.MethodGet, "/api/boards/"+board.ID+"/cards/"+card.ID+"/comments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Comments []dto.CommentDTO `json:"comments"`
	}
	decodeJSON(t, w, &resp)
	require.Empty(t, resp.Comments)
}

func TestAttachmentHandler_PresignAndRegister(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.signupAndLogin(t, "Alice", "alice@example.com")

	board, err := env.boardService.CreateBoard(boardInput("Sprint", owner.id))
	require.NoError(t, err)
	lists, err := env.listRepo.ListByBoard(board.ID, false)
	require.NoError(t, err)
	card, err := env.cardService.CreateCard(board.ID, lists[0].ID, owner.id, "Card")
	require.NoError(t, err)

	w := env.request(t, owner, http.MethodPost, "/api/boards/"+board.ID+"/uploads/presign", map[string]string{
		"filename":     "roadmap.pdf",
		"content_type": "application/pdf",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var grant struct {
		UploadURL string `json:"upload_url"`
		Key       string `json:"key"`
		ExpiresIn int    `json:"expires_in"`
	}
	decodeJSON(t, w, &grant)
	require.NotEmpty(t, grant.UploadURL)
	require.NotEmpty(t, grant.Key)
	require.Equal(t, 600, grant.ExpiresIn)

	w = env.request(t, owner, http.MethodPost, "/api/boards/"+board.ID+"/cards/"+card.ID+"/attachments", map[string]interface{}{
		"filename":          "roadmap.pdf",
		"original_filename": "roadmap.pdf",
		"content_type":      "application/pdf",
		"size":              1024,
		"storage_key":       grant.Key,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var attachment dto.AttachmentDTO
	decodeJSON(t, w, &attachment)
	require.Equal(t, grant.Key, attachment.StorageKey)

	// Deleting removes the row and best-effort removes the object.
	w = env.request(t, owner, http.MethodDelete, "/api/boards/"+board.ID+"/attachments/"+attachment.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{grant.Key}, env.store.removed)

	var count int64
	require.NoError(t, env.db.Model(&models.Attachment{}).Count(&count).Error)
	require.Zero(t, count)
}
