package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/kanban-board-api/internal/dto"
	"github.com/yukikurage/kanban-board-api/internal/models"
)

func TestBoardHandler_CreateBoardSeedsDefaults(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.signupAndLogin(t, "Alice", "alice@example.com")

	w := env.request(t, owner, http.MethodPost, "/api/boards", map[string]string{
		"name": "Launch plan",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var board dto.BoardDTO
	decodeJSON(t, w, &board)
	require.Equal(t, "Launch plan", board.Name)
	require.Equal(t, owner.id, board.OwnerID)
	require.NotEmpty(t, board.Background)

	w = env.request(t, owner, http.MethodGet, "/api/boards/"+board.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail dto.BoardDetailDTO
	decodeJSON(t, w, &detail)
	require.Equal(t, models.RoleOwner, detail.YourRole)

	require.Len(t, detail.Lists, 3)
	require.Equal(t, "To Do", detail.Lists[0].Title)
	require.Equal(t, "In Progress", detail.Lists[1].Title)
	require.Equal(t, "Done", detail.Lists[2].Title)
	for i, l := range detail.Lists {
		require.Equal(t, i, l.Position)
	}

	require.Len(t, detail.Labels, 6)
	require.Equal(t, "Bug", detail.Labels[0].Name)
	require.Equal(t, "#EF4444", detail.Labels[0].Color)
}

func TestBoardHandler_ListBoardsWithMemberCount(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.signupAndLogin(t, "Alice", "alice@example.com")
	member := env.signupAndLogin(t, "Bob", "bob@example.com")

	board, err := env.boardService.CreateBoard(boardInput("Team board", owner.id))
	require.NoError(t, err)
	env.addBoardMember(t, board.ID, member, models.RoleMember)

	w := env.request(t, owner, http.MethodGet, "/api/boards", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Boards []dto.BoardSummaryDTO `json:"boards"`
	}
	decodeJSON(t, w, &resp)
	require.Len(t, resp.Boards, 1)
	// Owner plus one membership row.
	require.Equal(t, int64(2), resp.Boards[0].MemberCount)

	// The member sees the joined board too.
	w = env.request(t, member, http.MethodGet, "/api/boards", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	require.Len(t, resp.Boards, 1)
}

func TestBoardHandler_CloseRequiresAdmin(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.signupAndLogin(t, "Alice", "alice@example.com")
	admin := env.signupAndLogin(t, "Bob", "bob@example.com")
	viewer := env.signupAndLogin(t, "Carol", "carol@example.com")

	board, err := env.boardService.CreateBoard(boardInput("Team board", owner.id))
	require.NoError(t, err)
	env.addBoardMember(t, board.ID, admin, models.RoleAdmin)
	env.addBoardMember(t, board.ID, viewer, models.RoleViewer)

	w := env.request(t, viewer, http.MethodPatch, "/api/boards/"+board.ID, map[string]bool{
		"is_closed": true,
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, admin, http.MethodPatch, "/api/boards/"+board.ID, map[string]bool{
		"is_closed": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// A closed board fails closed for every gated route, admins included.
	w = env.request(t, admin, http.MethodGet, "/api/boards/"+board.ID, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestBoardHandler_OnlyOwnerDeletes(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.signupAndLogin(t, "Alice", "alice@example.com")
	admin := env.signupAndLogin(t, "Bob", "bob@example.com")

	board, err := env.boardService.CreateBoard(boardInput("Team board", owner.id))
	require.NoError(t, err)
	env.addBoardMember(t, board.ID, admin, models.RoleAdmin)

	w := env.request(t, admin, http.MethodDelete, "/api/boards/"+board.ID, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Closing the board does not block the owner's delete: the check runs
	// against the stored row, not the access gate.
	require.NoError(t, env.db.Model(&models.Board{}).Where("id = ?", board.ID).Update("is_closed", true).Error)

	w = env.request(t, owner, http.MethodDelete, "/api/boards/"+board.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Board{}).Where("id = ?", board.ID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, env.db.Model(&models.List{}).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, env.db.Model(&models.Label{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestBoardHandler_DeleteDoesNotRevealExistence(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.signupAndLogin(t, "Alice", "alice@example.com")
	stranger := env.signupAndLogin(t, "Mallory", "mallory@example.com")

	board, err := env.boardService.CreateBoard(boardInput("Private", owner.id))
	require.NoError(t, err)

	wExisting := env.request(t, stranger, http.MethodDelete, "/api/boards/"+board.ID, nil)
	require.Equal(t, http.StatusForbidden, wExisting.Code)

	// A board that does not exist answers exactly like one the caller
	// does not own.
	wMissing := env.request(t, stranger, http.MethodDelete, "/api/boards/brd_missing", nil)
	require.Equal(t, wExisting.Code, wMissing.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Board{}).Where("id = ?", board.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestBoardHandler_MemberManagement(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.signupAndLogin(t, "Alice", "alice@example.com")
	invitee := env.signupAndLogin(t, "Bob", "bob@example.com")

	board, err := env.boardService.CreateBoard(boardInput("Team board", owner.id))
	require.NoError(t, err)

	// Unknown email.
	w := env.request(t, owner, http.MethodPost, "/api/boards/"+board.ID+"/members", map[string]string{
		"email": "nobody@example.com",
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	// The owner cannot be added as a member.
	w = env.request(t, owner, http.MethodPost, "/api/boards/"+board.ID+"/members", map[string]string{
		"email": owner.email,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	w = env.request(t, owner, http.MethodPost, "/api/boards/"+board.ID+"/members", map[string]string{
		"email": invitee.email,
		"role":  "member",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var member dto.BoardMemberDTO
	decodeJSON(t, w, &member)
	require.Equal(t, models.RoleMember, member.Role)
	require.Equal(t, invitee.email, member.User.Email)

	// Adding the same user again conflicts.
	w = env.request(t, owner, http.MethodPost, "/api/boards/"+board.ID+"/members", map[string]string{
		"email": invitee.email,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// Roster includes the owner separately.
	w = env.request(t, owner, http.MethodGet, "/api/boards/"+board.ID+"/members", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var roster struct {
		Owner   dto.UserDTO          `json:"owner"`
		Members []dto.BoardMemberDTO `json:"members"`
	}
	decodeJSON(t, w, &roster)
	require.Equal(t, owner.id, roster.Owner.ID)
	require.Len(t, roster.Members, 1)

	// A plain member cannot manage the roster.
	w = env.request(t, invitee, http.MethodDelete, "/api/boards/"+board.ID+"/members/"+invitee.id, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, owner, http.MethodDelete, "/api/boards/"+board.ID+"/members/"+invitee.id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The removed member no longer reaches the board.
	w = env.request(t, invitee, http.MethodGet, "/api/boards/"+board.ID, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestBoardHandler_StrangerIsForbidden(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.signupAndLogin(t, "Alice", "alice@example.com")
	stranger := env.signupAndLogin(t, "Mallory", "mallory@example.com")

	board, err := env.boardService.CreateBoard(boardInput("Private", owner.id))
	require.NoError(t, err)

	w := env.request(t, stranger, http.MethodGet, "/api/boards/"+board.ID, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// The response looks the same when the board does not exist at all.
	w = env.request(t, stranger, http.MethodGet, "/api/boards/brd_missing", nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestBoardHandler_ActivityFeed(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.signupAndLogin(t, "Alice", "alice@example.com")

	board, err := env.boardService.CreateBoard(boardInput("Team board", owner.id))
	require.NoError(t, err)

	w := env.request(t, owner, http.MethodPost, "/api/boards/"+board.ID+"/lists", map[string]string{
		"title": "Backlog",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, owner, http.MethodGet, "/api/boards/"+board.ID+"/activity", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Activities []dto.ActivityDTO `json:"activities"`
	}
	decodeJSON(t, w, &resp)
	// board.created plus list.created, newest first.
	require.Len(t, resp.Activities, 2)
	require.Equal(t, models.ActivityListCreated, resp.Activities[0].Type)
}
