package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"github.com/yukikurage/kanban-board-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrEmptyComment     = errors.New("comment cannot be empty")
	ErrNotCommentAuthor = errors.New("only the author can modify this comment")
)

// CommentService provides business logic for card comments.
type CommentService struct {
	commentRepo repository.CommentRepository
	cardRepo    repository.CardRepository
	listRepo    repository.ListRepository
	activity    *ActivityService
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	cardRepo repository.CardRepository,
	listRepo repository.ListRepository,
	activity *ActivityService,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		cardRepo:    cardRepo,
		listRepo:    listRepo,
		activity:    activity,
	}
}

// CreateComment adds a comment to a card as the acting user.
func (s *CommentService) CreateComment(boardID, cardID, authorID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyComment
	}
	if err := s.verifyCardOnBoard(boardID, cardID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:      utils.NewID(utils.PrefixComment),
		CardID:  cardID,
		UserID:  authorID,
		Content: content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.activity.Record(boardID, cardID, authorID, models.ActivityCommentAdded, "")

	created, err := s.commentRepo.FindByID(comment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload comment: %w", err)
	}
	return created, nil
}

// ListComments returns a card's comments, newest first.
func (s *CommentService) ListComments(boardID, cardID string) ([]models.Comment, error) {
	if err := s.verifyCardOnBoard(boardID, cardID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByCard(cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// UpdateComment edits a comment's content. Only the author may edit,
// regardless of board role.
func (s *CommentService) UpdateComment(boardID, commentID, actorID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyComment
	}

	comment, err := s.findOnBoard(boardID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actorID {
		return nil, ErrNotCommentAuthor
	}

	comment.Content = content
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

// DeleteComment removes a comment. Only the author may delete.
func (s *CommentService) DeleteComment(boardID, commentID, actorID string) error {
	comment, err := s.findOnBoard(boardID, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != actorID {
		return ErrNotCommentAuthor
	}
	if err := s.commentRepo.Delete(commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func (s *CommentService) findOnBoard(boardID, commentID string) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	if err := s.verifyCardOnBoard(boardID, comment.CardID); err != nil {
		return nil, ErrCommentNotFound
	}
	return comment, nil
}

func (s *CommentService) verifyCardOnBoard(boardID, cardID string) error {
	card, err := s.cardRepo.FindByID(cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCardNotFound
		}
		return fmt.Errorf("failed to find card: %w", err)
	}
	list, err := s.listRepo.FindByID(card.ListID)
	if err != nil {
		return fmt.Errorf("failed to find card's list: %w", err)
	}
	if list.BoardID != boardID {
		return ErrCardNotFound
	}
	return nil
}
