package dto

import (
	"time"

	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

// CardDTO represents a card in API responses
type CardDTO struct {
	ID          string     `json:"id"`
	ListID      string     `json:"list_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Position    int        `json:"position"`
	DueDate     *time.Time `json:"due_date"`
	CoverColor  string     `json:"cover_color,omitempty"`
	IsArchived  bool       `json:"is_archived"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CardMemberDTO represents a card assignment
type CardMemberDTO struct {
	ID   string  `json:"id"`
	User UserDTO `json:"user"`
}

// ChecklistItemDTO represents a checklist item
type ChecklistItemDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	IsChecked bool   `json:"is_checked"`
	Position  int    `json:"position"`
}

// ChecklistDTO represents a checklist with its items
type ChecklistDTO struct {
	ID       string             `json:"id"`
	Title    string             `json:"title"`
	Position int                `json:"position"`
	Items    []ChecklistItemDTO `json:"items"`
}

// CommentDTO represents a comment with its author
type CommentDTO struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	User      UserDTO   `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AttachmentDTO represents attachment metadata
type AttachmentDTO struct {
	ID               string    `json:"id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	ContentType      string    `json:"content_type"`
	Size             int64     `json:"size"`
	StorageKey       string    `json:"storage_key"`
	CreatedAt        time.Time `json:"created_at"`
}

// CardDetailDTO is the full card view
type CardDetailDTO struct {
	CardDTO
	Labels      []LabelDTO      `json:"labels"`
	Members     []CardMemberDTO `json:"members"`
	Checklists  []ChecklistDTO  `json:"checklists"`
	Comments    []CommentDTO    `json:"comments"`
	Attachments []AttachmentDTO `json:"attachments"`
}

// ActivityDTO represents one activity feed entry
type ActivityDTO struct {
	ID        string              `json:"id"`
	CardID    string              `json:"card_id,omitempty"`
	User      UserDTO             `json:"user"`
	Type      models.ActivityType `json:"type"`
	Data      string              `json:"data,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// Conversion functions

// ToCardDTO converts a Card model to CardDTO
func ToCardDTO(card models.Card) CardDTO {
	return CardDTO{
		ID:          card.ID,
		ListID:      card.ListID,
		Title:       card.Title,
		Description: card.Description,
		Position:    card.Position,
		DueDate:     card.DueDate,
		CoverColor:  card.CoverColor,
		IsArchived:  card.IsArchived,
		CreatedAt:   card.CreatedAt,
		UpdatedAt:   card.UpdatedAt,
	}
}

// ToCardMemberDTO converts a card assignment to DTO
func ToCardMemberDTO(member models.CardMember) CardMemberDTO {
	return CardMemberDTO{
		ID:   member.ID,
		User: ToUserDTO(member.User),
	}
}

// ToChecklistDTO converts a checklist with preloaded items to DTO
func ToChecklistDTO(checklist models.Checklist) ChecklistDTO {
	items := make([]ChecklistItemDTO, len(checklist.Items))
	for i, item := range checklist.Items {
		items[i] = ChecklistItemDTO{
			ID:        item.ID,
			Title:     item.Title,
			IsChecked: item.IsChecked,
			Position:  item.Position,
		}
	}
	return ChecklistDTO{
		ID:       checklist.ID,
		Title:    checklist.Title,
		Position: checklist.Position,
		Items:    items,
	}
}

// ToCommentDTO converts a comment with preloaded user to DTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		Content:   comment.Content,
		User:      ToUserDTO(comment.User),
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// ToAttachmentDTO converts an attachment row to DTO
func ToAttachmentDTO(attachment models.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:               attachment.ID,
		Filename:         attachment.Filename,
		OriginalFilename: attachment.OriginalFilename,
		ContentType:      attachment.ContentType,
		Size:             attachment.Size,
		StorageKey:       attachment.StorageKey,
		CreatedAt:        attachment.CreatedAt,
	}
}

// ToCardDetailDTO converts the assembled card aggregate to its response shape
func ToCardDetailDTO(detail services.CardDetail) CardDetailDTO {
	labels := make([]LabelDTO, len(detail.Labels))
	for i, l := range detail.Labels {
		labels[i] = ToLabelDTO(l)
	}
	members := make([]CardMemberDTO, len(detail.Members))
	for i, m := range detail.Members {
		members[i] = ToCardMemberDTO(m)
	}
	checklists := make([]ChecklistDTO, len(detail.Checklists))
	for i, cl := range detail.Checklists {
		checklists[i] = ToChecklistDTO(cl)
	}
	comments := make([]CommentDTO, len(detail.Comments))
	for i, cm := range detail.Comments {
		comments[i] = ToCommentDTO(cm)
	}
	attachments := make([]AttachmentDTO, len(detail.Attachments))
	for i, a := range detail.Attachments {
		attachments[i] = ToAttachmentDTO(a)
	}

	return CardDetailDTO{
		CardDTO:     ToCardDTO(detail.Card),
		Labels:      labels,
		Members:     members,
		Checklists:  checklists,
		Comments:    comments,
		Attachments: attachments,
	}
}

// ToActivityDTO converts an activity entry with preloaded user to DTO
func ToActivityDTO(activity models.Activity) ActivityDTO {
	return ActivityDTO{
		ID:        activity.ID,
		CardID:    activity.CardID,
		User:      ToUserDTO(activity.User),
		Type:      activity.Type,
		Data:      activity.Data,
		CreatedAt: activity.CreatedAt,
	}
}
