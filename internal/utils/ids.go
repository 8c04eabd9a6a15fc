package utils

import (
	"strings"

	"github.com/google/uuid"
)

// Entity ID prefixes. IDs are opaque strings of the form "<prefix>_<hex>".
const (
	PrefixBoard         = "brd"
	PrefixBoardMember   = "bmb"
	PrefixList          = "lst"
	PrefixCard          = "crd"
	PrefixLabel         = "lbl"
	PrefixCardLabel     = "cla"
	PrefixCardMember    = "cmb"
	PrefixChecklist     = "chk"
	PrefixChecklistItem = "chi"
	PrefixComment       = "cmt"
	PrefixAttachment    = "att"
	PrefixActivity      = "act"
	PrefixUser          = "usr"
)

// NewID generates a prefixed opaque identifier.
func NewID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
