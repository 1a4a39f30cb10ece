package domain

import "strings"

// ConversationID identifies a chat on the messaging network (a group or a
// direct conversation).
type ConversationID string

// MessageID identifies a single message inside a conversation.
type MessageID string

type AuthorID string

// AccountRef is a customer account number extracted from request text. It
// only ever contains digits.
type AccountRef string

func (id ConversationID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

func (id MessageID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

func (r AccountRef) IsZero() bool { return strings.TrimSpace(string(r)) == "" }
