package helpscout

import (
	"strings"
	"time"
)

// Thread types that participate in participant derivation. Other types
// (note, chat, phone, lineitem, forwardchild, forwardparent, beaconchat)
// are carried through but excluded from summarization.
const (
	ThreadTypeCustomer = "customer"
	ThreadTypeMessage  = "message"
)

// Person identifies a customer or user attached to a thread.
type Person struct {
	ID        int64  `json:"id,omitempty"`
	FirstName string `json:"first,omitempty"`
	LastName  string `json:"last,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Name returns the person's full name, or the empty string when unknown.
func (p *Person) Name() string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Tag is a conversation tag. The API names the tag value "tag".
type Tag struct {
	ID    int64  `json:"id,omitempty"`
	Color string `json:"color,omitempty"`
	Name  string `json:"tag"`
}

// Thread is a message, note, or event attached to a conversation.
type Thread struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Status    string    `json:"status,omitempty"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Customer  *Person   `json:"customer,omitempty"`
	CreatedBy *Person   `json:"createdBy,omitempty"`
}

type conversationEmbedded struct {
	Threads []Thread `json:"threads,omitempty"`
}

// Conversation is the subset of the API's conversation resource the commands
// operate on.
type Conversation struct {
	ID              int64                 `json:"id"`
	Number          int                   `json:"number,omitempty"`
	Subject         string                `json:"subject"`
	Status          string                `json:"status"`
	MailboxID       int64                 `json:"mailboxId,omitempty"`
	CreatedAt       time.Time             `json:"createdAt,omitempty"`
	Tags            []Tag                 `json:"tags,omitempty"`
	PrimaryCustomer *Person               `json:"primaryCustomer,omitempty"`
	Embedded        *conversationEmbedded `json:"_embedded,omitempty"`
}

// Threads returns the embedded threads, or nil when the conversation was
// fetched without them.
func (c *Conversation) Threads() []Thread {
	if c.Embedded == nil {
		return nil
	}
	return c.Embedded.Threads
}

// TagNames returns the conversation's tag names in API order.
func (c *Conversation) TagNames() []string {
	names := make([]string, 0, len(c.Tags))
	for _, t := range c.Tags {
		names = append(names, t.Name)
	}
	return names
}

// Mailbox is a Help Scout mailbox.
type Mailbox struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// CustomerEmail is one email address on a customer record.
type CustomerEmail struct {
	ID    int64  `json:"id,omitempty"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

type customerEmbedded struct {
	Emails []CustomerEmail `json:"emails,omitempty"`
}

// Customer is a Help Scout customer record.
type Customer struct {
	ID           int64             `json:"id"`
	FirstName    string            `json:"firstName,omitempty"`
	LastName     string            `json:"lastName,omitempty"`
	Organization string            `json:"organization,omitempty"`
	CreatedAt    time.Time         `json:"createdAt,omitempty"`
	Embedded     *customerEmbedded `json:"_embedded,omitempty"`
}

// User is a Help Scout user (staff member).
type User struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Email     string    `json:"email"`
	Role      string    `json:"role,omitempty"`
	Timezone  string    `json:"timezone,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Team is a Help Scout team.
type Team struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone,omitempty"`
	Mention  string `json:"mention,omitempty"`
}

// Workflow is a mailbox workflow.
type Workflow struct {
	ID        int64  `json:"id"`
	MailboxID int64  `json:"mailboxId,omitempty"`
	Type      string `json:"type,omitempty"`
	Status    string `json:"status,omitempty"`
	Order     int    `json:"order,omitempty"`
	Name      string `json:"name"`
}

// SavedReply is a canned response attached to a mailbox.
type SavedReply struct {
	ID        int64  `json:"id"`
	MailboxID int64  `json:"mailboxId,omitempty"`
	Name      string `json:"name"`
	Text      string `json:"text,omitempty"`
}

// Attachment is file metadata on a thread.
type Attachment struct {
	ID       int64  `json:"id"`
	FileName string `json:"filename"`
	MimeType string `json:"mimeType,omitempty"`
	Size     int64  `json:"size,omitempty"`
}
