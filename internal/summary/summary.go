// Package summary derives participant and aggregate statistics from
// conversations and their embedded threads. It makes no network calls.
package summary

import (
	"sort"
	"strings"

	"github.com/jaytaylor/html2text"

	"github.com/helpscout/helpscout-cli/internal/helpscout"
)

const maxFirstMessageLen = 300

// ParticipantInfo describes one side of a conversation.
type ParticipantInfo struct {
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	MessageCount int    `json:"messageCount"`
	FirstMessage string `json:"firstMessage,omitempty"`
}

// ConversationDetail is the per-conversation entry of a full summary.
type ConversationDetail struct {
	ID       int64           `json:"id"`
	Subject  string          `json:"subject"`
	Status   string          `json:"status"`
	Tags     []string        `json:"tags"`
	Customer ParticipantInfo `json:"customer"`
	User     ParticipantInfo `json:"user"`
}

// Aggregates is the lightweight summary shape: counts only.
type Aggregates struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
	ByTag    map[string]int `json:"byTag"`
}

// Summary is the full shape: aggregates plus per-conversation detail.
type Summary struct {
	Aggregates
	Conversations []ConversationDetail `json:"conversations"`
}

// Aggregate counts conversations by status and by tag. A conversation with N
// tags increments N tag buckets.
func Aggregate(convs []helpscout.Conversation) Aggregates {
	agg := Aggregates{
		Total:    len(convs),
		ByStatus: map[string]int{},
		ByTag:    map[string]int{},
	}
	for _, conv := range convs {
		agg.ByStatus[conv.Status]++
		for _, tag := range conv.Tags {
			agg.ByTag[tag.Name]++
		}
	}
	return agg
}

// Summarize builds the full summary for a set of conversations, deriving both
// participants from each conversation's embedded threads.
func Summarize(convs []helpscout.Conversation) Summary {
	s := Summary{
		Aggregates:    Aggregate(convs),
		Conversations: make([]ConversationDetail, 0, len(convs)),
	}
	for _, conv := range convs {
		customer, user := Participants(conv.Threads())
		s.Conversations = append(s.Conversations, ConversationDetail{
			ID:       conv.ID,
			Subject:  conv.Subject,
			Status:   conv.Status,
			Tags:     conv.TagNames(),
			Customer: customer,
			User:     user,
		})
	}
	return s
}

// Participants derives the customer and staff participants from a
// conversation's threads. Only customer and message threads participate;
// notes, chats, line items and the rest are excluded. With no threads, both
// participants report a zero count and no identity.
func Participants(threads []helpscout.Thread) (customer, user ParticipantInfo) {
	sorted := make([]helpscout.Thread, len(threads))
	copy(sorted, threads)
	// Stable: threads with equal timestamps keep API order.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	var customerThreads, staffThreads []helpscout.Thread
	for _, th := range sorted {
		switch th.Type {
		case helpscout.ThreadTypeCustomer:
			customerThreads = append(customerThreads, th)
		case helpscout.ThreadTypeMessage:
			staffThreads = append(staffThreads, th)
		}
	}

	// Customer identity and first message both come from the earliest
	// customer thread with a substantive body.
	customer.MessageCount = len(customerThreads)
	for _, th := range customerThreads {
		if strings.TrimSpace(th.Body) == "" {
			continue
		}
		customer.Name, customer.Email = identity(th.Customer, th.CreatedBy)
		customer.FirstMessage = plainText(th.Body)
		break
	}

	// Staff identity reflects who last responded; the first message is still
	// the earliest substantive reply.
	user.MessageCount = len(staffThreads)
	if len(staffThreads) > 0 {
		last := staffThreads[len(staffThreads)-1]
		user.Name, user.Email = identity(last.CreatedBy, nil)
	}
	for _, th := range staffThreads {
		if strings.TrimSpace(th.Body) == "" {
			continue
		}
		user.FirstMessage = plainText(th.Body)
		break
	}

	return customer, user
}

func identity(primary, fallback *helpscout.Person) (name, email string) {
	p := primary
	if p == nil {
		p = fallback
	}
	if p == nil {
		return "", ""
	}
	return p.Name(), p.Email
}

// plainText converts an HTML thread body to plain text and truncates it to
// 300 characters, trimming trailing whitespace at the cut and appending an
// ellipsis marker.
func plainText(body string) string {
	text, err := html2text.FromString(body, html2text.Options{TextOnly: true})
	if err != nil {
		text = body
	}
	text = strings.TrimSpace(text)

	runes := []rune(text)
	if len(runes) <= maxFirstMessageLen {
		return text
	}
	return strings.TrimRight(string(runes[:maxFirstMessageLen]), " \t\r\n") + "..."
}
