package ticket

import (
	"reflect"
	"sort"

	"github.com/rs/zerolog/log"
)

// maxScanDepth bounds the fallback descent into nested mappings. Export
// files nest containers two or three levels deep at most; anything deeper
// is either generated noise or a self-referential structure.
const maxScanDepth = 6

// ticketShapeKeys identify a mapping as a ticket record.
var ticketShapeKeys = []string{"ticket_id", "number", "short_description", "status"}

// ticketContainerKeys are the conventional container keys checked in order
// before falling back to a full scan.
var ticketContainerKeys = []string{"records", "data", "items", "tickets"}

// ticketShaped reports whether v looks like a single ticket record.
func ticketShaped(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	for _, key := range ticketShapeKeys {
		if _, present := m[key]; present {
			return true
		}
	}
	return false
}

// conversationShaped reports whether v looks like a single conversation
// record: either a messages sequence, or the channel/resolved/id triple.
func conversationShaped(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	if _, ok := m["messages"].([]any); ok {
		return true
	}
	_, hasChannel := m["channel"]
	_, hasResolved := m["resolved"]
	_, hasID := m["id"]
	return hasChannel && hasResolved && hasID
}

// ExtractTickets locates the best-guess ticket collection inside an
// arbitrarily shaped export document. Absence of data is a normal outcome:
// the result is empty, never an error.
func ExtractTickets(doc any) []Ticket {
	records := extractRecords(doc, ticketShaped, resolveTicketContainer)
	tickets := make([]Ticket, 0, len(records))
	for _, r := range records {
		if m, ok := r.(map[string]any); ok {
			tickets = append(tickets, Ticket(m))
		}
	}
	if len(tickets) == 0 {
		log.Debug().Msg("No ticket-shaped records found in document")
	}
	return tickets
}

// ExtractConversations locates the best-guess conversation collection and
// normalizes each record. Runs independently of ticket extraction; one
// document may yield both.
func ExtractConversations(doc any) []Conversation {
	records := extractRecords(doc, conversationShaped, resolveConversationContainer)
	conversations := make([]Conversation, 0, len(records))
	for _, r := range records {
		if m, ok := r.(map[string]any); ok {
			conversations = append(conversations, mapConversation(m))
		}
	}
	return conversations
}

// extractRecords is the shared extraction pass: root-sequence shape test,
// conventional container keys, single-record wrap, then the bounded
// fallback scan.
func extractRecords(doc any, shaped func(any) bool, containers func(map[string]any) []any) []any {
	switch root := doc.(type) {
	case []any:
		if len(root) > 0 && shaped(root[0]) {
			return root
		}
		return nil
	case map[string]any:
		if seq := containers(root); len(seq) > 0 {
			return seq
		}
		if shaped(root) {
			return []any{root}
		}
		return scanForRecords(root, shaped)
	default:
		return nil
	}
}

// resolveTicketContainer checks the conventional ticket container keys in
// their fixed order and returns the first non-empty match.
func resolveTicketContainer(root map[string]any) []any {
	if result, ok := root["result"].(map[string]any); ok {
		if seq, ok := result["tickets"].([]any); ok && len(seq) > 0 {
			return seq
		}
	}
	if seq, ok := root["result"].([]any); ok && len(seq) > 0 {
		return seq
	}
	for _, key := range ticketContainerKeys {
		seq, ok := root[key].([]any)
		if !ok || len(seq) == 0 {
			continue
		}
		// "data" is shared territory: leave it to the conversation pass
		// when its records are conversation-shaped.
		if key == "data" && conversationShaped(seq[0]) {
			continue
		}
		return seq
	}
	return nil
}

func resolveConversationContainer(root map[string]any) []any {
	if seq, ok := root["conversations"].([]any); ok && len(seq) > 0 {
		return seq
	}
	if seq, ok := root["data"].([]any); ok && len(seq) > 0 && conversationShaped(seq[0]) {
		return seq
	}
	return nil
}

// scanForRecords is the fallback search: an explicit worklist over nested
// mappings, bounded by maxScanDepth and a visited set so self-referential
// documents terminate. At each mapping it prefers a directly held sequence
// of shaped records before descending further.
func scanForRecords(root map[string]any, shaped func(any) bool) []any {
	type frame struct {
		node  map[string]any
		depth int
	}

	queue := []frame{{node: root}}
	visited := make(map[uintptr]bool)

	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]

		ptr := reflect.ValueOf(f.node).Pointer()
		if visited[ptr] {
			continue
		}
		visited[ptr] = true

		keys := make([]string, 0, len(f.node))
		for k := range f.node {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if seq, ok := f.node[k].([]any); ok && len(seq) > 0 && shaped(seq[0]) {
				return seq
			}
		}

		if f.depth >= maxScanDepth {
			log.Debug().Int("depth", f.depth).Msg("Extractor scan depth bound reached")
			continue
		}
		for _, k := range keys {
			if m, ok := f.node[k].(map[string]any); ok {
				queue = append(queue, frame{node: m, depth: f.depth + 1})
			}
		}
	}
	return nil
}

// conversation field aliases, centralized like the ticket tables.
var (
	convIDAliases    = []string{"id", "conversation_id", "sys_id"}
	convTopicAliases = []string{"topic", "subject", "title"}
	convStartAliases = []string{"started_at", "start_time", "created_at"}
	convEndAliases   = []string{"ended_at", "end_time", "closed_at"}
	msgSenderAliases = []string{"sender", "from", "author", "user"}
	msgTimeAliases   = []string{"timestamp", "time", "sent_at"}
	msgTextAliases   = []string{"text", "content", "body", "message"}
)

// mapConversation normalizes a raw conversation record. Message order is
// preserved as found.
func mapConversation(m map[string]any) Conversation {
	raw := Ticket(m)
	conv := Conversation{
		ID:    raw.first(convIDAliases),
		Topic: raw.first(convTopicAliases),
	}
	if t, ok := raw.firstTime(convStartAliases); ok {
		conv.StartedAt = t
	}
	if t, ok := raw.firstTime(convEndAliases); ok {
		conv.EndedAt = t
	}

	msgs, _ := m["messages"].([]any)
	for _, entry := range msgs {
		mm, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		rawMsg := Ticket(mm)
		msg := Message{
			Sender: rawMsg.first(msgSenderAliases),
			Text:   rawMsg.first(msgTextAliases),
		}
		if t, ok := rawMsg.firstTime(msgTimeAliases); ok {
			msg.Timestamp = t
		}
		conv.Messages = append(conv.Messages, msg)
	}
	return conv
}
