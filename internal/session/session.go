package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"pdfchat/internal/ai"
	"pdfchat/internal/model"
)

var (
	ErrDocumentExists   = errors.New("document with this name already exists in session")
	ErrExtractionFailed = errors.New("could not extract usable text from document")
)

// Chat failure categories. Distinct so callers can tell a local
// no-documents short-circuit from a remote LLM failure.
const (
	FailNoDocuments = "no_documents"
	FailLLM         = "llm_failed"
)

// usageLogSize bounds the trailing per-exchange usage log.
const usageLogSize = 10

type Chatter interface {
	Send(ctx context.Context, userMessage, directive string, turns []model.Turn) (string, error)
}

type DocumentExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) (text string, method string)
	Info(data []byte) model.DocumentInfo
}

// Session holds one conversation's documents, combined content, history and
// token counters, all in process memory. Every operation takes the session
// lock: the registry is shared across requests and the sweeper may run
// concurrently with an in-flight chat.
type Session struct {
	id           string
	chatter      Chatter
	extractor    DocumentExtractor
	contextLimit int

	mu           sync.Mutex
	docs         []model.Document
	combined     string
	history      []model.Turn
	totalTokens  int
	usageLog     []model.ExchangeUsage
	createdAt    time.Time
	lastActivity time.Time
}

func New(id string, chatter Chatter, extractor DocumentExtractor, contextLimit int) *Session {
	now := time.Now()
	return &Session{
		id:           id,
		chatter:      chatter,
		extractor:    extractor,
		contextLimit: contextLimit,
		createdAt:    now,
		lastActivity: now,
	}
}

func (s *Session) ID() string {
	return s.id
}

// LoadDocument extracts text from data and inserts a document record under
// name. A failed extraction never creates a record, and a duplicate name is
// rejected while the existing record is present.
func (s *Session) LoadDocument(ctx context.Context, name string, data []byte) (model.Document, error) {
	s.mu.Lock()
	if s.indexOf(name) >= 0 {
		s.mu.Unlock()
		return model.Document{}, ErrDocumentExists
	}
	s.mu.Unlock()

	// Extraction may block on the OCR fallback; keep the lock released.
	text, method := s.extractor.Extract(ctx, name, data)
	if method == "failed" || text == "" {
		return model.Document{}, ErrExtractionFailed
	}
	info := s.extractor.Info(data)

	doc := model.Document{
		Name:       name,
		Content:    text,
		SizeBytes:  int64(len(data)),
		PageCount:  info.PageCount,
		Method:     method,
		UploadedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(name) >= 0 {
		return model.Document{}, ErrDocumentExists
	}
	s.docs = append(s.docs, doc)
	s.rebuildCombined()
	s.touch()

	log.Printf("session %s: loaded document %q (%d bytes, %d pages, method=%s, ~%d tokens)",
		s.id, name, doc.SizeBytes, doc.PageCount, doc.Method, ai.EstimateTokens(text))
	return doc, nil
}

// RemoveDocument removes the named document and rebuilds the combined
// content. An absent name is an expected outcome, not an error.
func (s *Session) RemoveDocument(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(name)
	if idx < 0 {
		return false
	}
	s.docs = append(s.docs[:idx], s.docs[idx+1:]...)
	s.rebuildCombined()
	s.touch()
	return true
}

// ChatResult is the structured outcome of a chat turn. Chat never raises
// past this boundary; failures land here with a category in FailCode.
type ChatResult struct {
	Success  bool              `json:"success"`
	Response string            `json:"response,omitempty"`
	Error    string            `json:"error,omitempty"`
	FailCode string            `json:"-"`
	Usage    *model.TokenUsage `json:"token_usage,omitempty"`
	Session  *Snapshot         `json:"session,omitempty"`
}

// Chat sends message to the LLM with the full combined document content
// injected into the directive, as on every turn. When the LLM call fails,
// the user turn stays in history and an apology embedding the error is
// appended as the assistant turn, so the stored transcript matches what the
// client was shown; the failed exchange is not counted in the token totals.
func (s *Session) Chat(ctx context.Context, message string) ChatResult {
	s.mu.Lock()
	if len(s.docs) == 0 {
		s.mu.Unlock()
		return ChatResult{
			Success:  false,
			FailCode: FailNoDocuments,
			Error:    "no documents loaded in this session",
		}
	}

	s.touch()
	directive := ai.SystemPrompt(s.combined)
	usage := ai.Usage(message, s.combined, s.history, s.contextLimit)
	prior := make([]model.Turn, len(s.history))
	copy(prior, s.history)
	userTurn := model.Turn{Role: model.RoleUser, Content: message, Timestamp: s.lastActivity}
	s.mu.Unlock()

	reply, err := s.chatter.Send(ctx, message, directive, prior)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		apology := fmt.Sprintf("Sorry, there was an error processing your message: %v", err)
		s.history = append(s.history, userTurn,
			model.Turn{Role: model.RoleAssistant, Content: apology, Timestamp: time.Now()})
		log.Printf("session %s: chat failed: %v", s.id, err)
		return ChatResult{
			Success:  false,
			FailCode: FailLLM,
			Error:    err.Error(),
			Response: apology,
			Session:  s.snapshotLocked(),
		}
	}

	now := time.Now()
	s.history = append(s.history, userTurn,
		model.Turn{Role: model.RoleAssistant, Content: reply, Timestamp: now})

	responseTokens := ai.EstimateTokens(reply)
	exchangeTokens := usage.TotalTokens + responseTokens
	s.totalTokens += exchangeTokens
	usage.ResponseTokens = responseTokens

	s.usageLog = append(s.usageLog, model.ExchangeUsage{
		Timestamp:        now,
		MessageTokens:    usage.MessageTokens,
		ResponseTokens:   responseTokens,
		ExchangeTokens:   exchangeTokens,
		CumulativeTokens: s.totalTokens,
	})
	if len(s.usageLog) > usageLogSize {
		s.usageLog = s.usageLog[len(s.usageLog)-usageLogSize:]
	}
	s.touch()

	return ChatResult{
		Success:  true,
		Response: reply,
		Usage:    &usage,
		Session:  s.snapshotLocked(),
	}
}

// ClearConversation empties history and token accounting, keeping the
// loaded documents untouched.
func (s *Session) ClearConversation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.usageLog = nil
	s.totalTokens = 0
	s.touch()
}

// Expired reports whether the session has been inactive longer than
// timeout. It is a pure predicate; callers decide what to do with a stale
// session.
func (s *Session) Expired(timeout time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastActivity) > timeout
}

func (s *Session) History() []model.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Turn, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) Documents() []model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// CombinedContent returns the cached concatenation of all loaded documents.
func (s *Session) CombinedContent() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.combined
}

// Snapshot is a read-only projection of session state.
type Snapshot struct {
	ID                   string                `json:"session_id"`
	CreatedAt            time.Time             `json:"created_at"`
	LastActivity         time.Time             `json:"last_activity"`
	DurationMinutes      float64               `json:"duration_minutes"`
	DocumentCount        int                   `json:"document_count"`
	Documents            []model.Document      `json:"documents"`
	ContentLength        int                   `json:"content_length"`
	ContentTokens        int                   `json:"content_tokens"`
	MessageCount         int                   `json:"message_count"`
	TotalTokens          int                   `json:"total_tokens"`
	AvgTokensPerExchange float64               `json:"avg_tokens_per_exchange"`
	UsageLog             []model.ExchangeUsage `json:"usage_log"`
}

// Summary has no side effects and is safe to call at any time, including on
// an expired session.
func (s *Session) Summary() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() *Snapshot {
	docs := make([]model.Document, len(s.docs))
	copy(docs, s.docs)
	usageLog := make([]model.ExchangeUsage, len(s.usageLog))
	copy(usageLog, s.usageLog)

	exchanges := len(s.history) / 2
	if exchanges < 1 {
		exchanges = 1
	}

	return &Snapshot{
		ID:                   s.id,
		CreatedAt:            s.createdAt,
		LastActivity:         s.lastActivity,
		DurationMinutes:      time.Since(s.createdAt).Minutes(),
		DocumentCount:        len(s.docs),
		Documents:            docs,
		ContentLength:        len(s.combined),
		ContentTokens:        ai.EstimateTokens(s.combined),
		MessageCount:         len(s.history),
		TotalTokens:          s.totalTokens,
		AvgTokensPerExchange: float64(s.totalTokens) / float64(exchanges),
		UsageLog:             usageLog,
	}
}

func (s *Session) indexOf(name string) int {
	for i := range s.docs {
		if s.docs[i].Name == name {
			return i
		}
	}
	return -1
}

// rebuildCombined recomputes the combined content from the current document
// set. Invalidate-and-rebuild, never an incremental patch, so the combined
// text can never drift from the documents. Callers hold the lock.
func (s *Session) rebuildCombined() {
	if len(s.docs) == 0 {
		s.combined = ""
		return
	}

	blocks := make([]string, len(s.docs))
	for i, doc := range s.docs {
		blocks[i] = fmt.Sprintf(`DOCUMENT #%d: %s
==================================================
Pages: %d | Method: %s | Size: %d bytes | Uploaded: %s
--------------------------------------------------
%s
==================================================
END OF DOCUMENT #%d`,
			i+1, doc.Name,
			doc.PageCount, doc.Method, doc.SizeBytes, doc.UploadedAt.Format(time.RFC3339),
			doc.Content,
			i+1)
	}
	s.combined = strings.Join(blocks, "\n\n")
}

// touch advances last-activity. Time never moves backwards here, so the
// timestamp is monotonically non-decreasing.
func (s *Session) touch() {
	s.lastActivity = time.Now()
}
