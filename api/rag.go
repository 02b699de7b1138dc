package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/ganderhq/gander/internal/log"
	"github.com/ganderhq/gander/internal/rag"
)

// maxRequestBody limits the size of accepted request bodies.
const maxRequestBody = 10 << 20 // 10 MiB

// Ingestor persists a document and its embedded chunks.
type Ingestor interface {
	Ingest(ctx context.Context, title, content string) (*rag.Document, []rag.Chunk, error)
}

// Answerer answers a question from the stored documents.
type Answerer interface {
	Answer(ctx context.Context, question string, opts ...rag.SearchOption) (string, error)
}

// RAGHandler serves the vectorize and chat endpoints.
type RAGHandler struct {
	ingestor Ingestor
	answerer Answerer
	logger   log.Logger
}

// NewRAGHandler creates the handler for document ingestion and chat.
func NewRAGHandler(ingestor Ingestor, answerer Answerer, logger log.Logger) *RAGHandler {
	return &RAGHandler{ingestor: ingestor, answerer: answerer, logger: logger}
}

// RegisterRoutes registers the RAG endpoints on the mux.
func (h *RAGHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/vectorize", h.handleVectorize)
	mux.HandleFunc("POST /api/chat", h.handleChat)
}

// VectorizeRequest is the body for POST /api/vectorize.
type VectorizeRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// VectorizeResponse is the response for POST /api/vectorize.
type VectorizeResponse struct {
	Message    string `json:"message"`
	DocumentID string `json:"documentId"`
	Chunks     int    `json:"chunks"`
}

func (h *RAGHandler) handleVectorize(w http.ResponseWriter, r *http.Request) {
	var req VectorizeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request",
			"title and content are required")
		return
	}

	doc, chunks, err := h.ingestor.Ingest(r.Context(), req.Title, req.Content)
	if err != nil {
		if errors.Is(err, rag.ErrValidation) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.logger.Error("failed to ingest document", "title", req.Title, "error", err)
		writeError(w, http.StatusInternalServerError, "ingest_failed",
			"failed to ingest document")
		return
	}

	writeJSON(w, http.StatusCreated, VectorizeResponse{
		Message:    "Document vectorized successfully.",
		DocumentID: doc.ID.String(),
		Chunks:     len(chunks),
	})
}

// ChatRequest is the body for POST /api/chat.
type ChatRequest struct {
	UserMessage string `json:"userMessage"`
}

// ChatResponse is the response for POST /api/chat.
type ChatResponse struct {
	Response string `json:"response"`
}

func (h *RAGHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if strings.TrimSpace(req.UserMessage) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request",
			"userMessage is required")
		return
	}

	answer, err := h.answerer.Answer(r.Context(), req.UserMessage)
	if err != nil {
		if errors.Is(err, rag.ErrValidation) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.logger.Error("failed to answer question", "error", err)
		writeError(w, http.StatusInternalServerError, "chat_failed",
			"failed to generate a response")
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{Response: answer})
}

// decodeJSON reads and decodes a JSON request body with a size limit.
func decodeJSON(r *http.Request, v any) error {
	body := http.MaxBytesReader(nil, r.Body, maxRequestBody)
	defer func() { _, _ = io.Copy(io.Discard, body) }()
	return json.NewDecoder(body).Decode(v)
}
