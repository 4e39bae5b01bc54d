package api

import (
	"context"
	"encoding/json"
	"iter"
	"net/http"

	"github.com/hubertmaka/culinary-agent/internal/domain"
	apperrors "github.com/hubertmaka/culinary-agent/internal/errors"
)

// maxBodyBytes leaves room for base64 encoded photos.
const maxBodyBytes = 16 << 20

type RecipeExtractor interface {
	Extract(ctx context.Context, in domain.RecipeInput) (domain.RecipeSchemaResult, error)
}

type RecipeChatter interface {
	Chat(ctx context.Context, schema domain.RecipeSchema, language domain.Language, history []domain.ConversationMessage) (domain.ChatAnswer, error)
}

type StreamComposer interface {
	Stream(ctx context.Context, answer domain.ChatAnswer, voice domain.Voice) iter.Seq2[domain.StreamEvent, error]
}

type Server struct {
	extractor RecipeExtractor
	chat      RecipeChatter
	composer  StreamComposer
}

func NewServer(extractor RecipeExtractor, chat RecipeChatter, composer StreamComposer) *Server {
	return &Server{
		extractor: extractor,
		chat:      chat,
		composer:  composer,
	}
}

type ExtractRequest struct {
	Content       string            `json:"content"`
	ContentType   domain.Source     `json:"contentType"`
	FileExtension domain.FileFormat `json:"fileExtension"`
	Language      domain.Language   `json:"language"`
}

// HandleExtract turns one recipe submission into a structured recipe.
func (s *Server) HandleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	in, err := domain.NewRecipeInput(req.Content, req.ContentType, req.FileExtension, req.Language)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := s.extractor.Extract(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.NewValidationError("malformed request body", "INVALID_BODY", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
