package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hyperengineering/cartwright/internal/types"
	"github.com/hyperengineering/cartwright/internal/validation"
)

// ProcessCommand handles POST /api/voice/process-command. A request may
// carry free text, or a base64 audio payload to be transcribed first. Since
// transcription is stubbed, audio-only requests are rejected the same way as
// empty ones.
func (h *Handler) ProcessCommand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		types.ProcessCommandRequest
		Audio string `json:"audio,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	language := req.Language
	if language == "" {
		language = "en"
	}

	command := req.Command
	if command == "" && req.Audio != "" {
		if transcript, ok := h.transcriber.Transcribe(req.Audio, language); ok {
			command = transcript
		}
	}

	var c validation.Collector
	c.Add(validation.ValidateRequired("command", command))
	c.Add(validation.ValidateMaxLength("command", command, maxCommandLength))
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Command is required", c.Errors())
		return
	}

	writeJSON(w, http.StatusOK, types.ProcessCommandResponse{
		Command:   command,
		Language:  language,
		Processed: h.processor.Interpret(command),
	})
}

// ExtractItems handles POST /api/voice/extract-items.
func (h *Handler) ExtractItems(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	if err := validation.ValidateRequired("text", req.Text); err != nil {
		WriteProblemWithErrors(w, r, "Text is required", []validation.ValidationError{*err})
		return
	}

	items := h.processor.ExtractItems(req.Text)
	categories := make([]string, 0, len(items))
	for _, item := range items {
		categories = append(categories, h.processor.Categorize(item))
	}

	writeJSON(w, http.StatusOK, types.ExtractItemsResponse{
		Text:       req.Text,
		Items:      items,
		Categories: categories,
		Count:      len(items),
	})
}

// GetAlternatives handles GET /api/voice/get-alternatives.
func (h *Handler) GetAlternatives(w http.ResponseWriter, r *http.Request) {
	item := r.URL.Query().Get("item")
	if err := validation.ValidateRequired("item", item); err != nil {
		WriteProblemWithErrors(w, r, "Item is required", []validation.ValidationError{*err})
		return
	}

	alternatives := h.processor.Alternatives(item)

	writeJSON(w, http.StatusOK, types.AlternativesResponse{
		Item:         item,
		Alternatives: alternatives,
		Count:        len(alternatives),
	})
}

// SupportedLanguages handles GET /api/voice/supported-languages.
func (h *Handler) SupportedLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.LanguagesResponse{
		Languages: h.transcriber.SupportedLanguages(),
	})
}
