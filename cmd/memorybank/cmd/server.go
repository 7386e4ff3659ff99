package cmd

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/habiliai/memorybank"
	"github.com/habiliai/memorybank/errors"
	"github.com/habiliai/memorybank/memory"
	"github.com/mokiat/gog"
)

type memoryResponse struct {
	ID              uint      `json:"id"`
	Content         string    `json:"content"`
	ImportanceScore float64   `json:"importance_score"`
	CreatedAt       time.Time `json:"created_at"`
}

func createServerHandler(bank *memorybank.MemoryBank, logger *slog.Logger) http.Handler {
	router := mux.NewRouter()

	// Extract facts from free text, dedupe and store them
	router.HandleFunc("/memories", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.Text == "" {
			writeError(w, http.StatusBadRequest, "Field 'text' is required")
			return
		}

		created, err := bank.RememberText(r.Context(), body.Text)
		if err != nil {
			writeFailure(w, logger, err)
			return
		}

		if len(created) == 0 {
			writeJSON(w, http.StatusOK, map[string]any{
				"message": "No durable facts extracted.",
			})
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"stored_count": len(created),
			"memories":     created,
		})
	}).Methods("POST")

	// All stored memories, most recent first, without embeddings
	router.HandleFunc("/memories", func(w http.ResponseWriter, r *http.Request) {
		memories, err := bank.Memories(r.Context())
		if err != nil {
			writeFailure(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, gog.Map(memories, func(mem *memory.Memory) memoryResponse {
			return memoryResponse{
				ID:              mem.ID,
				Content:         mem.Content,
				ImportanceScore: mem.ImportanceScore,
				CreatedAt:       mem.CreatedAt,
			}
		}))
	}).Methods("GET")

	router.HandleFunc("/memories/search", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			writeError(w, http.StatusBadRequest, "Query parameter 'q' is required")
			return
		}

		results, err := bank.Search(r.Context(), query)
		if err != nil {
			writeFailure(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"query":   query,
			"results": results,
		})
	}).Methods("GET")

	router.HandleFunc("/memories/{id:[0-9]+}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid memory id")
			return
		}

		if err := bank.Forget(r.Context(), uint(id)); err != nil {
			writeFailure(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Memory " + strconv.FormatUint(id, 10) + " deleted successfully.",
		})
	}).Methods("DELETE")

	router.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.Query == "" {
			writeError(w, http.StatusBadRequest, "Field 'query' is required")
			return
		}

		response, err := bank.Chat(r.Context(), body.Query)
		if err != nil {
			writeFailure(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, response)
	}).Methods("POST")

	return handlers.RecoveryHandler()(handlers.CombinedLoggingHandler(os.Stdout, router))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"error": message,
	})
}

func writeFailure(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, errors.ErrInvalidParams):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errors.ErrNotFound):
		writeError(w, http.StatusNotFound, "Memory not found")
	default:
		logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
