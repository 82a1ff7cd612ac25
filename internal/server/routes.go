package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// Apply CORS middleware
	r.Use(s.corsMiddleware)

	r.HandleFunc("/", s.HelloWorldHandler)

	r.HandleFunc("/health", s.HealthHandler)

	r.HandleFunc("/dictionary/{word}", s.DictionaryHandler)

	r.HandleFunc("/ws", s.game.HandleWebSocket)

	return r
}

// CORS middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CORS Headers
		w.Header().Set("Access-Control-Allow-Origin", "*") // Wildcard allows all origins
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")
		w.Header().Set("Access-Control-Allow-Credentials", "false") // Credentials not allowed with wildcard origins

		// If it's a websocket upgrade, skip further CORS checks
		if strings.ToLower(r.Header.Get("Upgrade")) == "websocket" {
			next.ServeHTTP(w, r)
			return
		}

		// Handle preflight OPTIONS requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) HelloWorldHandler(w http.ResponseWriter, r *http.Request) {
	resp := make(map[string]string)
	resp["message"] = "ROBBERY Game Server is running!"

	jsonResp, err := json.Marshal(resp)
	if err != nil {
		log.Fatalf("error handling JSON marshal. Err: %v", err)
	}

	_, _ = w.Write(jsonResp)
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	parties, connections := s.game.Registry().Counts()

	resp := map[string]any{
		"status":      "ok",
		"parties":     parties,
		"connections": connections,
	}
	if s.db != nil {
		resp["dictionary"] = s.db.Health(r.Context())
	} else {
		resp["dictionary"] = map[string]string{"status": "disabled"}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// DictionaryHandler answers client-side pre-checks against the word list.
// Lookups here are advisory only and never gate a submission.
func (s *Server) DictionaryHandler(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]

	w.Header().Set("Content-Type", "application/json")

	if s.db == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "dictionary not configured"})
		return
	}

	exists, err := s.db.Exists(r.Context(), word)
	if err != nil {
		log.Printf("[DictionaryHandler] lookup failed for %q: %v", word, err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "lookup failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"word": word, "exists": exists})
}
