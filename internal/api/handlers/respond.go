package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// Every response uses the same envelope: domain failures are converted to
// {success:false, statusCode, message} at this boundary and nothing below
// it writes HTTP.
type envelope struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, StatusCode: status, Data: data}); err != nil {
		log.Printf("ERROR [handlers.writeData] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: false, StatusCode: status, Message: message}); err != nil {
		log.Printf("ERROR [handlers.writeError] encode response: %v", err)
	}
}

func writeInternal(w http.ResponseWriter, component string, err error) {
	log.Printf("ERROR [%s] %v", component, err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
