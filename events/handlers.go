package events

import (
	"encoding/json"
	"net/http"
)

func SetupHandlers(mux *http.ServeMux) {
	mux.HandleFunc("GET /events/list", handleEventsList)
}

func handleEventsList(w http.ResponseWriter, r *http.Request) {
	eventsList := GetEvents()

	// newest first
	reversed := make([]Event, len(eventsList))
	for i, j := 0, len(eventsList)-1; i < len(eventsList); i, j = i+1, j-1 {
		reversed[i] = eventsList[j]
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(reversed); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
