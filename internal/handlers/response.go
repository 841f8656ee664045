package handlers

import "net/http"
import "encoding/json"
import "fmt"
import "math"

type Payload struct {
	Key     string
	Payload any
}

func toPayload(key string, pl any) Payload {
	return Payload{Key: key, Payload: pl}
}

func toJSON(storage map[string]any, payload Payload) {
	storage[payload.Key] = payload.Payload
}

func responseWithJSON(w http.ResponseWriter, code int, payload ...Payload) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	storage := make(map[string]any)
	for _, pl := range payload {
		toJSON(storage, pl)
	}
	json.NewEncoder(w).Encode(storage)
}

func responseWithError(w http.ResponseWriter, code int, message string) {
	responseWithJSON(w, code, toPayload("error", message))
}

// paginationPayloads собирает поля страницы и ссылки prev/next в стиле API
func paginationPayloads(path string, page, limit, total int) []Payload {
	lastPage := int(math.Ceil(float64(total) / float64(limit)))
	if lastPage == 0 {
		lastPage = 1
	}

	var prev, next any
	if page > 1 {
		prev = pageLink(path, page-1, limit)
	}
	if page < lastPage {
		next = pageLink(path, page+1, limit)
	}

	return []Payload{
		toPayload("page", page),
		toPayload("lastPage", lastPage),
		toPayload("limit", limit),
		toPayload("total", total),
		toPayload("prev", prev),
		toPayload("next", next),
	}
}

func pageLink(path string, page, limit int) string {
	return fmt.Sprintf("%s?page=%d&limit=%d", path, page, limit)
}
