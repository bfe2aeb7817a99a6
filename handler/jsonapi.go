package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"tailorpro/model"
)

func writeDocument(w http.ResponseWriter, status int, doc any) {
	w.Header().Set("Content-Type", model.MediaType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(doc)
}

// filterParams collects filter[<field>]=<value> query parameters.
func filterParams(r *http.Request) map[string]string {
	filter := make(map[string]string)
	for key, values := range r.URL.Query() {
		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") && len(values) > 0 {
			filter[key[len("filter["):len(key)-1]] = values[0]
		}
	}
	return filter
}

// includes returns the relationship names requested with ?include=a,b.
func includes(r *http.Request) []string {
	raw := r.URL.Query().Get("include")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
