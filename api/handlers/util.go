package handlers

import (
	"encoding/json"
	"net/http"
)

func JSONError(w http.ResponseWriter, err error, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	type errorResponse struct {
		Code   int    `json:"code"`
		Reason string `json:"reason"`
	}
	resp := errorResponse{
		Reason: err.Error(),
		Code:   code,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func JSONResponse(w http.ResponseWriter, v any, code int) {
	data, err := json.Marshal(v)
	if err != nil {
		JSONError(w, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(data)
}
