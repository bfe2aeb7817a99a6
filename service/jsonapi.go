package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"tailorpro/model"
)

// call sends req and decodes a successful JSON body into out. Non-2xx
// responses become *APIError.
func call(ctx context.Context, api ISender, req *Request, out any) error {
	resp, err := api.Send(ctx, req)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return newAPIError(resp)
	}
	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", req.Method, req.Path, err)
	}
	return nil
}

func jsonAPIRequest(method, path string, doc any) (*Request, error) {
	req := &Request{Method: method, Path: path}
	if doc != nil {
		body, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", path, err)
		}
		req.Body = body
	}
	return req, nil
}

func get(path string) *Request {
	return &Request{Method: http.MethodGet, Path: path}
}

// attributeString returns a string attribute or "".
func attributeString(res model.Resource, key string) string {
	s, _ := res.Attributes[key].(string)
	return s
}
