package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/arcadeboard/scores-api/internal/core/domain"
	"github.com/arcadeboard/scores-api/internal/core/ports"
)

func TestScoreHandler_List(t *testing.T) {
	e := newEcho()
	stub := &stubScoreService{
		listFn: func(ctx context.Context) ([]ports.ScoreSummary, error) {
			return []ports.ScoreSummary{{ID: "id-1", Username: "alice", Score: 10}}, nil
		},
	}
	handler := NewScoreHandler(stub)

	c, rec := newContext(e, http.MethodGet, "/api/users/scores", nil)
	run(c, handler.List)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["username"] != "alice" || resp[0]["score"] != float64(10) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestScoreHandler_List_EmptyIsArray(t *testing.T) {
	e := newEcho()
	stub := &stubScoreService{
		listFn: func(ctx context.Context) ([]ports.ScoreSummary, error) { return nil, nil },
	}

	c, rec := newContext(e, http.MethodGet, "/api/users/scores", nil)
	run(c, NewScoreHandler(stub).List)

	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected 200 [], got %d %q", rec.Code, rec.Body.String())
	}
}

func TestScoreHandler_Get(t *testing.T) {
	e := newEcho()
	stub := &stubScoreService{
		getFn: func(ctx context.Context, id string) (*ports.ScoreSummary, error) {
			if id != "id-1" {
				return nil, domain.ErrUserNotFound
			}
			return &ports.ScoreSummary{ID: id, Username: "alice", Score: 3}, nil
		},
	}
	handler := NewScoreHandler(stub)

	c, rec := newContext(e, http.MethodGet, "/api/users/scores/id-1", nil)
	run(withParam(c, "id-1"), handler.Get)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" || resp["score"] != float64(3) {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	c, rec = newContext(e, http.MethodGet, "/api/users/scores/nope", nil)
	run(withParam(c, "nope"), handler.Get)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestScoreHandler_Update_Success(t *testing.T) {
	e := newEcho()
	var got ports.UpdateScoreInput
	stub := &stubScoreService{
		updateFn: func(ctx context.Context, in ports.UpdateScoreInput) error {
			got = in
			return nil
		},
	}

	// extra fields such as id are ignored
	c, rec := newContext(e, http.MethodPut, "/api/users/scores/id-1", strings.NewReader(`{"score":100,"id":"id-1"}`))
	run(withCaller(withParam(c, "id-1"), "alice"), NewScoreHandler(stub).Update)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
	if got.ID != "id-1" || got.Caller != "alice" {
		t.Fatalf("unexpected input: %+v", got)
	}
	if got.Update.Score == nil || *got.Update.Score != 100 || got.Update.Level1 != nil || got.Update.TotalScore != nil {
		t.Fatalf("unexpected update: %+v", got.Update)
	}
}

func TestScoreHandler_Update_WithoutContentType(t *testing.T) {
	e := newEcho()
	called := false
	stub := &stubScoreService{
		updateFn: func(ctx context.Context, in ports.UpdateScoreInput) error {
			called = true
			return nil
		},
	}

	c, rec := newContext(e, http.MethodPut, "/api/users/scores/id-1", strings.NewReader(`{"level1":2}`))
	c.Request().Header.Del("Content-Type")
	run(withCaller(withParam(c, "id-1"), "alice"), NewScoreHandler(stub).Update)

	if rec.Code != http.StatusNoContent || !called {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestScoreHandler_Update_Errors(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		svcErr  error
		want    int
		reaches bool
	}{
		{name: "malformed json", body: `{"score":`, want: http.StatusBadRequest},
		{name: "wrong type", body: `{"score":"high"}`, want: http.StatusBadRequest},
		{name: "negative", body: `{"score":-1}`, want: http.StatusUnprocessableEntity},
		{name: "empty", body: `{}`, svcErr: domain.ErrInvalidScore, want: http.StatusUnprocessableEntity, reaches: true},
		{name: "unknown id", body: `{"score":1}`, svcErr: domain.ErrUserNotFound, want: http.StatusNotFound, reaches: true},
		{name: "not owner", body: `{"score":1}`, svcErr: domain.ErrForbidden, want: http.StatusForbidden, reaches: true},
		{name: "store failure", body: `{"score":1}`, svcErr: errors.New("boom"), want: http.StatusInternalServerError, reaches: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			called := false
			stub := &stubScoreService{
				updateFn: func(ctx context.Context, in ports.UpdateScoreInput) error {
					called = true
					return tc.svcErr
				},
			}

			c, rec := newContext(e, http.MethodPut, "/api/users/scores/id-1", strings.NewReader(tc.body))
			run(withCaller(withParam(c, "id-1"), "alice"), NewScoreHandler(stub).Update)

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
			if called != tc.reaches {
				t.Fatalf("service called = %v, want %v", called, tc.reaches)
			}
		})
	}
}

func TestScoreHandler_Update_RequiresCaller(t *testing.T) {
	e := newEcho()
	stub := &stubScoreService{
		updateFn: func(ctx context.Context, in ports.UpdateScoreInput) error {
			t.Fatalf("should not be called")
			return nil
		},
	}

	c, rec := newContext(e, http.MethodPut, "/api/users/scores/id-1", strings.NewReader(`{"score":1}`))
	run(withParam(c, "id-1"), NewScoreHandler(stub).Update)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestScoreHandler_History(t *testing.T) {
	e := newEcho()
	var gotLimit int
	stub := &stubScoreService{
		historyFn: func(ctx context.Context, id string, limit int) ([]*domain.ScoreChange, error) {
			gotLimit = limit
			return []*domain.ScoreChange{{ID: "h-1", UserID: id, Username: "alice"}}, nil
		},
	}
	handler := NewScoreHandler(stub)

	c, rec := newContext(e, http.MethodGet, "/api/users/scores/id-1/history?limit=5", nil)
	run(withParam(c, "id-1"), handler.History)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotLimit != 5 {
		t.Fatalf("expected limit 5, got %d", gotLimit)
	}
	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["userId"] != "id-1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	c, rec = newContext(e, http.MethodGet, "/api/users/scores/id-1/history?limit=abc", nil)
	run(withParam(c, "id-1"), handler.History)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", rec.Code)
	}
}
