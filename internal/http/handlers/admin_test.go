package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/squad-planner/internal/testutil"
)

type stubClearer struct {
	cleared []string
	err     error
}

func (s *stubClearer) ClearSession(ctx context.Context, session string) error {
	_ = ctx
	s.cleared = append(s.cleared, session)
	return s.err
}

func adminRouter(h *AdminHandler) http.Handler {
	r := chi.NewRouter()
	r.Delete("/admin/sessions/{session}", h.ClearSession)
	return r
}

func TestAdminClearRequiresAuth(t *testing.T) {
	clearer := &stubClearer{}
	h := NewAdminHandler(clearer, "secret", nil)

	rr := testutil.Serve(adminRouter(h), http.MethodDelete, "/admin/sessions/s1", nil)
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)

	req := httptest.NewRequest(http.MethodDelete, "/admin/sessions/s1", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rr = testutil.ServeRequest(adminRouter(h), req)
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	if len(clearer.cleared) != 0 {
		t.Fatalf("expected nothing cleared")
	}
}

func TestAdminDisabledWithoutToken(t *testing.T) {
	h := NewAdminHandler(&stubClearer{}, "", nil)
	req := httptest.NewRequest(http.MethodDelete, "/admin/sessions/s1", nil)
	req.Header.Set("Authorization", "Bearer ")
	rr := testutil.ServeRequest(adminRouter(h), req)
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestAdminClearSession(t *testing.T) {
	clearer := &stubClearer{}
	h := NewAdminHandler(clearer, "secret", nil)

	req := httptest.NewRequest(http.MethodDelete, "/admin/sessions/club-9", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rr := testutil.ServeRequest(adminRouter(h), req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if len(clearer.cleared) != 1 || clearer.cleared[0] != "club-9" {
		t.Fatalf("expected club-9 cleared, got %v", clearer.cleared)
	}
}

func TestAdminClearRejectsInvalidSession(t *testing.T) {
	h := NewAdminHandler(&stubClearer{}, "secret", nil)
	req := httptest.NewRequest(http.MethodDelete, "/admin/sessions/bad.id", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rr := testutil.ServeRequest(adminRouter(h), req)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestAdminClearStoreFailure(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	h := NewAdminHandler(&stubClearer{err: errors.New("redis down")}, "secret", logger)
	req := httptest.NewRequest(http.MethodDelete, "/admin/sessions/s1", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rr := testutil.ServeRequest(adminRouter(h), req)

	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
	if buf.Len() == 0 {
		t.Fatalf("expected failure logged")
	}
}
