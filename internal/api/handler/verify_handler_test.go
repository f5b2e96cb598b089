package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mouvement-ensemble/membership-portal/internal/core/domain"
	"github.com/mouvement-ensemble/membership-portal/internal/core/service"
)

func getVerify(t *testing.T, query string) (*httptest.ResponseRecorder, domain.VerificationResult) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/verify-member?"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewVerifyHandler(service.NewCardService("https://example.org", nil))
	if err := h.Verify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var result domain.VerificationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return rec, result
}

func TestVerify_ValidBlob(t *testing.T) {
	blob := base64.StdEncoding.EncodeToString([]byte(
		`{"id":"m-1","name":"Awa Dossou","number":"ME-0001","status":"active"}`,
	))

	rec, result := getVerify(t, "data="+blob)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !result.Valid || result.Name != "Awa Dossou" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestVerify_MalformedBlobIs200Invalid(t *testing.T) {
	// The public page must never crash on garbage; it renders Invalid.
	rec, result := getVerify(t, "data=%25%25garbage")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if result.Valid {
		t.Fatalf("garbage must be invalid: %+v", result)
	}
}

func TestVerify_DiscreteParamsForm(t *testing.T) {
	_, result := getVerify(t, "memberId=m-2&name=Awa+Dossou&number=ME-0002")
	if !result.Valid || result.MemberID != "m-2" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestVerify_NoParams(t *testing.T) {
	_, result := getVerify(t, "")
	if result.Valid {
		t.Fatalf("empty query must be invalid: %+v", result)
	}
}
