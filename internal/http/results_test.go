package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFullResults_EmptyBeforeAnalysis(t *testing.T) {
	env := newTestEnv(t, &stubAnalyzer{record: successAnalysis()})

	code, payload := doJSON(t, env.handler, httptest.NewRequest(http.MethodGet, "/results/full", nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if payload["ok"] != true {
		t.Errorf("expected ok true, got %v", payload)
	}
	if stored, _ := payload["results"].(map[string]any); len(stored) != 0 {
		t.Errorf("expected empty results object, got %v", stored)
	}
}

func TestTimelines_ProjectedToPairs(t *testing.T) {
	env := newTestEnv(t, &stubAnalyzer{record: successAnalysis()})
	env.store.StoreTimelines("sess-1", map[string]any{
		"posture_timeline": []any{
			map[string]any{"timestamp": float64(1), "percentage": float64(50)},
			"malformed entry",
			map[string]any{"timestamp": float64(2), "percentage": float64(80)},
		},
		"eye_timeline": []any{
			map[string]any{"timestamp": float64(1), "percentage": float64(60)},
		},
	})

	code, payload := doJSON(t, env.handler, httptest.NewRequest(http.MethodGet, "/results/timelines", nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}

	timelines, _ := payload["interview_timelines"].(map[string]any)
	posture, _ := timelines["posture_timeline"].([]any)
	if len(posture) != 2 {
		t.Fatalf("expected malformed entries dropped, got %v", posture)
	}
	first, _ := posture[0].([]any)
	if len(first) != 2 || first[0] != float64(1) || first[1] != float64(50) {
		t.Errorf("unexpected first pair: %v", first)
	}

	code, single := doJSON(t, env.handler, httptest.NewRequest(http.MethodGet, "/results/eye_timeline", nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	eye, _ := single["eye_timeline"].([]any)
	if len(eye) != 1 {
		t.Errorf("unexpected eye timeline: %v", eye)
	}
}

func TestTimelines_EmptyStore(t *testing.T) {
	env := newTestEnv(t, &stubAnalyzer{record: successAnalysis()})

	code, payload := doJSON(t, env.handler, httptest.NewRequest(http.MethodGet, "/results/timelines", nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	timelines, _ := payload["interview_timelines"].(map[string]any)
	posture, _ := timelines["posture_timeline"].([]any)
	if len(posture) != 0 {
		t.Errorf("expected empty posture pairs, got %v", posture)
	}
}

func TestLLMReview_NullWhenAbsent(t *testing.T) {
	env := newTestEnv(t, &stubAnalyzer{record: successAnalysis()})

	code, payload := doJSON(t, env.handler, httptest.NewRequest(http.MethodGet, "/results/llm_review", nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if payload["llm_review"] != nil {
		t.Errorf("expected null review before any analysis, got %v", payload["llm_review"])
	}
}

func TestInterviewPDF_ErrorBeforeAnalysis(t *testing.T) {
	env := newTestEnv(t, &stubAnalyzer{record: successAnalysis()})

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/results/interview/pdf", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before any analysis, got %d", rec.Code)
	}
	if bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatal("expected a JSON error object, got a PDF byte stream")
	}
}

func TestInterviewPDF_RendersStoredResult(t *testing.T) {
	env := newTestEnv(t, &stubAnalyzer{record: successAnalysis()})
	env.store.StoreResult("sess-1", map[string]any{
		"prompt_text":        "Tell me about yourself",
		"interview_analysis": successAnalysis(),
	})

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/results/interview/pdf", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("expected application/pdf, got %q", got)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("expected a PDF byte stream")
	}
}

func TestResults_SessionKeyedReads(t *testing.T) {
	env := newTestEnv(t, &stubAnalyzer{record: successAnalysis()})
	env.store.StoreResult("sess-a", map[string]any{"llm_review": "review A"})
	env.store.StoreResult("sess-b", map[string]any{"llm_review": "review B"})

	// Latest wins by default.
	_, payload := doJSON(t, env.handler, httptest.NewRequest(http.MethodGet, "/results/llm_review", nil))
	if payload["llm_review"] != "review B" {
		t.Errorf("expected latest review, got %v", payload["llm_review"])
	}

	// An explicit session still reads its own record.
	_, payload = doJSON(t, env.handler, httptest.NewRequest(http.MethodGet, "/results/llm_review?session_id=sess-a", nil))
	if payload["llm_review"] != "review A" {
		t.Errorf("expected session A review, got %v", payload["llm_review"])
	}
}
