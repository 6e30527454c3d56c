package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/adaptfit/macrohub/internal/storage"
	"github.com/adaptfit/macrohub/internal/storage/memory"
	"github.com/adaptfit/macrohub/internal/userctx"
	"github.com/google/uuid"
)

func setupTest(t *testing.T) (*Handlers, *memory.MemoryStorage, uuid.UUID) {
	t.Helper()

	mem := memory.New()
	service := NewService(mem, mem, mem, nil, 366, 600, "", false)

	return NewHandlers(service), mem, uuid.New()
}

func seedEntries(t *testing.T, mem *memory.MemoryStorage, userID uuid.UUID) {
	t.Helper()

	weights := []float64{200, 199, 198.5, 198}
	for i, w := range weights {
		err := mem.CreateWeightEntry(context.Background(), &storage.WeightEntry{
			UserID:   userID,
			Date:     time.Date(2026, 3, 1+7*i, 0, 0, 0, 0, time.UTC),
			WeightLB: w,
		})
		if err != nil {
			t.Fatalf("seed entry: %v", err)
		}
	}
}

func authedRequest(t *testing.T, method, path string, userID uuid.UUID, payload interface{}) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, body)
	return req.WithContext(userctx.WithUserID(req.Context(), userID.String()))
}

func createReport(t *testing.T, h *Handlers, userID uuid.UUID, format string) ReportDTO {
	t.Helper()

	w := httptest.NewRecorder()
	h.HandleCreate(w, authedRequest(t, "POST", "/v1/reports", userID, CreateReportRequest{
		From: "2026-03-01", To: "2026-03-31", Format: format,
	}))
	if w.Code != http.StatusCreated {
		t.Fatalf("create report failed: %d %s", w.Code, w.Body.String())
	}

	var dto ReportDTO
	json.NewDecoder(w.Body).Decode(&dto)
	return dto
}

func TestHandleCreate(t *testing.T) {
	handler, mem, userID := setupTest(t)
	seedEntries(t, mem, userID)

	t.Run("CSV", func(t *testing.T) {
		dto := createReport(t, handler, userID, FormatCSV)

		if dto.Status != StatusReady {
			t.Errorf("expected status ready, got %s", dto.Status)
		}
		if dto.SizeBytes == 0 {
			t.Error("expected non-empty report")
		}
		if !strings.Contains(dto.DownloadURL, "/v1/reports/"+dto.ID.String()+"/download") {
			t.Errorf("expected local download URL, got %s", dto.DownloadURL)
		}
	})

	t.Run("PDF", func(t *testing.T) {
		dto := createReport(t, handler, userID, FormatPDF)

		if dto.Format != FormatPDF {
			t.Errorf("expected format pdf, got %s", dto.Format)
		}
		if dto.SizeBytes == 0 {
			t.Error("expected non-empty report")
		}
	})

	t.Run("InvalidFormat", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.HandleCreate(w, authedRequest(t, "POST", "/v1/reports", userID, CreateReportRequest{
			From: "2026-03-01", To: "2026-03-31", Format: "xlsx",
		}))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d. Body: %s", w.Code, w.Body.String())
		}
	})

	t.Run("InvalidDate", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.HandleCreate(w, authedRequest(t, "POST", "/v1/reports", userID, CreateReportRequest{
			From: "March 1", To: "2026-03-31", Format: FormatCSV,
		}))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", w.Code)
		}
	})

	t.Run("ReversedRange", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.HandleCreate(w, authedRequest(t, "POST", "/v1/reports", userID, CreateReportRequest{
			From: "2026-03-31", To: "2026-03-01", Format: FormatCSV,
		}))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", w.Code)
		}
	})

	t.Run("RangeTooLarge", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.HandleCreate(w, authedRequest(t, "POST", "/v1/reports", userID, CreateReportRequest{
			From: "2020-01-01", To: "2026-03-31", Format: FormatCSV,
		}))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", w.Code)
		}
	})
}

func TestHandleDownload(t *testing.T) {
	handler, mem, userID := setupTest(t)
	seedEntries(t, mem, userID)

	t.Run("CSVContent", func(t *testing.T) {
		dto := createReport(t, handler, userID, FormatCSV)

		req := authedRequest(t, "GET", "/v1/reports/"+dto.ID.String()+"/download", userID, nil)
		req.SetPathValue("id", dto.ID.String())
		w := httptest.NewRecorder()

		handler.HandleDownload(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d. Body: %s", w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
			t.Errorf("expected text/csv, got %s", ct)
		}

		body := w.Body.String()
		if !strings.HasPrefix(body, "date,weight_lb,weight_kg,avg_7d_lb,change_lb") {
			t.Errorf("unexpected CSV header: %s", strings.SplitN(body, "\n", 2)[0])
		}
		lines := strings.Split(strings.TrimSpace(body), "\n")
		if len(lines) != 5 {
			t.Fatalf("expected header + 4 rows, got %d lines", len(lines))
		}
		if !strings.HasPrefix(lines[1], "2026-03-01,200.0,90.72,200.0,+0.0") {
			t.Errorf("unexpected first row: %s", lines[1])
		}
		if !strings.HasPrefix(lines[4], "2026-03-22,198.0,") {
			t.Errorf("unexpected last row: %s", lines[4])
		}
	})

	t.Run("PDFContent", func(t *testing.T) {
		dto := createReport(t, handler, userID, FormatPDF)

		req := authedRequest(t, "GET", "/v1/reports/"+dto.ID.String()+"/download", userID, nil)
		req.SetPathValue("id", dto.ID.String())
		w := httptest.NewRecorder()

		handler.HandleDownload(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("expected application/pdf, got %s", ct)
		}
		if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
			t.Error("expected PDF magic bytes")
		}
	})

	t.Run("OtherUserCannotDownload", func(t *testing.T) {
		dto := createReport(t, handler, userID, FormatCSV)

		otherID := uuid.New()
		req := authedRequest(t, "GET", "/v1/reports/"+dto.ID.String()+"/download", otherID, nil)
		req.SetPathValue("id", dto.ID.String())
		w := httptest.NewRecorder()

		handler.HandleDownload(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status 404 for another user, got %d", w.Code)
		}
	})
}

func TestHandleList(t *testing.T) {
	handler, mem, userID := setupTest(t)
	seedEntries(t, mem, userID)

	createReport(t, handler, userID, FormatCSV)
	createReport(t, handler, userID, FormatPDF)

	t.Run("OwnReports", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.HandleList(w, authedRequest(t, "GET", "/v1/reports", userID, nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d. Body: %s", w.Code, w.Body.String())
		}

		var resp ReportsResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if len(resp.Reports) != 2 {
			t.Fatalf("expected 2 reports, got %d", len(resp.Reports))
		}
	})

	t.Run("OtherUserSeesNothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.HandleList(w, authedRequest(t, "GET", "/v1/reports", uuid.New(), nil))

		var resp ReportsResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if len(resp.Reports) != 0 {
			t.Errorf("expected 0 reports, got %d", len(resp.Reports))
		}
	})
}

func TestHandleDelete(t *testing.T) {
	handler, mem, userID := setupTest(t)
	seedEntries(t, mem, userID)

	dto := createReport(t, handler, userID, FormatCSV)

	req := authedRequest(t, "DELETE", "/v1/reports/"+dto.ID.String(), userID, nil)
	req.SetPathValue("id", dto.ID.String())
	w := httptest.NewRecorder()

	handler.HandleDelete(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d. Body: %s", w.Code, w.Body.String())
	}

	req = authedRequest(t, "GET", "/v1/reports/"+dto.ID.String()+"/download", userID, nil)
	req.SetPathValue("id", dto.ID.String())
	w = httptest.NewRecorder()

	handler.HandleDownload(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", w.Code)
	}
}
