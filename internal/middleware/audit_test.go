package middleware

import (
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
)

type recordingWriter struct {
	mu      sync.Mutex
	records []string
}

func (w *recordingWriter) WriteAudit(action, resource, resourceID, details, ip, userAgent string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.records = append(w.records, action+" "+resourceID+" "+details)
	return nil
}

func (w *recordingWriter) wait(t *testing.T) string {
	t.Helper()
	// Audit writes are async; poll briefly.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		w.mu.Lock()
		n := len(w.records)
		var last string
		if n > 0 {
			last = w.records[n-1]
		}
		w.mu.Unlock()
		if n > 0 {
			return last
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("no audit record written")
	return ""
}

func TestAuditMiddleware_RecordsRequest(t *testing.T) {
	writer := &recordingWriter{}

	app := fiber.New()
	app.Use(AuditMiddleware(writer))
	app.Get("/ping", func(c fiber.Ctx) error {
		return c.SendString("pong")
	})

	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	record := writer.wait(t)
	if !strings.Contains(record, "http_request /ping") {
		t.Errorf("record = %q, want action and path", record)
	}
	if !strings.Contains(record, `"status":200`) {
		t.Errorf("record = %q, want status in details", record)
	}
}
