package handler

import (
	"net/http"
	"testing"
)

func TestCreateRepoEndpoint(t *testing.T) {
	app := newTestApp(&fakeUserStore{}, &fakeRepoStore{}, &fakeReportStore{}, &fakeAI{})

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/repositories/",
		`{"name":"demo","url":"https://example.com/demo.git","owner_id":"`+userID+`"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", resp.StatusCode, body["_raw"])
	}
	if body["name"] != "demo" {
		t.Errorf("name = %v, want demo", body["name"])
	}
	if body["owner_id"] != userID {
		t.Errorf("owner_id = %v, want %s", body["owner_id"], userID)
	}
}

func TestCreateRepoEndpoint_MissingOwner404(t *testing.T) {
	app := newTestApp(&fakeUserStore{}, &fakeRepoStore{ownerGone: true}, &fakeReportStore{}, &fakeAI{})

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/repositories/",
		`{"name":"demo","url":"https://example.com/demo.git","owner_id":"`+userID+`"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestCreateRepoEndpoint_Validation(t *testing.T) {
	app := newTestApp(&fakeUserStore{}, &fakeRepoStore{}, &fakeReportStore{}, &fakeAI{})

	tests := []string{
		`{"url":"https://x","owner_id":"` + userID + `"}`,
		`{"name":"demo","owner_id":"` + userID + `"}`,
		`{"name":"demo","url":"https://x","owner_id":"nope"}`,
	}
	for _, payload := range tests {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/repositories/", payload)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("payload %s: status = %d, want 400", payload, resp.StatusCode)
		}
	}
}

func TestListReposEndpoint(t *testing.T) {
	app := newTestApp(&fakeUserStore{}, &fakeRepoStore{}, &fakeReportStore{}, &fakeAI{})

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/repositories/", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", resp.StatusCode, body["_raw"])
	}
}
