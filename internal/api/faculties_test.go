package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"campus-core/internal/faculty"
)

const engineeringFaculty = `{
	"code": "ENG",
	"name": "Engineering",
	"description": "Applied sciences and technology"
}`

func createFaculty(t *testing.T, router http.Handler, token, body string) faculty.Faculty {
	t.Helper()

	w := doRequest(router, http.MethodPost, "/api/v1/faculties", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create faculty status = %d; body: %s", w.Code, w.Body.String())
	}

	var f faculty.Faculty
	if err := json.Unmarshal(w.Body.Bytes(), &f); err != nil {
		t.Fatalf("unmarshal created faculty: %v", err)
	}
	return f
}

func TestCreateAndGetFaculty(t *testing.T) {
	_, router := testServer(t)
	token := authToken(t, router)

	created := createFaculty(t, router, token, engineeringFaculty)
	if created.ID == 0 {
		t.Error("created faculty has no ID")
	}

	w := doRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/faculties/%d", created.ID), token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get faculty status = %d", w.Code)
	}

	var got faculty.Faculty
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Code != "ENG" || got.Name != "Engineering" {
		t.Errorf("faculty = %+v", got)
	}
}

func TestCreateFaculty_DuplicateCode(t *testing.T) {
	_, router := testServer(t)
	token := authToken(t, router)

	createFaculty(t, router, token, engineeringFaculty)

	w := doRequest(router, http.MethodPost, "/api/v1/faculties", token,
		`{"code":"ENG","name":"Other"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate code status = %d, want %d", w.Code, http.StatusConflict)
	}
}

func TestSearchFaculties(t *testing.T) {
	_, router := testServer(t)
	token := authToken(t, router)

	createFaculty(t, router, token, engineeringFaculty)
	createFaculty(t, router, token, `{"code":"SCI","name":"Science"}`)

	w := doRequest(router, http.MethodGet, "/api/v1/faculties?q=technology", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("search status = %d", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if int(resp["count"].(float64)) != 1 {
		t.Errorf("search count = %v, want 1", resp["count"])
	}
}

func TestUpdateFaculty(t *testing.T) {
	_, router := testServer(t)
	token := authToken(t, router)

	created := createFaculty(t, router, token, engineeringFaculty)

	w := doRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/faculties/%d", created.ID), token,
		`{"code":"ENG2","name":"Engineering and Design"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d; body: %s", w.Code, w.Body.String())
	}

	var updated faculty.Faculty
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if updated.Code != "ENG2" || updated.Name != "Engineering and Design" {
		t.Errorf("updated faculty = %+v", updated)
	}
}

func TestDeleteFaculty(t *testing.T) {
	_, router := testServer(t)
	token := authToken(t, router)

	created := createFaculty(t, router, token, engineeringFaculty)
	path := fmt.Sprintf("/api/v1/faculties/%d", created.ID)

	if w := doRequest(router, http.MethodDelete, path, token, ""); w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if w := doRequest(router, http.MethodGet, path, token, ""); w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
