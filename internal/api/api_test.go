package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/erazemk/najdeno/internal/db"
	"github.com/erazemk/najdeno/internal/model"
)

const testJWTSecret = "test-secret"

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database := db.NewTestDB(t)
	router := NewRouter(database, testJWTSecret)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func registerAndLogin(t *testing.T, server *httptest.Server, email string) string {
	t.Helper()

	resp := postJSON(t, server.URL+"/api/auth/register", map[string]string{
		"email": email, "password": "password",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register failed: %d", resp.StatusCode)
	}

	resp = postJSON(t, server.URL+"/api/auth/login", map[string]string{
		"email": email, "password": "password",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var loginResp map[string]string
	json.NewDecoder(resp.Body).Decode(&loginResp)
	if loginResp["token"] == "" {
		t.Fatal("empty token from login")
	}
	return loginResp["token"]
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func TestRegisterDuplicateEmail(t *testing.T) {
	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/auth/register", map[string]string{
		"email": "alice@example.com", "password": "pw",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	resp = postJSON(t, server.URL+"/api/auth/register", map[string]string{
		"email": "alice@example.com", "password": "other",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %d", resp.StatusCode)
	}
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	server := setupTestServer(t)
	registerAndLogin(t, server, "alice@example.com")

	readFailure := func(body map[string]string) (int, string) {
		resp := postJSON(t, server.URL+"/api/auth/login", body)
		defer resp.Body.Close()
		var out map[string]string
		json.NewDecoder(resp.Body).Decode(&out)
		return resp.StatusCode, out["error"]
	}

	wrongPwStatus, wrongPwMsg := readFailure(map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})
	noUserStatus, noUserMsg := readFailure(map[string]string{
		"email": "nobody@example.com", "password": "whatever",
	})

	if wrongPwStatus != http.StatusUnauthorized || noUserStatus != http.StatusUnauthorized {
		t.Errorf("expected 401 for both failures, got %d and %d", wrongPwStatus, noUserStatus)
	}
	if wrongPwMsg != noUserMsg {
		t.Errorf("wrong-password and unknown-email outcomes differ: %q vs %q", wrongPwMsg, noUserMsg)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	server := setupTestServer(t)
	token := registerAndLogin(t, server, "alice@example.com")

	req, _ := authRequest("POST", server.URL+"/api/auth/logout", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout failed: %d", resp.StatusCode)
	}

	// The revoked token no longer opens protected routes.
	req, _ = authRequest("POST", server.URL+"/api/items", token, map[string]string{
		"name": "Wallet", "type": model.TypeLost, "category": "accessories",
	})
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", resp.StatusCode)
	}

	// Logging out twice is not an error.
	req, _ = authRequest("POST", server.URL+"/api/auth/logout", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status for second logout: %d", resp.StatusCode)
	}
}

func TestCreateItemRequiresAuth(t *testing.T) {
	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/items", map[string]string{
		"name": "Wallet", "type": model.TypeLost, "category": "accessories",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.StatusCode)
	}
}

func TestItemMatchScenario(t *testing.T) {
	server := setupTestServer(t)
	token := registerAndLogin(t, server, "alice@example.com")

	createItem := func(body map[string]string) model.Item {
		req, _ := authRequest("POST", server.URL+"/api/items", token, body)
		resp, _ := http.DefaultClient.Do(req)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}
		var item model.Item
		json.NewDecoder(resp.Body).Decode(&item)
		return item
	}

	wallet := createItem(map[string]string{
		"name": "Wallet", "type": model.TypeLost, "category": "accessories",
	})
	brownWallet := createItem(map[string]string{
		"name": "Brown Wallet", "type": model.TypeFound, "category": "accessories",
	})

	getDetail := func(id int64) itemDetailResponse {
		resp, err := http.Get(server.URL + "/api/items/" + strconv.FormatInt(id, 10))
		if err != nil {
			t.Fatalf("GET item: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var detail itemDetailResponse
		json.NewDecoder(resp.Body).Decode(&detail)
		return detail
	}

	detail := getDetail(wallet.ID)
	if len(detail.Matches) != 1 || detail.Matches[0].ID != brownWallet.ID {
		t.Errorf("expected Brown Wallet to match Wallet, got %v", detail.Matches)
	}

	detail = getDetail(brownWallet.ID)
	if len(detail.Matches) != 1 || detail.Matches[0].ID != wallet.ID {
		t.Errorf("expected Wallet to match Brown Wallet, got %v", detail.Matches)
	}
}

func TestGetItemNotFound(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/items/42")
	if err != nil {
		t.Fatalf("GET item: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestListItemsFilter(t *testing.T) {
	server := setupTestServer(t)
	token := registerAndLogin(t, server, "alice@example.com")

	for _, body := range []map[string]string{
		{"name": "Keys", "type": model.TypeLost, "category": "keys"},
		{"name": "Phone", "type": model.TypeFound, "category": "electronics"},
	} {
		req, _ := authRequest("POST", server.URL+"/api/items", token, body)
		resp, _ := http.DefaultClient.Do(req)
		resp.Body.Close()
	}

	resp, _ := http.Get(server.URL + "/api/items?type=lost")
	var items []model.Item
	json.NewDecoder(resp.Body).Decode(&items)
	resp.Body.Close()
	if len(items) != 1 || items[0].Name != "Keys" {
		t.Errorf("expected only the lost item, got %v", items)
	}

	// Malformed filter values are rejected, not silently matched.
	resp, _ = http.Get(server.URL + "/api/items?type=stolen")
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid filter, got %d", resp.StatusCode)
	}
}
