package http

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestPredictSocket(t *testing.T) {
	h := newTestHandlers(t, 1)
	srv := httptest.NewServer(NewServer(DefaultServerConfig(), h, nil, nil).Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws/predict"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	if err := conn.WriteJSON(map[string]interface{}{"model": "svm_model", "fields": map[string]string{}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var ok predictResponse
	if err := conn.ReadJSON(&ok); err != nil {
		t.Fatalf("read: %v", err)
	}
	if ok.Verdict != "malicious" || ok.Message != "The node is malicious" {
		t.Fatalf("unexpected reply: %+v", ok)
	}

	if err := conn.WriteJSON(map[string]interface{}{"model": "svm_model", "fields": map[string]string{"SNR": "abc"}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var failed errorResponse
	if err := conn.ReadJSON(&failed); err != nil {
		t.Fatalf("read: %v", err)
	}
	if failed.Kind != "invalid_number" || !strings.Contains(failed.Error, "'abc'") {
		t.Fatalf("unexpected error reply: %+v", failed)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	failed = errorResponse{}
	if err := conn.ReadJSON(&failed); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(failed.Error, "invalid message") {
		t.Fatalf("unexpected error reply: %+v", failed)
	}
}
