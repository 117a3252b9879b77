package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"taskboard/internal/logger"
	"taskboard/internal/ws"

	"github.com/gorilla/websocket"
)

// ws_smoke logs in as a manager, subscribes to task events and creates a
// task against a running server, then prints the event it receives.
func main() {
	addr := flag.String("addr", "127.0.0.1:3000", "server host:port")
	email := flag.String("email", "john@task.com", "manager email")
	password := flag.String("password", "pass123", "manager password")
	flag.Parse()

	base := "http://" + *addr

	var login struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	if err := postJSON(base+"/api/login", "", map[string]string{"email": *email, "password": *password}, &login); err != nil {
		logger.Fatal("login failed", "error", err)
	}

	wsURL := fmt.Sprintf("ws://%s/api/ws?token=%s", *addr, url.QueryEscape(login.Token))
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		logger.Fatal("dial failed", "error", err)
	}
	defer conn.Close()

	var msg ws.Message
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil || msg.Type != ws.MsgReady {
		logger.Fatal("no ready frame", "type", msg.Type, "error", err)
	}

	task := map[string]any{
		"title":       "Smoke test",
		"description": "created by ws_smoke",
		"createdBy":   login.User.ID,
	}
	if err := postJSON(base+"/api/tasks", login.Token, task, nil); err != nil {
		logger.Fatal("create task failed", "error", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		logger.Fatal("read event failed", "error", err)
	}
	logger.Info("event received", "type", msg.Type, "event", msg.Event, "task_id", msg.Task.ID)
	logger.Info("smoke test finished")
}

func postJSON(endpoint, token string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return fmt.Errorf("%s: status %d", endpoint, res.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
