// Command chattest drives load against the SkillSwap chat relay: it logs in
// once, opens many WebSocket clients sharing that session (plus optional
// guests) and reports delivery counts and relay latency.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"skillswap/internal/models"

	"github.com/gorilla/websocket"
)

const stampPrefix = "chattest@"

type stats struct {
	dialed, connected, failed atomic.Int64
	sent, received, system    atomic.Int64
	errors                    atomic.Int64

	mu        sync.Mutex
	latencies []time.Duration
}

func (s *stats) observe(d time.Duration) {
	s.mu.Lock()
	s.latencies = append(s.latencies, d)
	s.mu.Unlock()
}

func (s *stats) percentile(p float64) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.latencies) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), s.latencies...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[int(p*float64(len(sorted)-1))]
}

type options struct {
	host     string
	token    string
	receiver uint
	interval time.Duration
}

func main() {
	host := flag.String("host", "localhost:5000", "API server host")
	username := flag.String("username", "Alex", "demo user to log in as")
	password := flag.String("password", "password123", "demo user password")
	receiver := flag.Uint("receiver", 0, "receiver user ID for targeted frames (0 broadcasts)")
	clients := flag.Int("clients", 50, "authenticated clients")
	guests := flag.Int("guests", 0, "additional clients connecting without a session")
	interval := flag.Duration("interval", 5*time.Second, "send interval per authenticated client")
	duration := flag.Duration("duration", 30*time.Second, "test duration")
	flag.Parse()

	log.Printf("chat relay load test: host=%s clients=%d guests=%d duration=%v", *host, *clients, *guests, *duration)

	token, err := login(*host, *username, *password)
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}

	var st stats
	var wg sync.WaitGroup
	stop := make(chan struct{})
	opts := options{host: *host, token: token, receiver: *receiver, interval: *interval}

	for i := 0; i < *clients+*guests; i++ {
		o := opts
		if i >= *clients {
			o.token = ""
		}
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runClient(o, id, stop, &st)
		}(i)
		// Stagger dials so the per-user connection cap and accept queue are exercised gradually.
		time.Sleep(50 * time.Millisecond)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	select {
	case <-time.After(*duration):
	case <-interrupt:
		log.Println("interrupted")
	}

	close(stop)
	wg.Wait()
	report(&st)
}

func login(host, username, password string) (string, error) {
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := http.Post(fmt.Sprintf("http://%s/api/auth/login", host), "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	var out struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.SessionID, nil
}

func runClient(o options, id int, stop <-chan struct{}, st *stats) {
	st.dialed.Add(1)

	u := url.URL{Scheme: "ws", Host: o.host, Path: "/api/ws"}
	if o.token != "" {
		u.RawQuery = "token=" + url.QueryEscape(o.token)
	}
	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		st.failed.Add(1)
		return
	}
	defer func() { _ = conn.Close() }()
	st.connected.Add(1)

	go readLoop(conn, st)

	// Guests only listen; anonymous frames would all come from "system".
	if o.token == "" {
		<-stop
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		return
	}

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-ticker.C:
			frame := map[string]any{
				"type":      models.EnvelopeMessage,
				"content":   fmt.Sprintf("%s%d client %d", stampPrefix, time.Now().UnixNano(), id),
				"sessionId": o.token,
			}
			if o.receiver != 0 {
				frame["receiverId"] = o.receiver
			}
			if err := conn.WriteJSON(frame); err != nil {
				st.errors.Add(1)
				return
			}
			st.sent.Add(1)
		}
	}
}

func readLoop(conn *websocket.Conn, st *stats) {
	for {
		var env models.ChatEnvelope
		if err := conn.ReadJSON(&env); err != nil {
			return
		}
		if env.Type == models.EnvelopeSystem {
			st.system.Add(1)
			continue
		}
		st.received.Add(1)
		if sentAt, ok := parseStamp(env.Content); ok {
			st.observe(time.Since(sentAt))
		}
	}
}

// parseStamp recovers the send time embedded by runClient.
func parseStamp(content string) (time.Time, bool) {
	rest, ok := strings.CutPrefix(content, stampPrefix)
	if !ok {
		return time.Time{}, false
	}
	raw, _, _ := strings.Cut(rest, " ")
	nanos, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(0, nanos), true
}

func report(st *stats) {
	log.Println("results")
	log.Printf("  connections: dialed=%d ok=%d failed=%d", st.dialed.Load(), st.connected.Load(), st.failed.Load())
	log.Printf("  frames: sent=%d relayed=%d system=%d errors=%d", st.sent.Load(), st.received.Load(), st.system.Load(), st.errors.Load())
	log.Printf("  relay latency: p50=%v p95=%v p99=%v", st.percentile(0.50), st.percentile(0.95), st.percentile(0.99))
}
