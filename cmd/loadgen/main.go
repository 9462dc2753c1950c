// Command loadgen drives a running catalogue server: it subscribes a
// WebSocket client to the event feed, fires concurrent create requests, and
// verifies that every accepted create produced exactly one CREATED frame.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

func main() {
	addr := flag.String("addr", "localhost:8080", "server host:port")
	total := flag.Int("requests", 50, "number of create requests")
	flag.Parse()

	wsURL := fmt.Sprintf("ws://%s/api/v1/ws/events", *addr)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("failed to connect websocket: %v", err)
	}
	defer conn.Close()

	var received atomic.Int32
	go func() {
		for {
			var frame map[string]json.RawMessage
			if err := conn.ReadJSON(&frame); err != nil {
				return
			}
			if _, ok := frame["CREATED"]; ok {
				received.Add(1)
			}
		}
	}()

	var successCount atomic.Int32
	var failCount atomic.Int32

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < *total; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			body, _ := json.Marshal(map[string]any{
				"sku":         "LOAD-" + uuid.NewString(),
				"name":        gofakeit.ProductName(),
				"description": gofakeit.ProductDescription(),
				"category":    "Books",
				"price":       gofakeit.Price(1, 500),
				"inventory":   gofakeit.Number(1, 100),
			})

			resp, err := http.Post(fmt.Sprintf("http://%s/api/v1/", *addr), "application/json", bytes.NewReader(body))
			if err != nil {
				failCount.Add(1)
				return
			}
			resp.Body.Close()
			if resp.StatusCode == http.StatusCreated {
				successCount.Add(1)
			} else {
				failCount.Add(1)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	// Give the relay a moment to drain.
	time.Sleep(time.Second)

	success := successCount.Load()
	fail := failCount.Load()
	frames := received.Load()

	fmt.Println("========== LOAD TEST RESULTS ==========")
	fmt.Printf("Total Requests:   %d\n", *total)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("CREATED frames:   %d\n", frames)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("=======================================")

	if frames == success {
		fmt.Println("PASS: every accepted create was broadcast exactly once")
	} else {
		fmt.Printf("FAIL: expected %d CREATED frames, got %d\n", success, frames)
	}
}
