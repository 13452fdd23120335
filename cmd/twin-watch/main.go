// Command twin-watch subscribes to a twin server's animation decision
// stream and prints each event, for debugging renderers.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
)

type event struct {
	ID        string    `json:"id"`
	Animation string    `json:"animation"`
	Manual    bool      `json:"manual"`
	Time      time.Time `json:"time"`
}

func main() {
	url := flag.String("url", "ws://localhost:8090/ws/animation", "Decision stream URL")
	flag.Parse()

	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to %s: %v\n", *url, err)
		os.Exit(1)
	}
	defer conn.Close()

	fmt.Printf("watching %s\n", *url)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var ev event
			if err := json.Unmarshal(data, &ev); err != nil {
				fmt.Printf("%s  (unparsed) %s\n", time.Now().Format("15:04:05"), data)
				continue
			}
			name := ev.Animation
			if name == "" {
				name = "(idle)"
			}
			tag := ""
			if ev.Manual {
				tag = "  [manual]"
			}
			fmt.Printf("%s  %s%s\n", ev.Time.Format("15:04:05"), name, tag)
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	select {
	case <-done:
	case <-interrupt:
		// Best-effort close handshake.
		deadline := time.Now().Add(time.Second)
		conn.SetWriteDeadline(deadline)
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}
