// cmd/tf2ctl/watch.go
// Implements `tf2ctl watch`, a long-running subscriber to a buffer daemon's
// /watch WebSocket endpoint, printing one line per pushed frame.
package main

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

// watchFrame mirrors internal/server.watchFrame's JSON shape; duplicated here
// since it is a private wire type on the daemon side.
type watchFrame struct {
	Transform *struct {
		ParentFrameID string  `json:"parent_frame_id"`
		ChildFrameID  string  `json:"child_frame_id"`
		Sec           int32   `json:"sec"`
		Nanosec       uint32  `json:"nanosec"`
		TX            float64 `json:"tx"`
		TY            float64 `json:"ty"`
		TZ            float64 `json:"tz"`
		RX            float64 `json:"rx"`
		RY            float64 `json:"ry"`
		RZ            float64 `json:"rz"`
		RW            float64 `json:"rw"`
	} `json:"transform,omitempty"`
	Error string `json:"error,omitempty"`
}

func newWatchCmd() *cobra.Command {
	var (
		from, to string
		hz       float64
		httpAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream a chained transform from a buffer daemon's /watch endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" || to == "" {
				return fmt.Errorf("--from and --to are required")
			}

			u := url.URL{Scheme: "ws", Host: httpAddr, Path: "/watch"}
			q := u.Query()
			q.Set("from", from)
			q.Set("to", to)
			if hz > 0 {
				q.Set("hz", fmt.Sprintf("%g", hz))
			}
			u.RawQuery = q.Encode()

			header := http.Header{}
			if authToken != "" {
				header.Set("Authorization", "Bearer "+authToken)
			}

			conn, _, err := websocket.DefaultDialer.Dial(u.String(), header)
			if err != nil {
				return fmt.Errorf("dial %s: %w", u.String(), err)
			}
			defer conn.Close()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			done := make(chan struct{})

			go func() {
				defer close(done)
				for {
					var frame watchFrame
					if err := conn.ReadJSON(&frame); err != nil {
						fmt.Fprintln(os.Stderr, "watch:", err)
						return
					}
					if frame.Error != "" {
						fmt.Println("error:", frame.Error)
						continue
					}
					t := frame.Transform
					fmt.Printf("%s -> %s @ %d.%09d  t=(%.4f,%.4f,%.4f) q=(%.4f,%.4f,%.4f,%.4f)\n",
						t.ParentFrameID, t.ChildFrameID, t.Sec, t.Nanosec,
						t.TX, t.TY, t.TZ, t.RX, t.RY, t.RZ, t.RW)
				}
			}()

			select {
			case <-sigCh:
			case <-done:
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source frame id")
	cmd.Flags().StringVar(&to, "to", "", "Target frame id")
	cmd.Flags().Float64Var(&hz, "hz", 10, "Poll rate in Hz")
	cmd.Flags().StringVar(&httpAddr, "http-addr", "localhost:8080", "Buffer daemon HTTP address")

	return cmd
}
