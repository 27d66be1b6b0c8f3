// cmd/tf2ctl/publish.go
// Implements `tf2ctl publish`, which sends one stamped transform sample (or a
// batch loaded from a JSON file) to a buffer daemon's Ingest stream. With
// --repeat it keeps resending the same batch on a timer paced by the
// internal/config.Config.PublishEvery interval, mimicking a live broadcaster.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/smilerobotics/tf2-go/internal/client"
	"github.com/smilerobotics/tf2-go/internal/config"
	"github.com/smilerobotics/tf2-go/internal/logging"
	"github.com/smilerobotics/tf2-go/pkg/tf2"
	"go.uber.org/zap"
)

// jsonSample is the on-disk shape accepted by --file; it mirrors
// pkg/tf2.StampedTransform without requiring callers to know the wire codec.
type jsonSample struct {
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
}

func newPublishCmd() *cobra.Command {
	var (
		parent, child string
		x, y, z       float64
		qx, qy, qz    float64
		qw            float64
		sec           int32
		nanosec       uint32
		static        bool
		file          string
		repeat        bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish one or more stamped transforms to a buffer daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			pub, err := client.NewPublisher(ctx, client.Config{
				Addr:      serverAddr,
				AuthToken: authToken,
				Insecure:  insecure,
			})
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer pub.Close()

			var batch []tf2.StampedTransform
			if file != "" {
				batch, static, err = loadSamplesFile(file)
				if err != nil {
					return err
				}
			} else {
				if parent == "" || child == "" {
					return fmt.Errorf("--from and --to are required unless --file is given")
				}
				if qw == 0 && qx == 0 && qy == 0 && qz == 0 {
					qw = 1 // identity rotation default
				}
				batch = []tf2.StampedTransform{{
					ParentFrameID: parent,
					ChildFrameID:  child,
					Stamp:         tf2.Time{Sec: sec, Nanosec: nanosec},
					Transform: tf2.Transform{
						Translation: tf2.Vector3{X: x, Y: y, Z: z},
						Rotation:    tf2.Quaternion{X: qx, Y: qy, Z: qz, W: qw},
					},
				}}
			}

			if !repeat {
				if err := pub.Publish(ctx, batch, static); err != nil {
					return fmt.Errorf("publish: %w", err)
				}
				logging.Logger().Info("published", zap.Int("samples", len(batch)), zap.Bool("static", static))
				return nil
			}

			every := config.Load(cfgFile).PublishEvery
			logging.Logger().Info("publishing on a timer", zap.Int("samples", len(batch)), zap.Bool("static", static), zap.Duration("every", every))

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			ticker := time.NewTicker(every)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if err := pub.Publish(ctx, batch, static); err != nil {
						logging.Logger().Warn("publish", zap.Error(err))
					}
				case <-sigCh:
					return nil
				}
			}
		},
	}

	cmd.Flags().StringVar(&parent, "from", "", "Parent frame id")
	cmd.Flags().StringVar(&child, "to", "", "Child frame id")
	cmd.Flags().Float64Var(&x, "x", 0, "Translation X")
	cmd.Flags().Float64Var(&y, "y", 0, "Translation Y")
	cmd.Flags().Float64Var(&z, "z", 0, "Translation Z")
	cmd.Flags().Float64Var(&qx, "qx", 0, "Rotation quaternion X")
	cmd.Flags().Float64Var(&qy, "qy", 0, "Rotation quaternion Y")
	cmd.Flags().Float64Var(&qz, "qz", 0, "Rotation quaternion Z")
	cmd.Flags().Float64Var(&qw, "qw", 1, "Rotation quaternion W")
	cmd.Flags().Int32Var(&sec, "sec", int32(time.Now().Unix()), "Stamp seconds since epoch")
	cmd.Flags().Uint32Var(&nanosec, "nanosec", 0, "Stamp nanoseconds")
	cmd.Flags().BoolVar(&static, "static", false, "Mark as a static (always-valid) transform")
	cmd.Flags().StringVar(&file, "file", "", "Path to a JSON object {\"static\": bool, \"samples\": [...]} to publish instead of flag-based values")
	cmd.Flags().BoolVar(&repeat, "repeat", false, "keep republishing the same batch every --config's publish_every interval until interrupted")

	return cmd
}

func loadSamplesFile(path string) ([]tf2.StampedTransform, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	var wrapper struct {
		Static  bool         `json:"static"`
		Samples []jsonSample `json:"samples"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", path, err)
	}
	batch := make([]tf2.StampedTransform, len(wrapper.Samples))
	for i, s := range wrapper.Samples {
		batch[i] = tf2.StampedTransform{
			ParentFrameID: s.ParentFrameID,
			ChildFrameID:  s.ChildFrameID,
			Stamp:         tf2.Time{Sec: s.Sec, Nanosec: s.Nanosec},
			Transform: tf2.Transform{
				Translation: tf2.Vector3{X: s.TX, Y: s.TY, Z: s.TZ},
				Rotation:    tf2.Quaternion{X: s.RX, Y: s.RY, Z: s.RZ, W: s.RW},
			},
		}
	}
	return batch, wrapper.Static, nil
}
