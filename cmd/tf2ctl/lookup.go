// cmd/tf2ctl/lookup.go
// Implements `tf2ctl lookup`, a one-shot chained transform lookup against a
// buffer daemon, with an optional --through fixed frame for time-travel.
package main

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	grpcinsecure "google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/smilerobotics/tf2-go/internal/rpc"
	"github.com/smilerobotics/tf2-go/pkg/tf2"
)

func newLookupCmd() *cobra.Command {
	var (
		from, to string
		sec      int32
		nanosec  uint32
		fixed    string
		fromSec  int32
		fromNano uint32
	)

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Resolve a chained transform from one frame to another",
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" || to == "" {
				return fmt.Errorf("--from and --to are required")
			}

			conn, err := dialServer()
			if err != nil {
				return fmt.Errorf("dial: %w", err)
			}
			defer conn.Close()

			rpcClient := rpc.NewTransformServiceClient(conn)
			ctx := authContext(context.Background())

			var payload []byte
			if fixed != "" {
				payload, err = rpc.EncodeTimeTravelRequest(to, tf2.Time{Sec: sec, Nanosec: nanosec}, from, tf2.Time{Sec: fromSec, Nanosec: fromNano}, fixed)
			} else {
				payload, err = rpc.EncodeLookupRequest(from, to, tf2.Time{Sec: sec, Nanosec: nanosec})
			}
			if err != nil {
				return err
			}

			out, err := rpcClient.Lookup(ctx, wrapperspb.Bytes(payload))
			if err != nil {
				return fmt.Errorf("lookup: %w", err)
			}

			result, err := rpc.DecodeLookupResponse(out.GetValue())
			if err != nil {
				return err
			}

			t := result.Transform
			fmt.Printf("%s -> %s @ %d.%09d\n", result.ParentFrameID, result.ChildFrameID, result.Stamp.Sec, result.Stamp.Nanosec)
			fmt.Printf("  translation: (%.6f, %.6f, %.6f)\n", t.Translation.X, t.Translation.Y, t.Translation.Z)
			fmt.Printf("  rotation:    (%.6f, %.6f, %.6f, %.6f)\n", t.Rotation.X, t.Rotation.Y, t.Rotation.Z, t.Rotation.W)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source frame id")
	cmd.Flags().StringVar(&to, "to", "", "Target frame id")
	cmd.Flags().Int32Var(&sec, "sec", 0, "Query stamp seconds (0 means latest)")
	cmd.Flags().Uint32Var(&nanosec, "nanosec", 0, "Query stamp nanoseconds")
	cmd.Flags().StringVar(&fixed, "through", "", "Fixed frame for a time-travel lookup; enables --from-sec/--from-nanosec")
	cmd.Flags().Int32Var(&fromSec, "from-sec", 0, "Source stamp seconds for time-travel lookups")
	cmd.Flags().Uint32Var(&fromNano, "from-nanosec", 0, "Source stamp nanoseconds for time-travel lookups")

	return cmd
}

// dialServer opens a grpc.ClientConn to the --addr flag's target, honoring
// --insecure for local/dev daemons.
func dialServer() (*grpc.ClientConn, error) {
	var creds grpc.DialOption
	if insecure {
		creds = grpc.WithTransportCredentials(grpcinsecure.NewCredentials())
	} else {
		creds = grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12}))
	}
	return grpc.NewClient(serverAddr, creds)
}

// authContext attaches the --auth-token flag as a bearer token, when set.
func authContext(ctx context.Context) context.Context {
	if authToken == "" {
		return ctx
	}
	md := metadata.New(map[string]string{"authorization": "Bearer " + authToken})
	return metadata.NewOutgoingContext(ctx, md)
}
