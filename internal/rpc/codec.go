// internal/rpc/codec.go
// Wire payloads for the transform RPC service, JSON-encoded and carried
// inside google.golang.org/protobuf/types/known/wrapperspb messages (see
// service.go for why: the corpus's protoc-generated message types were not
// available to regenerate, so wrapperspb.BytesValue/StringValue stand in as
// the envelope while still exercising real grpc + protobuf machinery).
package rpc

import (
	"encoding/json"
	"fmt"

	"github.com/smilerobotics/tf2-go/pkg/tf2"
)

// wireTransform is the JSON shape of one pkg/tf2.StampedTransform.
type wireTransform struct {
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

func toWire(s tf2.StampedTransform) wireTransform {
	return wireTransform{
		ParentFrameID: s.ParentFrameID,
		ChildFrameID:  s.ChildFrameID,
		Sec:           s.Stamp.Sec,
		Nanosec:       s.Stamp.Nanosec,
		TX:            s.Transform.Translation.X,
		TY:            s.Transform.Translation.Y,
		TZ:            s.Transform.Translation.Z,
		RX:            s.Transform.Rotation.X,
		RY:            s.Transform.Rotation.Y,
		RZ:            s.Transform.Rotation.Z,
		RW:            s.Transform.Rotation.W,
	}
}

func (w wireTransform) toStamped() tf2.StampedTransform {
	return tf2.StampedTransform{
		ParentFrameID: w.ParentFrameID,
		ChildFrameID:  w.ChildFrameID,
		Stamp:         tf2.Time{Sec: w.Sec, Nanosec: w.Nanosec},
		Transform: tf2.Transform{
			Translation: tf2.Vector3{X: w.TX, Y: w.TY, Z: w.TZ},
			Rotation:    tf2.Quaternion{X: w.RX, Y: w.RY, Z: w.RZ, W: w.RW},
		},
	}
}

// ingestBatch is one Ingest() payload: a batch of samples plus the channel
// they belong to.
type ingestBatch struct {
	Static     bool            `json:"static"`
	Transforms []wireTransform `json:"transforms"`
}

// EncodeBatch serializes a batch for transmission as a BytesValue payload.
func EncodeBatch(batch []tf2.StampedTransform, static bool) ([]byte, error) {
	wire := ingestBatch{Static: static, Transforms: make([]wireTransform, len(batch))}
	for i, s := range batch {
		wire.Transforms[i] = toWire(s)
	}
	return json.Marshal(wire)
}

// DecodeBatch is the inverse of EncodeBatch.
func DecodeBatch(data []byte) (batch []tf2.StampedTransform, static bool, err error) {
	var wire ingestBatch
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, false, fmt.Errorf("rpc: decode batch: %w", err)
	}
	batch = make([]tf2.StampedTransform, len(wire.Transforms))
	for i, w := range wire.Transforms {
		batch[i] = w.toStamped()
	}
	return batch, wire.Static, nil
}

// lookupRequest is the JSON payload of a unary Lookup call.
type lookupRequest struct {
	From       string             `json:"from"`
	To         string             `json:"to"`
	Sec        int32              `json:"sec"`
	Nanosec    uint32             `json:"nanosec"`
	TimeTravel *timeTravelRequest `json:"time_travel,omitempty"`
}

// timeTravelRequest carries the extra fields LookupTransformWithTimeTravel
// needs; its presence on lookupRequest switches the server to that code path.
type timeTravelRequest struct {
	FromSec     int32  `json:"from_sec"`
	FromNanosec uint32 `json:"from_nanosec"`
	Fixed       string `json:"fixed"`
}

// EncodeLookupRequest serializes a plain (from, to, t) lookup.
func EncodeLookupRequest(from, to string, t tf2.Time) ([]byte, error) {
	return json.Marshal(lookupRequest{From: from, To: to, Sec: t.Sec, Nanosec: t.Nanosec})
}

// EncodeTimeTravelRequest serializes a LookupTransformWithTimeTravel request.
func EncodeTimeTravelRequest(to string, time2 tf2.Time, from string, time1 tf2.Time, fixed string) ([]byte, error) {
	return json.Marshal(lookupRequest{
		From: from, To: to, Sec: time2.Sec, Nanosec: time2.Nanosec,
		TimeTravel: &timeTravelRequest{FromSec: time1.Sec, FromNanosec: time1.Nanosec, Fixed: fixed},
	})
}

func decodeLookupRequest(data []byte) (lookupRequest, error) {
	var req lookupRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return lookupRequest{}, fmt.Errorf("rpc: decode lookup request: %w", err)
	}
	return req, nil
}

// lookupResponse is the JSON payload of a successful Lookup reply. Errors are
// instead surfaced as gRPC status errors (see service.go), since the typed
// pkg/tf2 lookup errors map cleanly onto gRPC codes.
type lookupResponse struct {
	Transform wireTransform `json:"transform"`
}

func encodeLookupResponse(s tf2.StampedTransform) ([]byte, error) {
	return json.Marshal(lookupResponse{Transform: toWire(s)})
}

// DecodeLookupResponse is the inverse of encodeLookupResponse, used by the
// client after a successful call.
func DecodeLookupResponse(data []byte) (tf2.StampedTransform, error) {
	var resp lookupResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return tf2.StampedTransform{}, fmt.Errorf("rpc: decode lookup response: %w", err)
	}
	return resp.Transform.toStamped(), nil
}
