package messages

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"tubescript/internal/logging"
)

const (
	// MaxOutboundMessage is Chrome's limit for messages sent by a native host.
	MaxOutboundMessage = 1 << 20
	// MaxInboundMessage bounds messages accepted from the browser.
	MaxInboundMessage = 64 << 20

	defaultConcurrency = 4
)

// ErrMessageTooLarge reports a frame that exceeds the size limit.
var ErrMessageTooLarge = errors.New("native message too large")

// ReadMessage reads one length-prefixed frame: a 4-byte little-endian length
// followed by that many bytes of UTF-8 JSON. io.EOF is returned only when
// the stream ends cleanly between frames.
func ReadMessage(r io.Reader) ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("read message length: %w", err)
		}
		return nil, err
	}
	size := binary.LittleEndian.Uint32(header[:])
	if size > MaxInboundMessage {
		return nil, fmt.Errorf("%w: %d bytes", ErrMessageTooLarge, size)
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read message body: %w", err)
	}
	return payload, nil
}

// WriteMessage writes payload as one frame. Payloads over
// MaxOutboundMessage are refused.
func WriteMessage(w io.Writer, payload []byte) error {
	if len(payload) > MaxOutboundMessage {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrMessageTooLarge, len(payload), MaxOutboundMessage)
	}
	frame := make([]byte, 4+len(payload))
	binary.LittleEndian.PutUint32(frame, uint32(len(payload)))
	copy(frame[4:], payload)
	_, err := w.Write(frame)
	return err
}

// Host serves requests arriving on a native messaging stream.
type Host struct {
	handler     *Handler
	in          io.Reader
	out         io.Writer
	logger      *slog.Logger
	concurrency int

	writeMu sync.Mutex
}

// NewHost reads frames from in and writes responses to out. Up to four
// requests are handled concurrently; responses carry the request's
// requestId for matching.
func NewHost(handler *Handler, in io.Reader, out io.Writer, logger *slog.Logger) *Host {
	return &Host{
		handler:     handler,
		in:          in,
		out:         out,
		logger:      logging.NewComponentLogger(logger, "native-host"),
		concurrency: defaultConcurrency,
	}
}

// Serve handles frames until the input closes or ctx is cancelled. A clean
// end of input returns nil.
func (h *Host) Serve(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(h.concurrency)

	frames := make(chan []byte)
	errs := make(chan error, 1)
	go func() {
		defer close(frames)
		for {
			payload, err := ReadMessage(h.in)
			if err != nil {
				errs <- err
				return
			}
			select {
			case frames <- payload:
			case <-ctx.Done():
				errs <- nil
				return
			}
		}
	}()

	h.logger.Info("native host ready")
	var readErr error
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case payload, ok := <-frames:
			if !ok {
				readErr = <-errs
				break loop
			}
			group.Go(func() error {
				return h.respond(h.handler.HandleJSON(ctx, payload))
			})
		}
	}

	if err := group.Wait(); err != nil {
		return err
	}
	if readErr == nil || errors.Is(readErr, io.EOF) {
		h.logger.Info("native host stopped")
		return nil
	}
	return readErr
}

func (h *Host) respond(resp Response) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	if len(payload) > MaxOutboundMessage {
		h.logger.Warn("response exceeds native messaging limit",
			logging.Int("bytes", len(payload)),
			logging.String("video_id", resp.VideoID),
			logging.String(logging.FieldErrorHint, "use the HTTP API or CLI for very long transcripts"))
		fallback := Failure(fmt.Sprintf("transcript too large for native messaging (%d bytes)", len(payload)))
		fallback.VideoID = resp.VideoID
		fallback.RequestID = resp.RequestID
		if payload, err = json.Marshal(fallback); err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	if err := WriteMessage(h.out, payload); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}
