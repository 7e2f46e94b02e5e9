// Package grabber extracts a single still image from a compressed video
// track: it selects the frame closest to a requested time, decodes forward
// from the nearest preceding key frame, encodes the target frame and hands
// the encoded bytes to a caller supplied callback.
package grabber

import (
	"errors"
	"fmt"

	"github.com/user/thumbgrab/pkg/codecs"
	"github.com/user/thumbgrab/pkg/media"
	"github.com/user/thumbgrab/pkg/ports"
)

// PaddingSize is the number of zero bytes guaranteed to follow every frame
// handed to the decoder. Some decoders read slightly past the declared frame
// end; the scratch buffer always carries this margin.
const PaddingSize = 64

// WriteFunc receives the encoded still image. It is invoked exactly once per
// successful run.
type WriteFunc func(data []byte) error

// Grabber is the one-shot decode/skip/encode state machine. It is built per
// request by New and driven by repeated Process calls until the thumbnail
// has been delivered. Not safe for concurrent use.
type Grabber struct {
	logger ports.Logger
	write  WriteFunc

	decoder ports.VideoDecoder
	encoder ports.StillEncoder

	// cursor into the truncated frame index
	parts    []*media.FrameListPart
	partIdx  int
	frameIdx int

	skipCount    int
	dts          int64
	pendingFlush int
	firstTime    bool
	frameStarted bool

	scratch    []byte
	scratchPos int

	lastPicture *media.Picture
	done        bool
	closed      bool
}

// New runs frame selection for the requested time (in track time units),
// opens the decoder and encoder for the track and returns a ready grabber.
// The track's frame index is truncated in place. On any setup failure every
// resource acquired so far is released before returning.
//
// A missing decoder for the track's codec, or a missing still encoder, is
// reported as ErrNotSatisfiable.
func New(
	registry *codecs.Registry,
	track *media.Track,
	requestedTime int64,
	encCfg ports.EncoderConfig,
	write WriteFunc,
	logger ports.Logger,
) (*Grabber, error) {
	log := logger.WithComponent("grabber")

	if !registry.CanDecode(track.Media.Codec) {
		log.Debug("no decoder registered for codec %s", string(track.Media.Codec))
		return nil, fmt.Errorf("%w: no decoder for codec %s", ErrNotSatisfiable, track.Media.Codec)
	}
	if !registry.HasEncoder() {
		log.Debug("no still image encoder registered")
		return nil, fmt.Errorf("%w: no still image encoder", ErrNotSatisfiable)
	}

	skip, err := SelectFrame(track, requestedTime)
	if err != nil {
		log.Error("frame selection did not find any frames")
		return nil, err
	}
	log.Debug("selected frame at skip count %d", skip)

	g := &Grabber{
		logger:    log,
		write:     write,
		parts:     track.Frames.Parts,
		skipCount: skip,
		firstTime: true,
	}

	if err := g.setup(registry, track, skip, encCfg); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

func (g *Grabber) setup(registry *codecs.Registry, track *media.Track, skip int, encCfg ports.EncoderConfig) error {
	decoder, err := registry.OpenDecoder(ports.DecoderConfig{
		Codec:     track.Media.Codec,
		CodecTag:  track.Media.CodecTag,
		TimeScale: track.Media.TimeScale,
		Width:     track.Media.Width,
		Height:    track.Media.Height,
		ExtraData: track.Media.ExtraData,
	})
	if err != nil {
		if errors.Is(err, codecs.ErrNoDecoder) {
			return fmt.Errorf("%w: %v", ErrNotSatisfiable, err)
		}
		return fmt.Errorf("open decoder: %w", err)
	}
	g.decoder = decoder

	encCfg.Width = track.Media.Width
	encCfg.Height = track.Media.Height
	encoder, err := registry.OpenEncoder(encCfg)
	if err != nil {
		if errors.Is(err, codecs.ErrNoEncoder) {
			return fmt.Errorf("%w: %v", ErrNotSatisfiable, err)
		}
		return fmt.Errorf("open encoder: %w", err)
	}
	g.encoder = encoder

	g.scratch = make([]byte, int(MaxFrameSize(&track.Frames, skip+1))+PaddingSize)
	return nil
}

// Close releases the decoder and encoder. It is safe to call more than once
// and must be called on every exit path, including abandonment before the
// run finishes.
func (g *Grabber) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true

	var firstErr error
	if g.encoder != nil {
		if err := g.encoder.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if g.decoder != nil {
		if err := g.decoder.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Process drives the state machine: it pulls frame bytes from the index's
// sources, decodes and discards frames until the target frame, then encodes
// it and invokes the delivery callback.
//
// A nil return means the thumbnail was delivered and the run is finished.
// media.ErrAgain means the byte source has no more data yet; the caller
// should invoke Process again once more bytes are available, with all state
// preserved. Any other error is terminal.
func (g *Grabber) Process() error {
	if g.done {
		return nil
	}

	processed := false
	for {
		if !g.frameStarted {
			for g.frameIdx >= len(g.parts[g.partIdx].Frames) {
				g.partIdx++
				g.frameIdx = 0
			}
			part := g.parts[g.partIdx]
			if err := part.Source.StartFrame(&part.Frames[g.frameIdx], media.NoSizeLimit); err != nil {
				return fmt.Errorf("start frame: %w", err)
			}
			g.frameStarted = true
		}

		data, frameDone, err := g.parts[g.partIdx].Source.Read()
		if err != nil {
			if !errors.Is(err, media.ErrAgain) {
				return fmt.Errorf("read frame data: %w", err)
			}
			if !processed && !g.firstTime {
				g.logger.Error("no frame data was handled, probably a truncated file")
				return fmt.Errorf("%w: no data handled, probably a truncated file", ErrBadData)
			}
			g.firstTime = false
			return media.ErrAgain
		}
		processed = true

		if !frameDone {
			if err := g.appendChunk(data); err != nil {
				return err
			}
			continue
		}

		buf, err := g.assembleFrame(data)
		if err != nil {
			return err
		}

		frame := &g.parts[g.partIdx].Frames[g.frameIdx]
		if err := g.decodeFrame(frame, buf); err != nil {
			return err
		}

		if g.skipCount > 0 {
			g.skipCount--
			g.frameIdx++
			g.frameStarted = false
			continue
		}

		if err := g.encodeAndDeliver(); err != nil {
			return err
		}
		g.done = true
		return nil
	}
}

// appendChunk stores a partial chunk of the current frame in the scratch
// buffer at the running fill position.
func (g *Grabber) appendChunk(data []byte) error {
	if g.scratchPos+len(data) > len(g.scratch)-PaddingSize {
		return fmt.Errorf("%w: frame data exceeds declared size", ErrBadData)
	}
	copy(g.scratch[g.scratchPos:], data)
	g.scratchPos += len(data)
	return nil
}

// assembleFrame appends the final chunk and returns the complete frame
// bytes. The frame always lives in the private scratch buffer so the
// trailing padding can be zeroed without touching source owned memory.
func (g *Grabber) assembleFrame(last []byte) ([]byte, error) {
	total := g.scratchPos + len(last)
	if total > len(g.scratch)-PaddingSize {
		return nil, fmt.Errorf("%w: frame data exceeds declared size", ErrBadData)
	}
	copy(g.scratch[g.scratchPos:], last)
	g.scratchPos = 0

	pad := g.scratch[total : total+PaddingSize]
	for i := range pad {
		pad[i] = 0
	}
	return g.scratch[:total], nil
}

// decodeFrame feeds one complete frame to the decoder. A consumed frame that
// yields no picture yet is decoder output latency, not an error; the owed
// picture is drained before encoding.
func (g *Grabber) decodeFrame(frame *media.Frame, buf []byte) error {
	pkt := &media.Packet{
		Data:     buf,
		DTS:      g.dts,
		PTS:      g.dts + frame.PtsDelay,
		Duration: frame.Duration,
		KeyFrame: frame.KeyFrame,
	}
	g.dts += frame.Duration

	pic, err := g.decoder.Decode(pkt)
	if err != nil {
		g.logger.Error("decoding frame failed: %s", err)
		return fmt.Errorf("%w: decode: %v", ErrBadData, err)
	}
	if pic == nil {
		g.pendingFlush++
		return nil
	}
	g.lastPicture = pic
	return nil
}

// flushLatency drains the pictures the decoder still owes by feeding it
// end-of-stream packets, one per pending picture.
func (g *Grabber) flushLatency() error {
	for g.pendingFlush > 0 {
		pic, err := g.decoder.Decode(nil)
		if err != nil {
			g.logger.Error("flushing decoder failed: %s", err)
			return fmt.Errorf("%w: flush: %v", ErrBadData, err)
		}
		if pic == nil {
			g.logger.Error("decoder did not return a frame during flush")
			return fmt.Errorf("%w: decoder owes %d more pictures", ErrUnexpected, g.pendingFlush)
		}
		g.lastPicture = pic
		g.pendingFlush--
	}
	return nil
}

// encodeAndDeliver encodes the target picture and invokes the delivery
// callback exactly once.
func (g *Grabber) encodeAndDeliver() error {
	if g.pendingFlush > 0 {
		if err := g.flushLatency(); err != nil {
			return err
		}
	}

	pkt, err := g.encoder.Encode(g.lastPicture)
	if err != nil {
		g.logger.Error("encoding still image failed: %s", err)
		return fmt.Errorf("%w: encode: %v", ErrUnexpected, err)
	}
	if pkt == nil {
		g.logger.Error("encoder did not return a packet")
		return fmt.Errorf("%w: encoder did not return a packet", ErrUnexpected)
	}

	if err := g.write(pkt.Data); err != nil {
		return fmt.Errorf("deliver thumbnail: %w", err)
	}
	return nil
}
