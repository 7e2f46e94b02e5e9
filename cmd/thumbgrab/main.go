// Package main provides the CLI entry point for thumbgrab.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/user/thumbgrab/pkg/adapters/jpegencoder"
	"github.com/user/thumbgrab/pkg/adapters/logger"
	"github.com/user/thumbgrab/pkg/adapters/mjpegdecoder"
	"github.com/user/thumbgrab/pkg/adapters/mp4source"
	"github.com/user/thumbgrab/pkg/adapters/webpencoder"
	"github.com/user/thumbgrab/pkg/codecs"
	"github.com/user/thumbgrab/pkg/config"
	"github.com/user/thumbgrab/pkg/grabber"
	"github.com/user/thumbgrab/pkg/media"
	"github.com/user/thumbgrab/pkg/ports"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "thumbgrab",
		Usage:   "extract a still image thumbnail from a video file",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "input MP4 file"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: "output image file"},
			&cli.Float64Flag{Name: "time", Aliases: []string{"t"}, Usage: "requested time in seconds"},
			&cli.StringFlag{Name: "format", Usage: "output format: jpeg or webp"},
			&cli.IntFlag{Name: "quality", Aliases: []string{"q"}, Usage: "output quality (1-100)"},
			&cli.IntFlag{Name: "max-width", Usage: "bound output width, preserving aspect ratio"},
			&cli.IntFlag{Name: "max-height", Usage: "bound output height, preserving aspect ratio"},
			&cli.IntFlag{Name: "chunk-size", Usage: "bytes per frame source read (0 = whole frame)"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn, error or quiet"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration file"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.LoadFromFile(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("quality") {
		cfg.Quality = c.Int("quality")
	}
	if c.IsSet("max-width") {
		cfg.MaxWidth = c.Int("max-width")
	}
	if c.IsSet("max-height") {
		cfg.MaxHeight = c.Int("max-height")
	}
	if c.IsSet("chunk-size") {
		cfg.ChunkSize = c.Int("chunk-size")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))

	input := c.String("input")
	src, err := mp4source.Open(input, mp4source.Options{ChunkSize: cfg.ChunkSize})
	if err != nil {
		return err
	}
	defer src.Close()

	track := src.Track()
	log.Info("Video track: %s %dx%d, timescale %d",
		string(track.Media.Codec), track.Media.Width, track.Media.Height, track.Media.TimeScale)

	seconds := c.Float64("time")
	requested := int64(seconds * float64(track.Media.TimeScale))

	registry := codecs.NewRegistry(map[media.Codec]codecs.DecoderFactory{
		media.CodecMJPEG: mjpegdecoder.Factory,
	}, encoderFactory(cfg.Format))

	outPath := c.String("output")
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	written := 0
	write := func(data []byte) error {
		n, err := out.Write(data)
		written = n
		return err
	}

	log.Info("Grabbing thumbnail from %s at %.3fs...", input, seconds)

	g, err := grabber.New(registry, track, requested, ports.EncoderConfig{
		Quality:   cfg.Quality,
		MaxWidth:  cfg.MaxWidth,
		MaxHeight: cfg.MaxHeight,
	}, write, log)
	if err != nil {
		return err
	}
	defer g.Close()

	for {
		err := g.Process()
		if err == nil {
			break
		}
		if errors.Is(err, media.ErrAgain) {
			// file backed sources always have data; a suspension here
			// means the index points past the end of the file
			return fmt.Errorf("frame source suspended on file input")
		}
		return err
	}

	log.Info("Thumbnail saved to %s (%d bytes)", outPath, written)
	return nil
}

func encoderFactory(format string) codecs.EncoderFactory {
	if format == "webp" {
		return webpencoder.Factory
	}
	return jpegencoder.Factory
}
