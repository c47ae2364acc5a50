package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/youruser/markx-images/internal/compose"
	imagepkg "github.com/youruser/markx-images/internal/image"
	"github.com/youruser/markx-images/internal/storage"
)

type CommonParams struct {
	Name    string        `help:"Base name of the stored images" required:""`
	Out     string        `help:"Destination folder for the JPEG files" default:"."`
	Font    string        `help:"TTF/OTF font file; the embedded Go Bold font is used when empty" type:"existingfile"`
	Quality int           `help:"JPEG quality" default:"90"`
	Timeout time.Duration `help:"Timeout for downloading each source image" default:"10s"`
	Seed    int64         `help:"Seed of the rotation jitter; 0 picks one from the clock"`
}

type cli struct {
	Verbose bool `help:"Log debug messages" short:"v"`

	Merge struct {
		CommonParams
		Sources []string `arg:"" help:"Image URLs or files, in grid order"`
	} `cmd:"" help:"Label images with their index and tile them into one grid"`

	Caption struct {
		CommonParams
		Source string `arg:"" help:"Image URL or file"`
		Text   string `arg:"" help:"Caption text"`
	} `cmd:"" help:"Write a wrapped caption over an image"`
}

func (c *cli) params(kctx *kong.Context) *CommonParams {
	if kctx.Selected().Name == "caption" {
		return &c.Caption.CommonParams
	}
	return &c.Merge.CommonParams
}

func (c *cli) Validate(kctx *kong.Context) error {
	p := c.params(kctx)
	if p.Quality < 1 || p.Quality > 100 {
		return fmt.Errorf("invalid quality %d: must be within 1..100", p.Quality)
	}
	out, err := filepath.Abs(p.Out)
	if err != nil {
		return fmt.Errorf("invalid output path %q: %w", p.Out, err)
	}
	p.Out = out
	return nil
}

func main() {
	var args cli
	kctx := kong.Parse(&args,
		kong.Name("imgcomp"),
		kong.Description("Compose labeled image grids and captions."),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if args.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	p := args.params(kctx)
	svc, err := newService(p, logger)
	kctx.FatalIfErrorf(err)

	ctx := context.Background()
	var url string
	switch kctx.Selected().Name {
	case "merge":
		url, err = svc.MergeMany(ctx, p.Name, args.Merge.Sources)
	case "caption":
		url, err = svc.LabelSingle(ctx, p.Name, args.Caption.Source, args.Caption.Text)
	default:
		err = fmt.Errorf("unsupported command %q", kctx.Selected().Name)
	}
	kctx.FatalIfErrorf(err)
	fmt.Println(url)
}

func newService(p *CommonParams, logger *slog.Logger) (*compose.Service, error) {
	sink, err := storage.NewLocalSink(p.Out, "")
	if err != nil {
		return nil, fmt.Errorf("unable to create output folder %q: %w", p.Out, err)
	}

	fonts := imagepkg.NewFontRegistry(p.Font, "")
	if err := fonts.EnsureLoaded(); err != nil {
		return nil, err
	}

	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &compose.Service{
		Source:      imagepkg.AutoSource{HTTP: imagepkg.NewHTTPSource(p.Timeout, imagepkg.DefaultMaxImageBytes)},
		Sink:        sink,
		Renderer:    imagepkg.NewRenderer(fonts, imagepkg.NewRandomJitter(seed)),
		Logger:      logger,
		JPEGQuality: p.Quality,
	}, nil
}
