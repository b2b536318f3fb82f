package icongen

import (
	"bytes"
	"context"
	"image"
	"os"
	"time"

	apperrors "github.com/leeforge/appicon/errors"
	"github.com/leeforge/appicon/logging"
	"github.com/leeforge/appicon/media/processor"
	"github.com/leeforge/appicon/media/storage"
	"go.uber.org/zap"
)

// StorageFactory opens the destination for a run, creating it if needed.
type StorageFactory func(dir string) (storage.Provider, error)

func localStorage(dir string) (storage.Provider, error) {
	return storage.NewLocalProvider(dir)
}

// Generator produces every icon of a size table from one source image.
type Generator struct {
	table     SizeTable
	resampler processor.Resampler
	logger    logging.Logger
	reporter  Reporter
	storage   StorageFactory
	manifest  bool
}

type Option func(*Generator)

// WithTable replaces the iOS table. Intended for tests and other icon sets.
func WithTable(table SizeTable) Option {
	return func(g *Generator) { g.table = table }
}

func WithResampler(r processor.Resampler) Option {
	return func(g *Generator) { g.resampler = r }
}

func WithLogger(l logging.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

func WithReporter(r Reporter) Option {
	return func(g *Generator) { g.reporter = r }
}

func WithStorage(f StorageFactory) Option {
	return func(g *Generator) { g.storage = f }
}

// WithManifest writes Contents.json after the icons.
func WithManifest(enabled bool) Option {
	return func(g *Generator) { g.manifest = enabled }
}

// New returns a Generator for IOSAppIcons using Lanczos3, the global
// logger and a console transcript on stdout.
func New(opts ...Option) *Generator {
	g := &Generator{
		table:     IOSAppIcons,
		resampler: processor.LanczosResampler{},
		logger:    logging.Named("icongen"),
		reporter:  NewConsoleReporter(os.Stdout),
		storage:   localStorage,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate writes every icon of the table into outputDir.
//
// The returned error is non-nil only when the run could not proceed: the
// output directory could not be created (errors.ErrDirectory), the source
// could not be decoded (errors.ErrDecode), or ctx was cancelled. Failures of
// individual icons are recorded in the Report and reported through
// Report.Err.
func (g *Generator) Generate(ctx context.Context, inputPath, outputDir string) (*Report, error) {
	log := g.logger.With(zap.String("input", inputPath), zap.String("output", outputDir))

	if err := g.table.Validate(); err != nil {
		return nil, err
	}

	store, err := g.storage(outputDir)
	if err != nil {
		return nil, g.fatal(log, apperrors.NewDirectory(outputDir, err))
	}

	src, err := processor.DecodeFile(inputPath)
	if err != nil {
		return nil, g.fatal(log, apperrors.NewDecode(inputPath, err))
	}
	log.Info("source decoded",
		zap.String("format", src.Format),
		zap.Int("width", src.Width()),
		zap.Int("height", src.Height()),
		zap.String("resampler", g.resampler.Name()),
	)

	report := newReport(outputDir)
	for _, icon := range g.table {
		if err := ctx.Err(); err != nil {
			log.Warn("generation interrupted", zap.Int("done", len(report.Results)))
			return report, err
		}

		res := g.generateOne(ctx, store, src.Image, icon)
		report.add(res)

		itemLog := log.With(zap.String("icon", icon.Name), zap.Int("size", icon.Size), zap.Duration("duration", res.Duration))
		if res.Err != nil {
			itemLog.Error("icon failed", zap.String("error", apperrors.Format(res.Err)))
			g.reporter.Failed(icon, res.Err)
			continue
		}
		itemLog.Debug("icon generated", zap.String("path", res.Path))
		g.reporter.Generated(icon)
	}

	if g.manifest {
		path, err := WriteManifest(ctx, store, report)
		if err != nil {
			log.WithError(err).Error("manifest failed")
			report.errs.Add(apperrors.NewWrite(ManifestName, err))
		} else {
			report.Manifest = path
		}
	}

	log.Info("generation complete", append(
		[]zap.Field{zap.Int("generated", len(report.Generated()))},
		failureFields(report.errs)...,
	)...)
	g.reporter.Complete(report)
	return report, nil
}

func (g *Generator) fatal(log logging.Logger, err *apperrors.AppError) error {
	log.Error("generation aborted", zap.String("error", apperrors.Format(err)))
	g.reporter.Fatal(err)
	return err
}

func (g *Generator) generateOne(ctx context.Context, store storage.Provider, src image.Image, icon Icon) (res Result) {
	start := time.Now()
	res.Icon = icon
	defer func() { res.Duration = time.Since(start) }()

	img, appErr := g.resample(src, icon)
	if appErr != nil {
		res.Err = appErr
		return res
	}

	data, err := processor.EncodePNGBytes(img)
	if err != nil {
		res.Err = apperrors.NewEncode(icon.Name, err)
		return res
	}

	path, err := store.Put(ctx, icon.Name, bytes.NewReader(data))
	if err != nil {
		res.Err = apperrors.NewWrite(icon.Name, err)
		return res
	}

	res.Path = path
	return res
}

// resample works on a private clone of src. A resampler panic becomes a
// resample error carrying the stack of the panic.
func (g *Generator) resample(src image.Image, icon Icon) (out image.Image, appErr *apperrors.AppError) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			appErr = apperrors.NewResample(icon.Name, icon.Size, apperrors.Recover(r)).WithStack()
		}
	}()
	img, err := g.resampler.Resample(processor.Clone(src), icon.Size, icon.Size)
	if err != nil {
		return nil, apperrors.NewResample(icon.Name, icon.Size, err)
	}
	return img, nil
}

// failureFields counts failures in total and per kind.
func failureFields(errs *apperrors.ErrorChain) []zap.Field {
	fields := []zap.Field{zap.Int("failed", errs.Len())}
	for _, kind := range []apperrors.ErrorType{
		apperrors.ErrorTypeResample,
		apperrors.ErrorTypeEncode,
		apperrors.ErrorTypeWrite,
	} {
		if errs.HasType(kind) {
			fields = append(fields, zap.Int("failed_"+string(kind), errs.Filter(kind).Len()))
		}
	}
	return fields
}
