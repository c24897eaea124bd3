package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/doctext/doctext/docstring"
	"github.com/doctext/doctext/internal/extract"
)

// Worker processes a single conversion job.
type Worker struct {
	pool        *docstring.Pool
	log         *slog.Logger
	pdfFallback bool
}

func NewWorker(pool *docstring.Pool, log *slog.Logger, pdfFallback bool) *Worker {
	return &Worker{
		pool:        pool,
		log:         log,
		pdfFallback: pdfFallback,
	}
}

// Process runs extract and convert for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "canceled")
		return
	}

	// Phase 1: Extract
	job.SetStatus(StatusExtracting, "extracting")
	ex, err := extract.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	if pdfEx, ok := ex.(*extract.PDFExtractor); ok {
		pdfEx.FallbackPdftotext = w.pdfFallback
	}

	text, err := ex.Extract(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("extract failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	// Phase 2: Convert
	job.SetStatus(StatusConverting, "converting")
	conv, err := w.pool.Get(job.Options())
	if err != nil {
		// Options are validated at submission; reaching this is a defect
		// upstream, but the job still fails cleanly.
		log.Error("invalid options", "error", err)
		job.AddError(fmt.Sprintf("options: %s", err))
		job.SetStatus(StatusFailed, "converting")
		return
	}

	job.SetResult(conv.Convert(text))
	job.SetStatus(StatusCompleted, "done")
	log.Info("conversion complete", "input_bytes", len(text))
}
