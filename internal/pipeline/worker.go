package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chemdoc/figref/internal/docast"
	"github.com/chemdoc/figref/internal/figure"
	"github.com/chemdoc/figref/internal/importer"
	"github.com/chemdoc/figref/internal/render"
)

// Worker processes a single conversion job.
type Worker struct {
	jobs          *JobStore
	stats         *RunStats
	log           *slog.Logger
	defaultTarget figure.Target
	importerCfg   importer.Config
}

func NewWorker(jobs *JobStore, stats *RunStats, log *slog.Logger, defaultTarget figure.Target, impCfg importer.Config) *Worker {
	return &Worker{
		jobs:          jobs,
		stats:         stats,
		log:           log,
		defaultTarget: defaultTarget,
		importerCfg:   impCfg,
	}
}

// Process runs the full conversion pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	start := time.Now()

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "canceled")
		return
	}

	// Phase 1: Import to markdown source.
	job.SetStatus(StatusImporting, "importing")
	imp, err := importer.ForFile(job.Filename, w.importerCfg)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "importing")
		return
	}
	source, err := imp.Import(bytes.NewReader(job.fileData), job.Filename)
	if err != nil {
		log.Error("import failed", "error", err)
		job.AddError(fmt.Sprintf("import: %s", err))
		job.SetStatus(StatusFailed, "importing")
		return
	}

	// Settle the output target before hashing so duplicate detection can
	// match on content+target.
	meta, body, err := docast.SplitFrontmatter(source)
	if err != nil {
		log.Error("frontmatter parse failed", "error", err)
		job.AddError(fmt.Sprintf("frontmatter: %s", err))
		job.SetStatus(StatusFailed, "importing")
		return
	}
	target, err := ResolveTarget(job.requestedTarget, meta.Target, w.defaultTarget)
	if err != nil {
		log.Error("invalid target", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "importing")
		return
	}
	job.SetTarget(target)
	hash := ContentHashHex(source)
	job.SetContentHash(hash)

	// Dedup: the same document already converted to the same target.
	if prior := w.jobs.FindByHash(hash, target); prior != nil && prior.ID != job.ID {
		log.Info("duplicate document, skipping", "duplicate_of", prior.ID)
		job.SetDuplicateOf(prior.ID)
		job.SetStatus(StatusDupSkipped, "dedup")
		return
	}

	// Phase 2: Parse.
	job.SetStatus(StatusParsing, "parsing")
	doc := docast.Parse(body)

	// Phase 3: Number figures and resolve references.
	job.SetStatus(StatusNumbering, "numbering")
	reg, report := figure.Process(doc, body, figure.Options{
		Target:  target,
		Formats: figure.ResolveFormats(meta.Labels),
		Log:     log,
	})
	job.SetFigures(reg.Entries())
	job.SetReport(report)
	log.Info("figures numbered",
		"figures", report.Figures,
		"refs_resolved", report.RefsResolved,
		"refs_unresolved", report.RefsUnresolved,
		"label_conflicts", report.LabelConflicts)

	// Phase 4: Render.
	job.SetStatus(StatusRendering, "rendering")
	var buf bytes.Buffer
	if err := render.Document(&buf, doc, body, target); err != nil {
		log.Error("render failed", "error", err)
		job.AddError(fmt.Sprintf("render: %s", err))
		job.SetStatus(StatusFailed, "rendering")
		return
	}
	job.SetResult(buf.Bytes(), render.ContentType(target))

	job.SetStatus(StatusCompleted, "done")
	w.stats.Record(time.Since(start).Milliseconds())
	w.stats.Tally(report)
	log.Info("conversion complete", "target", target, "bytes", buf.Len())
}
