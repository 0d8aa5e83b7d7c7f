// Package benchmark times scrape runs and samples host resources around them.
package benchmark

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"brewmine/lib/cliutil"
	"brewmine/lib/corpus"
	"brewmine/lib/linker"
	"brewmine/lib/resmon"
	"brewmine/lib/scrapers/coffeereview"
	"brewmine/lib/telemetry"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = telemetry.Tracer("brewmine/benchmark")

type Task struct {
	Name string
	Run  func(ctx context.Context) (coffeereview.Result, error)
}

type Run struct {
	Name     string
	Result   coffeereview.Result
	Duration time.Duration
	Before   resmon.Sample
	After    resmon.Sample
}

// Performance is the mean time spent per scraped article in seconds, 0 when
// nothing was scraped.
func (r Run) Performance() float64 {
	if len(r.Result.Articles) == 0 {
		return 0
	}
	return r.Duration.Seconds() / float64(len(r.Result.Articles))
}

type Report struct {
	Runs []Run
	// Matched is the number of articles the first two runs agree on by title.
	Matched int
}

func sample(ctx context.Context, sampler resmon.Sampler) resmon.Sample {
	s, err := sampler.Sample(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to sample resources", "err", err)
		return resmon.Sample{}
	}
	return s
}

// Measure samples resources, runs the task under a timer and samples again.
func Measure(ctx context.Context, sampler resmon.Sampler, task Task) (Run, error) {
	ctx, span := tracer.Start(ctx, "Measure")
	defer span.End()
	span.SetAttributes(attribute.String("task", task.Name))

	run := Run{Name: task.Name}
	run.Before = sample(ctx, sampler)

	start := time.Now()
	result, err := task.Run(ctx)
	run.Duration = time.Since(start)
	run.Result = result
	if err != nil {
		return run, fmt.Errorf("%s: %w", task.Name, err)
	}

	run.After = sample(ctx, sampler)
	span.SetAttributes(
		attribute.Int("articles", len(result.Articles)),
		attribute.Float64("seconds", run.Duration.Seconds()),
	)
	slog.InfoContext(
		ctx, "benchmark run finished",
		"task", task.Name,
		"articles", len(result.Articles),
		"seconds", run.Duration.Seconds(),
		"success_rate", result.SuccessRate(),
	)
	return run, nil
}

// Compare measures every task in order. Runs measured before a failure are
// returned along with the error.
func Compare(ctx context.Context, sampler resmon.Sampler, tasks []Task) (Report, error) {
	var report Report
	for _, task := range tasks {
		run, err := Measure(ctx, sampler, task)
		if err != nil {
			return report, err
		}
		report.Runs = append(report.Runs, run)
	}
	if len(report.Runs) >= 2 {
		report.Matched = linker.Agreement(
			corpus.Titles(report.Runs[0].Result.Articles),
			corpus.Titles(report.Runs[1].Result.Articles),
			linker.DefaultThreshold,
		)
	}
	return report, nil
}

// Header returns the table header, a blank metric column followed by one
// column per run.
func (r Report) Header() []string {
	header := []string{" "}
	for _, run := range r.Runs {
		header = append(header, run.Name)
	}
	return header
}

func (r Report) Rows() [][]string {
	metrics := []struct {
		name  string
		value func(Run) string
	}{
		{"Articles", func(run Run) string { return strconv.Itoa(len(run.Result.Articles)) }},
		{"Timing(s)", func(run Run) string { return fmt.Sprintf("%.2f", run.Duration.Seconds()) }},
		{"Performance(s/article)", func(run Run) string { return fmt.Sprintf("%.2f", run.Performance()) }},
		{"Success Rate(%)", func(run Run) string { return fmt.Sprintf("%.2f", run.Result.SuccessRate()) }},
		{"CPU Usage(%)", func(run Run) string { return fmt.Sprintf("%.2f", run.After.CPUPercent) }},
		{"RAM Usage(%)", func(run Run) string { return fmt.Sprintf("%.2f", run.After.RAMPercent) }},
	}

	rows := make([][]string, 0, len(metrics)+1)
	for _, m := range metrics {
		row := []string{m.name}
		for _, run := range r.Runs {
			row = append(row, m.value(run))
		}
		rows = append(rows, row)
	}
	if len(r.Runs) >= 2 {
		row := []string{"Matched Articles"}
		for range r.Runs {
			row = append(row, strconv.Itoa(r.Matched))
		}
		rows = append(rows, row)
	}
	return rows
}

func (r Report) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	err := writer.Write(r.Header())
	if err != nil {
		return err
	}
	err = writer.WriteAll(r.Rows())
	if err != nil {
		return err
	}
	return writer.Error()
}

func (r Report) Print(out io.Writer) {
	t := cliutil.NewTable(out)
	t.SetTitle("Comparison Result Report")

	header := table.Row{}
	for _, h := range r.Header() {
		header = append(header, h)
	}
	t.AppendHeader(header)
	for _, row := range r.Rows() {
		tr := table.Row{}
		for _, cell := range row {
			tr = append(tr, cell)
		}
		t.AppendRow(tr)
	}
	t.Render()
}
