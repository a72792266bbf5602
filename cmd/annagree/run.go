package main

import (
	"fmt"

	"github.com/gosuri/uiprogress"

	"github.com/plandok/annagree/corpus"
	"github.com/plandok/annagree/pipeline"
	"github.com/plandok/annagree/storage"
	"github.com/plandok/annagree/storage/sqlite/zombiezen"
)

func reportCommand(opts RunOptions, paths []string, ui UI) error {

	var report storage.ReportWriter
	if opts.DBPath != "" {
		pool, err := zombiezen.NewPool(opts.DBPath)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := zombiezen.CreateSchemas(pool, "report.sql"); err != nil {
			return fmt.Errorf("failed to create report tables: %w", err)
		}
		report = zombiezen.NewReportHandler(pool)
	}

	// The bar replaces the per-file log line.
	corpus.SetLogger(nil)

	uiprogress.Start()
	bar := uiprogress.AddBar(len(paths))
	bar.AppendCompleted()
	bar.PrependElapsed()

	var currentName string
	bar.AppendFunc(func(b *uiprogress.Bar) string {
		return currentName
	})

	err := pipeline.Run(pipeline.Options{
		Paths:     paths,
		OutPath:   opts.OutPath,
		Report:    report,
		KeepEmpty: opts.KeepEmpty,
		Config:    corpus.DefaultConfig(),
		Progress: func(current, total int, name string) {
			currentName = name
			bar.Incr()
			if current == total {
				uiprogress.Stop()
			}
		},
	}, ui.Out)
	if err != nil {
		uiprogress.Stop()
		return err
	}

	fmt.Fprintf(ui.Out, "Annotation table written to %s\n", opts.OutPath)
	return nil
}
