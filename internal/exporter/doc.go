// Package exporter writes contextualized records to CSV.
//
// CSVWriter is the low-level writer: a header row, positional records and an
// optional UTF-8 BOM for Excel. ContextExporter names the output file after the
// input ("run1.csv" becomes "Contextualized_run1.csv" in the same directory)
// and wraps every failure in a WRITE AppError.
//
//	exp := exporter.NewContextExporter(cfg.Export, logger)
//	path, err := exp.Export(ctx, records, "/data/run1.csv")
package exporter
