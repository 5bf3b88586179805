package main

import (
	"fmt"
	"io"
	"time"

	"github.com/agenthands/agentflow/internal/history"
)

func printRecord(w io.Writer, rec history.Record) {
	fmt.Fprintf(w, "[%s] %s", rec.Mode, time.UnixMilli(rec.Timestamp).Format(time.DateTime))
	if rec.Confidence != nil {
		fmt.Fprintf(w, "  confidence %d%%", *rec.Confidence)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, rec.Output)
}
