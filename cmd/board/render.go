package main

import (
	"fmt"
	"io"
	"itemtracker/internal/countdown"
	"itemtracker/internal/dto"
	"itemtracker/internal/lifecycle"
	"strings"
	"text/tabwriter"
	"time"
)

func cell(d countdown.Display) string {
	label := d.Label
	if d.Date != "" {
		label += " (" + d.Date + ")"
	}
	if d.Urgent {
		label = "! " + label
	}
	return label
}

func render(w io.Writer, board *dto.Board, now time.Time) error {
	fmt.Fprintf(w, "Board for %s: %d items\n", now.Format("02-01-2006"), board.Total)

	counts := make([]string, 0, len(lifecycle.Stages))
	for _, stage := range lifecycle.Stages {
		if n := board.Stages[stage]; n > 0 {
			counts = append(counts, fmt.Sprintf("%s=%d", stage, n))
		}
	}
	if len(counts) > 0 {
		fmt.Fprintln(w, strings.Join(counts, " "))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "S.No.\tStage\tProduct\tCode\tPlatform\tReview Window\tReturn Closes")
	for _, row := range board.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.SerialNumber,
			row.Stage,
			row.Item.ProductName,
			row.Item.ProductCode,
			row.Item.Platform,
			cell(row.OrderAge),
			cell(row.ReturnClosing),
		)
	}
	return tw.Flush()
}
