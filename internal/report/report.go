package report

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"framesift/internal/sampler"
	"framesift/internal/scan"
	"framesift/internal/segmenter"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// SegmentTable renders the accepted segments as a terminal table.
func SegmentTable(segments []segmenter.VideoSegment) string {
	headers := []string{"Clip", "Frames", "Start", "End", "Duration", "Avg Similarity"}
	rows := make([][]string, 0, len(segments))
	for i, seg := range segments {
		rows = append(rows, []string{
			fmt.Sprintf("clip_%04d.mp4", i+1),
			fmt.Sprintf("%d–%d", seg.StartFrame, seg.EndFrame),
			fmt.Sprintf("%.2fs", seg.StartTime),
			fmt.Sprintf("%.2fs", seg.EndTime),
			fmt.Sprintf("%.2fs", seg.Duration),
			fmt.Sprintf("%.4f", seg.AvgSimilarity),
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight})
}

// SampleSummaryTable renders per-reason sample counts.
func SampleSummaryTable(records []sampler.SampleRecord) string {
	counts := map[scan.Reason]int{}
	for _, rec := range records {
		counts[rec.Reason]++
	}
	headers := []string{"Reason", "Samples"}
	rows := make([][]string, 0, 4)
	for _, reason := range []scan.Reason{scan.ReasonInitial, scan.ReasonSceneChange, scan.ReasonSignificantChange, scan.ReasonInterval} {
		if counts[reason] == 0 {
			continue
		}
		rows = append(rows, []string{string(reason), fmt.Sprintf("%d", counts[reason])})
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignRight})
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if isatty.IsTerminal(os.Stdout.Fd()) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
