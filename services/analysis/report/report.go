// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package report renders analysis results for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/dynalyze/services/analysis/collector"
	"github.com/AleutianAI/dynalyze/services/analysis/execindex"
	"github.com/AleutianAI/dynalyze/services/analysis/heisenbug"
	"github.com/AleutianAI/dynalyze/services/analysis/slicer"
	"github.com/AleutianAI/dynalyze/services/analysis/spectrum"
)

var (
	colorAccent  = lipgloss.Color("#2CD7C7")
	colorPrimary = lipgloss.Color("#20B9B4")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#2C4A54")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle = lipgloss.NewStyle().Foreground(colorPrimary)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	goodStyle   = lipgloss.NewStyle().Foreground(colorAccent)
	warnStyle   = lipgloss.NewStyle().Foreground(colorWarning)
	badStyle    = lipgloss.NewStyle().Foreground(colorError)
	topStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorError)
)

// SectionHeader renders a titled divider line.
func SectionHeader(title string) string {
	rule := mutedStyle.Render(strings.Repeat("─", 72))
	return fmt.Sprintf("%s\n%s\n%s", rule, titleStyle.Render(title), rule)
}

// TraceListing renders a trace log event by event: sequence, kind,
// execution index, and the inferred read and write sets.
func TraceListing(log *collector.TraceLog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n",
		headerStyle.Render("trace of"),
		titleStyle.Render(log.Routine()))
	fmt.Fprintf(&b, "%s\n", mutedStyle.Render("run "+log.RunID()))

	for _, ev := range log.Events() {
		switch ev.Kind {
		case collector.KindEnter:
			fmt.Fprintf(&b, "%4d  %s %s\n", ev.Seq,
				mutedStyle.Render("enter"), ev.Location.Routine)
		case collector.KindExit:
			fmt.Fprintf(&b, "%4d  %s %s\n", ev.Seq,
				mutedStyle.Render("exit "), ev.Location.Routine)
		case collector.KindStatement:
			line := fmt.Sprintf("%4d  %-28s", ev.Seq, ev.Index.String())
			if len(ev.ReadSet) > 0 {
				line += " " + headerStyle.Render("reads "+strings.Join(ev.ReadSet, ","))
			}
			if len(ev.WriteSet) > 0 {
				line += " " + warnStyle.Render("writes "+strings.Join(ev.WriteSet, ","))
			}
			b.WriteString(line + "\n")
		}
	}
	fmt.Fprintf(&b, "%s\n", mutedStyle.Render(fmt.Sprintf("%d events", log.Len())))
	return b.String()
}

// IndexedListing renders assigned execution points with their index
// statistics.
func IndexedListing(points []execindex.ExecutionIndex, stats execindex.Stats) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("execution points") + "\n")
	for i, p := range points {
		fmt.Fprintf(&b, "%4d  %s\n", i+1, p.String())
	}
	fmt.Fprintf(&b, "%s\n", mutedStyle.Render(fmt.Sprintf(
		"%d points, %d contexts, %d statements, max instance %d",
		stats.TotalPoints, stats.UniqueContexts, stats.UniqueStatements, stats.MaxInstance)))
	return b.String()
}

// SliceReport renders a backward slice: the criterion, the relevant
// lines, and the dependence edges that pulled each line in.
func SliceReport(res *slicer.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n",
		headerStyle.Render("backward slice of"),
		titleStyle.Render(fmt.Sprintf("%s@%s", res.Criterion.Variable, res.Criterion.Location)))

	b.WriteString(headerStyle.Render("relevant lines") + "\n")
	for _, loc := range res.RelevantLines {
		fmt.Fprintf(&b, "  %s %s\n", goodStyle.Render("•"), loc)
	}

	if len(res.DataDeps) > 0 {
		b.WriteString(headerStyle.Render("data dependences") + "\n")
		for _, e := range res.DataDeps {
			fmt.Fprintf(&b, "  %s flows to %s\n", e.Source, e.Sink)
		}
	}
	if len(res.ControlDeps) > 0 {
		b.WriteString(headerStyle.Render("control dependences") + "\n")
		for _, e := range res.ControlDeps {
			fmt.Fprintf(&b, "  %s guards %s\n", e.Source, e.Sink)
		}
	}
	return b.String()
}

// RankingTable renders a suspiciousness ranking, highlighting the top
// entry. Only the first topN rows are shown; non-positive topN shows
// everything.
func RankingTable(formula spectrum.Formula, rankings []spectrum.Ranking, topN int) string {
	if topN <= 0 || topN > len(rankings) {
		topN = len(rankings)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n",
		headerStyle.Render("suspiciousness ranking,"),
		titleStyle.Render(formula.String()))
	fmt.Fprintf(&b, "%s\n", mutedStyle.Render(
		fmt.Sprintf("%-4s %-20s %-8s %s", "rank", "location", "score", "evidence")))

	for i := 0; i < topN; i++ {
		r := rankings[i]
		row := fmt.Sprintf("%-4d %-20s %-8.3f failed %d, passed %d",
			i+1, r.Location.String(), r.Score, r.Failed, r.Passed)
		if i == 0 {
			b.WriteString(topStyle.Render(row) + "\n")
		} else {
			b.WriteString(row + "\n")
		}
	}
	return b.String()
}

// TrialSummary renders one heisenbug trial with its transaction log.
func TrialSummary(res *heisenbug.TrialResult) string {
	var b strings.Builder
	verdict := goodStyle.Render(fmt.Sprintf("correct, balance %d", res.FinalBalance))
	if res.Anomaly {
		verdict = badStyle.Render(fmt.Sprintf(
			"anomaly, balance %d but expected %d, lost %d", res.FinalBalance, res.Expected, res.Lost))
	}
	b.WriteString(verdict + "\n")
	for _, t := range res.Transactions {
		fmt.Fprintf(&b, "  %s\n", t)
	}
	return b.String()
}

// BatchSummary renders one scenario's aggregate anomaly rate.
func BatchSummary(label string, batch *heisenbug.BatchResult) string {
	rate := fmt.Sprintf("%d/%d trials anomalous (%.0f%%)",
		batch.Anomalies, len(batch.Trials), batch.Rate*100)
	style := goodStyle
	if batch.Anomalies > 0 {
		style = badStyle
	}
	return fmt.Sprintf("%s %s", headerStyle.Render(label+":"), style.Render(rate))
}
