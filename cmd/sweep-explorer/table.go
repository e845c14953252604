package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/unklstewy/flapsim/pkg/sweep"
)

var tableHeader = []string{"Angle", "CL", "CD", "L/D"}

// fillTable writes one row per sample and highlights the optimal row.
func fillTable(table *tview.Table, res sweep.Result, bestIdx int) {
	table.Clear()

	for col, h := range tableHeader {
		table.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetAlign(tview.AlignRight).
			SetSelectable(false))
	}

	for i, s := range res.Samples {
		color := tcell.ColorWhite
		if i == bestIdx {
			color = tcell.ColorGreen
		}
		values := []string{
			fmt.Sprintf("%6.1f°", s.Angle),
			fmt.Sprintf("%.4f", s.Lift),
			fmt.Sprintf("%.5f", s.Drag),
			fmt.Sprintf("%.2f", s.LiftToDrag),
		}
		for col, v := range values {
			cell := tview.NewTableCell(v).SetTextColor(color).SetAlign(tview.AlignRight)
			if i == bestIdx {
				cell.SetAttributes(tcell.AttrBold)
			}
			table.SetCell(i+1, col, cell)
		}
	}

	table.SetTitle(fmt.Sprintf(" Sweep: %s (%s) ", res.Variant, res.Model))
	if bestIdx >= 0 {
		table.ScrollToBeginning()
		if row := bestIdx + 1; row > 10 {
			table.SetOffset(row-10, 0)
		}
	}
}

// summaryText formats the optimal configuration panel.
func summaryText(res sweep.Result, best sweep.Best) string {
	text := fmt.Sprintf("[yellow]DEVICE:[-] [white]%s[-]\n", res.Variant)
	text += fmt.Sprintf("[gray]Model:[-]     [white]%s[-]  [gray]Re:[-] [white]%.2g[-]\n", res.Model, res.Reynolds)
	text += fmt.Sprintf("[gray]Optimum:[-]   [green]%.1f°[-] [gray](row %d)[-]\n", best.OptimalAngle, best.OptimalIndex)
	text += fmt.Sprintf("[gray]Max L/D:[-]   [white]%.2f[-]\n", best.MaxLiftToDrag)
	text += fmt.Sprintf("[gray]CL / CD:[-]   [white]%.4f / %.5f[-]\n", best.LiftCoefficient, best.DragCoefficient)
	text += fmt.Sprintf("[gray]Samples:[-]   [white]%d[-]\n", len(res.Samples))
	return text
}
