package charts

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"stockpile/models"
)

// SalesCountBar renders a bar chart of lifetime units sold per item.
func SalesCountBar(entries []models.ItemEntry, w io.Writer) error {
	bars := make([]chart.Value, 0, len(entries))
	for _, e := range entries {
		bars = append(bars, chart.Value{Label: e.Name, Value: float64(e.Item.SalesCount)})
	}
	return renderBars("Sales (Count) of all items", bars, w)
}

// StockBar renders a bar chart of current stock levels per item.
func StockBar(entries []models.ItemEntry, w io.Writer) error {
	bars := make([]chart.Value, 0, len(entries))
	for _, e := range entries {
		bars = append(bars, chart.Value{Label: e.Name, Value: float64(e.Item.Count)})
	}
	return renderBars("Stock of all items", bars, w)
}

// SalesPie renders the share of total units sold per item. Fails when nothing
// has been sold yet, since a pie of zeroes has no slices.
func SalesPie(entries []models.ItemEntry, w io.Writer) error {
	values := make([]chart.Value, 0, len(entries))
	total := 0
	for _, e := range entries {
		if e.Item.SalesCount == 0 {
			continue
		}
		total += e.Item.SalesCount
		values = append(values, chart.Value{Label: e.Name, Value: float64(e.Item.SalesCount)})
	}
	if total == 0 {
		return fmt.Errorf("no sales recorded yet")
	}

	pie := chart.PieChart{
		Title:  "Sales (Count) distribution",
		Width:  800,
		Height: 800,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}

func renderBars(title string, bars []chart.Value, w io.Writer) error {
	if len(bars) == 0 {
		return fmt.Errorf("inventory is empty")
	}
	graph := chart.BarChart{
		Title:    title,
		Width:    max(80*len(bars), 400),
		Height:   512,
		BarWidth: 50,
		Bars:     bars,
	}
	return graph.Render(chart.PNG, w)
}
