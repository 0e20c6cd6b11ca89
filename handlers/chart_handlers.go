package handlers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"stockpile/charts"
	"stockpile/models"
	"stockpile/store"
)

// handleCharts renders a chart of the current inventory to a PNG file.
func (c *CLI) handleCharts(sess *store.Session) {
	fmt.Fprintln(c.out, "\nChart Generator")
	fmt.Fprintln(c.out, "1. Bar Chart: Sales (Count) of all items")
	fmt.Fprintln(c.out, "2. Pie Chart: Sales (Count) distribution")
	fmt.Fprintln(c.out, "3. Bar Chart: Stock of all items")

	var render func([]models.ItemEntry, io.Writer) error
	var slug string
	switch c.readLine("Enter chart option (1-3): ") {
	case "1":
		render, slug = charts.SalesCountBar, "sales-bar"
	case "2":
		render, slug = charts.SalesPie, "sales-pie"
	case "3":
		render, slug = charts.StockBar, "stock-bar"
	default:
		fmt.Fprintln(c.out, "Invalid option.")
		return
	}

	path, err := c.renderChart(sess, render, slug)
	if err != nil {
		c.renderError(err)
		return
	}
	fmt.Fprintf(c.out, "Chart written to %s\n", path)
}

func (c *CLI) renderChart(sess *store.Session, render func([]models.ItemEntry, io.Writer) error, slug string) (string, error) {
	if err := os.MkdirAll(c.cfg.ChartDir, 0o755); err != nil {
		return "", fmt.Errorf("creating chart directory: %w", err)
	}

	name := fmt.Sprintf("%s-%s.png", slug, time.Now().Format("20060102-150405"))
	path := filepath.Join(c.cfg.ChartDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating chart file: %w", err)
	}

	if err := render(sess.List(), f); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing chart file: %w", err)
	}
	return path, nil
}
