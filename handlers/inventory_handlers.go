package handlers

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"stockpile/auth"
	"stockpile/store"
	"stockpile/utils"
)

// runMain loops over the main menu for one session. Returns true when the user
// logged out (back to the login menu) and false when the program should exit.
func (c *CLI) runMain(sess *store.Session) bool {
	for {
		fmt.Fprintf(c.out, "\nMain Menu (%s)\n", sess.Username())
		fmt.Fprintln(c.out, "1. Add Item")
		fmt.Fprintln(c.out, "2. Buy Item")
		fmt.Fprintln(c.out, "3. Change Item Price")
		fmt.Fprintln(c.out, "4. Display Inventory")
		fmt.Fprintln(c.out, "5. Update Item Count")
		fmt.Fprintln(c.out, "6. Item Statistics")
		fmt.Fprintln(c.out, "7. Delete Item")
		fmt.Fprintln(c.out, "8. Generate Charts")
		fmt.Fprintln(c.out, "9. Log Out")
		fmt.Fprintln(c.out, "10. Exit")

		choice := c.readLine("Enter your choice (1-10): ")
		if c.eof {
			return false
		}
		switch choice {
		case "1":
			c.displayInventory(sess)
			c.handleAdd(sess)
		case "2":
			c.displayInventory(sess)
			c.handleBuy(sess)
		case "3":
			c.displayInventory(sess)
			c.handleChangePrice(sess)
		case "4":
			c.displayInventory(sess)
		case "5":
			c.displayInventory(sess)
			c.handleUpdateCount(sess)
		case "6":
			c.handleStats(sess)
		case "7":
			c.displayInventory(sess)
			c.handleDelete(sess)
		case "8":
			c.handleCharts(sess)
		case "9":
			auth.ClearSession(c.cfg.SessionFile)
			fmt.Fprintln(c.out, "Logged out.")
			return true
		case "10":
			fmt.Fprintln(c.out, "\nExiting Program. Thank you!")
			return false
		default:
			fmt.Fprintln(c.out, "Invalid choice. Please enter a number from 1 to 10.")
		}
	}
}

func (c *CLI) handleAdd(sess *store.Session) {
	fmt.Fprintln(c.out, "\nAdding Item")
	name := c.readLine("Enter item name: ")

	price, err := utils.ParseMoney(c.readLine("Enter item price: "))
	if err != nil {
		c.renderError(err)
		return
	}
	count, err := utils.ParseCount(c.readLine("Enter item count: "))
	if err != nil {
		c.renderError(err)
		return
	}

	if err := sess.Add(name, price, count); err != nil {
		c.renderError(err)
		return
	}
	fmt.Fprintf(c.out, "Item %q added to inventory.\n", name)
}

func (c *CLI) handleBuy(sess *store.Session) {
	fmt.Fprintln(c.out, "\nBuying Item")
	name := c.readLine("Enter item name: ")

	quantity, err := utils.ParseQuantity(c.readLine("Enter quantity to buy: "))
	if err != nil {
		c.renderError(err)
		return
	}

	revenue, err := sess.Buy(name, quantity)
	if err != nil {
		c.renderError(err)
		return
	}
	fmt.Fprintf(c.out, "Purchased %d of %q for %s.\n", quantity, name, utils.FormatMoney(revenue))
}

func (c *CLI) handleChangePrice(sess *store.Session) {
	fmt.Fprintln(c.out, "\nChanging Item Price")
	name := c.readLine("Enter item name: ")

	price, err := utils.ParseMoney(c.readLine("Enter new price: "))
	if err != nil {
		c.renderError(err)
		return
	}

	if err := sess.ChangePrice(name, price); err != nil {
		c.renderError(err)
		return
	}
	fmt.Fprintf(c.out, "Price of %q updated to %s.\n", name, utils.FormatMoney(price))
}

func (c *CLI) handleUpdateCount(sess *store.Session) {
	fmt.Fprintln(c.out, "\nUpdating Inventory")
	name := c.readLine("Enter item name: ")

	count, err := utils.ParseCount(c.readLine("Enter new count: "))
	if err != nil {
		c.renderError(err)
		return
	}

	if err := sess.UpdateCount(name, count); err != nil {
		c.renderError(err)
		return
	}
	fmt.Fprintf(c.out, "Inventory of %q updated to %d.\n", name, count)
}

func (c *CLI) handleStats(sess *store.Session) {
	fmt.Fprintln(c.out, "\nItem Statistics")
	name := c.readLine("Enter item name: ")
	period := c.readLine("Enter period (day/month/year): ")

	stats, err := sess.Stats(name, period)
	if err != nil {
		c.renderError(err)
		return
	}
	fmt.Fprintf(c.out, "\nStatistics for %q (%s):\n", stats.Name, stats.PeriodLabel)
	fmt.Fprintf(c.out, "Price: %s, Stock: %d, Sales (Count): %d, Sales (Price): %s\n",
		utils.FormatMoney(stats.Price), stats.Count, stats.SalesCount, utils.FormatMoney(stats.SalesRevenue))
}

func (c *CLI) handleDelete(sess *store.Session) {
	fmt.Fprintln(c.out, "\nDeleting Item")
	name := c.readLine("Enter item name: ")

	if err := sess.Delete(name); err != nil {
		c.renderError(err)
		return
	}
	fmt.Fprintf(c.out, "Item %q deleted from inventory.\n", name)
}

// displayInventory prints the current inventory and total sales as a table.
func (c *CLI) displayInventory(sess *store.Session) {
	fmt.Fprintln(c.out, "\nCurrent Inventory and Sales")

	table := tablewriter.NewWriter(c.out)
	table.SetHeader([]string{"Name", "Price", "Count", "Sales (Count)", "Sales (Price)"})
	for _, entry := range sess.List() {
		table.Append([]string{
			entry.Name,
			utils.FormatMoney(entry.Item.Price),
			strconv.Itoa(entry.Item.Count),
			strconv.Itoa(entry.Item.SalesCount),
			utils.FormatMoney(entry.Item.SalesRevenue),
		})
	}
	table.Render()

	fmt.Fprintf(c.out, "Total sales: %s\n", utils.FormatMoney(sess.TotalSales()))
}
