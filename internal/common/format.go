package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"wallet-client-go/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// Default separator widths
	DefaultWidth = 80
	WideWidth    = 100
)

// PrintSeparator prints a separator line with the specified character and width
func PrintSeparator(char string, width int) {
	fmt.Println(strings.Repeat(char, width))
}

// PrintSeparatorNewline prints a separator with a newline before it
func PrintSeparatorNewline(char string, width int) {
	fmt.Println("\n" + strings.Repeat(char, width))
}

// PrintHeader prints a formatted header with title and separators
func PrintHeader(title string, width int) {
	PrintSeparatorNewline("=", width)
	fmt.Println(title)
	PrintSeparator("=", width)
}

// PrintFooter prints a formatted footer with message and separators
func PrintFooter(message string, width int) {
	PrintSeparatorNewline("=", width)
	fmt.Println(message)
	fmt.Println(strings.Repeat("=", width) + "\n")
}

// PrintBoxSeparator prints a box-drawing separator line (for sub-sections)
func PrintBoxSeparator(width int) {
	fmt.Println("├" + strings.Repeat("─", width))
}

// BoxPrefix returns the appropriate box-drawing prefix for list items
func BoxPrefix(isLast bool) string {
	if isLast {
		return "└  "
	}
	return "│  "
}

// BoxDetailPrefix returns the prefix for detail lines under list items
func BoxDetailPrefix(isLast bool) string {
	if isLast {
		return "   "
	}
	return "│  "
}

var printer = message.NewPrinter(language.English)

// FormatCurrency renders an amount with two decimals and thousands
// separators followed by the currency code, e.g. "1,250.50 EUR".
func FormatCurrency(amount decimal.Decimal, code string) string {
	rounded := amount.Round(2)
	whole, frac, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return fmt.Sprintf("%s%s.%s %s", sign, groupThousands(whole), frac, strings.ToUpper(code))
}

// groupThousands inserts separators into a string of digits
func groupThousands(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return printer.Sprintf("%d", n)
	}

	var b strings.Builder
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatDate renders "02/01/2006" when short, else "Jan 2, 2006, 03:04 PM"
func FormatDate(t time.Time, short bool) string {
	if short {
		return t.Format("02/01/2006")
	}
	return t.Format("Jan 2, 2006, 03:04 PM")
}

// FormatTransaction renders one list row of a transaction
func FormatTransaction(tx models.NormalizedTransaction) string {
	sign := "-"
	if tx.Direction == models.DirectionIn {
		sign = "+"
	}

	amount, err := decimal.NewFromString(tx.Amount)
	if err != nil {
		amount = decimal.Zero
	}

	name := "Unknown"
	if tx.Counterparty != nil {
		name = tx.Counterparty.Name
	}

	return fmt.Sprintf("%-8s %-20s %s%-16s %-10s %s",
		tx.Id, name, sign, FormatCurrency(amount, tx.Currency), tx.Status, FormatDate(tx.Timestamp, true))
}
