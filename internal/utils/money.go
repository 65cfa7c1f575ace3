package utils

import "fmt"

// FormatEuro renders an amount of euro cents as "12.34 €".
func FormatEuro(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d €", sign, cents/100, cents%100)
}
