package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatPrice renders an integer amount with thousand separators and a
// currency suffix, e.g. "5 600 RUB".
func FormatPrice(amount int64, currency string) string {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		currency = "RUB"
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%s %s", sign, formatThousand(amount), currency)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(' ')
		}
		out.WriteRune(c)
	}
	return out.String()
}
