package engine

import (
	"fmt"
	"strconv"
)

func gameID(week, index int) string {
	return fmt.Sprintf("game-%d-%d", week, index)
}

// dollars formats a currency amount with thousands separators, e.g.
// "$10,000" or "-$1,250".
func dollars(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.Itoa(amount)
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, d)
	}
	return sign + "$" + string(grouped)
}
