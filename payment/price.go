package payment

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FreePrice is the sentinel course price that bypasses the payment step.
const FreePrice = "Free"

// ParsePrice turns a display price such as "$49" or "Free" into an amount.
// An empty price is treated as free.
func ParsePrice(price string) (amount float64, free bool, err error) {
	p := strings.TrimSpace(price)
	if p == "" || strings.EqualFold(p, FreePrice) {
		return 0, true, nil
	}
	p = strings.TrimSpace(strings.TrimPrefix(p, "$"))
	p = strings.ReplaceAll(p, ",", "")
	amount, err = strconv.ParseFloat(p, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid price %q", price)
	}
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, false, fmt.Errorf("invalid price %q", price)
	}
	return amount, false, nil
}

// Total adds the platform fee and rounds to cents.
func Total(amount, fee float64) float64 {
	return Round2(amount + fee)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 is used for average ratings shown with one decimal.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// MaskCard keeps only the last four digits of a card number.
func MaskCard(number string) string {
	digits := make([]rune, 0, len(number))
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) == 0 {
		return ""
	}
	if len(digits) <= 4 {
		return "****" + string(digits)
	}
	return "**** " + string(digits[len(digits)-4:])
}
