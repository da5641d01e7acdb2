package fish

import (
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Money is an amount of currency in cents. Catalog files and JSON carry it
// as a decimal dollar figure.
type Money int64

// Dollar is the smallest amount a fish can be worth.
const Dollar Money = 100

// NewMoney converts a dollar amount to Money, rounding to the nearest cent.
func NewMoney(dollars float64) Money {
	return Money(math.Round(dollars * 100))
}

func (m Money) Dollars() float64 { return float64(m) / 100 }

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Dollars())
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*m = NewMoney(f)
	return nil
}

func (m Money) MarshalYAML() (interface{}, error) {
	return m.Dollars(), nil
}

func (m *Money) UnmarshalYAML(node *yaml.Node) error {
	var f float64
	if err := node.Decode(&f); err != nil {
		return err
	}
	*m = NewMoney(f)
	return nil
}
