package main

import (
	"fmt"
	"log"
	"os"

	"github.com/meenmo/zerocurve/bond"
	"github.com/meenmo/zerocurve/curve"
	"github.com/meenmo/zerocurve/marketdata"
)

func main() {
	val := bond.ZeroCouponPrice(1000, 0.05, 2, 1)
	fmt.Printf("ZCB Value: $%.2f\n", val)

	zc, err := curve.Bootstrap(marketdata.ReferenceQuotes())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("\nExtracted Zero Rates:")
	if err := zc.Format(os.Stdout, 2); err != nil {
		log.Fatal(err)
	}
}
