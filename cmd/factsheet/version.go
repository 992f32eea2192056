package main

import (
	"fmt"

	"github.com/ternarybob/factsheet/internal/common"
)

func runVersion() {
	fmt.Printf("Factsheet version %s\n", common.GetFullVersion())
}
