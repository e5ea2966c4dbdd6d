package settle_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/katalvlaran/settleup/core"
	"github.com/katalvlaran/settleup/settle"
)

// ExampleSolve loads a config and settles a trip among three friends.
func ExampleSolve() {
	cfg, err := settle.LoadConfig(strings.NewReader("algorithm: greedy-max\nverify: true\n"))
	if err != nil {
		fmt.Println(err)
		return
	}

	b := core.Balances{0: 120, 1: -90, 2: -30}
	res, err := settle.Solve(context.Background(), b, cfg)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Algorithm, res.LowerBound, res.UpperBound)
	for _, tr := range res.Transfers {
		fmt.Println(tr)
	}
	// Output:
	// greedy-max 2 2
	// 1->0: 90.00
	// 2->0: 30.00
}
