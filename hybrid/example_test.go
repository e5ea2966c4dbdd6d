package hybrid_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/settleup/core"
	"github.com/katalvlaran/settleup/hybrid"
)

// ExampleSearch runs a seeded search and checks that the plan closes
// every balance.
func ExampleSearch() {
	b := core.Balances{0: -85, 1: -81, 2: -19, 3: 100, 4: 62, 5: 23}

	opts := hybrid.DefaultOptions()
	opts.Iterations = 200
	opts.GreedyProbability = 0.9
	opts.Seed = 42

	res, err := hybrid.Search(context.Background(), b, opts)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Completed, core.Verify(b, res.Transfers) == nil, len(res.Transfers) <= 5)
	// Output:
	// 200 true true
}
