// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"code.hybscloud.com/contract"
)

var fibCapacity int

var fibCmd = &cobra.Command{
	Use:   "fib N",
	Short: "Compute a Fibonacci number through a memoized function",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := contract.SafeNat(parseArg(args[0]))
		if err != nil {
			return err
		}
		memo, err := newFib(contract.WithCapacity(fibCapacity), contract.WithLogger(slog.Default()))
		if err != nil {
			return err
		}
		r, err := memo.Call(n)
		if err != nil {
			return err
		}
		hits, misses := memo.Stats()
		slog.Info("memo stats", "hits", hits, "misses", misses, "cached", memo.Len())
		fmt.Fprintln(cmd.OutOrStdout(), r)
		return nil
	},
}

func init() {
	bindFibFlags(fibCmd.Flags())
}

func bindFibFlags(flags *pflag.FlagSet) {
	flags.IntVar(&fibCapacity, "capacity", 0, "bound the memo cache to this many entries (0: unbounded)")
}

// newFib memoizes fib over safe naturals. The result contract rejects
// values beyond 2^53-1, the first being fib(79).
func newFib(opts ...contract.MemoOption) (*contract.Memo[int64, int64], error) {
	h, err := contract.NewHom([]contract.Param{contract.Req(contract.SafeNat)}, contract.SafeInt)
	if err != nil {
		return nil, err
	}
	var memo *contract.Memo[int64, int64]
	fib := func(_ any, args ...any) (any, error) {
		n := args[0].(int64)
		if n < 2 {
			return n, nil
		}
		a, err := memo.Call(n - 1)
		if err != nil {
			return nil, err
		}
		b, err := memo.Call(n - 2)
		if err != nil {
			return nil, err
		}
		return a + b, nil
	}
	memo, err = contract.Memoize[int64](h, fib, opts...)
	return memo, err
}
