// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"code.hybscloud.com/contract"
)

var addCmd = &cobra.Command{
	Use:   "add A B",
	Short: "Add two int32 values through a guarded function",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sum, err := guardedAdd().Call(parseArg(args[0]), parseArg(args[1]))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), sum)
		return nil
	},
}

func guardedAdd() *contract.Guarded[int32] {
	h := contract.MustHom(
		[]contract.Param{contract.Req(contract.Int32), contract.Req(contract.Int32)},
		contract.Int32,
	)
	return h.Guard(contract.Lift2(func(a, b int32) int32 {
		slog.Debug("adding", "a", a, "b", b)
		return a + b
	}))
}

// parseArg passes numbers as float64 and anything else as the raw string,
// leaving the decision to the contracts.
func parseArg(s string) any {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
