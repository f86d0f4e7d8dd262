// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command contractdemo exercises guarded and memoized functions from the
// command line.
//
//	contractdemo add 3 4      # 7
//	contractdemo add 3 x      # type mismatch, the addition never runs
//	contractdemo fib 78       # memoized, prints cache statistics
//	contractdemo fib 79       # result exceeds a safe integer
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:           "contractdemo",
	Short:         "Call functions guarded by runtime contracts",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(prettyLogger(cmd.ErrOrStderr(), level))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "log contract activity")
	rootCmd.AddCommand(addCmd, fibCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("contractdemo failed", "error", err)
		os.Exit(1)
	}
}
