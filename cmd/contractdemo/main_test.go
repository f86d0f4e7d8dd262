// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/contract"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, logs bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&logs)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), logs.String(), err
}

func TestAdd(t *testing.T) {
	out, _, err := execute(t, "add", "3", "4")
	require.NoError(t, err)
	require.Equal(t, "7\n", out)
}

func TestAddRejectsNonNumbers(t *testing.T) {
	out, _, err := execute(t, "add", "3", "x")
	require.ErrorIs(t, err, contract.ErrTypeMismatch)
	require.ErrorContains(t, err, "args[1]")
	require.Empty(t, out)
}

func TestAddRejectsFractions(t *testing.T) {
	_, _, err := execute(t, "add", "3", "0.5")
	require.ErrorIs(t, err, contract.ErrRangeMismatch)
}

func TestFib(t *testing.T) {
	out, logs, err := execute(t, "fib", "10")
	require.NoError(t, err)
	require.Equal(t, "55\n", out)
	require.Contains(t, logs, "memo stats")
}

func TestFibBounded(t *testing.T) {
	t.Cleanup(func() { fibCapacity = 0 })
	out, _, err := execute(t, "fib", "--capacity", "3", "30")
	require.NoError(t, err)
	require.Equal(t, "832040\n", out)
}

func TestFibLimit(t *testing.T) {
	out, _, err := execute(t, "fib", "78")
	require.NoError(t, err)
	require.Equal(t, "8944394323791464\n", out)

	_, _, err = execute(t, "fib", "79")
	require.ErrorIs(t, err, contract.ErrRangeMismatch)
	require.True(t, strings.HasPrefix(err.Error(), "contract: result"), err.Error())
}

func TestDebugLogging(t *testing.T) {
	t.Cleanup(func() { debug = false })
	_, logs, err := execute(t, "--debug", "add", "1", "2")
	require.NoError(t, err)
	require.Contains(t, logs, "adding")
}

func TestNewFibRejectsNegative(t *testing.T) {
	memo, err := newFib()
	require.NoError(t, err)
	_, err = memo.Call(-1)
	require.ErrorIs(t, err, contract.ErrRangeMismatch)
}
