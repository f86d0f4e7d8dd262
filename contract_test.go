// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package contract_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/contract"
)

func TestErase(t *testing.T) {
	c := contract.Erase(contract.Int32)
	v, err := c(3.0)
	require.NoError(t, err)
	require.Equal(t, int32(3), v)

	v, err = c("3")
	require.Error(t, err)
	require.Nil(t, v)
}

func TestMap(t *testing.T) {
	upper := contract.Map(contract.String, strings.ToUpper)
	s, err := upper("abc")
	require.NoError(t, err)
	require.Equal(t, "ABC", s)

	_, err = upper(1)
	require.ErrorIs(t, err, contract.ErrTypeMismatch)
}

func TestThen(t *testing.T) {
	small := contract.Then(contract.Erase(contract.Number), contract.Nat32)
	n, err := small(uint64(12))
	require.NoError(t, err)
	require.Equal(t, int32(12), n)

	_, err = small("12")
	require.ErrorIs(t, err, contract.ErrTypeMismatch)
	_, err = small(-12)
	require.ErrorIs(t, err, contract.ErrRangeMismatch)
}

func TestValidateAndMust(t *testing.T) {
	s, err := contract.Validate(contract.String, "x")
	require.NoError(t, err)
	require.Equal(t, "x", s)

	require.Equal(t, int64(5), contract.Must(contract.SafeNat, 5))
	require.Panics(t, func() { contract.Must(contract.SafeNat, -5) })
}
