package yield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkloop/perkloop/internal/shared/errors"
)

func TestFeePolicy_Presets(t *testing.T) {
	tests := []struct {
		version string
		gross   string
		wantFee string
		wantNet string
	}{
		{PolicyTiered1Plus20, "6", "2", "4"},
		{PolicyTiered1Plus20, "1", "1", "0"},
		{PolicyFlat5, "10", "0.5", "9.5"},
		{PolicyTiered05Plus10, "5.5", "1", "4.5"},
		{PolicyLaunchBonus, "7.25", "0", "7.25"},
	}

	for _, tt := range tests {
		t.Run(tt.version+"/"+tt.gross, func(t *testing.T) {
			policy, err := PolicyByVersion(tt.version)
			require.NoError(t, err)
			require.NoError(t, policy.Validate())

			fee, err := policy.ManagementFee(d(tt.gross))
			require.NoError(t, err)
			assert.True(t, fee.Equal(d(tt.wantFee)), "fee %s", fee)

			net, err := policy.UserAPY(d(tt.gross))
			require.NoError(t, err)
			assert.True(t, net.Equal(d(tt.wantNet)), "net %s", net)
		})
	}
}

func TestFeePolicy_UserAPYNeverNegative(t *testing.T) {
	for _, version := range PolicyVersions() {
		policy, err := PolicyByVersion(version)
		require.NoError(t, err)

		for _, gross := range []string{"0", "0.01", "0.3", "0.5", "0.99", "1", "2", "40"} {
			net, err := policy.UserAPY(d(gross))
			require.NoError(t, err)
			assert.False(t, net.IsNegative(), "%s gross=%s net=%s", version, gross, net)
		}
	}
}

func TestFeePolicy_GrossBelowBaseClampsToZero(t *testing.T) {
	policy, err := PolicyByVersion(PolicyTiered1Plus20)
	require.NoError(t, err)

	// fee = 1 + (0.5 − 1) × 0.2 = 0.9 > 0.5
	fee, err := policy.ManagementFee(d("0.5"))
	require.NoError(t, err)
	assert.True(t, fee.Equal(d("0.9")))

	net, err := policy.UserAPY(d("0.5"))
	require.NoError(t, err)
	assert.True(t, net.IsZero())
}

func TestFeePolicy_RejectsNegativeGross(t *testing.T) {
	policy, err := PolicyByVersion(PolicyFlat5)
	require.NoError(t, err)

	_, err = policy.UserAPY(d("-0.1"))
	assert.True(t, errors.IsValidationError(err))
}

func TestPolicyByVersion_Unknown(t *testing.T) {
	_, err := PolicyByVersion("tiered-2-50")
	assert.Error(t, err)
}

func TestFeePolicy_Validate(t *testing.T) {
	assert.Error(t, FeePolicy{}.Validate())
	assert.Error(t, FeePolicy{Version: "x", Base: d("-1"), Rate: d("0.1")}.Validate())
	assert.Error(t, FeePolicy{Version: "x", Base: d("1"), Rate: d("1.5")}.Validate())
	assert.NoError(t, FeePolicy{Version: "x", Base: d("1"), Rate: d("0.2")}.Validate())
}
