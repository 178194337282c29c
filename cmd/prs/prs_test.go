package prs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRejectsUnknownState(t *testing.T) {
	testCases := []struct {
		desc  string
		state string
	}{
		{desc: "typo", state: "opne"},
		{desc: "upper case", state: "OPEN"},
		{desc: "empty", state: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			cmd := &Command{State: tc.state}
			err := cmd.Run(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid state")
		})
	}
}
