package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lhaig/vyc/internal/compiler"
)

func TestPrintSummary(t *testing.T) {
	res, err := compiler.Compile(`balance: public(uint256)
owner: address

@public
@payable
def deposit(self, amount: uint256):
    self.balance = amount
`)
	require.NoError(t, err)

	var buf bytes.Buffer
	printSummary(&buf, res.Module)
	out := buf.String()

	for _, want := range []string{"STORAGE", "balance", "uint256", "yes", "owner", "address", "no",
		"METHOD", "deposit", "@public @payable", "amount: uint256"} {
		assert.Contains(t, out, want)
	}
}
