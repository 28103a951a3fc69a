package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

func TestRunSetQtyClampsAtOne(t *testing.T) {
	flagDataDir = t.TempDir()
	flagPage = "page-1"
	configBackend = "json"
	defer func() {
		flagDataDir = ""
		flagPage = "default"
		configBackend = ""
	}()

	// Seed a one-line cart.
	s, repo, err := openStore()
	require.NoError(t, err)
	s.Add(types.ItemInput{Title: "Widget", UnitPrice: 1000, Quantity: 1})
	require.NoError(t, repo.close())

	// Decrementing a displayed quantity of 1 lands on 1, never below.
	require.NoError(t, runSetQty(setQtyCmd, []string{"0", "0"}))

	s, repo, err = openStore()
	require.NoError(t, err)
	defer repo.close()

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 1, snap.Items[0].Quantity)
	assert.Equal(t, 1000.0, snap.GrandTotal)
}

func TestRunSetQtyRejectsNonNumericArgs(t *testing.T) {
	flagDataDir = t.TempDir()
	configBackend = "json"
	defer func() {
		flagDataDir = ""
		configBackend = ""
	}()

	err := runSetQty(setQtyCmd, []string{"zero", "1"})
	require.Error(t, err)

	err = runSetQty(setQtyCmd, []string{"0", "many"})
	require.Error(t, err)
}
