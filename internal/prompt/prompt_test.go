// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScripted(t *testing.T) {
	s := &Scripted{
		Confirms: []bool{true, false},
		Inputs:   []string{"", "book.pdf"},
	}

	ok, err := s.Confirm("first?", false)
	require.NoError(t, err)
	assert.True(t, ok)

	name, err := s.Input("name", "combined_pdfs.pdf")
	require.NoError(t, err)
	assert.Equal(t, "combined_pdfs.pdf", name, "empty answer takes the default")

	name, err = s.Input("name again", "combined_pdfs.pdf")
	require.NoError(t, err)
	assert.Equal(t, "book.pdf", name)

	ok, err = s.Confirm("second?", true)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Confirm("third?", true)
	assert.ErrorIs(t, err, ErrNoAnswer)
	_, err = s.Input("more", "")
	assert.ErrorIs(t, err, ErrNoAnswer)

	assert.Equal(t, []string{"first?", "name", "name again", "second?", "third?", "more"}, s.Asked)
	assert.Equal(t, []bool{false, true, true}, s.Defaults)
}

func TestTerminalImplementsPrompter(t *testing.T) {
	var _ Prompter = Terminal{}
	var _ Prompter = &Scripted{}
}
