package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	checklistdto "lofi/internal/modules/checklist/dto"
)

func TestResolveTask(t *testing.T) {
	snap := checklistdto.Snapshot{Tasks: []checklistdto.TaskOutput{
		{ID: "ab12cd34-0000", Text: "stretch"},
		{ID: "ab98ef76-0000", Text: "read"},
		{ID: "c0ffee00-0000", Text: "walk"},
	}}
	cases := []struct {
		arg     string
		want    string
		wantErr string
	}{
		{arg: "1", want: "ab12cd34-0000"},
		{arg: "3", want: "c0ffee00-0000"},
		{arg: "ab9", want: "ab98ef76-0000"},
		{arg: "c0ffee00-0000", want: "c0ffee00-0000"},
		{arg: "0", wantErr: "no task #0 (have 3)"},
		{arg: "4", wantErr: "no task #4 (have 3)"},
		{arg: "ab", wantErr: `id prefix "ab" is ambiguous`},
		{arg: "zz", wantErr: `no task with id "zz"`},
	}
	for _, tc := range cases {
		t.Run(tc.arg, func(t *testing.T) {
			got, err := resolveTask(snap, tc.arg)
			if tc.wantErr != "" {
				require.EqualError(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "ab12cd34", shortID("ab12cd34-0000"))
	assert.Equal(t, "abc", shortID("abc"))
}
