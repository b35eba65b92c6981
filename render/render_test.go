package render_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/render"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func TestDisplayList_SortsByDepthStable(t *testing.T) {
	var l render.DisplayList
	l.FillRect(geom.R(0, 0, 1, 1), 0, white, 0.9)
	l.FillRect(geom.R(1, 0, 1, 1), 0, white, 0)
	l.FillRect(geom.R(2, 0, 1, 1), 0, white, 0.9)
	l.Text("x", geom.R(3, 0, 1, 1), 12, render.AlignLeft, white, 0.5)

	cmds := l.Commands()
	require.Len(t, cmds, 4)
	assert.Equal(t, 1, cmds[0].Rect.X)
	assert.Equal(t, render.CmdText, cmds[1].Kind)
	assert.Equal(t, 0, cmds[2].Rect.X)
	assert.Equal(t, 2, cmds[3].Rect.X)
}

func TestDisplayList_Clipping(t *testing.T) {
	var l render.DisplayList
	l.PushClip(geom.R(0, 0, 100, 100))
	l.FillRect(geom.R(10, 10, 10, 10), 0, white, 0)
	l.FillRect(geom.R(200, 200, 10, 10), 0, white, 0) // fully clipped away
	l.PushNoClip()
	l.FillRect(geom.R(200, 200, 10, 10), 0, white, 0)
	l.PopClip()
	l.PopClip()
	l.FillRect(geom.R(300, 300, 10, 10), 0, white, 0)

	cmds := l.Commands()
	require.Len(t, cmds, 3)
	assert.True(t, cmds[0].Clipped)
	assert.Equal(t, geom.R(0, 0, 100, 100), cmds[0].Clip)
	assert.False(t, cmds[1].Clipped)
	assert.False(t, cmds[2].Clipped)
}

func TestDisplayList_SkipsInvisible(t *testing.T) {
	var l render.DisplayList
	l.FillRect(geom.R(0, 0, 1, 1), 0, color.RGBA{}, 0)
	l.Text("", geom.R(0, 0, 1, 1), 12, render.AlignLeft, white, 0)
	assert.Zero(t, l.Len())

	l.FillRect(geom.R(0, 0, 1, 1), 0, white, 0)
	l.Reset()
	assert.Zero(t, l.Len())
}
